package web

import (
	"crypto/tls"
	"html/template"
	"net/http"

	"github.com/rs/zerolog/log"

	"voice-client/pkg/config"
	"voice-client/pkg/connection"
	"voice-client/pkg/locale"
	"voice-client/pkg/system"
	"voice-client/tmplt"
)

func pageData() tmplt.PageData {
	languages := locale.Supported()
	options := make([]tmplt.LanguageOption, len(languages))
	for i, lang := range languages {
		options[i] = tmplt.LanguageOption{
			Code:       lang.Code,
			NativeName: lang.NativeName,
			RTL:        lang.RTL,
		}
	}
	return tmplt.PageData{
		Languages: options,
		Default:   locale.Default().Code,
		MicIcon:   template.HTML(tmplt.MicIcon),
		MicOff:    template.HTML(tmplt.MicOffIcon),
	}
}

// StartWebInterface serves the browser page and the websocket audio bridge
// over HTTPS with a self-signed certificate. Blocks until the server dies.
func StartWebInterface(wh *connection.WebsocketHandler) {
	port := system.GetWebPort()
	if port == "" {
		port = "8443"
	}

	page := template.Must(template.New("page").Parse(tmplt.HtmlPage))
	data := pageData()

	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if err := page.Execute(w, data); err != nil {
			log.Warn().Err(err).Msg("Failed to render page")
		}
	})

	http.HandleFunc("/ws", wh.HandleWebsocketMessage)

	localIP := system.GetLocalIP()

	cert, err := config.GenerateSelfSignedCert()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create certificate")
	}

	tlsConfig := &tls.Config{
		Certificates: []tls.Certificate{cert},
	}

	server := &http.Server{
		Addr:      "0.0.0.0:" + port,
		TLSConfig: tlsConfig,
	}

	log.Info().Str("lan", "https://"+localIP+":"+port).Str("local", "https://localhost:"+port).Msg("Web interface listening")

	if err := server.ListenAndServeTLS("", ""); err != nil {
		log.Fatal().Err(err).Msg("Web interface stopped")
	}
}
