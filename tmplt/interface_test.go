package tmplt

import (
	"bytes"
	"html/template"
	"strings"
	"testing"
)

func TestHtmlPageRenders(t *testing.T) {
	page, err := template.New("page").Parse(HtmlPage)
	if err != nil {
		t.Fatalf("template does not parse: %v", err)
	}

	data := PageData{
		Languages: []LanguageOption{
			{Code: "en", NativeName: "English"},
			{Code: "ar", NativeName: "العربية", RTL: true},
		},
		Default: "en",
		MicIcon: template.HTML(MicIcon),
		MicOff:  template.HTML(MicOffIcon),
	}

	var buf bytes.Buffer
	if err := page.Execute(&buf, data); err != nil {
		t.Fatalf("template does not render: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, `<option value="en"`) {
		t.Error("language selector missing english option")
	}
	if !strings.Contains(out, `dir="rtl"`) {
		t.Error("RTL language not marked")
	}
	if !strings.Contains(out, "<svg") {
		t.Error("icon not inlined")
	}
	if !strings.Contains(out, `lang="en"`) {
		t.Error("default language not applied")
	}
}
