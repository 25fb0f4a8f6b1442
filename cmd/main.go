package main

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"

	"voice-client/internal/audio/capture"
	"voice-client/internal/audio/codec"
	audiocfg "voice-client/internal/audio/config"
	"voice-client/internal/audio/convert"
	"voice-client/internal/audio/mic"
	"voice-client/internal/audio/pipeline"
	"voice-client/internal/audio/playback"
	"voice-client/internal/rtc"
	"voice-client/internal/session"
	"voice-client/internal/voice"
	"voice-client/pkg/connection"
	"voice-client/pkg/interface/desktop"
	"voice-client/pkg/logger"
	"voice-client/pkg/system"
	"voice-client/pkg/web"

	opus "gopkg.in/hraban/opus.v2"
)

// loadEnv loads environment variables from a .env file if not already set
func loadEnv() {
	if os.Getenv("LOG_LEVEL") == "" { // means .env not loaded
		err := system.LoadEnv(".env")
		if err != nil {
			log.Fatal().Err(err).Msg("Error loading .env file")
		}
	}
}

func readConnectionLog(connErrors chan error) {
	for err := range connErrors {
		if err != nil {
			log.Warn().Err(err).Msg("Connection error")
		}
	}
}

// startRealtimeSession connects the realtime voice endpoint when one is
// configured and pumps its audio into playback.
func startRealtimeSession(ctx context.Context, pl *pipeline.AudioPipeline) {
	cfg := session.ConfigFromEnv()
	if cfg.URL == "" {
		return
	}

	sess, err := session.Connect(ctx, cfg)
	if err != nil {
		log.Warn().Err(err).Msg("Realtime session unavailable")
		return
	}
	session.SetActive(sess)

	go func() {
		for pcm := range sess.Audio() {
			frame := convert.BytesToInt16(pcm)
			select {
			case pl.Playback.InChan <- frame:
			default:
				log.Debug().Msg("Playback channel full, dropping session frame")
			}
		}
	}()
}

func main() {
	loadEnv()
	logger.InitLogger()
	ctx := context.Background()

	audioCfg := audiocfg.NewOpusConfig()
	sinks := playback.NewRegistry()

	pl, err := pipeline.NewAudioPipeline(audioCfg, sinks)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create audio pipeline")
	}
	defer pl.Close()

	gate := mic.NewGate(capture.Opener(audioCfg))
	micStream, err := gate.Open(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open microphone")
	}

	var wh *connection.WebsocketHandler
	if system.GetWebPort() != "" {
		encoder, err := codec.NewOpusEncoder(
			int(audioCfg.SampleRate), int(audioCfg.Channels), audioCfg.FrameSamples, opus.AppVoIP)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create web encoder")
		}
		tap := make(chan []int16, 64)
		pl.SetTap(tap)
		wh = connection.NewWebsocketHandler(encoder, micStream.Track(), tap)
		sinks.Register(wh)
	}

	call := rtc.NewCall(pl)
	go func() {
		if err := call.Connect(ctx, 1, micStream.Track()); err != nil {
			log.Error().Err(err).Msg("Call setup failed")
		}
	}()
	if err := <-call.StatusChannel; err != nil {
		log.Fatal().Err(err).Msg("Failed to establish WebRTC connection")
	}
	go readConnectionLog(call.StatusChannel)

	startRealtimeSession(ctx, pl)

	coordinator := voice.NewCoordinator(
		gate,
		rtc.ActivePeerConnection,
		session.Active,
		sinks,
		voice.Callbacks{
			StopRecording: func() {
				if h := session.Active(); h != nil {
					if err := h.Send(session.ClearInputAudio()); err != nil {
						log.Warn().Err(err).Msg("Failed to clear session input buffer")
					}
				}
			},
			Interrupt: pl.Flush,
		},
	)
	coordinator.AdoptMicStream(micStream)

	if wh != nil {
		go web.StartWebInterface(wh)
	}

	desktopIface, err := desktop.NewDesktopInterface(coordinator)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create desktop interface")
	}
	desktopIface.StartDesktopInterface(ctx)
}
