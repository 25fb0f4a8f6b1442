package capture

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/gen2brain/malgo"
	"github.com/pion/webrtc/v4"
	"github.com/pion/webrtc/v4/pkg/media"
	"github.com/rs/zerolog/log"
	"gopkg.in/hraban/opus.v2"

	"voice-client/internal/audio/codec"
	"voice-client/internal/audio/config"
	"voice-client/internal/audio/mic"
)

// Opener returns a mic.Opener backed by the default malgo capture device.
// Each successful open owns the device exclusively until Stream.Stop.
func Opener(audiocfg config.AudioConfig) mic.Opener {
	return func(ctx context.Context) (*mic.Stream, error) {
		return open(ctx, audiocfg)
	}
}

func open(ctx context.Context, audiocfg config.AudioConfig) (*mic.Stream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	track, err := webrtc.NewTrackLocalStaticSample(
		webrtc.RTPCodecCapability{
			MimeType:  audiocfg.MimeType,
			Channels:  audiocfg.Channels,
			ClockRate: audiocfg.SampleRate,
		},
		"audio",
		"microphone",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create microphone track: %w", err)
	}

	malgoCtx, err := malgo.InitContext(nil, malgo.ContextConfig{}, func(msg string) {
		log.Debug().Str("msg", msg).Msg("Malgo context message")
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init malgo context: %w", err)
	}

	capCfg := malgo.DefaultDeviceConfig(malgo.Capture)
	capCfg.Capture.Format = malgo.FormatS16
	capCfg.Capture.Channels = uint32(audiocfg.Channels)
	capCfg.SampleRate = audiocfg.SampleRate

	// alsa specific settings for linux
	if runtime.GOOS == "linux" {
		capCfg.Alsa.NoMMap = 1
	}

	enc, err := codec.NewOpusEncoder(
		int(audiocfg.SampleRate), int(audiocfg.Channels), audiocfg.FrameSamples, opus.AppVoIP)
	if err != nil {
		_ = malgoCtx.Uninit()
		malgoCtx.Free()
		return nil, fmt.Errorf("failed to create opus encoder: %w", err)
	}

	frameDuration := time.Duration(config.FrameDuration) * time.Millisecond
	frameSamples := audiocfg.FrameSamples
	var capturedPCM []int16

	onCapture := func(_, input []byte, frameCount uint32) {
		samples := make([]int16, int(frameCount)*int(capCfg.Capture.Channels))
		for i := 0; i < len(samples); i++ {
			off := i * 2
			samples[i] = int16(input[off]) | int16(input[off+1])<<8
		}
		capturedPCM = append(capturedPCM, samples...)

		for len(capturedPCM) >= frameSamples {
			frame := capturedPCM[:frameSamples]
			capturedPCM = capturedPCM[frameSamples:]

			pkt, err := enc.Encode(frame)
			if err != nil {
				log.Warn().Err(err).Msg("Failed to encode captured frame")
				continue
			}
			if err := track.WriteSample(media.Sample{Data: pkt, Duration: frameDuration}); err != nil {
				log.Warn().Err(err).Msg("Failed to write captured sample to track")
			}
		}
	}

	device, err := malgo.InitDevice(malgoCtx.Context, capCfg, malgo.DeviceCallbacks{Data: onCapture})
	if err != nil {
		_ = malgoCtx.Uninit()
		malgoCtx.Free()
		return nil, fmt.Errorf("failed to open capture device: %w", err)
	}

	if err := device.Start(); err != nil {
		device.Uninit()
		_ = malgoCtx.Uninit()
		malgoCtx.Free()
		return nil, fmt.Errorf("failed to start capture device: %w", err)
	}

	log.Info().
		Uint32("sample_rate", audiocfg.SampleRate).
		Uint16("channels", audiocfg.Channels).
		Msg("Capture device started")

	stop := func() {
		device.Uninit()
		_ = malgoCtx.Uninit()
		malgoCtx.Free()
	}
	return mic.NewStream(track, stop), nil
}
