package playback

import (
	"fmt"
	"sync"

	"github.com/gen2brain/malgo"
	"github.com/rs/zerolog/log"

	"voice-client/internal/audio/config"
)

// Sink is one audio output the mute coordinator can silence. The malgo
// playback device implements it; tests substitute fakes.
type Sink interface {
	SetMuted(muted bool)
	Pause()
	Resume()
}

type MalgoPlayback struct {
	InChan chan []int16
	device *malgo.Device
	ctx    *malgo.AllocatedContext

	mu     sync.RWMutex
	paused bool
	muted  bool
}

func NewMalgoPlayback(audiocfg config.AudioConfig) (*MalgoPlayback, error) {
	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, func(msg string) {
		log.Debug().Str("msg", msg).Msg("Malgo context message")
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init malgo context: %w", err)
	}

	mp := &MalgoPlayback{
		InChan: make(chan []int16, audiocfg.BufferSize),
		ctx:    ctx,
	}

	playCfg := malgo.DefaultDeviceConfig(malgo.Playback)
	playCfg.Playback.Format = malgo.FormatS16
	playCfg.Playback.Channels = uint32(audiocfg.Channels)
	playCfg.SampleRate = audiocfg.SampleRate

	onPlay := func(pOutputSamples, _ []byte, frameCount uint32) {
		mp.mu.RLock()
		silenced := mp.paused || mp.muted
		mp.mu.RUnlock()

		if silenced {
			for i := range pOutputSamples {
				pOutputSamples[i] = 0
			}
			return
		}

		select {
		case pcmFrame := <-mp.InChan:
			bytesToWrite := min(len(pcmFrame)*2, len(pOutputSamples))

			for i := 0; i < bytesToWrite/2; i++ {
				sample := pcmFrame[i]
				pOutputSamples[i*2] = byte(sample)        // low byte
				pOutputSamples[i*2+1] = byte(sample >> 8) // high byte
			}

			// Fill remaining buffer with silence if needed
			for i := bytesToWrite; i < len(pOutputSamples); i++ {
				pOutputSamples[i] = 0
			}

		default:
			// If no data available, output silence
			for i := range pOutputSamples {
				pOutputSamples[i] = 0
			}
		}
	}

	device, err := malgo.InitDevice(ctx.Context, playCfg, malgo.DeviceCallbacks{Data: onPlay})
	if err != nil {
		_ = ctx.Uninit()
		ctx.Free()
		return nil, fmt.Errorf("failed to open playback device: %w", err)
	}
	mp.device = device

	if err := mp.device.Start(); err != nil {
		device.Uninit()
		_ = ctx.Uninit()
		ctx.Free()
		return nil, fmt.Errorf("failed to start playback device: %w", err)
	}

	log.Info().Msg("Playback device started")
	return mp, nil
}

func (mp *MalgoPlayback) SetMuted(muted bool) {
	mp.mu.Lock()
	mp.muted = muted
	mp.mu.Unlock()
}

func (mp *MalgoPlayback) Pause() {
	mp.mu.Lock()
	mp.paused = true
	mp.mu.Unlock()
}

func (mp *MalgoPlayback) Resume() {
	mp.mu.Lock()
	mp.paused = false
	mp.mu.Unlock()
}

func (mp *MalgoPlayback) Close() {
	if mp.device != nil {
		mp.device.Uninit()
	}
	if mp.ctx != nil {
		_ = mp.ctx.Uninit()
		mp.ctx.Free()
	}
}
