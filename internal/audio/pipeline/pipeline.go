package pipeline

import (
	"fmt"
	"sync"
	"time"

	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog/log"

	"voice-client/internal/audio/codec"
	"voice-client/internal/audio/config"
	"voice-client/internal/audio/playback"
)

// AudioPipeline drives the receiving path: ReadRTP -> decode -> jitter
// buffer -> playback. The sending path lives on the capture stream itself,
// which writes straight to its local track.
type AudioPipeline struct {
	Playback *playback.MalgoPlayback
	decoder  *codec.OpusDecoder

	// tap receives a copy of every played frame when set. Used by the web
	// bridge to forward remote audio to the browser. Guarded by tapMu: the
	// bridge may install it while the receive loop is already running.
	tap   chan []int16
	tapMu sync.Mutex

	QuitRecv chan struct{}
	quitOnce sync.Once

	jitterBuffer      [][]int16
	jitterBufferMutex sync.Mutex
	minBufferSize     int
	maxBufferSize     int
}

// NewAudioPipeline creates a receive pipeline and registers its playback
// sink with the given registry.
func NewAudioPipeline(audiocfg config.AudioConfig, sinks *playback.Registry) (*AudioPipeline, error) {
	decoder, err := codec.NewOpusDecoder(
		int(audiocfg.SampleRate), int(audiocfg.Channels), audiocfg.FrameSamples)
	if err != nil {
		return nil, err
	}

	pb, err := playback.NewMalgoPlayback(audiocfg)
	if err != nil {
		return nil, err
	}
	if sinks != nil {
		sinks.Register(pb)
	}

	return &AudioPipeline{
		Playback:      pb,
		decoder:       decoder,
		QuitRecv:      make(chan struct{}),
		jitterBuffer:  make([][]int16, 0, config.JitterBufferSize),
		minBufferSize: config.JitterBufferSize,
		maxBufferSize: config.JitterBufferSize * 3,
	}, nil
}

// StartReceiving starts the audio receiving, decoding, and playback process.
// receive -> decode -> playback
func (p *AudioPipeline) StartReceiving(track *webrtc.TrackRemote) {
	log.Info().
		Str("kind", track.Kind().String()).
		Str("track_id", track.ID()).
		Str("stream_id", track.StreamID()).
		Msg("Processing incoming audio stream")
	defer log.Info().Msg("Receiving pipeline stopped")

	// run jitter buffer manager
	go p.manageJitterBuffer()
	for {
		select {
		case <-p.QuitRecv:
			return
		default:
			rtp, _, err := track.ReadRTP()
			if err != nil {
				log.Warn().Err(err).Msg("Error reading RTP")
				return
			}
			decoded, err := p.Decode(rtp.Payload)
			if err != nil {
				log.Warn().Err(err).Msg("Failed to decode RTP payload")
				continue
			}

			p.addToJitterBuffer(decoded)
		}
	}
}

func (p *AudioPipeline) Decode(data []byte) ([]int16, error) {
	decoded, err := p.decoder.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode data: %w", err)
	}
	return decoded, nil
}

// addToJitterBuffer adds a frame to the jitter buffer with overflow protection
func (p *AudioPipeline) addToJitterBuffer(frame []int16) {
	p.jitterBufferMutex.Lock()
	defer p.jitterBufferMutex.Unlock()

	p.jitterBuffer = append(p.jitterBuffer, frame)

	if len(p.jitterBuffer) > p.maxBufferSize {
		log.Debug().Int("frames", len(p.jitterBuffer)).Msg("Jitter buffer overflow, dropping old frames")
		excess := len(p.jitterBuffer) - p.maxBufferSize
		p.jitterBuffer = p.jitterBuffer[excess:]
	}
}

// sends frames from jitter buffer to playback at regular intervals
func (p *AudioPipeline) manageJitterBuffer() {
	ticker := time.NewTicker(config.FrameDuration * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-p.QuitRecv:
			return
		case <-ticker.C:
			p.jitterBufferMutex.Lock()

			// wait minimal buffer size
			if len(p.jitterBuffer) < p.minBufferSize {
				p.jitterBufferMutex.Unlock()
				continue
			}

			frame := p.jitterBuffer[0]
			p.jitterBuffer = p.jitterBuffer[1:]

			p.jitterBufferMutex.Unlock()

			select {
			case p.Playback.InChan <- frame:
			default:
				log.Debug().Msg("Playback channel full, dropping frame")
			}

			p.forwardToTap(frame)
		}
	}
}

// SetTap installs the channel receiving copies of played frames. Safe to
// call while the pipeline is receiving.
func (p *AudioPipeline) SetTap(ch chan []int16) {
	p.tapMu.Lock()
	p.tap = ch
	p.tapMu.Unlock()
}

// forwardToTap sends one frame to the tap without blocking playback.
func (p *AudioPipeline) forwardToTap(frame []int16) {
	p.tapMu.Lock()
	tap := p.tap
	p.tapMu.Unlock()

	if tap == nil {
		return
	}
	select {
	case tap <- frame:
	default:
	}
}

// Flush drops buffered but not yet played audio. Used to cut off remote
// speech mid-utterance.
func (p *AudioPipeline) Flush() {
	p.jitterBufferMutex.Lock()
	p.jitterBuffer = p.jitterBuffer[:0]
	p.jitterBufferMutex.Unlock()

	for {
		select {
		case <-p.Playback.InChan:
		default:
			return
		}
	}
}

func (p *AudioPipeline) Close() {
	p.quitOnce.Do(func() {
		close(p.QuitRecv)
	})
	p.Playback.Close()
}
