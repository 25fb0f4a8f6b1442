package config

import (
	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog/log"
)

type AudioConfigType string

func (ac AudioConfigType) String() string {
	return string(ac)
}

const (
	SampleRateOpus   = 48000 // opus wants 48000
	FrameSamplesOpus = 960   // 20 ms at 48kHz
	ChannelsOpus     = 1

	SampleRateBrowser = 44100 // typical browser AudioContext rate

	FrameDuration = 20 // ms, standard frame duration

	JitterBufferSize = 2 // frames to buffer

	AudioCodecOpus AudioConfigType = "opus"
)

type AudioConfig struct {
	SampleRate   uint32
	FrameSamples int
	Channels     uint16
	BufferSize   int // channel buffer size in frames
	Type         AudioConfigType
	SDPFmtpLine  string
	PayloadType  uint8
	MimeType     string
}

// NewOpusConfig creates AudioConfig for Opus codec
func NewOpusConfig() AudioConfig {
	log.Debug().Msg("Using Opus config (48kHz, high quality)")
	return AudioConfig{
		SampleRate:   SampleRateOpus,
		FrameSamples: FrameSamplesOpus,
		Channels:     ChannelsOpus,
		BufferSize:   300,
		Type:         AudioCodecOpus,
		SDPFmtpLine:  "minptime=10;useinbandfec=1;maxaveragebitrate=64000;stereo=0;sprop-stereo=0;cbr=0",
		PayloadType:  111,
		MimeType:     webrtc.MimeTypeOpus,
	}
}
