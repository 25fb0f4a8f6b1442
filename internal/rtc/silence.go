package rtc

import (
	"time"

	"github.com/pion/webrtc/v4"
	"github.com/pion/webrtc/v4/pkg/media"
	"github.com/rs/zerolog/log"

	"voice-client/internal/audio/config"
)

// opusSilence is the canonical opus packet decoding to one frame of
// zero-amplitude audio.
var opusSilence = []byte{0xF8, 0xFF, 0xFE}

// SilentTrack is a synthetic local audio track that keeps an RTP sender
// active without transmitting real audio. It lives for the rest of the
// process once started.
type SilentTrack struct {
	track *webrtc.TrackLocalStaticSample
	quit  chan struct{}
}

// NewSilentTrack creates the track and starts feeding it silence frames at
// the standard frame interval.
func NewSilentTrack() (*SilentTrack, error) {
	track, err := webrtc.NewTrackLocalStaticSample(
		webrtc.RTPCodecCapability{
			MimeType:  webrtc.MimeTypeOpus,
			Channels:  config.ChannelsOpus,
			ClockRate: config.SampleRateOpus,
		},
		"audio",
		"silence",
	)
	if err != nil {
		return nil, err
	}

	st := &SilentTrack{track: track, quit: make(chan struct{})}
	go st.feed()

	log.Debug().Msg("Silent audio track created")
	return st, nil
}

func (st *SilentTrack) Track() *webrtc.TrackLocalStaticSample {
	return st.track
}

// Stop ends the silence feeder. Only used by tests; in the application the
// track is kept for the whole process lifetime.
func (st *SilentTrack) Stop() {
	close(st.quit)
}

func (st *SilentTrack) feed() {
	frameDuration := config.FrameDuration * time.Millisecond
	ticker := time.NewTicker(frameDuration)
	defer ticker.Stop()

	for {
		select {
		case <-st.quit:
			return
		case <-ticker.C:
			// WriteSample is a no-op until the track is bound to a sender.
			if err := st.track.WriteSample(media.Sample{Data: opusSilence, Duration: frameDuration}); err != nil {
				log.Debug().Err(err).Msg("Failed to write silence frame")
			}
		}
	}
}
