package rtc

import (
	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog/log"
)

// AudioSender returns the peer connection's outbound audio sender, or nil
// when the connection has none (logged as a warning, callers skip the step).
func AudioSender(pc *webrtc.PeerConnection) *webrtc.RTPSender {
	if pc == nil {
		return nil
	}
	for _, sender := range pc.GetSenders() {
		track := sender.Track()
		if track != nil && track.Kind() == webrtc.RTPCodecTypeAudio {
			return sender
		}
	}
	log.Warn().Msg("Peer connection has no outbound audio sender")
	return nil
}
