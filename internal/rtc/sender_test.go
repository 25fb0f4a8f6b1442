package rtc

import (
	"testing"

	"github.com/pion/webrtc/v4"
)

func newAudioTrack(t *testing.T, id string) *webrtc.TrackLocalStaticSample {
	t.Helper()
	track, err := webrtc.NewTrackLocalStaticSample(
		webrtc.RTPCodecCapability{MimeType: webrtc.MimeTypeOpus, ClockRate: 48000, Channels: 1},
		id,
		"test-stream",
	)
	if err != nil {
		t.Fatalf("failed to create track: %v", err)
	}
	return track
}

func TestAudioSenderNilConnection(t *testing.T) {
	if sender := AudioSender(nil); sender != nil {
		t.Fatalf("expected nil sender for nil connection, got %v", sender)
	}
}

func TestAudioSenderNoTracks(t *testing.T) {
	pc, err := webrtc.NewPeerConnection(webrtc.Configuration{})
	if err != nil {
		t.Fatalf("failed to create peer connection: %v", err)
	}
	defer pc.Close()

	if sender := AudioSender(pc); sender != nil {
		t.Fatalf("expected nil sender for connection without tracks, got %v", sender)
	}
}

func TestAudioSenderFindsOutboundAudio(t *testing.T) {
	pc, err := webrtc.NewPeerConnection(webrtc.Configuration{})
	if err != nil {
		t.Fatalf("failed to create peer connection: %v", err)
	}
	defer pc.Close()

	track := newAudioTrack(t, "mic")
	if _, err := pc.AddTrack(track); err != nil {
		t.Fatalf("failed to add track: %v", err)
	}

	sender := AudioSender(pc)
	if sender == nil {
		t.Fatal("expected sender for connection with audio track")
	}
	if sender.Track().ID() != "mic" {
		t.Fatalf("wrong track: got %q, want %q", sender.Track().ID(), "mic")
	}
}
