package rtc

import (
	"testing"

	"github.com/pion/webrtc/v4"
)

func TestSilentTrackReplacesOutboundTrack(t *testing.T) {
	pc, err := webrtc.NewPeerConnection(webrtc.Configuration{})
	if err != nil {
		t.Fatalf("failed to create peer connection: %v", err)
	}
	defer pc.Close()

	real := newAudioTrack(t, "mic")
	if _, err := pc.AddTrack(real); err != nil {
		t.Fatalf("failed to add track: %v", err)
	}

	st, err := NewSilentTrack()
	if err != nil {
		t.Fatalf("failed to create silent track: %v", err)
	}
	defer st.Stop()

	sender := AudioSender(pc)
	if sender == nil {
		t.Fatal("expected audio sender")
	}

	if err := sender.ReplaceTrack(st.Track()); err != nil {
		t.Fatalf("failed to replace with silent track: %v", err)
	}
	if sender.Track() != st.Track() {
		t.Fatal("sender still references the old track")
	}

	// swapping back restores the real track on the same sender
	if err := sender.ReplaceTrack(real); err != nil {
		t.Fatalf("failed to restore real track: %v", err)
	}
	if sender.Track().ID() != "mic" {
		t.Fatalf("wrong track after restore: got %q", sender.Track().ID())
	}
}

func TestSilentTrackStopIsSafe(t *testing.T) {
	st, err := NewSilentTrack()
	if err != nil {
		t.Fatalf("failed to create silent track: %v", err)
	}
	st.Stop()
}
