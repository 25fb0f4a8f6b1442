package mic

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/pion/webrtc/v4"
)

func newTestTrack(t *testing.T) *webrtc.TrackLocalStaticSample {
	t.Helper()
	track, err := webrtc.NewTrackLocalStaticSample(
		webrtc.RTPCodecCapability{MimeType: webrtc.MimeTypeOpus, Channels: 1, ClockRate: 48000},
		"audio", "microphone",
	)
	if err != nil {
		t.Fatalf("NewTrackLocalStaticSample: %v", err)
	}
	return track
}

func TestStreamStopIsIdempotent(t *testing.T) {
	stops := 0
	s := NewStream(newTestTrack(t), func() { stops++ })

	if !s.Live() {
		t.Fatal("new stream should be live")
	}
	s.Stop()
	s.Stop()
	s.Stop()

	if stops != 1 {
		t.Errorf("stop callback ran %d times, want 1", stops)
	}
	if s.Live() {
		t.Error("stream still live after Stop")
	}
}

func TestGateDenyAndRestore(t *testing.T) {
	opened := 0
	original := Opener(func(ctx context.Context) (*Stream, error) {
		opened++
		return NewStream(newTestTrack(t), nil), nil
	})
	g := NewGate(original)

	if _, err := g.Open(context.Background()); err != nil {
		t.Fatalf("Open before Deny: %v", err)
	}

	g.Deny()
	if _, err := g.Open(context.Background()); !errors.Is(err, ErrAccessDenied) {
		t.Errorf("Open while denied: err = %v, want ErrAccessDenied", err)
	}
	if opened != 1 {
		t.Errorf("original opener ran %d times, want 1", opened)
	}

	g.Restore()
	if got := reflect.ValueOf(g.Opener()).Pointer(); got != reflect.ValueOf(original).Pointer() {
		t.Error("Restore did not reinstall the original opener function")
	}
	if _, err := g.Open(context.Background()); err != nil {
		t.Errorf("Open after Restore: %v", err)
	}
}

func TestGateDoubleDenyKeepsFirstSavedOpener(t *testing.T) {
	original := Opener(func(ctx context.Context) (*Stream, error) {
		return NewStream(newTestTrack(t), nil), nil
	})
	g := NewGate(original)

	g.Deny()
	g.Deny() // must not overwrite the saved opener with the denying one
	g.Restore()

	if got := reflect.ValueOf(g.Opener()).Pointer(); got != reflect.ValueOf(original).Pointer() {
		t.Error("double Deny lost the original opener")
	}
}

func TestGateRestoreWithoutDenyIsNoop(t *testing.T) {
	original := Opener(func(ctx context.Context) (*Stream, error) {
		return nil, errors.New("unused")
	})
	g := NewGate(original)
	g.Restore()

	if got := reflect.ValueOf(g.Opener()).Pointer(); got != reflect.ValueOf(original).Pointer() {
		t.Error("Restore without Deny changed the opener")
	}
}
