// Package mic owns microphone access for the whole process: every capture
// stream is opened through a Gate, so disabling voice can deny new streams
// the same way for every caller and restore the original opener later.
package mic

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog/log"
)

// ErrAccessDenied is returned by a denied Gate for every open attempt.
var ErrAccessDenied = errors.New("microphone access denied: voice is disabled")

// Opener acquires a live microphone stream. Implementations are expected to
// prompt for / check device permission and fail without retrying.
type Opener func(ctx context.Context) (*Stream, error)

// Stream is one live microphone capture. It is owned by exactly one holder at
// a time; Stop releases the device and is idempotent.
type Stream struct {
	track *webrtc.TrackLocalStaticSample
	stop  func()
	live  atomic.Bool
}

// NewStream wraps a capture device. stop releases the underlying device and
// may be nil.
func NewStream(track *webrtc.TrackLocalStaticSample, stop func()) *Stream {
	s := &Stream{track: track, stop: stop}
	s.live.Store(true)
	return s
}

// Track returns the local track fed by this capture.
func (s *Stream) Track() *webrtc.TrackLocalStaticSample {
	return s.track
}

func (s *Stream) Live() bool {
	return s.live.Load()
}

// Stop releases the capture device. Safe to call more than once.
func (s *Stream) Stop() {
	if !s.live.CompareAndSwap(true, false) {
		return
	}
	if s.stop != nil {
		s.stop()
	}
	log.Debug().Msg("Microphone stream stopped")
}

// Gate guards microphone acquisition. Deny swaps the opener for one that
// always fails, keeping the original for Restore.
type Gate struct {
	mu     sync.Mutex
	opener Opener
	saved  Opener // non-nil only while denied
}

func NewGate(opener Opener) *Gate {
	return &Gate{opener: opener}
}

// Open acquires a microphone stream through the current opener.
func (g *Gate) Open(ctx context.Context) (*Stream, error) {
	g.mu.Lock()
	opener := g.opener
	g.mu.Unlock()

	if opener == nil {
		return nil, errors.New("no microphone opener configured")
	}
	return opener(ctx)
}

// Opener returns the currently installed opener. Used by tests to verify
// Restore puts the exact original function back.
func (g *Gate) Opener() Opener {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.opener
}

// Deny makes every subsequent Open fail with ErrAccessDenied. The original
// opener is saved once: calling Deny twice in a row keeps the first saved
// function, so a later Restore still recovers it.
func (g *Gate) Deny() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.saved != nil {
		return
	}
	g.saved = g.opener
	g.opener = func(context.Context) (*Stream, error) {
		return nil, ErrAccessDenied
	}
	log.Debug().Msg("Microphone gate denied")
}

// Restore reinstalls the opener saved by Deny. No-op when nothing was saved.
func (g *Gate) Restore() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.saved == nil {
		return
	}
	g.opener = g.saved
	g.saved = nil
	log.Debug().Msg("Microphone gate restored")
}
