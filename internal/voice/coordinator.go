// Package voice coordinates the "voice disabled" state across the microphone
// gate, the active peer connection, the active realtime session and the
// registered playback sinks. All shared state lives on the Coordinator;
// transitions are serialized so concurrent toggles queue instead of
// interleaving.
package voice

import (
	"context"
	"sync"

	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog/log"

	"voice-client/internal/audio/mic"
	"voice-client/internal/audio/playback"
	"voice-client/internal/rtc"
	"voice-client/internal/session"
)

// PeerResolver returns the current peer connection, or nil. The coordinator
// re-resolves on every transition and never owns the connection.
type PeerResolver func() *webrtc.PeerConnection

// SessionResolver returns the current realtime session handle, or nil.
type SessionResolver func() session.Handle

// Muter is the optional mute capability of a session handle.
type Muter interface {
	Mute(muted bool) error
}

// Callbacks are the recorder hooks invoked during transitions. StopRecording
// is required for a useful coordinator, Interrupt and
// FlushPendingSessionInfo are optional.
type Callbacks struct {
	StopRecording           func()
	Interrupt               func()
	FlushPendingSessionInfo func(ctx context.Context) error
}

// Coordinator owns the voice-disabled flag and the resources that change
// with it: the held microphone stream and the lazily-created silent track.
type Coordinator struct {
	mu       sync.Mutex
	disabled bool

	gate  *mic.Gate
	peer  PeerResolver
	sess  SessionResolver
	sinks *playback.Registry
	cb    Callbacks

	micStream *mic.Stream
	silent    *rtc.SilentTrack
}

func NewCoordinator(gate *mic.Gate, peer PeerResolver, sess SessionResolver, sinks *playback.Registry, cb Callbacks) *Coordinator {
	return &Coordinator{
		gate:  gate,
		peer:  peer,
		sess:  sess,
		sinks: sinks,
		cb:    cb,
	}
}

// Disabled reports the current flag.
func (c *Coordinator) Disabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disabled
}

// AdoptMicStream hands an already-open microphone stream to the coordinator,
// stopping any stream it previously held.
func (c *Coordinator) AdoptMicStream(s *mic.Stream) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.micStream != nil && c.micStream != s {
		c.micStream.Stop()
	}
	c.micStream = s
}

// SetDisabled requests a transition to the given state and returns
// immediately; the side effects run on their own goroutine. Setting the
// current state again is a no-op. Transitions never return errors: every
// external call is individually guarded and failures only get logged.
func (c *Coordinator) SetDisabled(ctx context.Context, disabled bool) {
	go c.apply(ctx, disabled)
}

func (c *Coordinator) apply(ctx context.Context, disabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disabled == disabled {
		return
	}
	if disabled {
		c.disable()
	} else {
		c.enable(ctx)
	}
	c.disabled = disabled
	log.Info().Bool("disabled", disabled).Msg("Voice state changed")
}

func (c *Coordinator) disable() {
	session.SetInitBlocked(true)

	pc := c.peer()
	if pc != nil {
		c.guard("replace outbound track", func() error {
			sender := rtc.AudioSender(pc)
			if sender == nil {
				return nil
			}
			if c.silent == nil {
				st, err := rtc.NewSilentTrack()
				if err != nil {
					return err
				}
				c.silent = st
			}
			return sender.ReplaceTrack(c.silent.Track())
		})
	}
	if c.micStream != nil {
		c.micStream.Stop()
		c.micStream = nil
	}

	c.gate.Deny()

	if c.cb.StopRecording != nil {
		c.guard("stop recording", func() error {
			c.cb.StopRecording()
			return nil
		})
	}
	if c.cb.Interrupt != nil {
		c.guard("interrupt", func() error {
			c.cb.Interrupt()
			return nil
		})
	}

	if h := c.sess(); h != nil {
		c.guard("cancel response", func() error {
			return h.Send(session.CancelResponse())
		})
		c.guard("disable voice detection", func() error {
			return h.Send(session.VoiceDetectionUpdate(false))
		})
		if m, ok := h.(Muter); ok {
			c.guard("mute session", func() error {
				return m.Mute(true)
			})
		}
	}

	for _, sink := range c.sinks.Snapshot() {
		sink := sink
		c.guard("mute playback sink", func() error {
			sink.SetMuted(true)
			sink.Pause()
			return nil
		})
	}
}

func (c *Coordinator) enable(ctx context.Context) {
	c.gate.Restore()
	session.SetInitBlocked(false)

	pc := c.peer()
	if pc != nil {
		c.guard("restore outbound track", func() error {
			if c.micStream == nil || !c.micStream.Live() {
				stream, err := c.gate.Open(ctx)
				if err != nil {
					return err
				}
				c.micStream = stream
			}
			sender := rtc.AudioSender(pc)
			if sender == nil {
				return nil
			}
			return sender.ReplaceTrack(c.micStream.Track())
		})
	}

	// Pending recorder state has to reach the session before any sends.
	if c.cb.FlushPendingSessionInfo != nil {
		c.guard("flush pending session info", func() error {
			return c.cb.FlushPendingSessionInfo(ctx)
		})
	}

	if h := c.sess(); h != nil {
		c.guard("enable voice detection", func() error {
			return h.Send(session.VoiceDetectionUpdate(true))
		})
		if m, ok := h.(Muter); ok {
			c.guard("unmute session", func() error {
				return m.Mute(false)
			})
		}
	}

	for _, sink := range c.sinks.Snapshot() {
		sink := sink
		c.guard("unmute playback sink", func() error {
			sink.SetMuted(false)
			sink.Resume()
			return nil
		})
	}
}

// guard runs one transition step, logging errors and recovering panics so a
// failing step never blocks the ones after it.
func (c *Coordinator) guard(step string, fn func() error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Any("panic", r).Str("step", step).Msg("Transition step panicked")
		}
	}()
	if err := fn(); err != nil {
		log.Warn().Err(err).Str("step", step).Msg("Transition step failed")
	}
}
