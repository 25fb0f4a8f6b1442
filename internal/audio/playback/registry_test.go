package playback

import "testing"

type fakeSink struct {
	muted  bool
	paused bool
}

func (f *fakeSink) SetMuted(m bool) { f.muted = m }
func (f *fakeSink) Pause()          { f.paused = true }
func (f *fakeSink) Resume()         { f.paused = false }

func TestSnapshotExcludesLaterRegistrations(t *testing.T) {
	r := NewRegistry()
	a := &fakeSink{}
	r.Register(a)

	snap := r.Snapshot()

	b := &fakeSink{}
	r.Register(b)

	if len(snap) != 1 {
		t.Fatalf("snapshot size = %d, want 1", len(snap))
	}
	for _, s := range snap {
		s.SetMuted(true)
		s.Pause()
	}

	if !a.muted || !a.paused {
		t.Error("sink in snapshot was not silenced")
	}
	if b.muted || b.paused {
		t.Error("sink registered after snapshot was touched")
	}
}

func TestUnregister(t *testing.T) {
	r := NewRegistry()
	a := &fakeSink{}
	b := &fakeSink{}
	r.Register(a)
	r.Register(b)
	r.Unregister(a)

	snap := r.Snapshot()
	if len(snap) != 1 || snap[0] != Sink(b) {
		t.Errorf("snapshot after unregister = %v", snap)
	}
}

func TestRegisterNilIsIgnored(t *testing.T) {
	r := NewRegistry()
	r.Register(nil)
	if got := len(r.Snapshot()); got != 0 {
		t.Errorf("snapshot size = %d, want 0", got)
	}
}
