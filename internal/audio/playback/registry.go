package playback

import "sync"

// Registry tracks every playback sink currently alive in the process, so the
// mute coordinator can silence all of them in one sweep. Register on create,
// Unregister on close.
type Registry struct {
	mu    sync.Mutex
	sinks []Sink
}

func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) Register(s Sink) {
	if s == nil {
		return
	}
	r.mu.Lock()
	r.sinks = append(r.sinks, s)
	r.mu.Unlock()
}

func (r *Registry) Unregister(s Sink) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.sinks {
		if existing == s {
			r.sinks = append(r.sinks[:i], r.sinks[i+1:]...)
			return
		}
	}
}

// Snapshot returns the sinks registered at this moment. Sinks registered
// afterwards are not part of the returned slice.
func (r *Registry) Snapshot() []Sink {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Sink, len(r.sinks))
	copy(out, r.sinks)
	return out
}
