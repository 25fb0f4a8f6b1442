package session

import "sync"

// Handle is the minimal surface components resolve the active session
// through. Optional capabilities (muting) are discovered by type assertion.
type Handle interface {
	Send(Event) error
}

var (
	activeMu sync.Mutex
	active   Handle
)

// SetActive publishes the current session handle. Pass nil when the session
// ends. The registry never owns the session; whoever set it keeps
// responsibility for closing it.
func SetActive(h Handle) {
	activeMu.Lock()
	active = h
	activeMu.Unlock()
}

// Active returns the currently published session handle, or nil.
func Active() Handle {
	activeMu.Lock()
	defer activeMu.Unlock()
	return active
}
