package rtc

import (
	"sync"

	"github.com/pion/webrtc/v4"
)

var (
	activeMu   sync.Mutex
	activeCall *Call
)

// SetActiveCall publishes the current call so other components can resolve
// its peer connection. Pass nil when the call ends.
func SetActiveCall(c *Call) {
	activeMu.Lock()
	activeCall = c
	activeMu.Unlock()
}

// ActiveCall returns the currently published call, or nil.
func ActiveCall() *Call {
	activeMu.Lock()
	defer activeMu.Unlock()
	return activeCall
}

// ActivePeerConnection resolves the live peer connection through the
// published call. Returns nil when no call is active. Callers must
// re-resolve on every use, the connection is owned by the call, not by them.
func ActivePeerConnection() *webrtc.PeerConnection {
	c := ActiveCall()
	if c == nil {
		return nil
	}
	return c.PeerConnection()
}
