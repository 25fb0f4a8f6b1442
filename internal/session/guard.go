package session

import "sync/atomic"

// initBlocked gates session initialization process-wide. The mute
// coordinator sets it while voice is disabled; Connect and any other
// initialization path read it.
var initBlocked atomic.Bool

func SetInitBlocked(blocked bool) {
	initBlocked.Store(blocked)
}

func InitBlocked() bool {
	return initBlocked.Load()
}
