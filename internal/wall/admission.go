// Package wall implements the session coordinator: deriving canonical
// membership from provider events, enforcing low-layer subscriptions,
// binding tracks to tiles and paginating the result for display.
package wall

import (
	"errors"
	"fmt"
)

// ErrCapacityExceeded is surfaced to the would-be participant as a
// "session full" join failure. It is never retried automatically.
var ErrCapacityExceeded = errors.New("service has reached maximum capacity")

// TryAdmit decides whether one more participant may join a session that
// currently has active contributors against a capacity limit. It is a
// pure decision: recording the join afterwards is the caller's job, and
// two near-simultaneous joins racing the same check can both pass. True
// mutual exclusion belongs to the backing store's write path.
func TryAdmit(active, capacity int) error {
	if capacity < 1 {
		return fmt.Errorf("capacity must be at least 1, got %d", capacity)
	}
	if active >= capacity {
		return ErrCapacityExceeded
	}
	return nil
}
