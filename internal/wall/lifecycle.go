package wall

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/parishnet/videowall/internal/core"
)

const leaveTimeout = 5 * time.Second

var ErrCallInUse = errors.New("call handle already in use")

// CallLifecycle owns the one process-wide call handle. Only one
// "initialize call" may be in flight: a pending destroy from a previous
// lifecycle is awaited before a new handle is created, so two live
// handles never race for the same capture device or room slot.
type CallLifecycle struct {
	factory core.CallFactory

	mu         sync.Mutex
	current    core.Call
	destroying chan struct{} // non-nil while a destroy is in flight
}

func NewCallLifecycle(factory core.CallFactory) *CallLifecycle {
	return &CallLifecycle{factory: factory}
}

// Acquire creates a fresh call handle, first awaiting any pending destroy
// and destroying any leftover handle from a previous lifecycle.
func (l *CallLifecycle) Acquire(ctx context.Context) (core.Call, error) {
	for {
		l.mu.Lock()
		if d := l.destroying; d != nil {
			l.mu.Unlock()
			log.Debug().Str("module", "wall.lifecycle").Msg("waiting for previous call teardown")
			select {
			case <-d:
				continue
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
		if leftover := l.current; leftover != nil {
			l.beginDestroyLocked()
			l.mu.Unlock()
			log.Warn().Str("module", "wall.lifecycle").Msg("destroying leftover call handle")
			l.finishDestroy(ctx, leftover)
			continue
		}
		call, err := l.factory()
		if err != nil {
			l.mu.Unlock()
			return nil, err
		}
		l.current = call
		l.mu.Unlock()
		return call, nil
	}
}

// Release destroys the current handle. It returns once the destroy has
// completed; concurrent Acquire calls wait for it.
func (l *CallLifecycle) Release(ctx context.Context) {
	l.mu.Lock()
	call := l.current
	if call == nil || l.destroying != nil {
		l.mu.Unlock()
		return
	}
	l.beginDestroyLocked()
	l.mu.Unlock()
	l.finishDestroy(ctx, call)
}

func (l *CallLifecycle) beginDestroyLocked() {
	l.current = nil
	l.destroying = make(chan struct{})
}

func (l *CallLifecycle) finishDestroy(ctx context.Context, call core.Call) {
	if err := call.Destroy(ctx); err != nil {
		log.Error().Err(err).Str("module", "wall.lifecycle").Msg("call destroy failed")
	}
	l.mu.Lock()
	close(l.destroying)
	l.destroying = nil
	l.mu.Unlock()
}
