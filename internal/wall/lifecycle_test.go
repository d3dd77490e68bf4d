package wall

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/parishnet/videowall/internal/core"
)

func TestCallLifecycleAcquireReleaseCycle(t *testing.T) {
	var created []*fakeCall
	lc := NewCallLifecycle(func() (core.Call, error) {
		c := newFakeCall()
		created = append(created, c)
		return c, nil
	})

	ctx := context.Background()
	first, err := lc.Acquire(ctx)
	require.NoError(t, err)
	require.Len(t, created, 1)

	lc.Release(ctx)
	require.True(t, created[0].destroyed)

	second, err := lc.Acquire(ctx)
	require.NoError(t, err)
	require.Len(t, created, 2)
	require.NotSame(t, first, second)
}

func TestCallLifecycleAwaitsPendingDestroy(t *testing.T) {
	gate := make(chan struct{})
	var created []*fakeCall
	lc := NewCallLifecycle(func() (core.Call, error) {
		c := newFakeCall()
		if len(created) == 0 {
			c.destroyGate = gate
		}
		created = append(created, c)
		return c, nil
	})

	ctx := context.Background()
	_, err := lc.Acquire(ctx)
	require.NoError(t, err)

	releaseDone := make(chan struct{})
	go func() {
		lc.Release(ctx)
		close(releaseDone)
	}()

	acquired := make(chan error, 1)
	go func() {
		_, aerr := lc.Acquire(ctx)
		acquired <- aerr
	}()

	// The destroy is still blocked; the second acquire must not complete.
	select {
	case <-acquired:
		t.Fatal("acquire completed while a destroy was still in flight")
	case <-time.After(50 * time.Millisecond):
	}

	close(gate)
	<-releaseDone
	select {
	case aerr := <-acquired:
		require.NoError(t, aerr)
	case <-time.After(2 * time.Second):
		t.Fatal("acquire never completed after destroy finished")
	}
	require.Len(t, created, 2)
	require.True(t, created[0].destroyed)
}

func TestCallLifecycleAcquireHonorsContext(t *testing.T) {
	gate := make(chan struct{})
	defer close(gate)
	var first *fakeCall
	lc := NewCallLifecycle(func() (core.Call, error) {
		c := newFakeCall()
		if first == nil {
			first = c
			c.destroyGate = gate
		}
		return c, nil
	})

	_, err := lc.Acquire(context.Background())
	require.NoError(t, err)
	go lc.Release(context.Background())

	// Wait until the destroy is registered as in flight.
	require.Eventually(t, func() bool {
		lc.mu.Lock()
		defer lc.mu.Unlock()
		return lc.destroying != nil
	}, time.Second, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	_, err = lc.Acquire(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
