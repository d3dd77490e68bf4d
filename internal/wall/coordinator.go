package wall

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/parishnet/videowall/internal/core"
)

// DefaultReconcileInterval is the subscription backstop: a participant
// whose subscription event was dropped waits at most one period for
// video.
const DefaultReconcileInterval = 5 * time.Second

// TileView is the UI-facing projection of one tile.
type TileView struct {
	ID         core.ParticipantID `json:"id"`
	Name       string             `json:"name"`
	Status     string             `json:"status"`
	Connection string             `json:"connection"`
	Quality    int                `json:"quality"`
}

// Snapshot is the reactive view the UI renders: the current page of
// tiles plus paging info, refreshed on every registry recompute.
type Snapshot struct {
	Tiles        []TileView `json:"tiles"`
	PageIndex    int        `json:"pageIndex"`
	TotalPages   int        `json:"totalPages"`
	VisibleCount int        `json:"visibleCount"`
}

type CoordinatorOptions struct {
	RoomURL    string
	Credential string

	PageSize          int
	ReconcileInterval time.Duration
	LoadingDeadline   time.Duration

	Surfaces core.SurfaceFactory
}

// Coordinator is the wall-side session coordinator. All of its state is
// owned by the single goroutine inside Run; external inputs (timer
// callbacks, playback acknowledgments, UI actions) re-enter the loop
// through a command channel and are dropped once the coordinator is torn
// down, so a result resolving after teardown never resurrects state.
type Coordinator struct {
	call core.Call
	opts CoordinatorOptions

	binder  *Binder
	pager   *Pager
	visible []core.Participant

	cmds      chan func(ctx context.Context)
	done      chan struct{}
	closeOnce sync.Once

	snapMu sync.RWMutex
	snap   Snapshot
}

func NewCoordinator(call core.Call, opts CoordinatorOptions) *Coordinator {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.ReconcileInterval <= 0 {
		opts.ReconcileInterval = DefaultReconcileInterval
	}
	if opts.LoadingDeadline <= 0 {
		opts.LoadingDeadline = DefaultLoadingDeadline
	}
	if opts.Surfaces == nil {
		opts.Surfaces = func(core.ParticipantID) core.Surface { return nopSurface{} }
	}
	c := &Coordinator{
		call:  call,
		opts:  opts,
		pager: NewPager(opts.PageSize),
		cmds:  make(chan func(ctx context.Context), 64),
		done:  make(chan struct{}),
		snap:  Snapshot{TotalPages: 1},
	}
	c.binder = NewBinder(opts.Surfaces, opts.LoadingDeadline, BinderHooks{
		OnDeadline: c.onDeadline,
		Play:       c.play,
	})
	return c
}

// Run joins the room and drives the event loop until the context ends,
// the provider closes the event stream, or a terminal error arrives.
// Teardown releases every tile's bound stream before the call handle is
// left.
func (c *Coordinator) Run(ctx context.Context) error {
	if err := c.call.Join(ctx, c.opts.RoomURL, c.opts.Credential); err != nil {
		c.close()
		return err
	}
	log.Info().Str("module", "wall.coordinator").Str("room", c.opts.RoomURL).Msg("joined room")

	ticker := time.NewTicker(c.opts.ReconcileInterval)
	defer ticker.Stop()

	c.refresh(ctx)

	for {
		select {
		case <-ctx.Done():
			c.teardown()
			return ctx.Err()
		case ev, ok := <-c.call.Events():
			if !ok {
				c.teardown()
				return nil
			}
			if err := c.handleEvent(ctx, ev); err != nil {
				c.teardown()
				return err
			}
		case <-ticker.C:
			// Backstop reconciliation, independent of event delivery.
			c.refresh(ctx)
		case cmd := <-c.cmds:
			cmd(ctx)
		}
	}
}

func (c *Coordinator) handleEvent(ctx context.Context, ev core.Event) error {
	switch ev.Type {
	case core.EventError:
		if ev.Fatal {
			log.Error().Err(ev.Err).Str("module", "wall.coordinator").Msg("terminal provider error")
			return ev.Err
		}
		log.Warn().Err(ev.Err).Str("module", "wall.coordinator").Msg("provider error")
		return nil

	case core.EventTrackStarted:
		// Recompute first so a track racing its participant-joined event
		// still finds a tile to land on.
		c.refresh(ctx)
		if ev.Track != nil {
			c.binder.Dispatch(ev.Participant, TileEvent{Kind: EvTrackAvailable, Track: ev.Track})
			c.publish()
		}
		return nil

	case core.EventTrackStopped:
		c.binder.Dispatch(ev.Participant, TileEvent{Kind: EvTrackStopped})
		c.refresh(ctx)
		return nil

	default:
		// joined / participant-* / network-quality: provider truth moved,
		// re-derive everything from it.
		c.refresh(ctx)
		return nil
	}
}

// refresh is the full recompute: visible set from provider truth,
// subscription reconciliation, tile sync, pagination clamp, snapshot.
// It is idempotent; the ticker and every event funnel through it.
func (c *Coordinator) refresh(ctx context.Context) {
	visible := ComputeVisible(c.call.Participants())
	applySubscriptions(ctx, c.call, PlanSubscriptions(visible))
	c.binder.Sync(visible)
	c.visible = visible
	c.publish()
}

func (c *Coordinator) publish() {
	page := c.pager.Slice(c.visible)
	tiles := make([]TileView, 0, len(page.Participants))
	for _, p := range page.Participants {
		t, ok := c.binder.Get(p.ID)
		if !ok {
			continue
		}
		tiles = append(tiles, TileView{
			ID:         t.ID,
			Name:       t.Name,
			Status:     t.State.String(),
			Connection: t.State.ConnectionStatus(),
			Quality:    t.Quality,
		})
	}
	snap := Snapshot{
		Tiles:        tiles,
		PageIndex:    page.Index,
		TotalPages:   page.TotalPages,
		VisibleCount: len(c.visible),
	}
	c.snapMu.Lock()
	c.snap = snap
	c.snapMu.Unlock()
}

// Snapshot returns the latest published view. Safe from any goroutine.
func (c *Coordinator) Snapshot() Snapshot {
	c.snapMu.RLock()
	defer c.snapMu.RUnlock()
	return c.snap
}

// NextPage advances the wall one page; no-op at the last page.
func (c *Coordinator) NextPage() {
	c.post(func(context.Context) {
		c.pager.Next(len(c.visible))
		c.publish()
	})
}

// PrevPage goes back one page; no-op at page zero.
func (c *Coordinator) PrevPage() {
	c.post(func(context.Context) {
		c.pager.Prev()
		c.publish()
	})
}

// ResumePlayback is the manual-resume action for an autoplay-blocked
// tile.
func (c *Coordinator) ResumePlayback(id core.ParticipantID) {
	c.post(func(context.Context) {
		c.binder.Dispatch(id, TileEvent{Kind: EvResumeRequested})
		c.publish()
	})
}

// post re-enters the event loop. Commands posted after teardown are
// dropped: the done channel doubles as the liveness flag guarding every
// post-await mutation.
func (c *Coordinator) post(cmd func(ctx context.Context)) {
	select {
	case <-c.done:
	case c.cmds <- cmd:
	}
}

func (c *Coordinator) onDeadline(id core.ParticipantID) {
	c.post(func(context.Context) {
		c.binder.Dispatch(id, TileEvent{Kind: EvDeadlineElapsed})
		c.publish()
	})
}

// play runs the asynchronous playback attempt off the loop and posts the
// result back. A rejection by platform policy is a recoverable UI state,
// not an error.
func (c *Coordinator) play(id core.ParticipantID, s core.Surface) {
	go func() {
		playCtx, cancel := context.WithTimeout(context.Background(), leaveTimeout)
		err := s.Play(playCtx)
		cancel()
		c.post(func(context.Context) {
			switch {
			case err == nil:
				c.binder.Dispatch(id, TileEvent{Kind: EvPlaybackStarted})
			case errors.Is(err, core.ErrPlaybackRejected):
				c.binder.Dispatch(id, TileEvent{Kind: EvPlaybackRejected})
			default:
				log.Warn().Err(err).
					Str("module", "wall.coordinator").
					Str("participant", string(id)).
					Msg("playback attempt failed")
				c.binder.Dispatch(id, TileEvent{Kind: EvPlaybackRejected})
			}
			c.publish()
		})
	}()
}

func (c *Coordinator) teardown() {
	c.close()
	c.binder.TeardownAll()
	c.visible = nil
	c.publish()
	ctx, cancel := context.WithTimeout(context.Background(), leaveTimeout)
	defer cancel()
	if err := c.call.Leave(ctx); err != nil {
		log.Warn().Err(err).Str("module", "wall.coordinator").Msg("leave failed")
	}
	log.Info().Str("module", "wall.coordinator").Msg("coordinator torn down")
}

func (c *Coordinator) close() {
	c.closeOnce.Do(func() { close(c.done) })
}

type nopSurface struct{}

func (nopSurface) Attach(core.VideoTrack)     {}
func (nopSurface) Detach()                    {}
func (nopSurface) Play(context.Context) error { return nil }
