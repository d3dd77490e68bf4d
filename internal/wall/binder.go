package wall

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/parishnet/videowall/internal/core"
)

// DefaultLoadingDeadline bounds how long a tile may sit in Loading with
// no track before it is shown as disconnected.
const DefaultLoadingDeadline = 10 * time.Second

// BinderHooks are the binder's escape hatches back to its owner's event
// loop. OnDeadline must re-enter the loop (never call Dispatch directly
// from the timer goroutine); Play runs the asynchronous playback attempt
// and reports the result as EvPlaybackStarted/EvPlaybackRejected.
type BinderHooks struct {
	OnDeadline func(id core.ParticipantID)
	Play       func(id core.ParticipantID, s core.Surface)
}

type boundTile struct {
	tile    Tile
	surface core.Surface
	timer   *time.Timer
}

// Binder owns one Tile per visible participant, keyed by identity. It
// runs the pure tile transitions and executes their effects against the
// participant's playback surface. All methods must be called from the
// owning coordinator's event loop.
type Binder struct {
	surfaces core.SurfaceFactory
	deadline time.Duration
	hooks    BinderHooks
	tiles    map[core.ParticipantID]*boundTile
}

func NewBinder(surfaces core.SurfaceFactory, deadline time.Duration, hooks BinderHooks) *Binder {
	if deadline <= 0 {
		deadline = DefaultLoadingDeadline
	}
	return &Binder{
		surfaces: surfaces,
		deadline: deadline,
		hooks:    hooks,
		tiles:    make(map[core.ParticipantID]*boundTile),
	}
}

// Sync reconciles the tile set against a fresh visible list: tiles are
// created for newly visible participants, torn down for gone ones, and
// healed from each participant snapshot so a track that raced its
// participant-joined event still gets bound.
func (b *Binder) Sync(visible []core.Participant) {
	seen := make(map[core.ParticipantID]bool, len(visible))
	for _, p := range visible {
		seen[p.ID] = true
		bt, ok := b.tiles[p.ID]
		if !ok {
			bt = b.create(p)
		}
		bt.tile.Name = p.Name
		bt.tile.Quality = p.Quality
		b.heal(bt, p)
	}
	for id := range b.tiles {
		if !seen[id] {
			b.Teardown(id)
		}
	}
}

func (b *Binder) create(p core.Participant) *boundTile {
	bt := &boundTile{
		tile:    Tile{ID: p.ID, Name: p.Name, State: TileLoading},
		surface: b.surfaces(p.ID),
	}
	b.tiles[p.ID] = bt
	b.armDeadline(bt)
	log.Debug().Str("module", "wall.binder").Str("participant", string(p.ID)).Msg("tile created")
	return bt
}

// heal derives tile events from the participant snapshot instead of
// trusting that every track event was delivered.
func (b *Binder) heal(bt *boundTile, p core.Participant) {
	switch {
	case p.Track != nil && !p.Track.Ended() && p.TrackState == core.TrackSendable:
		b.dispatch(bt, TileEvent{Kind: EvTrackAvailable, Track: p.Track})
	case p.Track != nil && (p.TrackState == core.TrackOff || p.TrackState == core.TrackBlocked):
		b.dispatch(bt, TileEvent{Kind: EvTrackMuted})
	case p.Track == nil && bt.tile.Stream != nil:
		// Missed track-stopped: the provider no longer knows this track.
		b.dispatch(bt, TileEvent{Kind: EvTrackStopped})
	}
}

// Dispatch feeds one event to a participant's tile. Unknown participants
// are ignored; the registry recompute decides who has a tile, not the
// event stream.
func (b *Binder) Dispatch(id core.ParticipantID, ev TileEvent) {
	bt, ok := b.tiles[id]
	if !ok {
		return
	}
	b.dispatch(bt, ev)
}

func (b *Binder) dispatch(bt *boundTile, ev TileEvent) {
	next, fx := tileApply(bt.tile, ev)
	bt.tile = next
	for _, f := range fx {
		switch f.Kind {
		case FxRelease:
			f.Track.Stop()
		case FxDetach:
			bt.surface.Detach()
		case FxAttach:
			bt.surface.Attach(f.Track)
		case FxPlay:
			if b.hooks.Play != nil {
				b.hooks.Play(bt.tile.ID, bt.surface)
			}
		case FxArmDeadline:
			b.armDeadline(bt)
		}
	}
}

func (b *Binder) armDeadline(bt *boundTile) {
	if bt.timer != nil {
		bt.timer.Stop()
	}
	id := bt.tile.ID
	if b.hooks.OnDeadline == nil {
		return
	}
	bt.timer = time.AfterFunc(b.deadline, func() { b.hooks.OnDeadline(id) })
}

// Teardown releases one tile: stream stopped, surface detached, timer
// stopped. Safe to call for unknown ids.
func (b *Binder) Teardown(id core.ParticipantID) {
	bt, ok := b.tiles[id]
	if !ok {
		return
	}
	b.dispatch(bt, TileEvent{Kind: EvParticipantLeft})
	if bt.timer != nil {
		bt.timer.Stop()
	}
	delete(b.tiles, id)
	log.Debug().Str("module", "wall.binder").Str("participant", string(id)).Msg("tile torn down")
}

// TeardownAll is the cancellation path: leaving the session releases
// every bound stream before the call handle goes away.
func (b *Binder) TeardownAll() {
	for id := range b.tiles {
		b.Teardown(id)
	}
}

func (b *Binder) Get(id core.ParticipantID) (Tile, bool) {
	bt, ok := b.tiles[id]
	if !ok {
		return Tile{}, false
	}
	return bt.tile, true
}

func (b *Binder) Len() int { return len(b.tiles) }
