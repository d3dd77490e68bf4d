package wall

import "github.com/parishnet/videowall/internal/core"

// TileState is the per-tile playback state machine:
//
//	Loading -> {Playing, AutoplayBlocked, NoVideo} -> Disconnected
//
// Disconnected is terminal for one binding instance; a fresh track start
// re-enters Loading.
type TileState int

const (
	TileLoading TileState = iota
	TilePlaying
	TileAutoplayBlocked
	TileNoVideo
	TileDisconnected
)

func (s TileState) String() string {
	switch s {
	case TileLoading:
		return "loading"
	case TilePlaying:
		return "playing"
	case TileAutoplayBlocked:
		return "autoplay-blocked"
	case TileNoVideo:
		return "no-video"
	case TileDisconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}

// ConnectionStatus collapses playback state into the three-way
// classification the wall header renders.
func (s TileState) ConnectionStatus() string {
	switch s {
	case TileLoading:
		return "connecting"
	case TileDisconnected:
		return "disconnected"
	default:
		return "connected"
	}
}

// Tile is the state-machine value for one visible participant. It is a
// plain value: transitions are pure (old state + event -> new state +
// effect list) so they are testable without any rendering layer. The
// binder owns the map of tiles and executes the effects.
type Tile struct {
	ID          core.ParticipantID
	Name        string
	State       TileState
	Stream      core.VideoTrack // bound stream, nil when nothing attached
	LastTrackID string          // dedups redundant rebinds
	Quality     int
}

// TileEvent is one input to the tile state machine.
type TileEvent struct {
	Kind  TileEventKind
	Track core.VideoTrack // set for EvTrackAvailable
}

type TileEventKind int

const (
	// EvTrackAvailable reports a live, non-ended video track for this
	// participant, whether it arrived by track-started event or was found
	// in a participant snapshot (the two race; the machine must not care).
	EvTrackAvailable TileEventKind = iota
	// EvTrackMuted is a mute/block without the track ending. Distinct
	// from a stop so a transient mute does not flicker the tile down.
	EvTrackMuted
	EvTrackStopped
	EvParticipantLeft
	EvPlaybackStarted
	EvPlaybackRejected
	EvResumeRequested
	EvDeadlineElapsed
)

// Effect is a side effect the binder must execute after a transition.
// Transitions only describe them; they never touch the surface directly.
type Effect struct {
	Kind  EffectKind
	Track core.VideoTrack
}

type EffectKind int

const (
	// FxAttach binds the track to the tile's playback surface.
	FxAttach EffectKind = iota
	// FxPlay starts (or retries) playback; the result comes back later as
	// EvPlaybackStarted or EvPlaybackRejected.
	FxPlay
	// FxRelease stops the given stream's underlying media lines.
	FxRelease
	// FxDetach clears the surface.
	FxDetach
	// FxArmDeadline re-arms the loading deadline for a fresh binding.
	FxArmDeadline
)

// tileApply is the transition function. Every exit path that drops a
// bound stream emits FxRelease for it; that invariant is what keeps the
// wall from leaking decoder resources across sixty churning feeds.
func tileApply(t Tile, ev TileEvent) (Tile, []Effect) {
	switch ev.Kind {
	case EvTrackAvailable:
		return tileAttach(t, ev.Track)

	case EvTrackMuted:
		// No video, but not torn down: the stream stays bound so an
		// unmute recovers without a rebind round-trip.
		if t.State == TileDisconnected {
			return t, nil
		}
		t.State = TileNoVideo
		return t, nil

	case EvTrackStopped, EvParticipantLeft:
		var fx []Effect
		if t.Stream != nil {
			fx = append(fx, Effect{Kind: FxRelease, Track: t.Stream}, Effect{Kind: FxDetach})
		}
		t.Stream = nil
		t.LastTrackID = ""
		t.State = TileDisconnected
		return t, fx

	case EvPlaybackStarted:
		if t.State == TileDisconnected || t.Stream == nil {
			// Stale acknowledgment from a binding torn down mid-await.
			return t, nil
		}
		t.State = TilePlaying
		return t, nil

	case EvPlaybackRejected:
		if t.State == TileDisconnected || t.Stream == nil {
			return t, nil
		}
		t.State = TileAutoplayBlocked
		return t, nil

	case EvResumeRequested:
		if t.State == TileAutoplayBlocked && t.Stream != nil {
			return t, []Effect{{Kind: FxPlay}}
		}
		return t, nil

	case EvDeadlineElapsed:
		// Bounded wait: never an infinite spinner. Only fires through if
		// the tile is still waiting with nothing attached.
		if t.State == TileLoading && t.Stream == nil {
			t.State = TileDisconnected
		}
		return t, nil
	}
	return t, nil
}

func tileAttach(t Tile, track core.VideoTrack) (Tile, []Effect) {
	if track == nil || track.Ended() {
		return t, nil
	}

	// Idempotent re-attach: same track already bound.
	if t.Stream != nil && t.LastTrackID == track.ID() {
		switch t.State {
		case TileNoVideo, TileLoading:
			// Unmute or retried start on the existing binding.
			return t, []Effect{{Kind: FxPlay}}
		default:
			return t, nil
		}
	}

	var fx []Effect
	if t.Stream != nil {
		fx = append(fx, Effect{Kind: FxRelease, Track: t.Stream})
	}
	if t.State == TileDisconnected {
		// Fresh binding instance after a teardown.
		fx = append(fx, Effect{Kind: FxArmDeadline})
	}
	t.Stream = track
	t.LastTrackID = track.ID()
	t.State = TileLoading
	fx = append(fx, Effect{Kind: FxAttach, Track: track}, Effect{Kind: FxPlay})
	return t, fx
}
