package wall

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func effectKinds(fx []Effect) []EffectKind {
	kinds := make([]EffectKind, len(fx))
	for i, f := range fx {
		kinds[i] = f.Kind
	}
	return kinds
}

func TestTileAttachThenPlaybackStarted(t *testing.T) {
	track := newFakeTrack("t1")
	tile := Tile{ID: "a", State: TileLoading}

	tile, fx := tileApply(tile, TileEvent{Kind: EvTrackAvailable, Track: track})
	require.Equal(t, TileLoading, tile.State)
	require.Equal(t, []EffectKind{FxAttach, FxPlay}, effectKinds(fx))
	require.Equal(t, "t1", tile.LastTrackID)

	tile, fx = tileApply(tile, TileEvent{Kind: EvPlaybackStarted})
	require.Equal(t, TilePlaying, tile.State)
	require.Empty(t, fx)
}

func TestTileSameTrackReattachIsIdempotent(t *testing.T) {
	track := newFakeTrack("t1")
	tile := Tile{ID: "a", State: TileLoading}
	tile, _ = tileApply(tile, TileEvent{Kind: EvTrackAvailable, Track: track})
	tile, _ = tileApply(tile, TileEvent{Kind: EvPlaybackStarted})

	next, fx := tileApply(tile, TileEvent{Kind: EvTrackAvailable, Track: track})
	require.Equal(t, tile, next)
	require.Empty(t, fx)
}

func TestTileUnmuteRetriesPlaybackOnExistingBinding(t *testing.T) {
	track := newFakeTrack("t1")
	tile := Tile{ID: "a", State: TileLoading}
	tile, _ = tileApply(tile, TileEvent{Kind: EvTrackAvailable, Track: track})
	tile, _ = tileApply(tile, TileEvent{Kind: EvPlaybackStarted})

	tile, fx := tileApply(tile, TileEvent{Kind: EvTrackMuted})
	require.Equal(t, TileNoVideo, tile.State)
	require.NotNil(t, tile.Stream, "mute keeps the binding")
	require.Empty(t, fx)

	tile, fx = tileApply(tile, TileEvent{Kind: EvTrackAvailable, Track: track})
	require.Equal(t, []EffectKind{FxPlay}, effectKinds(fx), "unmute replays without a rebind")

	tile, _ = tileApply(tile, TileEvent{Kind: EvPlaybackStarted})
	require.Equal(t, TilePlaying, tile.State)
}

func TestTileNewTrackReleasesOldBinding(t *testing.T) {
	old := newFakeTrack("t1")
	tile := Tile{ID: "a", State: TileLoading}
	tile, _ = tileApply(tile, TileEvent{Kind: EvTrackAvailable, Track: old})

	fresh := newFakeTrack("t2")
	tile, fx := tileApply(tile, TileEvent{Kind: EvTrackAvailable, Track: fresh})
	require.Equal(t, []EffectKind{FxRelease, FxAttach, FxPlay}, effectKinds(fx))
	require.Same(t, old, fx[0].Track.(*fakeTrack))
	require.Equal(t, "t2", tile.LastTrackID)
}

func TestTileStopReleasesStreamFromAnyState(t *testing.T) {
	for _, start := range []TileState{TileLoading, TilePlaying, TileAutoplayBlocked, TileNoVideo} {
		track := newFakeTrack("t1")
		tile := Tile{ID: "a", State: start, Stream: track, LastTrackID: "t1"}

		tile, fx := tileApply(tile, TileEvent{Kind: EvTrackStopped})
		require.Equal(t, TileDisconnected, tile.State, "from %v", start)
		require.Nil(t, tile.Stream)
		require.Empty(t, tile.LastTrackID)
		require.Equal(t, []EffectKind{FxRelease, FxDetach}, effectKinds(fx))
	}
}

func TestTileRebindAfterDisconnectArmsDeadline(t *testing.T) {
	tile := Tile{ID: "a", State: TileDisconnected}

	track := newFakeTrack("t2")
	tile, fx := tileApply(tile, TileEvent{Kind: EvTrackAvailable, Track: track})
	require.Equal(t, TileLoading, tile.State)
	require.Equal(t, []EffectKind{FxArmDeadline, FxAttach, FxPlay}, effectKinds(fx))
}

func TestTileDeadlineOnlyFiresWhileWaiting(t *testing.T) {
	tile := Tile{ID: "a", State: TileLoading}
	tile, _ = tileApply(tile, TileEvent{Kind: EvDeadlineElapsed})
	require.Equal(t, TileDisconnected, tile.State)

	bound := Tile{ID: "b", State: TileLoading, Stream: newFakeTrack("t1"), LastTrackID: "t1"}
	bound, _ = tileApply(bound, TileEvent{Kind: EvDeadlineElapsed})
	require.Equal(t, TileLoading, bound.State, "a bound stream keeps waiting for playback")
}

func TestTileAutoplayBlockedThenManualResume(t *testing.T) {
	track := newFakeTrack("t1")
	tile := Tile{ID: "a", State: TileLoading}
	tile, _ = tileApply(tile, TileEvent{Kind: EvTrackAvailable, Track: track})

	tile, _ = tileApply(tile, TileEvent{Kind: EvPlaybackRejected})
	require.Equal(t, TileAutoplayBlocked, tile.State)

	tile, fx := tileApply(tile, TileEvent{Kind: EvResumeRequested})
	require.Equal(t, []EffectKind{FxPlay}, effectKinds(fx))

	tile, _ = tileApply(tile, TileEvent{Kind: EvPlaybackStarted})
	require.Equal(t, TilePlaying, tile.State)
}

func TestTileIgnoresStalePlaybackResults(t *testing.T) {
	tile := Tile{ID: "a", State: TileDisconnected}

	next, fx := tileApply(tile, TileEvent{Kind: EvPlaybackStarted})
	require.Equal(t, tile, next)
	require.Empty(t, fx)

	next, fx = tileApply(tile, TileEvent{Kind: EvPlaybackRejected})
	require.Equal(t, tile, next)
	require.Empty(t, fx)
}

func TestTileIgnoresEndedTracks(t *testing.T) {
	track := newFakeTrack("t1")
	track.Stop()

	tile := Tile{ID: "a", State: TileLoading}
	next, fx := tileApply(tile, TileEvent{Kind: EvTrackAvailable, Track: track})
	require.Equal(t, tile, next)
	require.Empty(t, fx)
}

func TestTileConnectionStatus(t *testing.T) {
	require.Equal(t, "connecting", TileLoading.ConnectionStatus())
	require.Equal(t, "disconnected", TileDisconnected.ConnectionStatus())
	require.Equal(t, "connected", TilePlaying.ConnectionStatus())
	require.Equal(t, "connected", TileNoVideo.ConnectionStatus())
	require.Equal(t, "connected", TileAutoplayBlocked.ConnectionStatus())
}
