// Package provider implements core.Call over the media provider's
// websocket signaling channel plus a pion peer connection for media.
// It is a thin adapter: every provider callback is mapped onto the
// coordinator's event enum and no coordinator state lives here.
package provider

import (
	"sync/atomic"

	"github.com/pion/webrtc/v4"
)

// remoteTrack adapts a pion remote track to core.VideoTrack. Stop is
// idempotent; after Stop the track reports itself ended so a tile can
// never re-bind a released stream.
type remoteTrack struct {
	track   *webrtc.TrackRemote
	stopped atomic.Bool
}

func newRemoteTrack(t *webrtc.TrackRemote) *remoteTrack {
	return &remoteTrack{track: t}
}

func (r *remoteTrack) ID() string { return r.track.ID() }

func (r *remoteTrack) Ended() bool { return r.stopped.Load() }

func (r *remoteTrack) Stop() { r.stopped.Store(true) }

// isVideo filters the audio tracks a misconfigured publisher might send.
func isVideo(t *webrtc.TrackRemote) bool {
	return t.Kind() == webrtc.RTPCodecTypeVideo
}
