// Package core defines the contracts between the session coordinator and
// its collaborators: the media provider, the persistent store and the
// credential issuer. The coordinator never holds authoritative participant
// state; everything here is a derived, recomputed-on-event copy of what
// the provider reports.
package core

import "strings"

// ViewerIdentityPrefix marks non-publishing identities (the wall itself).
// Viewers are never rendered as tiles.
const ViewerIdentityPrefix = "viewer-"

type ParticipantID string

func (id ParticipantID) IsViewer() bool {
	return strings.HasPrefix(string(id), ViewerIdentityPrefix)
}

// TrackState mirrors the provider's view of a participant's video track.
type TrackState int

const (
	TrackUnknown TrackState = iota
	TrackOff
	TrackBlocked
	TrackSendable
)

func (s TrackState) String() string {
	switch s {
	case TrackOff:
		return "off"
	case TrackBlocked:
		return "blocked"
	case TrackSendable:
		return "sendable"
	default:
		return "unknown"
	}
}

// VideoTrack is a handle on one remote video track. Stop releases the
// underlying media lines; it must be safe to call more than once.
type VideoTrack interface {
	ID() string
	Ended() bool
	Stop()
}

// Participant is a snapshot of one connected identity, copied out of the
// provider's live table. The provider owns the canonical object; snapshots
// must not be cached across provider events.
type Participant struct {
	ID         ParticipantID
	Name       string
	Local      bool
	Track      VideoTrack // nil until the provider reports one
	TrackState TrackState
	Subscribed bool
	Quality    int // 0-100, 0 when the provider has not reported yet
}
