package core

type EventType int

const (
	EventJoined EventType = iota
	EventParticipantJoined
	EventParticipantUpdated
	EventParticipantLeft
	EventTrackStarted
	EventTrackStopped
	EventNetworkQuality
	EventError
)

func (t EventType) String() string {
	switch t {
	case EventJoined:
		return "joined"
	case EventParticipantJoined:
		return "participant-joined"
	case EventParticipantUpdated:
		return "participant-updated"
	case EventParticipantLeft:
		return "participant-left"
	case EventTrackStarted:
		return "track-started"
	case EventTrackStopped:
		return "track-stopped"
	case EventNetworkQuality:
		return "network-quality"
	case EventError:
		return "error"
	default:
		return "unknown"
	}
}

// Event is the inbound provider event, decoupled from any transport
// library. A thin adapter maps provider callbacks onto this enum; the
// coordinator consumes them from a single channel.
//
// Per-participant ordering follows the provider's emission order;
// cross-participant ordering is not guaranteed.
type Event struct {
	Type        EventType
	Participant ParticipantID
	Track       VideoTrack
	Quality     int
	Err         error
	// Fatal marks a terminal disconnect. Recoverable transport errors
	// leave the coordinator in place awaiting provider recovery.
	Fatal bool
}
