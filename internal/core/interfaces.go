package core

import (
	"context"
	"errors"

	"github.com/parishnet/videowall/internal/domain"
)

var (
	ErrServiceNotFound  = errors.New("service not found")
	ErrServiceInactive  = errors.New("service is not active")
	ErrSessionNotFound  = errors.New("session not found")
	ErrChurchNotFound   = errors.New("church not found")
	ErrPlaybackRejected = errors.New("playback rejected by platform policy")
)

// Store is the persistent session/participant store. The coordinator
// itself never touches it; only the admission guard's caller does.
// Count-then-record is best-effort: strict serialization of admission is
// the store's write path's problem, not ours.
type Store interface {
	ServiceByCode(ctx context.Context, code domain.SessionCode) (*domain.Service, error)
	FindOrCreateChurch(ctx context.Context, name string) (*domain.Church, error)

	CountActiveSessions(ctx context.Context, serviceID domain.ServiceID) (int, error)
	ActiveSession(ctx context.Context, churchID domain.ChurchID, serviceID domain.ServiceID) (*domain.Session, error)
	RecordJoin(ctx context.Context, churchID domain.ChurchID, serviceID domain.ServiceID) (*domain.Session, error)
	RecordLeave(ctx context.Context, sessionID domain.SessionID) error

	CreateService(ctx context.Context, name string, maxChurches int) (*domain.Service, error)
	ListServices(ctx context.Context) ([]*domain.Service, error)
	SetServiceActive(ctx context.Context, id domain.ServiceID, active bool) error
	ListChurches(ctx context.Context) ([]*domain.Church, error)
}

// CredentialIssuer produces an opaque join credential scoped to a room
// and a publish/subscribe capability pair. The coordinator only passes
// the resulting string through to Call.Join.
type CredentialIssuer interface {
	Issue(room string, identity ParticipantID, name string, canPublish, canSubscribe bool) (string, error)
}

// Surface is a playback target for one tile, owned by the UI layer.
// Play is a suspension point: it may fail with ErrPlaybackRejected when
// the platform's autoplay policy blocks unattended playback.
type Surface interface {
	Attach(track VideoTrack)
	Detach()
	Play(ctx context.Context) error
}

// SurfaceFactory creates the playback surface for a participant's tile.
type SurfaceFactory func(id ParticipantID) Surface
