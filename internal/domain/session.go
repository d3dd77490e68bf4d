package domain

import (
	"time"

	"github.com/google/uuid"
)

type SessionID string

// Session records one church's participation in one service.
// Active sessions count against the service's capacity.
type Session struct {
	ID        SessionID  `json:"id"`
	ChurchID  ChurchID   `json:"churchId"`
	ServiceID ServiceID  `json:"serviceId"`
	Active    bool       `json:"active"`
	JoinedAt  time.Time  `json:"joinedAt"`
	LeftAt    *time.Time `json:"leftAt,omitempty"`
}

func NewSession(churchID ChurchID, serviceID ServiceID) *Session {
	return &Session{
		ID:        SessionID(uuid.NewString()),
		ChurchID:  churchID,
		ServiceID: serviceID,
		Active:    true,
		JoinedAt:  time.Now(),
	}
}

func (s *Session) Close() {
	now := time.Now()
	s.Active = false
	s.LeftAt = &now
}
