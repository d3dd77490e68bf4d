package domain

import (
	"errors"

	"github.com/google/uuid"
)

// DefaultMaxChurches bounds one room; the shared media room degrades past
// roughly 60 publishers, so admission is enforced against this.
const DefaultMaxChurches = 60

var ErrServiceNameEmpty = errors.New("service name empty")

type ServiceID string

// Service is one scheduled gathering: a session code plus a capacity limit.
// The ServiceID doubles as the media room name.
type Service struct {
	ID          ServiceID   `json:"id"`
	Name        string      `json:"name"`
	SessionCode SessionCode `json:"sessionCode"`
	MaxChurches int         `json:"maxChurches"`
	Active      bool        `json:"active"`
}

func NewService(name string, maxChurches int) (*Service, error) {
	if len(name) == 0 {
		return nil, ErrServiceNameEmpty
	}
	if maxChurches < 1 {
		maxChurches = DefaultMaxChurches
	}
	return &Service{
		ID:          ServiceID(uuid.NewString()),
		Name:        name,
		SessionCode: NewSessionCode(),
		MaxChurches: maxChurches,
		Active:      true,
	}, nil
}
