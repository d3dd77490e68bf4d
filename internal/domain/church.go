package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

const MaxChurchNameLen = 64

var (
	ErrChurchNameEmpty   = errors.New("church name empty")
	ErrChurchNameTooLong = errors.New("church name too long")
)

type ChurchID string

// Church is one contributing site. Its name is what the wall renders
// under the tile, so it is validated at creation time.
type Church struct {
	ID   ChurchID `json:"id"`
	Name string   `json:"name"`
	Code string   `json:"code"`
}

// NewChurch is a tiny helper to avoid ad-hoc struct literals in adapters.
func NewChurch(name string, seq int) (*Church, error) {
	if len(name) == 0 {
		return nil, ErrChurchNameEmpty
	}
	if len(name) > MaxChurchNameLen {
		return nil, ErrChurchNameTooLong
	}
	return &Church{
		ID:   ChurchID(uuid.NewString()),
		Name: name,
		Code: fmt.Sprintf("CH%04d", seq),
	}, nil
}
