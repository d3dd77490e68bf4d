// Package domain contains entities without logic, just meta-data.
package domain

import (
	"crypto/rand"
	"errors"
	"strings"
)

// SessionCodeAlphabet drops visually ambiguous symbols (0/O, 1/I)
// so codes survive being read out loud over a phone.
const SessionCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const SessionCodeLength = 6

var ErrInvalidSessionCode = errors.New("invalid session code")

// SessionCode identifies one scheduled service. Opaque to the coordinator.
type SessionCode string

func NewSessionCode() SessionCode {
	buf := make([]byte, SessionCodeLength)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	for i, b := range buf {
		buf[i] = SessionCodeAlphabet[int(b)%len(SessionCodeAlphabet)]
	}
	return SessionCode(buf)
}

func (c SessionCode) Valid() bool {
	if len(c) != SessionCodeLength {
		return false
	}
	for _, r := range c {
		if !strings.ContainsRune(SessionCodeAlphabet, r) {
			return false
		}
	}
	return true
}

// ParseSessionCode normalizes user input (codes are typed by volunteers).
func ParseSessionCode(raw string) (SessionCode, error) {
	c := SessionCode(strings.ToUpper(strings.TrimSpace(raw)))
	if !c.Valid() {
		return "", ErrInvalidSessionCode
	}
	return c, nil
}
