// Package token issues opaque join credentials scoped to one room and a
// publish/subscribe capability pair. The coordinator never inspects the
// credential; the provider does.
package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"time"

	"github.com/parishnet/videowall/internal/core"
)

var (
	ErrBadCredential = errors.New("malformed credential")
	ErrBadSignature  = errors.New("credential signature mismatch")
	ErrExpired       = errors.New("credential expired")
)

// DefaultTTL keeps a leaked credential from outliving the service it was
// issued for.
const DefaultTTL = 4 * time.Hour

type Claims struct {
	Room         string `json:"room"`
	Identity     string `json:"identity"`
	Name         string `json:"name"`
	CanPublish   bool   `json:"canPublish"`
	CanSubscribe bool   `json:"canSubscribe"`
	ExpiresAt    int64  `json:"exp"`
}

// Issuer signs claims with an HMAC shared with the provider.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Issuer{secret: []byte(secret), ttl: ttl}
}

var _ core.CredentialIssuer = (*Issuer)(nil)

func (i *Issuer) Issue(room string, identity core.ParticipantID, name string, canPublish, canSubscribe bool) (string, error) {
	claims := Claims{
		Room:         room,
		Identity:     string(identity),
		Name:         name,
		CanPublish:   canPublish,
		CanSubscribe: canSubscribe,
		ExpiresAt:    time.Now().Add(i.ttl).Unix(),
	}
	body, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}
	payload := base64.RawURLEncoding.EncodeToString(body)
	return payload + "." + i.sign(payload), nil
}

// Verify is used by the development provider stub; the hosted provider
// validates credentials on its own side.
func (i *Issuer) Verify(credential string) (*Claims, error) {
	payload, sig, ok := splitCredential(credential)
	if !ok {
		return nil, ErrBadCredential
	}
	if !hmac.Equal([]byte(i.sign(payload)), []byte(sig)) {
		return nil, ErrBadSignature
	}
	body, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return nil, ErrBadCredential
	}
	var claims Claims
	if err := json.Unmarshal(body, &claims); err != nil {
		return nil, ErrBadCredential
	}
	if time.Now().Unix() > claims.ExpiresAt {
		return nil, ErrExpired
	}
	return &claims, nil
}

func (i *Issuer) sign(payload string) string {
	mac := hmac.New(sha256.New, i.secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func splitCredential(credential string) (payload, sig string, ok bool) {
	for idx := len(credential) - 1; idx >= 0; idx-- {
		if credential[idx] == '.' {
			return credential[:idx], credential[idx+1:], true
		}
	}
	return "", "", false
}
