// Package identity issues and resolves the identity keys that scope
// cart persistence. Unauthenticated callers share the "guest" key;
// issued guest sessions get their own key so a cart can follow a
// browser session across requests.
package identity

import (
	"context"
	"time"
)

// GuestKey is the identity of callers without a session.
const GuestKey = "guest"

type Service struct {
	tokens *tokenManager
	ttl    time.Duration
}

func New(ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = 3 * time.Hour
	}
	return &Service{
		tokens: newTokenManager(),
		ttl:    ttl,
	}
}

// IssueGuest mints a session token bound to a fresh identity key.
func (s *Service) IssueGuest(ctx context.Context) (token, identityKey string, err error) {
	id, err := randomID()
	if err != nil {
		return "", "", err
	}
	identityKey = "guest-" + id
	token, err = s.tokens.Issue(identityKey, s.ttl)
	if err != nil {
		return "", "", err
	}
	return token, identityKey, nil
}

// Resolve maps a session token to its identity key. Missing, unknown,
// or expired tokens resolve to GuestKey; resolution never fails.
func (s *Service) Resolve(ctx context.Context, token string) string {
	if token == "" {
		return GuestKey
	}
	meta, ok := s.tokens.Validate(token)
	if !ok {
		return GuestKey
	}
	return meta.IdentityKey
}

func (s *Service) TTLSeconds() int {
	return int(s.ttl.Seconds())
}
