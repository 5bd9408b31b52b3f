// ABOUTME: Identity projection decoded from the session token claims
// ABOUTME: Signature is not verified here; the backend does that on every call

package session

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/samber/oops"
)

// Identity is who the session token says the user is.
type Identity struct {
	UserID    string
	Email     string
	Roles     []string
	ExpiresAt time.Time
}

// Expired reports whether the token's exp claim has passed. Tokens without
// exp never expire client-side.
func (id Identity) Expired(now time.Time) bool {
	return !id.ExpiresAt.IsZero() && now.After(id.ExpiresAt)
}

// Identity decodes the current token. The result is memoized per token
// value so repeated calls do not re-parse. A token past its exp claim
// counts as no session; it stays stored until logout or the next login.
func (s *Session) Identity() (Identity, error) {
	tok, ok := s.Token()
	if !ok {
		return Identity{}, oops.Code("SESSION_NO_TOKEN").Wrap(ErrNoToken)
	}
	id, err := s.identityFor(tok)
	if err != nil {
		return Identity{}, err
	}
	if id.Expired(s.now()) {
		return Identity{}, oops.Code("SESSION_EXPIRED").With("expired_at", id.ExpiresAt).Wrap(ErrTokenExpired)
	}
	return id, nil
}

func (s *Session) identityFor(tok string) (Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.idToken == tok && (s.identity != nil || s.idErr != nil) {
		if s.idErr != nil {
			return Identity{}, s.idErr
		}
		return *s.identity, nil
	}

	id, err := DecodeIdentity(tok)
	s.idToken = tok
	if err != nil {
		s.identity, s.idErr = nil, err
		return Identity{}, err
	}
	s.identity, s.idErr = &id, nil
	return id, nil
}

// DecodeIdentity reads the user_id, email, roles and exp claims.
func DecodeIdentity(tok string) (Identity, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok, claims); err != nil {
		return Identity{}, oops.Code("SESSION_BAD_TOKEN").Wrapf(err, "decoding session token")
	}

	id := Identity{}
	switch v := claims["user_id"].(type) {
	case string:
		id.UserID = v
	case float64:
		id.UserID = strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
	default:
		id.UserID = fmt.Sprint(v)
	}
	if id.UserID == "" {
		return Identity{}, oops.Code("SESSION_BAD_TOKEN").Errorf("session token has no user_id claim")
	}

	if email, ok := claims["email"].(string); ok {
		id.Email = email
	}
	switch roles := claims["roles"].(type) {
	case []any:
		for _, r := range roles {
			if rs, ok := r.(string); ok {
				id.Roles = append(id.Roles, rs)
			}
		}
	case string:
		id.Roles = []string{roles}
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		id.ExpiresAt = exp.Time
	}
	return id, nil
}
