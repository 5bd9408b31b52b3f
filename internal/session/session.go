// ABOUTME: Session state over the key/value store: token, theme and reset email
// ABOUTME: Owns the login/logout lifecycle and the memoized token identity

package session

import (
	"errors"
	"sync"
	"time"

	"github.com/samber/oops"

	"github.com/careervista/careervista-cli/internal/storage"
)

// Store keys.
const (
	KeyToken      = "token"
	KeyTheme      = "theme"
	KeyResetEmail = "resetEmail"
)

var (
	// ErrNoToken is returned when an operation needs a logged-in session.
	ErrNoToken = errors.New("no session token")
	// ErrNoResetEmail is returned when a reset is attempted without a
	// confirmed reset link.
	ErrNoResetEmail = errors.New("no reset email")
	// ErrTokenExpired is returned by Identity once the token's exp claim
	// has passed.
	ErrTokenExpired = errors.New("session token expired")
)

// Session is the single owner of persisted client state. It is safe for
// concurrent use.
type Session struct {
	store storage.Store
	now   func() time.Time

	mu       sync.Mutex
	identity *Identity
	idToken  string
	idErr    error
}

// New wraps store. Call Init before first use.
func New(store storage.Store) *Session {
	return &Session{store: store, now: time.Now}
}

// Init warms the identity cache from a persisted token. A malformed token
// is left in place; Identity reports the decode error.
func (s *Session) Init() {
	if tok, ok := s.Token(); ok {
		_, _ = s.identityFor(tok)
	}
}

// Token returns the session token, if any.
func (s *Session) Token() (string, bool) {
	tok, ok := s.store.Get(KeyToken)
	if !ok || tok == "" {
		return "", false
	}
	return tok, true
}

// Authenticated reports whether a token is present.
func (s *Session) Authenticated() bool {
	_, ok := s.Token()
	return ok
}

// Begin stores the token issued by a successful login.
func (s *Session) Begin(token string) error {
	if token == "" {
		return oops.Code("SESSION_EMPTY_TOKEN").Errorf("login returned an empty token")
	}
	if err := s.store.Set(KeyToken, token); err != nil {
		return oops.Code("SESSION_WRITE").Wrapf(err, "storing token")
	}
	return nil
}

// DropToken removes only the token, leaving everything else in place.
func (s *Session) DropToken() error {
	if err := s.store.Remove(KeyToken); err != nil {
		return oops.Code("SESSION_WRITE").Wrapf(err, "removing token")
	}
	return nil
}

// Clear wipes the store except for the theme preference, which keeps its
// exact prior value. An absent theme stays absent.
func (s *Session) Clear() error {
	theme, hadTheme := s.store.Get(KeyTheme)
	if err := s.store.Clear(); err != nil {
		return oops.Code("SESSION_WRITE").Wrapf(err, "clearing store")
	}
	if hadTheme {
		if err := s.store.Set(KeyTheme, theme); err != nil {
			return oops.Code("SESSION_WRITE").Wrapf(err, "restoring theme")
		}
	}
	return nil
}

// ResetEmail returns the address confirmed for a pending password reset.
func (s *Session) ResetEmail() (string, bool) {
	email, ok := s.store.Get(KeyResetEmail)
	if !ok || email == "" {
		return "", false
	}
	return email, true
}

func (s *Session) SetResetEmail(email string) error {
	if err := s.store.Set(KeyResetEmail, email); err != nil {
		return oops.Code("SESSION_WRITE").Wrapf(err, "storing reset email")
	}
	return nil
}

func (s *Session) ClearResetEmail() error {
	if err := s.store.Remove(KeyResetEmail); err != nil {
		return oops.Code("SESSION_WRITE").Wrapf(err, "removing reset email")
	}
	return nil
}
