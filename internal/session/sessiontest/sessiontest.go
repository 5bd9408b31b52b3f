// ABOUTME: Test helpers that mint session tokens and seeded sessions
// ABOUTME: Tokens are HS256-signed with a throwaway key; clients never verify

package sessiontest

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/careervista/careervista-cli/internal/session"
	"github.com/careervista/careervista-cli/internal/storage"
)

var signingKey = []byte("test-only-key")

// Token mints a token for userID with an hour of validity.
func Token(t testing.TB, userID string) string {
	t.Helper()
	return TokenWithClaims(t, jwt.MapClaims{
		"user_id": userID,
		"email":   userID + "@example.com",
		"roles":   []string{"applicant"},
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
}

// ExpiredToken mints a token for userID whose exp passed an hour ago.
func ExpiredToken(t testing.TB, userID string) string {
	t.Helper()
	return TokenWithClaims(t, jwt.MapClaims{
		"user_id": userID,
		"email":   userID + "@example.com",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})
}

// TokenWithClaims mints a token carrying exactly claims.
func TokenWithClaims(t testing.TB, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(signingKey)
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return tok
}

// LoggedIn returns a session over a fresh memory store holding a token for
// userID, along with the store for assertions.
func LoggedIn(t testing.TB, userID string) (*session.Session, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemory()
	sess := session.New(store)
	if err := sess.Begin(Token(t, userID)); err != nil {
		t.Fatalf("begin session: %v", err)
	}
	sess.Init()
	return sess, store
}

// LoggedOut returns an empty session.
func LoggedOut() (*session.Session, *storage.MemoryStore) {
	store := storage.NewMemory()
	return session.New(store), store
}
