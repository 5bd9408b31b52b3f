// ABOUTME: Tests for the session lifecycle, theme handling and identity
// ABOUTME: Runs against the in-memory store with tokens minted per test

package session_test

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/careervista/careervista-cli/internal/session"
	"github.com/careervista/careervista-cli/internal/session/sessiontest"
	"github.com/careervista/careervista-cli/internal/storage"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestBeginAndToken(t *testing.T) {
	sess, store := sessiontest.LoggedOut()
	assert.False(t, sess.Authenticated())

	require.NoError(t, sess.Begin("tok"))
	tok, ok := sess.Token()
	assert.True(t, ok)
	assert.Equal(t, "tok", tok)
	v, _ := store.Get(session.KeyToken)
	assert.Equal(t, "tok", v)

	assert.Error(t, sess.Begin(""))
}

func TestClearPreservesTheme(t *testing.T) {
	tests := []struct {
		name  string
		theme *string
	}{
		{"dark", ptr("dark")},
		{"unknown value kept verbatim", ptr("solarized")},
		{"empty string kept", ptr("")},
		{"absent stays absent", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := storage.NewMemory()
			sess := session.New(store)
			require.NoError(t, store.Set(session.KeyToken, "tok"))
			require.NoError(t, store.Set(session.KeyResetEmail, "a@b.co"))
			require.NoError(t, store.Set("other", "x"))
			if tt.theme != nil {
				require.NoError(t, store.Set(session.KeyTheme, *tt.theme))
			}

			require.NoError(t, sess.Clear())

			theme, ok := store.Get(session.KeyTheme)
			if tt.theme == nil {
				assert.False(t, ok)
				assert.Empty(t, store.Keys())
				return
			}
			assert.True(t, ok)
			assert.Equal(t, *tt.theme, theme)
			assert.Equal(t, []string{session.KeyTheme}, store.Keys())
		})
	}
}

func TestDropTokenKeepsOtherKeys(t *testing.T) {
	store := storage.NewMemory()
	sess := session.New(store)
	require.NoError(t, store.Set(session.KeyToken, "tok"))
	require.NoError(t, store.Set(session.KeyResetEmail, "a@b.co"))

	require.NoError(t, sess.DropToken())
	assert.False(t, sess.Authenticated())
	email, ok := sess.ResetEmail()
	assert.True(t, ok)
	assert.Equal(t, "a@b.co", email)
}

func TestResetEmail(t *testing.T) {
	sess, _ := sessiontest.LoggedOut()
	_, ok := sess.ResetEmail()
	assert.False(t, ok)

	require.NoError(t, sess.SetResetEmail("jane@example.com"))
	email, ok := sess.ResetEmail()
	assert.True(t, ok)
	assert.Equal(t, "jane@example.com", email)

	require.NoError(t, sess.ClearResetEmail())
	_, ok = sess.ResetEmail()
	assert.False(t, ok)
}

func TestThemeCycle(t *testing.T) {
	assert.Equal(t, session.ThemeDark, session.ThemeLight.Next())
	assert.Equal(t, session.ThemeSystem, session.ThemeDark.Next())
	assert.Equal(t, session.ThemeLight, session.ThemeSystem.Next())
	assert.Equal(t, session.ThemeLight, session.Theme("neon").Next())

	sess, _ := sessiontest.LoggedOut()
	assert.Equal(t, session.ThemeSystem, sess.Theme())
	_, ok := sess.StoredTheme()
	assert.False(t, ok)

	next, err := sess.CycleTheme()
	require.NoError(t, err)
	assert.Equal(t, session.ThemeLight, next)
	next, err = sess.CycleTheme()
	require.NoError(t, err)
	assert.Equal(t, session.ThemeDark, next)
	assert.Equal(t, session.ThemeDark, sess.Theme())
}

func TestUnknownStoredThemeRendersAsSystem(t *testing.T) {
	store := storage.NewMemory()
	sess := session.New(store)
	require.NoError(t, store.Set(session.KeyTheme, "neon"))
	assert.Equal(t, session.ThemeSystem, sess.Theme())
	raw, _ := sess.StoredTheme()
	assert.Equal(t, "neon", raw)
}

func TestParseTheme(t *testing.T) {
	th, err := session.ParseTheme("dark")
	require.NoError(t, err)
	assert.Equal(t, session.ThemeDark, th)

	_, err = session.ParseTheme("neon")
	require.Error(t, err)
	oopsErr, ok := oops.AsOops(err)
	require.True(t, ok)
	assert.EqualValues(t, "SESSION_BAD_THEME", oopsErr.Code())
}

func TestIdentity(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	tok := sessiontest.TokenWithClaims(t, jwt.MapClaims{
		"user_id": "u-42",
		"email":   "jane@example.com",
		"roles":   []string{"applicant", "admin"},
		"exp":     exp.Unix(),
	})
	sess, _ := sessiontest.LoggedOut()
	require.NoError(t, sess.Begin(tok))

	id, err := sess.Identity()
	require.NoError(t, err)
	assert.Equal(t, "u-42", id.UserID)
	assert.Equal(t, "jane@example.com", id.Email)
	assert.Equal(t, []string{"applicant", "admin"}, id.Roles)
	assert.True(t, id.ExpiresAt.Equal(exp))
	assert.False(t, id.Expired(time.Now()))
	assert.True(t, id.Expired(exp.Add(time.Minute)))
}

func TestIdentityNumericUserID(t *testing.T) {
	tok := sessiontest.TokenWithClaims(t, jwt.MapClaims{"user_id": 1234})
	id, err := session.DecodeIdentity(tok)
	require.NoError(t, err)
	assert.Equal(t, "1234", id.UserID)
	assert.True(t, id.ExpiresAt.IsZero())
	assert.False(t, id.Expired(time.Now()))
}

func TestIdentityExpiredToken(t *testing.T) {
	exp := time.Now().Add(-time.Minute)
	tok := sessiontest.TokenWithClaims(t, jwt.MapClaims{"user_id": "u-42", "exp": exp.Unix()})
	sess, _ := sessiontest.LoggedOut()
	require.NoError(t, sess.Begin(tok))

	_, err := sess.Identity()
	assert.ErrorIs(t, err, session.ErrTokenExpired)
	oopsErr, ok := oops.AsOops(err)
	require.True(t, ok)
	assert.EqualValues(t, "SESSION_EXPIRED", oopsErr.Code())

	// the claims still decode; only the session check rejects them
	id, err := session.DecodeIdentity(tok)
	require.NoError(t, err)
	assert.Equal(t, "u-42", id.UserID)
}

func TestIdentityWithoutToken(t *testing.T) {
	sess, _ := sessiontest.LoggedOut()
	_, err := sess.Identity()
	assert.True(t, errors.Is(err, session.ErrNoToken))
	oopsErr, ok := oops.AsOops(err)
	require.True(t, ok)
	assert.EqualValues(t, "SESSION_NO_TOKEN", oopsErr.Code())
}

func TestIdentityMalformedToken(t *testing.T) {
	sess, _ := sessiontest.LoggedOut()
	require.NoError(t, sess.Begin("not-a-jwt"))
	sess.Init()
	_, err := sess.Identity()
	require.Error(t, err)
	oopsErr, ok := oops.AsOops(err)
	require.True(t, ok)
	assert.EqualValues(t, "SESSION_BAD_TOKEN", oopsErr.Code())
}

func TestIdentityMissingUserID(t *testing.T) {
	tok := sessiontest.TokenWithClaims(t, jwt.MapClaims{"email": "x@y.z"})
	_, err := session.DecodeIdentity(tok)
	assert.Error(t, err)
}

func TestIdentityFollowsTokenChange(t *testing.T) {
	sess, _ := sessiontest.LoggedIn(t, "first")
	id, err := sess.Identity()
	require.NoError(t, err)
	assert.Equal(t, "first", id.UserID)

	require.NoError(t, sess.Begin(sessiontest.Token(t, "second")))
	id, err = sess.Identity()
	require.NoError(t, err)
	assert.Equal(t, "second", id.UserID)
}

func ptr(s string) *string { return &s }
