// ABOUTME: Tests for the two-step password reset and link confirmation
// ABOUTME: The reset step must never call out without a pending reset email

package flows

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careervista/careervista-cli/internal/client"
	"github.com/careervista/careervista-cli/internal/session"
	"github.com/careervista/careervista-cli/internal/session/sessiontest"
	"github.com/careervista/careervista-cli/internal/validate"
)

func TestResetRequestRequiresEmail(t *testing.T) {
	api := newFakeAuth()
	r := NewResetRequest(api, nil)
	r.SetEmail("   ")

	err := r.Submit(context.Background(), Discard{})
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Equal(t, validate.MsgEmailRequired, r.Errors()[validate.FieldEmail])
	assert.Empty(t, api.log.list())
}

func TestResetRequestSuccess(t *testing.T) {
	api := newFakeAuth()
	fx := &effectLog{log: api.log}
	r := NewResetRequest(api, nil)
	r.SetEmail("jane@example.com")

	require.NoError(t, r.Submit(context.Background(), fx))

	to, sent := r.Sent()
	assert.True(t, sent)
	assert.Equal(t, "jane@example.com", to)
	assert.Equal(t, "jane@example.com", api.forgotReq.Email)
	assert.Equal(t, []string{"forgot-password", "notify:" + MsgResetLinkSent}, api.log.list())
}

func TestResetRequestFailure(t *testing.T) {
	api := newFakeAuth()
	api.forgotErr = &client.APIError{Status: 500}
	r := NewResetRequest(api, nil)
	r.SetEmail("jane@example.com")

	assert.Error(t, r.Submit(context.Background(), Discard{}))
	assert.Equal(t, MsgResetLinkFailed, r.Banner())
	_, sent := r.Sent()
	assert.False(t, sent)
}

func TestConfirmLink(t *testing.T) {
	sess, _ := sessiontest.LoggedOut()
	var rec Recorder

	assert.Error(t, ConfirmLink(sess, "", &rec))
	assert.Error(t, ConfirmLink(sess, "not-an-email", &rec))
	assert.Empty(t, rec.Events())

	require.NoError(t, ConfirmLink(sess, "jane@example.com", &rec))
	email, ok := sess.ResetEmail()
	assert.True(t, ok)
	assert.Equal(t, "jane@example.com", email)
	events := rec.Events()
	require.Len(t, events, 2)
	assert.Equal(t, RouteResetPassword, events[1].Route)
}

func TestResetMountWithoutEmail(t *testing.T) {
	sess, _ := sessiontest.LoggedOut()
	var rec Recorder
	assert.False(t, NewReset(newFakeAuth(), sess, nil).Mount(&rec))
	assert.Equal(t, RouteForgotPassword, rec.Events()[0].Route)
}

func TestResetSubmitWithoutEmailMakesNoCall(t *testing.T) {
	sess, _ := sessiontest.LoggedOut()
	api := newFakeAuth()
	fx := &effectLog{log: api.log}

	r := NewReset(api, sess, nil)
	r.SetField(validate.FieldNewPassword, "Abcdef1!")
	r.SetField(validate.FieldConfirmPassword, "Abcdef1!")
	err := r.Submit(context.Background(), fx)

	assert.ErrorIs(t, err, session.ErrNoResetEmail)
	assert.Equal(t, []string{"navigate:" + string(RouteForgotPassword)}, api.log.list())
}

func TestResetSubmitValidatesBeforeEmailCheck(t *testing.T) {
	sess, _ := sessiontest.LoggedOut()
	api := newFakeAuth()
	fx := &effectLog{log: api.log}

	r := NewReset(api, sess, nil)
	r.SetField(validate.FieldNewPassword, "short")
	r.SetField(validate.FieldConfirmPassword, "short")
	err := r.Submit(context.Background(), fx)

	assert.ErrorIs(t, err, ErrInvalid)
	assert.Equal(t, validate.MsgPasswordLength, r.Errors()[validate.FieldNewPassword])
	assert.Empty(t, api.log.list())
}

func TestResetTypingMarksValidating(t *testing.T) {
	sess, _ := sessiontest.LoggedOut()
	require.NoError(t, sess.SetResetEmail("jane@example.com"))
	api := newFakeAuth()

	r := NewReset(api, sess, nil)
	assert.Equal(t, StateIdle, r.State())
	r.SetField(validate.FieldNewPassword, "Abcdef1!")
	assert.Equal(t, StateValidating, r.State())

	r.SetField(validate.FieldConfirmPassword, "Abcdef1!")
	require.NoError(t, r.Submit(context.Background(), Discard{}))
	assert.Equal(t, StateSucceeded, r.State())

	r.SetField(validate.FieldNewPassword, "Abcdef2!")
	assert.Equal(t, StateValidating, r.State())
}

func TestResetSuccess(t *testing.T) {
	sess, _ := sessiontest.LoggedOut()
	require.NoError(t, sess.SetResetEmail("jane@example.com"))
	api := newFakeAuth()
	fx := &effectLog{log: api.log}

	r := NewReset(api, sess, nil)
	assert.True(t, r.Mount(fx))
	r.SetField(validate.FieldNewPassword, "Abcdef1!")
	r.SetField(validate.FieldConfirmPassword, "Abcdef1!")
	require.NoError(t, r.Submit(context.Background(), fx))

	assert.Equal(t, client.ResetPasswordRequest{Email: "jane@example.com", NewPassword: "Abcdef1!"}, api.resetReq)
	assert.Equal(t, []string{
		"reset-password",
		"notify:" + MsgPasswordReset,
		"navigate:" + string(RouteLogin),
	}, api.log.list())
	_, ok := sess.ResetEmail()
	assert.False(t, ok)
}

func TestResetFailureKeepsEmail(t *testing.T) {
	sess, _ := sessiontest.LoggedOut()
	require.NoError(t, sess.SetResetEmail("jane@example.com"))
	api := newFakeAuth()
	api.resetErr = &client.APIError{Status: 400, Message: "Reset link expired"}

	r := NewReset(api, sess, nil)
	r.SetField(validate.FieldNewPassword, "Abcdef1!")
	r.SetField(validate.FieldConfirmPassword, "Abcdef1!")
	assert.Error(t, r.Submit(context.Background(), Discard{}))

	assert.Equal(t, "Reset link expired", r.Banner())
	_, ok := sess.ResetEmail()
	assert.True(t, ok)
}
