// ABOUTME: Two-step password reset: request a link, then set a new password
// ABOUTME: The second step needs the reset email recorded by link confirmation

package flows

import (
	"context"
	"log/slog"
	"strings"

	"github.com/samber/oops"

	"github.com/careervista/careervista-cli/internal/client"
	"github.com/careervista/careervista-cli/internal/session"
	"github.com/careervista/careervista-cli/internal/validate"
)

const (
	MsgResetLinkSent     = "Reset link sent to your email!"
	MsgResetLinkFailed   = "Failed to send reset link"
	MsgPasswordReset     = "Password reset successfully!"
	MsgResetFailed       = "Failed to reset password"
	MsgResetLinkVerified = "Email verified. Choose a new password."
)

// ResetRequest is step one: ask the backend to mail a reset link.
type ResetRequest struct {
	formState
	api AuthAPI

	email    string
	sentTo   string
	linkSent bool
}

func NewResetRequest(api AuthAPI, logger *slog.Logger) *ResetRequest {
	r := &ResetRequest{api: api}
	r.init(logger)
	return r
}

func (r *ResetRequest) Email() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.email
}

func (r *ResetRequest) SetEmail(email string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.email = email
	r.errs = validate.Errors{}
	r.typed()
}

// Sent reports whether a link went out and to which address. The panel
// shows the address exactly as submitted.
func (r *ResetRequest) Sent() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sentTo, r.linkSent
}

// Submit posts the address. Any 2xx counts as sent; nothing is stored.
func (r *ResetRequest) Submit(ctx context.Context, fx Effects) error {
	r.mu.Lock()
	if err := r.begin(); err != nil {
		r.mu.Unlock()
		return err
	}
	email := strings.TrimSpace(r.email)
	if email == "" {
		r.errs = validate.Errors{validate.FieldEmail: validate.MsgEmailRequired}
		r.state = StateIdle
		r.mu.Unlock()
		return ErrInvalid
	}
	r.errs = validate.Errors{}
	r.state = StateSubmitting
	r.mu.Unlock()

	err := r.api.ForgotPassword(ctx, client.ForgotPasswordRequest{Email: email})

	r.mu.Lock()
	if err != nil {
		r.fail(err, MsgResetLinkFailed)
		r.mu.Unlock()
		r.logger.Warn("reset link request failed", "error", err)
		return err
	}
	r.state = StateSucceeded
	r.sentTo = email
	r.linkSent = true
	r.mu.Unlock()

	fx.Notify(Notice{Level: NoticeSuccess, Text: MsgResetLinkSent})
	return nil
}

// ConfirmLink records which address a reset link was opened for, so the
// reset step can proceed.
func ConfirmLink(sess SessionState, email string, fx Effects) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return oops.Code("RESET_EMAIL_REQUIRED").Errorf("%s", validate.MsgEmailRequired)
	}
	if !validate.Email(email) {
		return oops.Code("RESET_EMAIL_INVALID").Errorf("%s", validate.MsgInvalidEmail)
	}
	if err := sess.SetResetEmail(email); err != nil {
		return err
	}
	fx.Notify(Notice{Level: NoticeInfo, Text: MsgResetLinkVerified})
	fx.Navigate(RouteResetPassword)
	return nil
}

// Reset is step two: choose the new password.
type Reset struct {
	formState
	api  AuthAPI
	sess SessionState

	newPassword     string
	confirmPassword string
	confirmTouched  bool
}

func NewReset(api AuthAPI, sess SessionState, logger *slog.Logger) *Reset {
	r := &Reset{api: api, sess: sess}
	r.init(logger)
	return r
}

// Mount redirects to the request step when no reset email is pending. It
// reports whether the screen may stay.
func (r *Reset) Mount(fx Effects) bool {
	if _, ok := r.sess.ResetEmail(); !ok {
		fx.Navigate(RouteForgotPassword)
		return false
	}
	return true
}

// Email is the pending reset address, if any.
func (r *Reset) Email() (string, bool) {
	return r.sess.ResetEmail()
}

func (r *Reset) Value(field validate.Field) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch field {
	case validate.FieldNewPassword:
		return r.newPassword
	case validate.FieldConfirmPassword:
		return r.confirmPassword
	}
	return ""
}

func (r *Reset) SetField(field validate.Field, value string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch field {
	case validate.FieldNewPassword:
		r.newPassword = value
	case validate.FieldConfirmPassword:
		r.confirmPassword = value
		r.confirmTouched = true
	default:
		return
	}
	r.errs = validate.NewPasswordPair(r.newPassword, r.confirmPassword, r.confirmTouched)
	r.typed()
}

// Submit validates, then requires the pending reset email before posting.
func (r *Reset) Submit(ctx context.Context, fx Effects) error {
	r.mu.Lock()
	if err := r.begin(); err != nil {
		r.mu.Unlock()
		return err
	}
	if errs := submitGuard(true, r.newPassword, r.confirmPassword); !errs.Empty() {
		r.errs = errs
		r.state = StateIdle
		r.mu.Unlock()
		return ErrInvalid
	}
	r.errs = validate.Errors{}
	email, ok := r.sess.ResetEmail()
	if !ok {
		r.state = StateIdle
		r.mu.Unlock()
		fx.Navigate(RouteForgotPassword)
		return oops.Code("RESET_NO_EMAIL").Wrap(session.ErrNoResetEmail)
	}
	r.state = StateSubmitting
	req := client.ResetPasswordRequest{Email: email, NewPassword: r.newPassword}
	r.mu.Unlock()

	err := r.api.ResetPassword(ctx, req)

	r.mu.Lock()
	if err != nil {
		r.fail(err, MsgResetFailed)
		r.mu.Unlock()
		r.logger.Warn("password reset failed", "error", err)
		return err
	}
	r.state = StateSucceeded
	r.newPassword, r.confirmPassword = "", ""
	r.confirmTouched = false
	r.mu.Unlock()

	if err := r.sess.ClearResetEmail(); err != nil {
		r.logger.Error("removing reset email", "error", err)
	}
	fx.Notify(Notice{Level: NoticeSuccess, Text: MsgPasswordReset})
	fx.Navigate(RouteLogin)
	return nil
}
