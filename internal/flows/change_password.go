// ABOUTME: Change-password flow for a logged-in user
// ABOUTME: On success the session is revoked and the user returns home

package flows

import (
	"context"
	"log/slog"

	"github.com/samber/oops"

	"github.com/careervista/careervista-cli/internal/client"
	"github.com/careervista/careervista-cli/internal/session"
	"github.com/careervista/careervista-cli/internal/validate"
)

const (
	MsgPasswordChanged      = "Password changed successfully!"
	MsgChangePasswordFailed = "Failed to change password"
)

// ChangePassword holds the three-field credential change form.
type ChangePassword struct {
	formState
	api  AuthAPI
	sess SessionState

	oldPassword     string
	newPassword     string
	confirmPassword string
	confirmTouched  bool
}

func NewChangePassword(api AuthAPI, sess SessionState, logger *slog.Logger) *ChangePassword {
	c := &ChangePassword{api: api, sess: sess}
	c.init(logger)
	return c
}

// Mount sends an anonymous visitor home. It reports whether the screen may
// stay.
func (c *ChangePassword) Mount(fx Effects) bool {
	if _, ok := c.sess.Token(); !ok {
		fx.Navigate(RouteHome)
		return false
	}
	return true
}

func (c *ChangePassword) Value(field validate.Field) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch field {
	case validate.FieldOldPassword:
		return c.oldPassword
	case validate.FieldNewPassword:
		return c.newPassword
	case validate.FieldConfirmPassword:
		return c.confirmPassword
	}
	return ""
}

// SetField stores a keystroke. Edits to the new or confirm field rerun the
// pair check and replace the error map.
func (c *ChangePassword) SetField(field validate.Field, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch field {
	case validate.FieldOldPassword:
		c.oldPassword = value
		c.typed()
		return
	case validate.FieldNewPassword:
		c.newPassword = value
	case validate.FieldConfirmPassword:
		c.confirmPassword = value
		c.confirmTouched = true
	default:
		return
	}
	c.errs = validate.NewPasswordPair(c.newPassword, c.confirmPassword, c.confirmTouched)
	c.typed()
}

// Submit runs the guard, posts the change and on success logs out,
// confirms and navigates home, in that order.
func (c *ChangePassword) Submit(ctx context.Context, fx Effects) error {
	c.mu.Lock()
	if err := c.begin(); err != nil {
		c.mu.Unlock()
		return err
	}
	if errs := submitGuard(c.oldPassword != "", c.newPassword, c.confirmPassword); !errs.Empty() {
		c.errs = errs
		c.state = StateIdle
		c.mu.Unlock()
		return ErrInvalid
	}
	c.errs = validate.Errors{}
	if _, ok := c.sess.Token(); !ok {
		c.state = StateIdle
		c.mu.Unlock()
		fx.Navigate(RouteHome)
		return oops.Code("SESSION_NO_TOKEN").Wrap(session.ErrNoToken)
	}
	c.state = StateSubmitting
	req := client.ChangePasswordRequest{
		OldPassword:     c.oldPassword,
		NewPassword:     c.newPassword,
		ConfirmPassword: c.confirmPassword,
	}
	c.mu.Unlock()

	if err := c.api.ChangePassword(ctx, req); err != nil {
		c.mu.Lock()
		c.fail(err, MsgChangePasswordFailed)
		c.mu.Unlock()
		c.logger.Warn("change password failed", "error", err)
		return err
	}

	// The password already changed; a failed logout is only logged.
	if err := Logout(ctx, c.api, c.sess, c.logger); err != nil {
		c.logger.Error("logout after password change failed", "error", err)
	}

	c.mu.Lock()
	c.state = StateSucceeded
	c.oldPassword, c.newPassword, c.confirmPassword = "", "", ""
	c.confirmTouched = false
	c.mu.Unlock()

	fx.Notify(Notice{Level: NoticeSuccess, Text: MsgPasswordChanged})
	fx.Navigate(RouteHome)
	return nil
}

// submitGuard is the submit-time check shared by change and reset. A
// first-field presence flag lets reset skip the old password.
func submitGuard(firstPresent bool, newPassword, confirm string) validate.Errors {
	errs := validate.Errors{}
	if !firstPresent || newPassword == "" || confirm == "" {
		errs[validate.FieldForm] = validate.MsgAllFieldsRequired
		return errs
	}
	if msg := validate.Password(newPassword); msg != "" {
		errs[validate.FieldNewPassword] = msg
		return errs
	}
	if newPassword != confirm {
		errs[validate.FieldConfirmPassword] = validate.MsgConfirmMismatch
	}
	return errs
}
