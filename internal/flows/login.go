// ABOUTME: Login form: per-field checks on blur and submit, then token storage
// ABOUTME: Typing into a field clears only that field's error

package flows

import (
	"context"
	"log/slog"
	"strings"

	"github.com/careervista/careervista-cli/internal/client"
	"github.com/careervista/careervista-cli/internal/validate"
)

const (
	MsgLoggedIn    = "Logged in successfully"
	MsgLoginFailed = "Failed to log in"
)

// Login holds the login form.
type Login struct {
	formState
	api  AuthAPI
	sess SessionState

	email    string
	password string
}

func NewLogin(api AuthAPI, sess SessionState, logger *slog.Logger) *Login {
	l := &Login{api: api, sess: sess}
	l.init(logger)
	return l
}

func (l *Login) Value(field validate.Field) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	switch field {
	case validate.FieldEmail:
		return l.email
	case validate.FieldPassword:
		return l.password
	}
	return ""
}

// SetField stores a keystroke and drops that field's error.
func (l *Login) SetField(field validate.Field, value string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	switch field {
	case validate.FieldEmail:
		l.email = value
	case validate.FieldPassword:
		l.password = value
	default:
		return
	}
	next := l.errs.Clone()
	delete(next, field)
	l.errs = next
	l.typed()
}

// Blur validates a single field as the user leaves it.
func (l *Login) Blur(field validate.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	next := l.errs.Clone()
	delete(next, field)
	if msg := l.check(field); msg != "" {
		next[field] = msg
	}
	l.errs = next
}

// check runs one field's rule. Caller holds mu.
func (l *Login) check(field validate.Field) string {
	switch field {
	case validate.FieldEmail:
		return validate.LoginID(l.email)
	case validate.FieldPassword:
		return validate.LoginPassword(l.password)
	}
	return ""
}

// Submit validates both fields and, when clean, exchanges them for a
// session token.
func (l *Login) Submit(ctx context.Context, fx Effects) error {
	l.mu.Lock()
	if err := l.begin(); err != nil {
		l.mu.Unlock()
		return err
	}
	errs := validate.Errors{}
	for _, f := range []validate.Field{validate.FieldEmail, validate.FieldPassword} {
		if msg := l.check(f); msg != "" {
			errs[f] = msg
		}
	}
	l.errs = errs
	if !errs.Empty() {
		l.state = StateIdle
		l.mu.Unlock()
		return ErrInvalid
	}
	l.state = StateSubmitting
	req := client.LoginRequest{Email: strings.TrimSpace(l.email), Password: l.password}
	l.mu.Unlock()

	resp, err := l.api.Login(ctx, req)
	if err == nil {
		err = l.sess.Begin(resp.Token)
	}

	l.mu.Lock()
	if err != nil {
		l.fail(err, MsgLoginFailed)
		l.mu.Unlock()
		l.logger.Warn("login failed", "error", err)
		return err
	}
	l.state = StateSucceeded
	l.password = ""
	l.mu.Unlock()

	fx.Notify(Notice{Level: NoticeSuccess, Text: MsgLoggedIn})
	fx.Navigate(RouteHome)
	return nil
}
