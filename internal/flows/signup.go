// ABOUTME: Sign-up form: per-field checks on blur and a full pass on submit
// ABOUTME: The backend has no registration call, so a clean form is only acknowledged

package flows

import (
	"context"
	"log/slog"
	"strings"

	"github.com/careervista/careervista-cli/internal/validate"
)

const (
	MsgSignUpChecked = "Your details look good, but accounts cannot be created from this client yet."
	MsgInvalidGender = "Gender must be male, female or other"
	DefaultGender    = "male"
)

// Genders lists the accepted gender values, default first.
var Genders = []string{"male", "female", "other"}

// SignUpFields lists the sign-up inputs in form order. Address is optional
// and is never checked.
var SignUpFields = []validate.Field{
	FieldFirstName, FieldLastName, FieldUsername, validate.FieldEmail,
	FieldPhone, FieldAddress, FieldGender,
	validate.FieldPassword, validate.FieldConfirmPassword,
}

// SignUp holds the registration form.
type SignUp struct {
	formState

	values map[validate.Field]string
}

func NewSignUp(logger *slog.Logger) *SignUp {
	s := &SignUp{values: map[validate.Field]string{FieldGender: DefaultGender}}
	s.init(logger)
	return s
}

func (s *SignUp) Value(field validate.Field) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[field]
}

// SetField stores a keystroke and drops that field's error.
func (s *SignUp) SetField(field validate.Field, value string) {
	if !signUpField(field) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[field] = value
	next := s.errs.Clone()
	delete(next, field)
	s.errs = next
	s.typed()
}

// Blur validates a single field as the user leaves it.
func (s *SignUp) Blur(field validate.Field) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.errs.Clone()
	delete(next, field)
	if msg := s.check(field); msg != "" {
		next[field] = msg
	}
	s.errs = next
}

// Visible reports the shared mask of the two password fields.
func (s *SignUp) Visible(field validate.Field) bool {
	return s.formState.Visible(maskOf(field))
}

// ToggleVisibility flips both password fields together.
func (s *SignUp) ToggleVisibility(field validate.Field) bool {
	return s.formState.ToggleVisibility(maskOf(field))
}

func maskOf(field validate.Field) validate.Field {
	if field == validate.FieldConfirmPassword {
		return validate.FieldPassword
	}
	return field
}

func signUpField(field validate.Field) bool {
	for _, f := range SignUpFields {
		if f == field {
			return true
		}
	}
	return false
}

// check runs one field's rule. Caller holds mu.
func (s *SignUp) check(field validate.Field) string {
	v := s.values[field]
	switch field {
	case FieldFirstName, FieldLastName:
		return validate.Name(v)
	case FieldUsername:
		return validate.Username(v)
	case validate.FieldEmail:
		return validate.AccountEmail(v)
	case FieldPhone:
		return validate.Phone(v)
	case FieldGender:
		for _, g := range Genders {
			if strings.EqualFold(strings.TrimSpace(v), g) {
				return ""
			}
		}
		return MsgInvalidGender
	case validate.FieldPassword:
		return validate.Password(v)
	case validate.FieldConfirmPassword:
		if v != s.values[validate.FieldPassword] {
			return validate.MsgPasswordsDiffer
		}
	}
	return ""
}

// Submit checks every field. A clean form is logged without its password
// and acknowledged with an info notice; nothing is sent anywhere.
func (s *SignUp) Submit(_ context.Context, fx Effects) error {
	s.mu.Lock()
	if err := s.begin(); err != nil {
		s.mu.Unlock()
		return err
	}
	errs := validate.Errors{}
	for _, f := range SignUpFields {
		if msg := s.check(f); msg != "" {
			errs[f] = msg
		}
	}
	s.errs = errs
	if !errs.Empty() {
		s.state = StateIdle
		s.mu.Unlock()
		return ErrInvalid
	}
	s.state = StateSucceeded
	attrs := []any{
		"username", s.values[FieldUsername],
		"email", strings.TrimSpace(s.values[validate.FieldEmail]),
		"gender", strings.ToLower(strings.TrimSpace(s.values[FieldGender])),
	}
	s.mu.Unlock()

	s.logger.Info("sign-up form accepted", attrs...)
	fx.Notify(Notice{Level: NoticeInfo, Text: MsgSignUpChecked})
	return nil
}
