// ABOUTME: Synchronous validation rules for credential and profile forms
// ABOUTME: Produces field-scoped error maps that callers replace wholesale

package validate

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Field names a form input that can carry an error.
type Field string

const (
	FieldEmail           Field = "email"
	FieldPassword        Field = "password"
	FieldOldPassword     Field = "oldPassword"
	FieldNewPassword     Field = "newPassword"
	FieldConfirmPassword Field = "confirmPassword"
	FieldResume          Field = "resume"
	// FieldForm holds errors that belong to the whole form, such as a
	// missing-field guard on submit.
	FieldForm Field = "form"
)

// Password policy messages, in rule order.
const (
	MsgPasswordLength  = "Password must be at least 8 characters long."
	MsgPasswordUpper   = "Password must include at least one uppercase letter."
	MsgPasswordNumber  = "Password must include at least one number."
	MsgPasswordSpecial = "Password must include at least one special character."
)

const (
	MsgPasswordsDiffer   = "Passwords do not match"
	MsgAllFieldsRequired = "All fields are required"
	MsgConfirmMismatch   = "New password and confirm password do not match"
	MsgEmailRequired     = "Email is required"

	MsgLoginIDRequired  = "Email or username is required"
	MsgInvalidEmail     = "Please enter a valid email address"
	MsgPasswordRequired = "Password is required"

	MsgNameTooShort    = "Must be at least 2 characters"
	MsgInvalidUsername = "Username must be 3-20 characters and can only contain letters, numbers, and underscore"
	MsgInvalidPhone    = "Please enter a valid phone number"
)

// MinPasswordLength is counted in characters, not bytes.
const MinPasswordLength = 8

const passwordSpecialChars = "@$!%*#?&"

// MinNameLength applies to first and last names, in characters.
const MinNameLength = 2

var (
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)
	phonePattern    = regexp.MustCompile(`^\+?[\d\s-]{10,}$`)
)

// Errors maps a field to its single current message. A validation pass
// builds a fresh map; callers never merge into an old one.
type Errors map[Field]string

// Has reports whether f carries a message.
func (e Errors) Has(f Field) bool {
	return e[f] != ""
}

// Empty reports whether no field carries a message.
func (e Errors) Empty() bool {
	for _, msg := range e {
		if msg != "" {
			return false
		}
	}
	return true
}

// Clone returns an independent copy.
func (e Errors) Clone() Errors {
	out := make(Errors, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// Password returns the message for the first policy rule pw violates, or ""
// when it satisfies all of them. Length is counted in characters.
func Password(pw string) string {
	if utf8.RuneCountInString(pw) < MinPasswordLength {
		return MsgPasswordLength
	}
	if !strings.ContainsFunc(pw, func(r rune) bool { return r >= 'A' && r <= 'Z' }) {
		return MsgPasswordUpper
	}
	if !strings.ContainsFunc(pw, func(r rune) bool { return r >= '0' && r <= '9' }) {
		return MsgPasswordNumber
	}
	if !strings.ContainsAny(pw, passwordSpecialChars) {
		return MsgPasswordSpecial
	}
	return ""
}

// NewPasswordPair runs the keystroke pass for a new/confirm pair. The
// confirm mismatch is only reported once the confirm field has been touched.
func NewPasswordPair(newPassword, confirm string, confirmTouched bool) Errors {
	errs := Errors{}
	if newPassword != "" {
		if msg := Password(newPassword); msg != "" {
			errs[FieldNewPassword] = msg
		}
	}
	if confirmTouched && confirm != newPassword {
		errs[FieldConfirmPassword] = MsgPasswordsDiffer
	}
	return errs
}

// Email reports whether s looks like an address.
func Email(s string) bool {
	return emailPattern.MatchString(s)
}

// LoginID validates the login identifier, which may be an email or a
// username. Only values containing "@" are held to the address shape.
func LoginID(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return MsgLoginIDRequired
	}
	if strings.Contains(s, "@") && !Email(s) {
		return MsgInvalidEmail
	}
	return ""
}

// LoginPassword only requires a value; policy applies to new passwords.
func LoginPassword(s string) string {
	if s == "" {
		return MsgPasswordRequired
	}
	return ""
}

// Name checks a first or last name on the sign-up form.
func Name(s string) string {
	if utf8.RuneCountInString(s) < MinNameLength {
		return MsgNameTooShort
	}
	return ""
}

// Username checks a new account's username.
func Username(s string) string {
	if !usernamePattern.MatchString(s) {
		return MsgInvalidUsername
	}
	return ""
}

// AccountEmail checks the address a new account registers with. Unlike
// LoginID it always requires the address shape.
func AccountEmail(s string) string {
	if !Email(s) {
		return MsgInvalidEmail
	}
	return ""
}

// Phone accepts ten or more digits, spaces or dashes after an optional +.
func Phone(s string) string {
	if !phonePattern.MatchString(s) {
		return MsgInvalidPhone
	}
	return ""
}
