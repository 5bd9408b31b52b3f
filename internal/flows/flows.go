// ABOUTME: Shared plumbing for form flows: routes, notices, effects and state
// ABOUTME: Flows emit effects in order so callers can replay them on the UI loop

package flows

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/careervista/careervista-cli/internal/client"
	"github.com/careervista/careervista-cli/internal/session"
	"github.com/careervista/careervista-cli/internal/validate"
)

// Route names a screen.
type Route string

const (
	RouteHome           Route = "home"
	RouteLogin          Route = "login"
	RouteChangePassword Route = "change-password"
	RouteForgotPassword Route = "forgot-password"
	RouteResetPassword  Route = "reset-password"
	RouteProfile        Route = "profile"
	RouteApplications   Route = "applications"
	RouteSignUp         Route = "signup"
)

// NoticeLevel picks how a notice is rendered.
type NoticeLevel int

const (
	NoticeSuccess NoticeLevel = iota
	NoticeInfo
	NoticeError
)

// Notice is a transient confirmation shown outside the form.
type Notice struct {
	Level NoticeLevel
	Text  string
}

// Effects receives the side effects of a flow. Calls arrive in the order
// the flow performed them.
type Effects interface {
	Notify(Notice)
	Navigate(Route)
}

// State is the lifecycle of a submit.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateSubmitting
	StateSucceeded
)

func (s State) String() string {
	switch s {
	case StateValidating:
		return "validating"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	default:
		return "idle"
	}
}

var (
	// ErrInvalid means client-side validation blocked the submit. Details
	// are in the form's error map.
	ErrInvalid = errors.New("validation failed")
	// ErrBusy means a submit is already in flight.
	ErrBusy = errors.New("request already in progress")
)

// AuthAPI is the slice of the backend the credential flows call.
type AuthAPI interface {
	Login(ctx context.Context, in client.LoginRequest) (*client.LoginResponse, error)
	Logout(ctx context.Context) error
	ChangePassword(ctx context.Context, in client.ChangePasswordRequest) error
	ForgotPassword(ctx context.Context, in client.ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, in client.ResetPasswordRequest) error
}

// SessionState is what flows read and write on the session.
type SessionState interface {
	Token() (string, bool)
	Identity() (session.Identity, error)
	Begin(token string) error
	Clear() error
	DropToken() error
	ResetEmail() (string, bool)
	SetResetEmail(email string) error
	ClearResetEmail() error
}

// bannerFor prefers the server's message over the fallback.
func bannerFor(err error, fallback string) string {
	if msg := client.ServerMessage(err); msg != "" {
		return msg
	}
	return fallback
}

// formState carries what every form has: a lock, a lifecycle state, the
// field error map, a banner and per-field visibility toggles.
type formState struct {
	mu      sync.Mutex
	state   State
	errs    validate.Errors
	banner  string
	visible map[validate.Field]bool
	logger  *slog.Logger
}

func (f *formState) init(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	f.errs = validate.Errors{}
	f.visible = map[validate.Field]bool{}
	f.logger = logger
}

func (f *formState) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Errors returns a copy of the current field errors.
func (f *formState) Errors() validate.Errors {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errs.Clone()
}

func (f *formState) Banner() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.banner
}

// Visible reports whether a masked field is currently shown in clear.
func (f *formState) Visible(field validate.Field) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.visible[field]
}

// ToggleVisibility flips one field's mask without touching the others.
func (f *formState) ToggleVisibility(field validate.Field) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.visible[field] = !f.visible[field]
	return f.visible[field]
}

// begin moves into Validating unless a request is already out. Caller
// holds mu.
func (f *formState) begin() error {
	if f.state == StateSubmitting {
		return ErrBusy
	}
	f.state = StateValidating
	f.banner = ""
	return nil
}

// typed marks the form as being edited. A submit in flight keeps its
// state. Caller holds mu.
func (f *formState) typed() {
	if f.state != StateSubmitting {
		f.state = StateValidating
	}
}

// fail settles a failed submit back to Idle with a banner. Caller holds mu.
func (f *formState) fail(err error, fallback string) {
	f.state = StateIdle
	f.banner = bannerFor(err, fallback)
}

// Recorder is an Effects that keeps every call, in order.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Event is one recorded effect. Exactly one of Notice or Route is set.
type Event struct {
	Notice *Notice
	Route  Route
}

func (r *Recorder) Notify(n Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Event{Notice: &n})
}

func (r *Recorder) Navigate(to Route) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Event{Route: to})
}

// Events returns a copy of what has been recorded so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Replay forwards the recorded effects, in order, to fx.
func (r *Recorder) Replay(fx Effects) {
	for _, ev := range r.Events() {
		if ev.Notice != nil {
			fx.Notify(*ev.Notice)
			continue
		}
		fx.Navigate(ev.Route)
	}
}

// Discard is an Effects that drops everything.
type Discard struct{}

func (Discard) Notify(Notice)  {}
func (Discard) Navigate(Route) {}
