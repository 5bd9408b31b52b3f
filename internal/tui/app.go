// ABOUTME: Root bubbletea model for the TUI application
// ABOUTME: Manages screen state and routes keyboard input to the active flow

package tui

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/careervista/careervista-cli/internal/flows"
	"github.com/careervista/careervista-cli/internal/session"
	"github.com/careervista/careervista-cli/internal/storage"
	"github.com/careervista/careervista-cli/internal/tui/filepicker"
	"github.com/careervista/careervista-cli/internal/tui/form"
	"github.com/careervista/careervista-cli/internal/tui/menu"
	"github.com/careervista/careervista-cli/internal/tui/recentfiles"
	"github.com/careervista/careervista-cli/internal/tui/styles"
	"github.com/careervista/careervista-cli/internal/validate"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenHome Screen = iota
	ScreenLogin
	ScreenChangePassword
	ScreenForgotPassword
	ScreenResetPassword
	ScreenProfile
	ScreenResumePicker
	ScreenApplications
	ScreenSignUp
)

// Layout constants
const (
	minTerminalWidth = 80
	noticeLifetime   = 4 * time.Second
)

// Deps is everything the screens talk to.
type Deps struct {
	Auth     flows.AuthAPI
	Profiles flows.ProfileAPI
	Apps     flows.ApplicationsAPI
	Uploader flows.ResumeUploader
	Session  *session.Session
	Store    storage.Store
	Logger   *slog.Logger

	// DarkBackground decides the palette when the theme is "system".
	DarkBackground bool
}

// flowOp is one flow operation run off the UI goroutine.
type flowOp func(ctx context.Context, fx flows.Effects) error

// flowDoneMsg carries a finished operation's effects back to Update.
type flowDoneMsg struct {
	rec *flows.Recorder
	err error
}

// noticeExpiredMsg clears the notice it was scheduled for.
type noticeExpiredMsg struct {
	seq int
}

// App is the root model for the TUI
type App struct {
	ctx    context.Context
	deps   Deps
	log    *slog.Logger
	styles styles.Styles
	recent *recentfiles.RecentFiles

	screen  Screen
	width   int
	height  int
	spinner spinner.Model

	notice    *flows.Notice
	noticeSeq int
	pending   []tea.Cmd

	// inline runs flow operations inside Update instead of as commands.
	inline bool

	// Child models
	menu   *menu.Menu
	form   *form.Form
	picker *filepicker.FilePicker

	// Flow state for the active screen
	login     *flows.Login
	signUp    *flows.SignUp
	changePw  *flows.ChangePassword
	resetReq  *flows.ResetRequest
	reset     *flows.Reset
	profile   *flows.ProfileEditor
	apps      *flows.Applications
	appCursor int
	linkErr   string
}

// New creates the TUI on the home screen.
func New(ctx context.Context, deps Deps) *App {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	a := &App{
		ctx:     ctx,
		deps:    deps,
		log:     deps.Logger,
		recent:  recentfiles.New(deps.Store),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	a.applyTheme()
	a.showHome()
	a.pending = nil
	return a
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.menu.Init(), a.spinner.Tick)
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.form != nil {
			a.form.SetWidth(a.contentWidth())
		}
		if a.picker != nil {
			a.picker.Update(msg)
		}
		if a.menu != nil {
			a.menu.Update(msg)
		}
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "ctrl+t":
			a.cycleTheme()
			return a, a.takePending()
		}
		return a, a.routeKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case flowDoneMsg:
		return a, a.finish(msg)

	case noticeExpiredMsg:
		if msg.seq == a.noticeSeq {
			a.notice = nil
		}
		return a, nil

	case menu.SelectedMsg:
		a.handleMenu(msg.Choice)
		return a, a.takePending()

	case filepicker.FileSelectedMsg:
		return a, a.handleResumePicked(msg)

	case filepicker.CancelledMsg:
		a.picker = nil
		a.screen = ScreenProfile
		return a, nil
	}

	// huh and textinput internals
	switch {
	case a.screen == ScreenHome && a.menu != nil:
		_, cmd := a.menu.Update(msg)
		return a, cmd
	case a.form != nil:
		return a, a.form.Forward(msg)
	}
	return a, nil
}

// routeKey sends a key to the active screen.
func (a *App) routeKey(msg tea.KeyMsg) tea.Cmd {
	switch a.screen {
	case ScreenHome:
		if a.menu == nil {
			return nil
		}
		_, cmd := a.menu.Update(msg)
		return cmd
	case ScreenLogin, ScreenSignUp, ScreenChangePassword, ScreenResetPassword:
		return a.updateForm(msg)
	case ScreenForgotPassword:
		if _, sent := a.resetReq.Sent(); sent {
			return a.updateLinkSent(msg)
		}
		return a.updateForm(msg)
	case ScreenProfile:
		return a.updateProfile(msg)
	case ScreenResumePicker:
		if a.picker == nil {
			return nil
		}
		_, cmd := a.picker.Update(msg)
		return cmd
	case ScreenApplications:
		return a.updateApplications(msg)
	}
	return nil
}

// formFlow is what the form screens share.
type formFlow interface {
	State() flows.State
	Errors() validate.Errors
	Banner() string
	Visible(validate.Field) bool
	ToggleVisibility(validate.Field) bool
}

// activeFlow is the flow behind the current form screen, if any.
func (a *App) activeFlow() formFlow {
	switch a.screen {
	case ScreenLogin:
		return a.login
	case ScreenSignUp:
		return a.signUp
	case ScreenChangePassword:
		return a.changePw
	case ScreenForgotPassword:
		return a.resetReq
	case ScreenResetPassword:
		return a.reset
	case ScreenProfile:
		return a.profile
	}
	return nil
}

func (a *App) updateForm(msg tea.KeyMsg) tea.Cmd {
	flow := a.activeFlow()
	if flow == nil || a.form == nil {
		return nil
	}
	if flow.State() == flows.StateSubmitting {
		return nil
	}

	switch msg.String() {
	case "esc":
		a.goTo(flows.RouteHome)
		return a.takePending()
	case "ctrl+r":
		if a.form.FocusedSecret() {
			flow.ToggleVisibility(a.form.Focused())
			for _, field := range a.form.Secrets() {
				a.form.SetVisible(field, flow.Visible(field))
			}
		}
		return nil
	}

	ev, cmd := a.form.Update(msg)
	if ev.Changed {
		a.setField(ev.Field, ev.Value)
	}
	if ev.Blurred != "" {
		switch a.screen {
		case ScreenLogin:
			a.login.Blur(ev.Blurred)
		case ScreenSignUp:
			a.signUp.Blur(ev.Blurred)
		}
	}
	if ev.Submit {
		return tea.Batch(cmd, a.submit())
	}
	return cmd
}

func (a *App) setField(field validate.Field, value string) {
	switch a.screen {
	case ScreenLogin:
		a.login.SetField(field, value)
	case ScreenSignUp:
		a.signUp.SetField(field, value)
	case ScreenChangePassword:
		a.changePw.SetField(field, value)
	case ScreenForgotPassword:
		a.resetReq.SetEmail(value)
	case ScreenResetPassword:
		a.reset.SetField(field, value)
	case ScreenProfile:
		if err := a.profile.SetField(field, value); err != nil {
			a.log.Warn("profile field rejected", "field", string(field), "error", err)
		}
	}
}

func (a *App) submit() tea.Cmd {
	switch a.screen {
	case ScreenLogin:
		return a.run(a.login.Submit)
	case ScreenSignUp:
		return a.run(a.signUp.Submit)
	case ScreenChangePassword:
		return a.run(a.changePw.Submit)
	case ScreenForgotPassword:
		return a.run(a.resetReq.Submit)
	case ScreenResetPassword:
		return a.run(a.reset.Submit)
	case ScreenProfile:
		return a.run(a.profile.Submit)
	}
	return nil
}

// updateLinkSent handles the panel shown after a reset link went out.
// Enter stands in for opening the emailed link.
func (a *App) updateLinkSent(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		a.goTo(flows.RouteHome)
	case "enter":
		email, _ := a.resetReq.Sent()
		if err := flows.ConfirmLink(a.deps.Session, email, a.fx()); err != nil {
			a.linkErr = err.Error()
		}
	}
	return a.takePending()
}

func (a *App) updateProfile(msg tea.KeyMsg) tea.Cmd {
	if a.profile == nil || !a.profile.Loaded() {
		if msg.String() == "esc" {
			a.goTo(flows.RouteHome)
			return a.takePending()
		}
		return nil
	}

	if !a.profile.Editing() {
		switch msg.String() {
		case "e":
			a.profile.Edit()
			a.form = profileForm(a.profile)
			a.form.SetWidth(a.contentWidth())
			return a.form.Init()
		case "esc", "b":
			a.goTo(flows.RouteHome)
			return a.takePending()
		}
		return nil
	}

	if a.profile.State() == flows.StateSubmitting {
		return nil
	}
	switch msg.String() {
	case "esc":
		a.profile.Cancel()
		a.form = nil
		return nil
	case "ctrl+s":
		return a.submit()
	case "ctrl+u":
		a.picker = filepicker.New(a.recent.Load(), a.styles)
		a.picker.Update(tea.WindowSizeMsg{Width: a.contentWidth(), Height: a.height})
		a.screen = ScreenResumePicker
		return nil
	}
	return a.updateForm(msg)
}

func (a *App) handleResumePicked(msg filepicker.FileSelectedMsg) tea.Cmd {
	a.picker = nil
	a.screen = ScreenProfile
	if err := a.recent.Add(msg.Path); err != nil {
		a.log.Warn("could not remember resume path", "error", err)
	}
	editor := a.profile
	name := filepath.Base(msg.Path)
	return a.run(func(ctx context.Context, fx flows.Effects) error {
		return editor.AttachResume(ctx, name, msg.Data, fx)
	})
}

func (a *App) updateApplications(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "esc" || msg.String() == "b" {
		a.goTo(flows.RouteHome)
		return a.takePending()
	}
	if a.apps == nil || !a.apps.Loaded() {
		return nil
	}
	items := a.apps.Items()
	switch msg.String() {
	case "up", "k":
		if a.appCursor > 0 {
			a.appCursor--
		}
	case "down", "j":
		if a.appCursor < len(items)-1 {
			a.appCursor++
		}
	case "enter", " ":
		if a.appCursor < len(items) {
			a.apps.Toggle(items[a.appCursor].ApplicationID)
		}
	}
	return nil
}

func (a *App) handleMenu(choice menu.Choice) {
	switch choice {
	case menu.ChoiceLogin:
		a.goTo(flows.RouteLogin)
	case menu.ChoiceSignUp:
		a.goTo(flows.RouteSignUp)
	case menu.ChoiceForgotPassword:
		a.goTo(flows.RouteForgotPassword)
	case menu.ChoiceProfile:
		a.goTo(flows.RouteProfile)
	case menu.ChoiceApplications:
		a.goTo(flows.RouteApplications)
	case menu.ChoiceChangePassword:
		a.goTo(flows.RouteChangePassword)
	case menu.ChoiceTheme:
		a.cycleTheme()
		a.showHome()
	case menu.ChoiceLogout:
		a.pending = append(a.pending, a.run(a.signOut))
		a.showHome()
	case menu.ChoiceQuit:
		a.pending = append(a.pending, tea.Quit)
	}
}

// signOut revokes the session. A failed revoke still leaves the user
// signed out locally, so home is shown either way.
func (a *App) signOut(ctx context.Context, fx flows.Effects) error {
	err := flows.SignOut(ctx, a.deps.Auth, a.deps.Session, a.log, fx)
	if err != nil {
		fx.Navigate(flows.RouteHome)
	}
	return err
}

// goTo switches screens. Loading screens queue their fetch.
func (a *App) goTo(route flows.Route) {
	a.form = nil
	a.picker = nil
	a.linkErr = ""

	switch route {
	case flows.RouteHome:
		a.showHome()
	case flows.RouteLogin:
		a.login = flows.NewLogin(a.deps.Auth, a.deps.Session, a.log)
		a.openForm(ScreenLogin, loginFields...)
	case flows.RouteSignUp:
		a.signUp = flows.NewSignUp(a.log)
		a.openForm(ScreenSignUp, signUpFields...)
		a.form.SetValue(flows.FieldGender, a.signUp.Value(flows.FieldGender))
	case flows.RouteChangePassword:
		cp := flows.NewChangePassword(a.deps.Auth, a.deps.Session, a.log)
		if !cp.Mount(a.fx()) {
			return
		}
		a.changePw = cp
		a.openForm(ScreenChangePassword, changePasswordFields...)
	case flows.RouteForgotPassword:
		a.resetReq = flows.NewResetRequest(a.deps.Auth, a.log)
		a.openForm(ScreenForgotPassword, forgotFields...)
	case flows.RouteResetPassword:
		r := flows.NewReset(a.deps.Auth, a.deps.Session, a.log)
		if !r.Mount(a.fx()) {
			return
		}
		a.reset = r
		a.openForm(ScreenResetPassword, resetFields...)
	case flows.RouteProfile:
		a.profile = flows.NewProfileEditor(a.deps.Profiles, a.deps.Uploader, a.deps.Session, a.log)
		a.screen = ScreenProfile
		a.pending = append(a.pending, a.run(a.profile.Load))
	case flows.RouteApplications:
		a.apps = flows.NewApplications(a.deps.Apps, a.deps.Session, a.log)
		a.appCursor = 0
		a.screen = ScreenApplications
		a.pending = append(a.pending, a.run(a.apps.Load))
	default:
		a.log.Warn("unknown route", "route", string(route))
		a.showHome()
	}
}

func (a *App) openForm(screen Screen, fields ...form.Field) {
	a.screen = screen
	a.form = form.New(fields...)
	a.form.SetWidth(a.contentWidth())
	a.pending = append(a.pending, a.form.Init())
}

func (a *App) showHome() {
	a.screen = ScreenHome
	a.form = nil
	a.picker = nil
	a.menu = menu.New(a.deps.Session.Authenticated(), a.styles.Huh())
	a.pending = append(a.pending, a.menu.Init())
}

func (a *App) applyTheme() {
	a.styles = styles.New(styles.PaletteFor(a.deps.Session.Theme(), a.deps.DarkBackground))
	a.spinner.Style = lipgloss.NewStyle().Foreground(a.styles.Palette.Primary)
}

func (a *App) cycleTheme() {
	t, err := a.deps.Session.CycleTheme()
	if err != nil {
		a.log.Warn("could not save theme", "error", err)
		return
	}
	a.applyTheme()
	if a.screen == ScreenHome {
		a.showHome()
	}
	a.notify(flows.Notice{Level: flows.NoticeInfo, Text: "Theme: " + string(t)})
}

// run executes op as a command whose effects are replayed by finish.
func (a *App) run(op flowOp) tea.Cmd {
	exec := func() tea.Msg {
		rec := &flows.Recorder{}
		err := op(a.ctx, rec)
		return flowDoneMsg{rec: rec, err: err}
	}
	if a.inline {
		return a.finish(exec().(flowDoneMsg))
	}
	return exec
}

func (a *App) finish(msg flowDoneMsg) tea.Cmd {
	if msg.err != nil && !errors.Is(msg.err, flows.ErrInvalid) {
		a.log.Debug("flow finished with error", "error", msg.err)
	}
	msg.rec.Replay(a.fx())
	if a.screen == ScreenProfile && a.profile != nil && !a.profile.Editing() {
		a.form = nil
	}
	return a.takePending()
}

func (a *App) takePending() tea.Cmd {
	cmds := a.pending
	a.pending = nil
	return tea.Batch(cmds...)
}

func (a *App) notify(n flows.Notice) {
	a.noticeSeq++
	seq := a.noticeSeq
	a.notice = &n
	a.pending = append(a.pending, tea.Tick(noticeLifetime, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	}))
}

func (a *App) fx() flows.Effects {
	return appEffects{a}
}

// appEffects applies flow effects to the app on the UI goroutine.
type appEffects struct {
	a *App
}

func (e appEffects) Notify(n flows.Notice) {
	e.a.notify(n)
}

func (e appEffects) Navigate(to flows.Route) {
	e.a.goTo(to)
}

// Run starts the TUI
func Run(ctx context.Context, deps Deps) error {
	p := tea.NewProgram(
		New(ctx, deps),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	return err
}
