// ABOUTME: Home screen menu embedded as a bubbletea model
// ABOUTME: Offers different destinations depending on whether you are signed in

package menu

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// Choice is a home screen destination or action.
type Choice int

const (
	ChoiceLogin Choice = iota
	ChoiceForgotPassword
	ChoiceProfile
	ChoiceApplications
	ChoiceChangePassword
	ChoiceTheme
	ChoiceLogout
	ChoiceQuit
	ChoiceSignUp
)

// SelectedMsg is sent when a choice is confirmed
type SelectedMsg struct {
	Choice Choice
}

type option struct {
	label string
	value Choice
}

// options lists what the home screen offers.
func options(authenticated bool) []option {
	if authenticated {
		return []option{
			{"My profile", ChoiceProfile},
			{"My applications", ChoiceApplications},
			{"Change password", ChoiceChangePassword},
			{"Switch theme", ChoiceTheme},
			{"Log out", ChoiceLogout},
			{"Quit", ChoiceQuit},
		}
	}
	return []option{
		{"Log in", ChoiceLogin},
		{"Sign up", ChoiceSignUp},
		{"Forgot password", ChoiceForgotPassword},
		{"Switch theme", ChoiceTheme},
		{"Quit", ChoiceQuit},
	}
}

// Menu wraps a huh select.
type Menu struct {
	form     *huh.Form
	selected Choice
	options  []option
}

// New builds the menu for the current sign-in state.
func New(authenticated bool, theme *huh.Theme) *Menu {
	m := &Menu{options: options(authenticated)}
	m.selected = m.options[0].value

	opts := make([]huh.Option[Choice], 0, len(m.options))
	for _, o := range m.options {
		opts = append(opts, huh.NewOption(o.label, o.value))
	}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[Choice]().
				Title("What would you like to do?").
				Options(opts...).
				Value(&m.selected),
		),
	).WithTheme(theme).WithShowHelp(false)
	return m
}

// Init implements tea.Model
func (m *Menu) Init() tea.Cmd {
	return m.form.Init()
}

// Update implements tea.Model
func (m *Menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	if m.form.State == huh.StateCompleted {
		choice := m.selected
		return m, func() tea.Msg { return SelectedMsg{Choice: choice} }
	}
	return m, cmd
}

// View implements tea.Model
func (m *Menu) View() string {
	return m.form.View()
}

// Selected is the highlighted choice.
func (m *Menu) Selected() Choice {
	return m.selected
}

// String returns a short name for the choice
func (c Choice) String() string {
	switch c {
	case ChoiceLogin:
		return "login"
	case ChoiceForgotPassword:
		return "forgot-password"
	case ChoiceProfile:
		return "profile"
	case ChoiceApplications:
		return "applications"
	case ChoiceChangePassword:
		return "change-password"
	case ChoiceTheme:
		return "theme"
	case ChoiceLogout:
		return "logout"
	case ChoiceQuit:
		return "quit"
	case ChoiceSignUp:
		return "signup"
	default:
		return "unknown"
	}
}
