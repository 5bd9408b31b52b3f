// ABOUTME: Screen rendering for the TUI: forms, profile, applications and frame
// ABOUTME: Views only read flow state; they never change it

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/careervista/careervista-cli/internal/client"
	"github.com/careervista/careervista-cli/internal/flows"
	"github.com/careervista/careervista-cli/internal/tui/form"
	"github.com/careervista/careervista-cli/internal/tui/icons"
	"github.com/careervista/careervista-cli/internal/tui/widgets"
	"github.com/careervista/careervista-cli/internal/validate"
)

var (
	loginFields = []form.Field{
		{Key: validate.FieldEmail, Label: "Email or username", Placeholder: "you@example.com"},
		{Key: validate.FieldPassword, Label: "Password", Secret: true},
	}
	signUpFields = []form.Field{
		{Key: flows.FieldFirstName, Label: "First name"},
		{Key: flows.FieldLastName, Label: "Last name"},
		{Key: flows.FieldUsername, Label: "Username", Placeholder: "letters, numbers and _", CharLimit: 20},
		{Key: validate.FieldEmail, Label: "Email", Placeholder: "you@example.com"},
		{Key: flows.FieldPhone, Label: "Phone number", Placeholder: "+1 555 123 4567"},
		{Key: flows.FieldAddress, Label: "Address (optional)"},
		{Key: flows.FieldGender, Label: "Gender", Placeholder: "male, female or other"},
		{Key: validate.FieldPassword, Label: "Password", Secret: true},
		{Key: validate.FieldConfirmPassword, Label: "Confirm password", Secret: true},
	}
	changePasswordFields = []form.Field{
		{Key: validate.FieldOldPassword, Label: "Current password", Secret: true},
		{Key: validate.FieldNewPassword, Label: "New password", Secret: true},
		{Key: validate.FieldConfirmPassword, Label: "Confirm new password", Secret: true},
	}
	forgotFields = []form.Field{
		{Key: validate.FieldEmail, Label: "Email", Placeholder: "you@example.com"},
	}
	resetFields = []form.Field{
		{Key: validate.FieldNewPassword, Label: "New password", Secret: true},
		{Key: validate.FieldConfirmPassword, Label: "Confirm new password", Secret: true},
	}
)

var profileLabels = map[validate.Field]string{
	flows.FieldUsername:     "Username",
	flows.FieldFirstName:    "First name",
	flows.FieldLastName:     "Last name",
	flows.FieldProfileEmail: "Email",
	flows.FieldPhone:        "Phone",
	flows.FieldAddress:      "Address",
	flows.FieldGender:       "Gender",
	flows.FieldResumeURL:    "Resume",
}

// profileForm builds the edit form prefilled from the editor's buffer.
// Email and resume are not typed in.
func profileForm(p *flows.ProfileEditor) *form.Form {
	var fields []form.Field
	for _, f := range flows.ProfileFields {
		if f == flows.FieldProfileEmail || f == flows.FieldResumeURL {
			continue
		}
		fields = append(fields, form.Field{Key: f, Label: profileLabels[f]})
	}
	fm := form.New(fields...)
	prof := p.Profile()
	for _, f := range fields {
		fm.SetValue(f.Key, flows.FieldValue(prof, f.Key))
	}
	return fm
}

// View implements tea.Model
func (a *App) View() string {
	var content string

	switch a.screen {
	case ScreenHome:
		content = a.viewHome()
	case ScreenLogin:
		content = a.viewForm(icons.Lock.String()+" Log in", "Sign in with your email or username.")
	case ScreenSignUp:
		content = a.viewForm(icons.Lock.String()+" Sign up", "Create an account to start your professional journey.")
	case ScreenChangePassword:
		content = a.viewForm(icons.Key.String()+" Change password",
			"At least 8 characters with an uppercase letter, a number and a special character.")
	case ScreenForgotPassword:
		content = a.viewForgot()
	case ScreenResetPassword:
		content = a.viewReset()
	case ScreenProfile:
		content = a.viewProfile()
	case ScreenResumePicker:
		if a.picker != nil {
			content = a.picker.View()
		}
	case ScreenApplications:
		content = a.viewApplications()
	}

	return a.wrapWithFrame(content)
}

func (a *App) viewHome() string {
	var b strings.Builder
	if id, err := a.deps.Session.Identity(); err == nil {
		b.WriteString(a.styles.Subtitle.Render("Welcome back, " + id.Email))
	} else {
		b.WriteString(a.styles.Subtitle.Render("Find your next role. Log in to see your profile and applications."))
	}
	b.WriteString("\n")
	if a.menu != nil {
		b.WriteString(a.menu.View())
	}
	return b.String()
}

// viewForm renders the active form with its banner and state.
func (a *App) viewForm(title, subtitle string) string {
	flow := a.activeFlow()
	if flow == nil || a.form == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(a.styles.Title.Render(title))
	b.WriteString("\n")
	if subtitle != "" {
		b.WriteString(a.styles.Subtitle.Render(subtitle))
		b.WriteString("\n")
	}

	errs := flow.Errors()
	if msg := errs[validate.FieldForm]; msg != "" {
		b.WriteString(a.styles.Error.Render(msg))
		b.WriteString("\n\n")
	}
	if banner := flow.Banner(); banner != "" {
		b.WriteString(widgets.StatusText(banner, widgets.StatusCritical))
		b.WriteString("\n\n")
	}

	b.WriteString(a.form.View(errs, a.styles))
	if flow.State() == flows.StateSubmitting {
		b.WriteString("\n\n")
		b.WriteString(a.spinner.View() + " " + a.styles.Label.Render("Submitting..."))
	}
	return b.String()
}

func (a *App) viewForgot() string {
	email, sent := a.resetReq.Sent()
	if !sent {
		return a.viewForm(icons.Mail.String()+" Forgot password", "We'll email you a link to reset it.")
	}

	var b strings.Builder
	b.WriteString(a.styles.Title.Render(icons.Mail.String() + " Check your inbox"))
	b.WriteString("\n")
	b.WriteString(widgets.StatusText(flows.MsgResetLinkSent, widgets.StatusOK))
	b.WriteString("\n\n")
	b.WriteString("We sent a reset link to " + a.styles.Value.Render(email) + ".\n")
	b.WriteString(a.styles.Label.Render("Press Enter once you have opened the link."))
	if a.linkErr != "" {
		b.WriteString("\n\n")
		b.WriteString(a.styles.Error.Render(a.linkErr))
	}
	return b.String()
}

func (a *App) viewReset() string {
	subtitle := ""
	if email, ok := a.reset.Email(); ok {
		subtitle = "Resetting the password for " + email
	}
	return a.viewForm(icons.Key.String()+" Reset password", subtitle)
}

func (a *App) viewProfile() string {
	p := a.profile
	if p == nil {
		return ""
	}
	if !p.Loaded() {
		if banner := p.Banner(); banner != "" {
			return widgets.StatusText(banner, widgets.StatusCritical)
		}
		return a.spinner.View() + " " + a.styles.Label.Render("Loading profile...")
	}

	var b strings.Builder
	b.WriteString(a.styles.Title.Render(icons.User.String() + " My profile"))
	b.WriteString("\n")

	cfg := widgets.DefaultProgressBarConfig()
	cfg.Width = 24
	b.WriteString(a.styles.Label.Render("Profile completion "))
	b.WriteString(widgets.ProgressBarWithLabel(float64(p.Completion()), cfg))
	b.WriteString("\n\n")

	if p.Editing() && a.form != nil {
		return b.String() + a.viewProfileEdit()
	}

	if banner := p.Banner(); banner != "" {
		b.WriteString(widgets.StatusText(banner, widgets.StatusCritical))
		b.WriteString("\n\n")
	}
	prof := p.Profile()
	for _, f := range flows.ProfileFields {
		b.WriteString(a.styles.Label.Render(fmt.Sprintf("%-11s", profileLabels[f]+":")))
		b.WriteString(" ")
		b.WriteString(a.profileValue(prof, f))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (a *App) viewProfileEdit() string {
	p := a.profile
	var b strings.Builder
	if banner := p.Banner(); banner != "" {
		b.WriteString(widgets.StatusText(banner, widgets.StatusCritical))
		b.WriteString("\n\n")
	}

	prof := p.Profile()
	b.WriteString(a.styles.Label.Render("Email (cannot be changed): "))
	b.WriteString(prof.Email)
	b.WriteString("\n\n")
	errs := p.Errors()
	b.WriteString(a.form.View(errs, a.styles))
	b.WriteString("\n\n")

	b.WriteString(a.styles.Label.Render("Resume: "))
	switch {
	case p.Uploading():
		b.WriteString(a.spinner.View() + " Uploading...")
	default:
		b.WriteString(a.profileValue(prof, flows.FieldResumeURL))
	}
	if msg := errs[validate.FieldResume]; msg != "" {
		b.WriteString("\n")
		b.WriteString(a.styles.Error.Render("  " + msg))
	}
	if p.State() == flows.StateSubmitting {
		b.WriteString("\n\n")
		b.WriteString(a.spinner.View() + " " + a.styles.Label.Render("Saving..."))
	}
	return b.String()
}

func (a *App) profileValue(prof client.Profile, f validate.Field) string {
	v := flows.FieldValue(prof, f)
	switch {
	case f == flows.FieldResumeURL && v == "":
		return a.styles.Label.Render(flows.MsgResumeNotUploaded)
	case f == flows.FieldResumeURL:
		return a.styles.Link.Render(v)
	case v == "":
		return a.styles.Label.Render("-")
	}
	return v
}

// treatmentLevel maps a status treatment onto a badge color.
func treatmentLevel(t flows.Treatment) widgets.StatusLevel {
	switch t {
	case flows.TreatmentPending:
		return widgets.StatusWarning
	case flows.TreatmentContacted:
		return widgets.StatusOK
	case flows.TreatmentRejected:
		return widgets.StatusCritical
	}
	return widgets.StatusNeutral
}

func (a *App) viewApplications() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render(icons.Briefcase.String() + " My applications"))
	b.WriteString("\n")

	v := a.apps
	switch {
	case v == nil:
		return b.String()
	case !v.Loaded() && v.Banner() == "":
		return b.String() + a.spinner.View() + " " + a.styles.Label.Render("Loading applications...")
	case v.Banner() != "":
		return b.String() + widgets.StatusText(v.Banner(), widgets.StatusCritical)
	}

	items := v.Items()
	if len(items) == 0 {
		return b.String() + a.styles.Label.Render(flows.MsgNoApplications)
	}

	for i, app := range items {
		expanded := v.Expanded(app.ApplicationID)
		marker := icons.Collapse.String()
		if expanded {
			marker = icons.Expand.String()
		}
		title := app.JobTitle + " at " + app.CompanyName
		if i == a.appCursor {
			b.WriteString("> " + marker + " " + a.styles.Selected.Render(title))
		} else {
			b.WriteString("  " + marker + " " + a.styles.Value.Render(title))
		}
		b.WriteString("  " + widgets.Badge(app.Status, treatmentLevel(flows.StatusTreatment(app.Status))))
		b.WriteString("\n")
		b.WriteString(a.styles.Label.Render(fmt.Sprintf("    Applied on %s • Application ID: %s...",
			flows.FormatAppliedAt(app.AppliedAt), app.ShortID())))
		b.WriteString("\n")

		if expanded {
			b.WriteString(a.viewDetails(app))
		}
		if i < len(items)-1 {
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (a *App) viewDetails(app client.JobApplication) string {
	var b strings.Builder
	for _, section := range flows.DetailSections(app) {
		b.WriteString("    " + a.styles.Selected.Render(section.Title) + "\n")
		for _, f := range section.Fields {
			value := f.Value
			if f.Link {
				value = a.styles.Link.Render(value)
			}
			b.WriteString("      " + a.styles.Label.Render(f.Label+":") + " " + value + "\n")
		}
	}
	return b.String()
}

// frameWidth is the drawn width; one column short of the terminal so
// the right border never wraps.
func (a *App) frameWidth() int {
	width := a.width - 1
	if width < minTerminalWidth {
		width = minTerminalWidth
	}
	return width
}

func (a *App) contentWidth() int {
	return a.frameWidth() - 2
}

// renderHeader creates the header bar with app branding and who is signed in
func (a *App) renderHeader() string {
	titleStyle := lipgloss.NewStyle().Foreground(a.styles.Palette.Primary).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(a.styles.Palette.Secondary)

	left := fmt.Sprintf(" %s %s ", icons.App.String(), titleStyle.Render("CareerVista"))
	right := ""
	if id, err := a.deps.Session.Identity(); err == nil {
		right = " " + contextStyle.Render(icons.User.String()+" "+id.Email) + " "
	}

	fillWidth := a.frameWidth() - 4 - lipgloss.Width(left) - lipgloss.Width(right)
	if fillWidth < 0 {
		fillWidth = 0
	}
	return a.styles.Border.Render("╭─") + left +
		a.styles.Border.Render(strings.Repeat("─", fillWidth)) +
		right + a.styles.Border.Render("─╮")
}

// shortcuts lists the keys the current screen answers to.
func (a *App) shortcuts() []string {
	switch a.screen {
	case ScreenHome:
		return []string{"↑↓ Navigate", "Enter Select", "ctrl+t Theme", "ctrl+c Quit"}
	case ScreenLogin, ScreenSignUp, ScreenChangePassword, ScreenResetPassword:
		return []string{"Tab Next", "Enter Submit", "ctrl+r Show/hide", "Esc Back"}
	case ScreenForgotPassword:
		if _, sent := a.resetReq.Sent(); sent {
			return []string{"Enter Open link", "Esc Back"}
		}
		return []string{"Enter Send link", "Esc Back"}
	case ScreenProfile:
		if a.profile != nil && a.profile.Editing() {
			return []string{"Tab Next", "ctrl+s Save", "ctrl+u Resume", "Esc Cancel"}
		}
		return []string{"e Edit", "Esc Back"}
	case ScreenResumePicker:
		return []string{"↑↓ Navigate", "Enter Select", "Esc Back"}
	case ScreenApplications:
		return []string{"↑↓ Navigate", "Enter Details", "Esc Back"}
	}
	return nil
}

// renderFooter creates the footer with keyboard shortcuts and the theme
func (a *App) renderFooter() string {
	var styled []string
	for _, s := range a.shortcuts() {
		parts := strings.SplitN(s, " ", 2)
		if len(parts) == 2 {
			styled = append(styled, a.styles.Key.Render(parts[0])+" "+a.styles.Label.Render(parts[1]))
		} else {
			styled = append(styled, s)
		}
	}
	left := " " + strings.Join(styled, "  ") + " "
	right := " " + a.styles.Label.Render(icons.Theme.String()+" "+string(a.deps.Session.Theme())) + " "

	fillWidth := a.frameWidth() - 4 - lipgloss.Width(left) - lipgloss.Width(right)
	if fillWidth < 0 {
		fillWidth = 0
	}
	return a.styles.Border.Render("╰─") + left +
		a.styles.Border.Render(strings.Repeat("─", fillWidth)) +
		right + a.styles.Border.Render("─╯")
}

// renderNotice shows the latest notice, if any.
func (a *App) renderNotice() string {
	if a.notice == nil {
		return ""
	}
	level := widgets.StatusOK
	switch a.notice.Level {
	case flows.NoticeError:
		level = widgets.StatusCritical
	case flows.NoticeInfo:
		level = widgets.StatusInfo
	}
	return " " + widgets.StatusText(a.notice.Text, level)
}

// wrapWithFrame wraps content with header, notice line and footer
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder

	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(lipgloss.NewStyle().Padding(1, 2).Render(content))
	sb.WriteString("\n")
	if notice := a.renderNotice(); notice != "" {
		sb.WriteString(notice)
		sb.WriteString("\n")
	}
	sb.WriteString(a.renderFooter())

	return sb.String()
}
