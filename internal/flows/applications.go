// ABOUTME: Read-only viewer over the user's job applications
// ABOUTME: Builds the per-application detail sections and status treatment

package flows

import (
	"context"
	"log/slog"
	"sync"

	"github.com/careervista/careervista-cli/internal/client"
)

const (
	MsgNoApplications         = "No job applications found."
	MsgApplicationsLoadFailed = "Failed to fetch applications"
	MsgResumeNotUploaded      = "Not uploaded"
	AppliedAtLayout           = "January 2, 2006 at 03:04 PM"
)

// ApplicationsAPI lists a user's applications.
type ApplicationsAPI interface {
	ListApplications(ctx context.Context, userID string) ([]client.JobApplication, error)
}

// Applications holds one visit's worth of the applications screen.
type Applications struct {
	mu     sync.Mutex
	api    ApplicationsAPI
	sess   SessionState
	logger *slog.Logger

	items    []client.JobApplication
	expanded map[string]bool
	loaded   bool
	loading  bool
	banner   string
}

func NewApplications(api ApplicationsAPI, sess SessionState, logger *slog.Logger) *Applications {
	if logger == nil {
		logger = slog.Default()
	}
	return &Applications{api: api, sess: sess, logger: logger, expanded: map[string]bool{}}
}

// Load fetches once per visit. Later calls are no-ops until a new viewer
// is made. Without a session it navigates to login and makes no call.
func (a *Applications) Load(ctx context.Context, fx Effects) error {
	a.mu.Lock()
	if a.loaded || a.loading {
		a.mu.Unlock()
		return nil
	}
	a.mu.Unlock()

	id, err := a.sess.Identity()
	if err != nil {
		fx.Navigate(RouteLogin)
		return err
	}

	a.mu.Lock()
	a.loading = true
	a.banner = ""
	a.mu.Unlock()

	items, err := a.api.ListApplications(ctx, id.UserID)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.loading = false
	if err != nil {
		a.banner = bannerFor(err, MsgApplicationsLoadFailed)
		a.logger.Warn("applications fetch failed", "user_id", id.UserID, "error", err)
		return err
	}
	a.items = items
	a.loaded = true
	return nil
}

func (a *Applications) Loading() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loading
}

func (a *Applications) Loaded() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loaded
}

func (a *Applications) Banner() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.banner
}

// Items returns the fetched applications in server order.
func (a *Applications) Items() []client.JobApplication {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]client.JobApplication(nil), a.items...)
}

// Toggle flips one application's expansion and returns the new state.
func (a *Applications) Toggle(applicationID string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.expanded[applicationID] = !a.expanded[applicationID]
	return a.expanded[applicationID]
}

func (a *Applications) Expanded(applicationID string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.expanded[applicationID]
}

// Treatment is how a status badge is drawn.
type Treatment int

const (
	TreatmentNeutral Treatment = iota
	TreatmentPending
	TreatmentContacted
	TreatmentRejected
)

// StatusTreatment maps a backend status onto a badge treatment. Matching
// is exact; anything unrecognised is neutral.
func StatusTreatment(status string) Treatment {
	switch status {
	case "PENDING":
		return TreatmentPending
	case "CONTACTED":
		return TreatmentContacted
	case "REJECTED":
		return TreatmentRejected
	}
	return TreatmentNeutral
}

// MsgUnknownDate stands in for a missing application date.
const MsgUnknownDate = "an unknown date"

// FormatAppliedAt renders the application date in local time. A date the
// client could not read is shown as the server sent it.
func FormatAppliedAt(ts client.Timestamp) string {
	switch {
	case !ts.Time.IsZero():
		return ts.Time.Local().Format(AppliedAtLayout)
	case ts.Raw != "":
		return ts.Raw
	}
	return MsgUnknownDate
}

// DetailField is one labelled value. Link marks values that are URLs.
type DetailField struct {
	Label string
	Value string
	Link  bool
}

// DetailSection is a titled group of fields.
type DetailSection struct {
	Title  string
	Fields []DetailField
}

// DetailSections lays out an expanded application. Empty answers are
// skipped; the last two sections are dropped entirely when empty.
func DetailSections(app client.JobApplication) []DetailSection {
	r := app.Responses

	applicant := DetailSection{Title: "Applicant Details"}
	applicant.Fields = appendNonEmpty(applicant.Fields,
		DetailField{Label: "Name", Value: app.ApplicantName},
		DetailField{Label: "Tech Stack", Value: string(r.TechStack)},
		DetailField{Label: "GitHub", Value: string(r.GitHub), Link: true},
		DetailField{Label: "Experience (Years)", Value: string(r.ExperienceYears)},
	)
	resume := DetailField{Label: "Resume", Value: MsgResumeNotUploaded}
	if app.ResumeURL != "" {
		resume = DetailField{Label: "Resume", Value: app.ResumeURL, Link: true}
	}
	applicant.Fields = append(applicant.Fields, resume)

	salary := ""
	if r.SalaryExpectation != "" {
		salary = "$" + string(r.SalaryExpectation)
	}
	details := DetailSection{Title: "Application Details"}
	details.Fields = appendNonEmpty(details.Fields,
		DetailField{Label: "Projects", Value: string(r.Projects)},
		DetailField{Label: "Certifications", Value: string(r.Certifications)},
		DetailField{Label: "Role Interest", Value: string(r.RoleInterest)},
		DetailField{Label: "Salary Expectation", Value: salary},
	)

	sections := []DetailSection{applicant, details}

	extra := DetailSection{Title: "Additional Information"}
	extra.Fields = appendNonEmpty(extra.Fields,
		DetailField{Label: "Teamwork Experience", Value: string(r.TeamworkExperience)},
		DetailField{Label: "Problem Solving", Value: string(r.ProblemSolving)},
		DetailField{Label: "Remote Setup", Value: string(r.RemoteSetup)},
		DetailField{Label: "Open Source", Value: string(r.OpenSource)},
	)
	if len(extra.Fields) > 0 {
		sections = append(sections, extra)
	}

	goals := DetailSection{Title: "Career Goals"}
	goals.Fields = appendNonEmpty(goals.Fields,
		DetailField{Label: "Learning Goals", Value: string(r.LearningGoal)},
		DetailField{Label: "Career Goals", Value: string(r.CareerGoals)},
	)
	if len(goals.Fields) > 0 {
		sections = append(sections, goals)
	}
	return sections
}

func appendNonEmpty(dst []DetailField, fields ...DetailField) []DetailField {
	for _, f := range fields {
		if f.Value != "" {
			dst = append(dst, f)
		}
	}
	return dst
}
