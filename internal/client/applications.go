// ABOUTME: Read-only job application listing for the logged-in user
// ABOUTME: Response answers may arrive as strings or numbers, dates with or without a zone

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"
)

// Text is a free-form answer. The backend sends some answers as numbers.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*t = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*t = Text(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*t = Text(n.String())
	return nil
}

// timestampLayouts are tried in order for values without RFC3339's zone.
// Fractional seconds are accepted after the seconds field by every layout
// that has one.
var timestampLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Timestamp is a server date. Values with no zone are read as local time.
// A value that matches no layout keeps its text in Raw and a zero Time,
// so one odd date never fails the whole listing.
type Timestamp struct {
	time.Time
	Raw string
}

func (ts *Timestamp) UnmarshalJSON(b []byte) error {
	*ts = Timestamp{}
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		ts.Raw = string(b)
		return nil
	}
	if s == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		ts.Time = t
		return nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			ts.Time = t
			return nil
		}
	}
	ts.Raw = s
	return nil
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	switch {
	case !ts.Time.IsZero():
		return json.Marshal(ts.Time.Format(time.RFC3339Nano))
	case ts.Raw != "":
		return json.Marshal(ts.Raw)
	}
	return []byte("null"), nil
}

// Responses holds the applicant's answers to the application form.
type Responses struct {
	TechStack          Text `json:"techStack"`
	GitHub             Text `json:"github"`
	ExperienceYears    Text `json:"experienceYears"`
	Projects           Text `json:"projects"`
	Certifications     Text `json:"certifications"`
	RoleInterest       Text `json:"roleInterest"`
	SalaryExpectation  Text `json:"salaryExpectation"`
	TeamworkExperience Text `json:"teamworkExperience"`
	RemoteSetup        Text `json:"remoteSetup"`
	ProblemSolving     Text `json:"problemSolving"`
	OpenSource         Text `json:"openSource"`
	LearningGoal       Text `json:"learningGoal"`
	CareerGoals        Text `json:"careerGoals"`
}

// JobApplication is one submitted application.
type JobApplication struct {
	ApplicationID string    `json:"applicationId"`
	JobTitle      string    `json:"jobTitle"`
	CompanyName   string    `json:"companyName"`
	Status        string    `json:"status"`
	AppliedAt     Timestamp `json:"appliedAt"`
	ApplicantName string    `json:"applicantName"`
	ResumeURL     string    `json:"resumeUrl"`
	Responses     Responses `json:"responses"`
}

// ListApplications calls GET /job-applications/user/{userID}
func (c *Client) ListApplications(ctx context.Context, userID string) ([]JobApplication, error) {
	var apps []JobApplication
	if err := c.do(ctx, http.MethodGet, "/job-applications/user/"+url.PathEscape(userID), nil, &apps, true); err != nil {
		return nil, err
	}
	if apps == nil {
		apps = []JobApplication{}
	}
	return apps, nil
}

// ShortID is the first eight characters of the application ID.
func (a JobApplication) ShortID() string {
	r := []rune(a.ApplicationID)
	if len(r) > 8 {
		r = r[:8]
	}
	return string(r)
}
