// ABOUTME: Account summary command combining identity, profile and applications
// ABOUTME: Fetches the profile and the application list concurrently

package cmd

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/careervista/careervista-cli/internal/client"
	"github.com/careervista/careervista-cli/internal/flows"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Summarize the signed-in account",
	Run: func(cmd *cobra.Command, args []string) {
		runWithApp(cmd, runAccount)
	},
}

func init() {
	rootCmd.AddCommand(accountCmd)
}

// accountSummary is the JSON shape of account
type accountSummary struct {
	UserID       string         `json:"user_id"`
	Email        string         `json:"email"`
	Roles        []string       `json:"roles,omitempty"`
	ExpiresAt    *time.Time     `json:"expires_at,omitempty"`
	Theme        string         `json:"theme"`
	Completion   int            `json:"profile_completion_percent"`
	Applications int            `json:"applications"`
	ByStatus     map[string]int `json:"applications_by_status"`
}

// runAccount gathers the summary and returns exit code
func runAccount(ctx context.Context, w io.Writer, a *app) int {
	id, err := a.sess.Identity()
	if err != nil {
		cliEffects{w}.Navigate(flows.RouteLogin)
		return report(w, err, nil, "Not logged in", "")
	}

	var (
		profile *client.Profile
		apps    []client.JobApplication
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := a.api.GetProfile(gctx, id.UserID)
		if err != nil {
			return fmt.Errorf("fetching profile: %w", err)
		}
		profile = p
		return nil
	})
	g.Go(func() error {
		list, err := a.api.ListApplications(gctx, id.UserID)
		if err != nil {
			return fmt.Errorf("fetching applications: %w", err)
		}
		apps = list
		return nil
	})
	if err := g.Wait(); err != nil {
		return report(w, err, nil, client.ServerMessage(err), "")
	}

	summary := accountSummary{
		UserID:       id.UserID,
		Email:        id.Email,
		Roles:        id.Roles,
		Theme:        string(a.sess.Theme()),
		Completion:   flows.Completion(*profile),
		Applications: len(apps),
		ByStatus:     map[string]int{},
	}
	if !id.ExpiresAt.IsZero() {
		exp := id.ExpiresAt
		summary.ExpiresAt = &exp
	}
	for _, app := range apps {
		summary.ByStatus[app.Status]++
	}

	if IsJSONOutput() {
		writeJSON(w, summary)
		return exitOK
	}
	fmt.Fprintln(w, formatAccountHuman(summary))
	return exitOK
}

// formatAccountHuman formats the account summary for human readability
func formatAccountHuman(s accountSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Signed in as %s (user %s)\n", s.Email, s.UserID)
	if len(s.Roles) > 0 {
		fmt.Fprintf(&b, "Roles:        %s\n", strings.Join(s.Roles, ", "))
	}
	if s.ExpiresAt != nil {
		fmt.Fprintf(&b, "Session ends: %s\n", s.ExpiresAt.Local().Format(flows.AppliedAtLayout))
	}
	fmt.Fprintf(&b, "Theme:        %s\n", s.Theme)
	fmt.Fprintf(&b, "Profile:      %d%% complete\n", s.Completion)
	fmt.Fprintf(&b, "Applications: %d", s.Applications)

	statuses := make([]string, 0, len(s.ByStatus))
	for st := range s.ByStatus {
		statuses = append(statuses, st)
	}
	sort.Strings(statuses)
	for _, st := range statuses {
		fmt.Fprintf(&b, "\n  %-10s %d", st, s.ByStatus[st])
	}
	return b.String()
}
