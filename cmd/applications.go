// ABOUTME: Applications command listing the jobs you have applied to
// ABOUTME: Optionally expands every application into its detail sections

package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/careervista/careervista-cli/internal/client"
	"github.com/careervista/careervista-cli/internal/flows"
)

var applicationsDetails bool

var applicationsCmd = &cobra.Command{
	Use:     "applications",
	Aliases: []string{"apps"},
	Short:   "List your job applications",
	Run: func(cmd *cobra.Command, args []string) {
		runWithApp(cmd, func(ctx context.Context, w io.Writer, a *app) int {
			return runApplications(ctx, w, a, applicationsDetails)
		})
	},
}

func init() {
	rootCmd.AddCommand(applicationsCmd)
	applicationsCmd.Flags().BoolVarP(&applicationsDetails, "details", "d", false, "Show every application's details")
}

// runApplications fetches and prints applications, returning exit code
func runApplications(ctx context.Context, w io.Writer, a *app, details bool) int {
	viewer := flows.NewApplications(a.api, a.sess, a.logger)
	if err := viewer.Load(ctx, cliEffects{w}); err != nil {
		return report(w, err, nil, viewer.Banner(), "")
	}

	items := viewer.Items()
	if IsJSONOutput() {
		writeJSON(w, items)
		return exitOK
	}
	fmt.Fprintln(w, formatApplicationsHuman(items, details))
	return exitOK
}

// formatApplicationsHuman formats applications for human readability
func formatApplicationsHuman(items []client.JobApplication, details bool) string {
	if len(items) == 0 {
		return flows.MsgNoApplications
	}
	var b strings.Builder
	for i, app := range items {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s at %s  [%s]\n", app.JobTitle, app.CompanyName, app.Status)
		fmt.Fprintf(&b, "  Applied on %s • Application ID: %s...\n", flows.FormatAppliedAt(app.AppliedAt), app.ShortID())
		if !details {
			continue
		}
		for _, section := range flows.DetailSections(app) {
			fmt.Fprintf(&b, "  %s\n", section.Title)
			for _, f := range section.Fields {
				fmt.Fprintf(&b, "    %s: %s\n", f.Label, f.Value)
			}
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
