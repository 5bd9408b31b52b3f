// ABOUTME: Profile commands: show the profile and update editable fields
// ABOUTME: Updates go through the same edit buffer and resume checks as the TUI

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/careervista/careervista-cli/internal/client"
	"github.com/careervista/careervista-cli/internal/flows"
	"github.com/careervista/careervista-cli/internal/validate"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or update your profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your profile and how complete it is",
	Run: func(cmd *cobra.Command, args []string) {
		runWithApp(cmd, runProfileShow)
	},
}

var profileResumePath string

// profileFlagFields maps update flags onto profile fields.
var profileFlagFields = []struct {
	flag  string
	field validate.Field
	usage string
}{
	{"username", flows.FieldUsername, "Username"},
	{"first-name", flows.FieldFirstName, "First name"},
	{"last-name", flows.FieldLastName, "Last name"},
	{"phone", flows.FieldPhone, "Phone number"},
	{"address", flows.FieldAddress, "Postal address"},
	{"gender", flows.FieldGender, "Gender"},
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update profile fields and optionally upload a resume",
	Long: `Update one or more profile fields in a single save.

Only flags you pass are changed. Email cannot be changed here.
--resume uploads a PDF (10MB max) and links it to your profile.`,
	Run: func(cmd *cobra.Command, args []string) {
		changes := map[validate.Field]string{}
		for _, pf := range profileFlagFields {
			if cmd.Flags().Changed(pf.flag) {
				v, _ := cmd.Flags().GetString(pf.flag)
				changes[pf.field] = v
			}
		}
		runWithApp(cmd, func(ctx context.Context, w io.Writer, a *app) int {
			return runProfileUpdate(ctx, w, a, changes, profileResumePath)
		})
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileShowCmd, profileUpdateCmd)
	for _, pf := range profileFlagFields {
		profileUpdateCmd.Flags().String(pf.flag, "", pf.usage)
	}
	profileUpdateCmd.Flags().StringVar(&profileResumePath, "resume", "", "Path to a PDF resume to upload")
}

// profileView is the JSON shape of profile show
type profileView struct {
	Profile    client.Profile `json:"profile"`
	Completion int            `json:"completion_percent"`
}

// runProfileShow loads and prints the profile, returning exit code
func runProfileShow(ctx context.Context, w io.Writer, a *app) int {
	editor := flows.NewProfileEditor(a.api, a.uploader, a.sess, a.logger)
	if err := editor.Load(ctx, cliEffects{w}); err != nil {
		return report(w, err, nil, editor.Banner(), "")
	}

	prof := editor.Profile()
	if IsJSONOutput() {
		writeJSON(w, profileView{Profile: prof, Completion: editor.Completion()})
		return exitOK
	}
	fmt.Fprintln(w, formatProfileHuman(prof, editor.Completion()))
	return exitOK
}

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

// formatProfileHuman formats a profile for human readability
func formatProfileHuman(prof client.Profile, completion int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Profile (%d%% complete)\n", completion)
	for _, f := range flows.ProfileFields {
		v := flows.FieldValue(prof, f)
		if v == "" {
			v = "-"
			if f == flows.FieldResumeURL {
				v = flows.MsgResumeNotUploaded
			}
		}
		fmt.Fprintf(&b, "  %-11s %s\n", profileLabels[f]+":", v)
	}
	return strings.TrimRight(b.String(), "\n")
}

// runProfileUpdate applies changes and an optional resume in one save
func runProfileUpdate(ctx context.Context, w io.Writer, a *app, changes map[validate.Field]string, resumePath string) int {
	if len(changes) == 0 && resumePath == "" {
		fmt.Fprintln(w, "Nothing to update. Pass at least one field flag or --resume.")
		return exitInvalid
	}

	fx := cliEffects{w}
	editor := flows.NewProfileEditor(a.api, a.uploader, a.sess, a.logger)
	if err := editor.Load(ctx, fx); err != nil {
		return report(w, err, nil, editor.Banner(), "")
	}

	editor.Edit()
	for field, value := range changes {
		if err := editor.SetField(field, value); err != nil {
			fmt.Fprintf(w, "Error: %s: %v\n", field, err)
			return exitInvalid
		}
	}

	if resumePath != "" {
		data, err := os.ReadFile(resumePath)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return exitError
		}
		if err := editor.AttachResume(ctx, filepath.Base(resumePath), data, fx); err != nil {
			code := exitError
			if errors.Is(err, flows.ErrInvalid) {
				code = exitInvalid
			}
			errs := editor.Errors()
			if IsJSONOutput() {
				writeJSON(w, result{Errors: errs})
			} else {
				printFieldErrors(w, errs)
			}
			return code
		}
	}

	err := editor.Submit(ctx, fx)
	return report(w, err, editor.Errors(), editor.Banner(), flows.MsgProfileUpdated)
}
