// ABOUTME: Password commands: change, forgot, confirm-link and reset
// ABOUTME: Each runs the same flow the interactive screens use

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/careervista/careervista-cli/internal/flows"
	"github.com/careervista/careervista-cli/internal/session"
	"github.com/careervista/careervista-cli/internal/validate"
)

const msgNoResetLink = "No confirmed reset link. Request one and confirm it first."

var (
	pwOld     string
	pwNew     string
	pwConfirm string
	pwEmail   string
)

var passwordCmd = &cobra.Command{
	Use:   "password",
	Short: "Change or reset your password",
	Long: `Change your password while logged in, or reset a forgotten one.

Reset works in three steps:
  careervista password forgot --email you@example.com
  careervista password confirm-link --email you@example.com
  careervista password reset

New passwords need at least 8 characters, an uppercase letter, a number and
one of @$!%*#?&.`,
}

var passwordChangeCmd = &cobra.Command{
	Use:   "change",
	Short: "Change your password (logs you out on success)",
	Run: func(cmd *cobra.Command, args []string) {
		if interactive() {
			if err := promptMissing(
				prompt{title: "Current password", value: &pwOld, secret: true},
				prompt{title: "New password", value: &pwNew, secret: true},
				prompt{title: "Confirm new password", value: &pwConfirm, secret: true},
			); err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
		}
		runWithApp(cmd, func(ctx context.Context, w io.Writer, a *app) int {
			return runPasswordChange(ctx, w, a, pwOld, pwNew, pwConfirm)
		})
	},
}

var passwordForgotCmd = &cobra.Command{
	Use:   "forgot",
	Short: "Email a password reset link",
	Run: func(cmd *cobra.Command, args []string) {
		runWithApp(cmd, func(ctx context.Context, w io.Writer, a *app) int {
			return runPasswordForgot(ctx, w, a, pwEmail)
		})
	},
}

var passwordConfirmLinkCmd = &cobra.Command{
	Use:   "confirm-link",
	Short: "Record the address a reset link was opened for",
	Run: func(cmd *cobra.Command, args []string) {
		runWithApp(cmd, func(ctx context.Context, w io.Writer, a *app) int {
			return runPasswordConfirmLink(w, a, pwEmail)
		})
	},
}

var passwordResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Choose a new password after confirming a reset link",
	Run: func(cmd *cobra.Command, args []string) {
		var ask asker
		if interactive() {
			ask = promptMissing
		}
		runWithApp(cmd, func(ctx context.Context, w io.Writer, a *app) int {
			return runPasswordReset(ctx, w, a, pwNew, pwConfirm, ask)
		})
	},
}

func init() {
	rootCmd.AddCommand(passwordCmd)
	passwordCmd.AddCommand(passwordChangeCmd, passwordForgotCmd, passwordConfirmLinkCmd, passwordResetCmd)

	passwordChangeCmd.Flags().StringVar(&pwOld, "old", "", "Current password")
	for _, c := range []*cobra.Command{passwordChangeCmd, passwordResetCmd} {
		c.Flags().StringVar(&pwNew, "new", "", "New password")
		c.Flags().StringVar(&pwConfirm, "confirm", "", "New password again")
	}
	for _, c := range []*cobra.Command{passwordForgotCmd, passwordConfirmLinkCmd} {
		c.Flags().StringVar(&pwEmail, "email", "", "Account email address")
	}
}

// runPasswordChange submits the change form and returns exit code
func runPasswordChange(ctx context.Context, w io.Writer, a *app, oldPw, newPw, confirm string) int {
	form := flows.NewChangePassword(a.api, a.sess, a.logger)
	form.SetField(validate.FieldOldPassword, oldPw)
	form.SetField(validate.FieldNewPassword, newPw)
	form.SetField(validate.FieldConfirmPassword, confirm)
	err := form.Submit(ctx, cliEffects{w})
	return report(w, err, form.Errors(), form.Banner(), flows.MsgPasswordChanged)
}

// runPasswordForgot requests a reset link and returns exit code
func runPasswordForgot(ctx context.Context, w io.Writer, a *app, email string) int {
	form := flows.NewResetRequest(a.api, a.logger)
	form.SetEmail(email)
	err := form.Submit(ctx, cliEffects{w})
	if err == nil && !IsJSONOutput() {
		sentTo, _ := form.Sent()
		fmt.Fprintf(w, "We sent a reset link to %s. Open it, then run \"careervista password confirm-link --email %s\".\n", sentTo, sentTo)
	}
	return report(w, err, form.Errors(), form.Banner(), flows.MsgResetLinkSent)
}

// runPasswordConfirmLink stores the reset email and returns exit code
func runPasswordConfirmLink(w io.Writer, a *app, email string) int {
	err := flows.ConfirmLink(a.sess, email, cliEffects{w})
	if err != nil {
		if IsJSONOutput() {
			writeJSON(w, result{Error: err.Error()})
		} else {
			fmt.Fprintf(w, "Error: %v\n", err)
		}
		return exitInvalid
	}
	return report(w, nil, nil, "", flows.MsgResetLinkVerified)
}

// runPasswordReset submits the new password and returns exit code. Without
// a confirmed reset link it stops before asking for anything.
func runPasswordReset(ctx context.Context, w io.Writer, a *app, newPw, confirm string, ask asker) int {
	form := flows.NewReset(a.api, a.sess, a.logger)
	var rec flows.Recorder
	if !form.Mount(&rec) {
		code := report(w, oops.Code("RESET_NO_EMAIL").Wrap(session.ErrNoResetEmail), nil, msgNoResetLink, "")
		rec.Replay(cliEffects{w})
		return code
	}
	if ask != nil {
		if err := ask(
			prompt{title: "New password", value: &newPw, secret: true},
			prompt{title: "Confirm new password", value: &confirm, secret: true},
		); err != nil {
			return report(w, err, nil, "", "")
		}
	}
	form.SetField(validate.FieldNewPassword, newPw)
	form.SetField(validate.FieldConfirmPassword, confirm)
	err := form.Submit(ctx, cliEffects{w})
	return report(w, err, form.Errors(), form.Banner(), flows.MsgPasswordReset)
}
