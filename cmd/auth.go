// ABOUTME: Login and logout commands
// ABOUTME: Stores the session token locally for later commands and the TUI

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/careervista/careervista-cli/internal/flows"
	"github.com/careervista/careervista-cli/internal/session"
	"github.com/careervista/careervista-cli/internal/validate"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store a session token",
	Long: `Sign in with your email address or username.

Missing values are prompted for when running in a terminal.`,
	Run: func(cmd *cobra.Command, args []string) {
		if interactive() {
			if err := promptMissing(
				prompt{title: "Email or username", value: &loginEmail},
				prompt{title: "Password", value: &loginPassword, secret: true},
			); err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
		}
		runWithApp(cmd, func(ctx context.Context, w io.Writer, a *app) int {
			return runLogin(ctx, w, a, loginEmail, loginPassword)
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Revoke the session and clear local state",
	Long:  `Revoke the session on the backend and clear stored state. The theme preference is kept.`,
	Run: func(cmd *cobra.Command, args []string) {
		runWithApp(cmd, runLogout)
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Email address or username")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Password (prompted when omitted)")
}

// runLogin submits the login form and returns exit code
func runLogin(ctx context.Context, w io.Writer, a *app, email, password string) int {
	form := flows.NewLogin(a.api, a.sess, a.logger)
	form.SetField(validate.FieldEmail, email)
	form.SetField(validate.FieldPassword, password)
	err := form.Submit(ctx, cliEffects{w})
	return report(w, err, form.Errors(), form.Banner(), flows.MsgLoggedIn)
}

// runLogout revokes the session and returns exit code
func runLogout(ctx context.Context, w io.Writer, a *app) int {
	err := flows.SignOut(ctx, a.api, a.sess, a.logger, cliEffects{w})
	if errors.Is(err, session.ErrNoToken) {
		if IsJSONOutput() {
			writeJSON(w, result{Error: "not logged in"})
		} else {
			fmt.Fprintln(w, "Not logged in.")
		}
		return exitInvalid
	}
	if err != nil {
		// The token is already gone locally; report the failed revoke.
		return report(w, err, nil, "", "")
	}
	return report(w, nil, nil, "", flows.MsgLoggedOut)
}
