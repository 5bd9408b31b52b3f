// ABOUTME: Signup command: checks a new account's details with the form rules
// ABOUTME: Nothing is sent; the backend offers no registration endpoint

package cmd

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/careervista/careervista-cli/internal/flows"
	"github.com/careervista/careervista-cli/internal/validate"
)

// signUpFlagFields maps signup flags onto form fields, in prompt order.
var signUpFlagFields = []struct {
	flag   string
	field  validate.Field
	usage  string
	secret bool
	ask    bool
}{
	{"first-name", flows.FieldFirstName, "First name", false, true},
	{"last-name", flows.FieldLastName, "Last name", false, true},
	{"username", flows.FieldUsername, "Username (3-20 letters, numbers or underscores)", false, true},
	{"email", validate.FieldEmail, "Email address", false, true},
	{"phone", flows.FieldPhone, "Phone number", false, true},
	{"address", flows.FieldAddress, "Postal address (optional)", false, false},
	{"gender", flows.FieldGender, "male, female or other", false, false},
	{"password", validate.FieldPassword, "Password", true, true},
	{"confirm", validate.FieldConfirmPassword, "Password again", true, true},
}

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Check the details for a new account",
	Long: `Check the details for a new account against the sign-up rules.

Accounts cannot be created from this client yet, so nothing is sent. Missing
required values are prompted for when running in a terminal. Gender defaults
to male.`,
	Run: func(cmd *cobra.Command, args []string) {
		values := map[validate.Field]string{}
		for _, sf := range signUpFlagFields {
			if cmd.Flags().Changed(sf.flag) {
				v, _ := cmd.Flags().GetString(sf.flag)
				values[sf.field] = v
			}
		}
		var ask asker
		if interactive() {
			ask = promptMissing
		}
		runWithApp(cmd, func(ctx context.Context, w io.Writer, a *app) int {
			return runSignUp(ctx, w, a, values, ask)
		})
	},
}

func init() {
	rootCmd.AddCommand(signupCmd)
	for _, sf := range signUpFlagFields {
		signupCmd.Flags().String(sf.flag, "", sf.usage)
	}
}

// runSignUp checks the sign-up form and returns exit code
func runSignUp(ctx context.Context, w io.Writer, a *app, values map[validate.Field]string, ask asker) int {
	if ask != nil {
		typed := make([]string, len(signUpFlagFields))
		var prompts []prompt
		for i, sf := range signUpFlagFields {
			typed[i] = values[sf.field]
			if sf.ask {
				prompts = append(prompts, prompt{title: sf.usage, value: &typed[i], secret: sf.secret})
			}
		}
		if err := ask(prompts...); err != nil {
			return report(w, err, nil, "", "")
		}
		values = map[validate.Field]string{}
		for i, sf := range signUpFlagFields {
			if typed[i] != "" {
				values[sf.field] = typed[i]
			}
		}
	}

	form := flows.NewSignUp(a.logger)
	for field, v := range values {
		form.SetField(field, v)
	}
	err := form.Submit(ctx, cliEffects{w})
	return report(w, err, form.Errors(), form.Banner(), flows.MsgSignUpChecked)
}
