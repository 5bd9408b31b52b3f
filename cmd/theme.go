// ABOUTME: Theme command to show, set or cycle the display theme
// ABOUTME: The choice is persisted and survives logout

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/careervista/careervista-cli/internal/session"
)

var themeCmd = &cobra.Command{
	Use:   "theme [light|dark|system|next]",
	Short: "Show or change the display theme",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		choice := ""
		if len(args) == 1 {
			choice = args[0]
		}
		runWithApp(cmd, func(ctx context.Context, w io.Writer, a *app) int {
			return runTheme(w, a, choice)
		})
	},
}

func init() {
	rootCmd.AddCommand(themeCmd)
}

// runTheme applies choice (empty shows the current theme) and returns exit code
func runTheme(w io.Writer, a *app, choice string) int {
	var (
		t   session.Theme
		err error
	)
	switch choice {
	case "":
		t = a.sess.Theme()
	case "next":
		t, err = a.sess.CycleTheme()
	default:
		t, err = session.ParseTheme(choice)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return exitInvalid
		}
		err = a.sess.SetTheme(t)
	}
	if err != nil {
		return report(w, err, nil, "", "")
	}

	if IsJSONOutput() {
		writeJSON(w, map[string]string{"theme": string(t)})
		return exitOK
	}
	fmt.Fprintf(w, "Theme: %s\n", t)
	return exitOK
}
