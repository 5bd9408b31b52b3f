// ABOUTME: Shared output helpers for human and JSON modes
// ABOUTME: Maps flow outcomes onto printed results and exit codes

package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/charmbracelet/huh"

	"github.com/careervista/careervista-cli/internal/flows"
	"github.com/careervista/careervista-cli/internal/validate"
)

// result is the JSON shape of a command that performs an action.
type result struct {
	OK      bool            `json:"ok"`
	Message string          `json:"message,omitempty"`
	Errors  validate.Errors `json:"errors,omitempty"`
	Error   string          `json:"error,omitempty"`
}

func writeJSON(w io.Writer, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(w, `{"ok":false,"error":%q}`+"\n", err.Error())
		return
	}
	fmt.Fprintln(w, string(data))
}

// report prints the outcome of a flow submit and returns the exit code.
// banner is the flow's screen-level message, used in preference to err.
func report(w io.Writer, err error, errs validate.Errors, banner, okMsg string) int {
	switch {
	case err == nil:
		if IsJSONOutput() {
			writeJSON(w, result{OK: true, Message: okMsg})
		}
		return exitOK
	case errors.Is(err, flows.ErrInvalid):
		if IsJSONOutput() {
			writeJSON(w, result{Errors: errs})
		} else {
			printFieldErrors(w, errs)
		}
		return exitInvalid
	default:
		msg := banner
		if msg == "" {
			msg = err.Error()
		}
		if IsJSONOutput() {
			writeJSON(w, result{Error: msg})
		} else {
			fmt.Fprintf(w, "Error: %s\n", msg)
		}
		return exitError
	}
}

// printFieldErrors lists errors in a stable order, form-level first.
func printFieldErrors(w io.Writer, errs validate.Errors) {
	if msg := errs[validate.FieldForm]; msg != "" {
		fmt.Fprintf(w, "Error: %s\n", msg)
	}
	fields := make([]string, 0, len(errs))
	for f, msg := range errs {
		if f != validate.FieldForm && msg != "" {
			fields = append(fields, string(f))
		}
	}
	sort.Strings(fields)
	for _, f := range fields {
		fmt.Fprintf(w, "  %s: %s\n", f, errs[validate.Field(f)])
	}
}

// interactive reports whether stdin is a terminal we can prompt on.
func interactive() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0 && !IsJSONOutput()
}

// promptMissing asks for each empty value with a huh input. Secrets are
// masked.
func promptMissing(prompts ...prompt) error {
	var fields []huh.Field
	for _, p := range prompts {
		if *p.value != "" {
			continue
		}
		in := huh.NewInput().Title(p.title).Value(p.value)
		if p.secret {
			in = in.EchoMode(huh.EchoModePassword)
		}
		fields = append(fields, in)
	}
	if len(fields) == 0 {
		return nil
	}
	return huh.NewForm(huh.NewGroup(fields...)).Run()
}

// asker fills empty prompt values. A nil asker means nothing is prompted.
type asker func(...prompt) error

type prompt struct {
	title  string
	value  *string
	secret bool
}
