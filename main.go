// ABOUTME: Entry point for the careervista CLI
// ABOUTME: Terminal client for the CareerVista job board backend

package main

import (
	"fmt"
	"os"

	"github.com/careervista/careervista-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
