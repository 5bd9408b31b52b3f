// ABOUTME: Config command printing the effective configuration
// ABOUTME: Useful for checking which layer won for each setting

package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/careervista/careervista-cli/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect client configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	Run: func(cmd *cobra.Command, args []string) {
		runWithApp(cmd, func(ctx context.Context, w io.Writer, a *app) int {
			return runConfigShow(w, a.cfg)
		})
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
}

// runConfigShow writes cfg in the same YAML shape config.yaml accepts
func runConfigShow(w io.Writer, cfg *config.Config) int {
	if IsJSONOutput() {
		writeJSON(w, cfg)
		return exitOK
	}
	out, err := yaml.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitError
	}
	fmt.Fprintf(w, "# %s\n", filepath.Join(cfg.ConfigDir, config.FileName))
	fmt.Fprint(w, string(out))
	return exitOK
}
