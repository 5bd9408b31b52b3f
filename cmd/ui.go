// ABOUTME: Launches the full-screen interactive interface
// ABOUTME: Logs go to a file in the config dir while the screen is in use

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/careervista/careervista-cli/internal/config"
	"github.com/careervista/careervista-cli/internal/logger"
	"github.com/careervista/careervista-cli/internal/storage"
	"github.com/careervista/careervista-cli/internal/tui"
	"github.com/careervista/careervista-cli/internal/tui/debuglog"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the interactive interface",
	Long: `Opens the full-screen interface with every screen: login, password
change and reset, profile editing with resume upload, and the applications
list. Press ctrl+t anywhere to switch theme and ctrl+c to quit.

Logs are written to debug.log in the config directory.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if err := runUI(ctx, cmd); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(exitError)
		}
	},
}

func init() {
	rootCmd.AddCommand(uiCmd)
}

func runUI(ctx context.Context, cmd *cobra.Command) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}

	logFile, err := debuglog.Open(cfg.ConfigDir)
	if err != nil {
		return err
	}
	defer logFile.Close()

	a, err := openApp(cfg, logFile)
	if err != nil {
		return err
	}
	a.logger.Info("starting interface", "api", cfg.APIURL)

	return tui.Run(ctx, tuiDeps(a, lipgloss.HasDarkBackground()))
}

// openApp opens the on-disk store and wires the stack with logs to w.
func openApp(cfg *config.Config, w io.Writer) (*app, error) {
	log := logger.Init(w, cfg.LogLevel, cfg.LogFormat)
	store, err := storage.Open(cfg.ConfigDir)
	if err != nil {
		return nil, err
	}
	return newApp(cfg, store, log), nil
}

func tuiDeps(a *app, dark bool) tui.Deps {
	return tui.Deps{
		Auth:           a.api,
		Profiles:       a.api,
		Apps:           a.api,
		Uploader:       a.uploader,
		Session:        a.sess,
		Store:          a.store,
		Logger:         a.logger,
		DarkBackground: dark,
	}
}
