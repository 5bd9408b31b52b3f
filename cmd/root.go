// ABOUTME: Root command for the careervista CLI
// ABOUTME: Handles global flags and builds the shared session, client and config

package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/careervista/careervista-cli/internal/client"
	"github.com/careervista/careervista-cli/internal/config"
	"github.com/careervista/careervista-cli/internal/flows"
	"github.com/careervista/careervista-cli/internal/session"
	"github.com/careervista/careervista-cli/internal/storage"
	"github.com/careervista/careervista-cli/internal/upload"
)

var jsonOutput bool

// Exit codes shared by every command.
const (
	exitOK      = 0
	exitInvalid = 1
	exitError   = 2
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "careervista",
	Short: "Terminal client for the CareerVista job board",
	Long: `careervista is a terminal client for the CareerVista job board.

It signs you in, manages your password and profile, and lists the jobs you
have applied to. Run "careervista ui" for the interactive interface.

Configuration (lowest to highest precedence):
  defaults, <config dir>/config.yaml, .env, CAREERVISTA_* variables, flags

Environment Variables:
  CAREERVISTA_API_URL        Backend API URL (default: http://localhost:8080)
  CAREERVISTA_UPLOAD_URL     Asset host upload base URL
  CAREERVISTA_CLOUD_NAME     Asset host account name
  CAREERVISTA_UPLOAD_PRESET  Unsigned upload preset (default: PDF_Resume)
  CAREERVISTA_CONFIG_DIR     Where session state and config.yaml live
  CAREERVISTA_LOG_LEVEL      debug, info, warn, error
  CAREERVISTA_LOG_FORMAT     text or json

Exit codes:
  0 - Success
  1 - Input rejected by validation
  2 - Error (connectivity, backend, missing session)`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("api-url", "", "Backend API URL (overrides CAREERVISTA_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
	rootCmd.PersistentFlags().String("config-dir", "", "Directory for session state and config.yaml")
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// app is everything a command needs, built once per invocation.
type app struct {
	cfg      *config.Config
	store    storage.Store
	sess     *session.Session
	api      *client.Client
	uploader *upload.Uploader
	logger   *slog.Logger
}

// newApp wires the stack over an already-open store.
func newApp(cfg *config.Config, store storage.Store, log *slog.Logger) *app {
	sess := session.New(store)
	sess.Init()
	return &app{
		cfg:   cfg,
		store: store,
		sess:  sess,
		api:   client.New(cfg.APIURL, client.WithTokenSource(sess), client.WithLogger(log)),
		uploader: upload.New(upload.Config{
			BaseURL:   cfg.UploadURL,
			CloudName: cfg.CloudName,
			Preset:    cfg.UploadPreset,
		}, log),
		logger: log,
	}
}

// loadApp reads configuration for cmd and opens the on-disk store. logOut
// receives logs; the TUI passes a file so the screen stays clean.
func loadApp(cmd *cobra.Command, logOut io.Writer) (*app, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, err
	}
	return openApp(cfg, logOut)
}

// runWithApp is the common cobra Run body: signal-aware context, app
// construction and exit code handling.
func runWithApp(cmd *cobra.Command, fn func(ctx context.Context, w io.Writer, a *app) int) {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	a, err := loadApp(cmd, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stdout, "Error: %v\n", err)
		os.Exit(exitError)
	}

	exitCode := fn(ctx, os.Stdout, a)
	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

// cliEffects prints notices and turns navigation into a hint about which
// command to run next.
type cliEffects struct {
	w io.Writer
}

func (e cliEffects) Notify(n flows.Notice) {
	if IsJSONOutput() {
		return
	}
	prefix := "✓"
	switch n.Level {
	case flows.NoticeError:
		prefix = "✗"
	case flows.NoticeInfo:
		prefix = "•"
	}
	fmt.Fprintf(e.w, "%s %s\n", prefix, n.Text)
}

func (e cliEffects) Navigate(to flows.Route) {
	if IsJSONOutput() {
		return
	}
	if hint := routeHint(to); hint != "" {
		fmt.Fprintln(e.w, hint)
	}
}

// routeHint names the command behind a screen a flow redirected to.
func routeHint(to flows.Route) string {
	switch to {
	case flows.RouteLogin:
		return `Next: run "careervista login".`
	case flows.RouteForgotPassword:
		return `Next: run "careervista password forgot --email <address>".`
	case flows.RouteResetPassword:
		return `Next: run "careervista password reset".`
	case flows.RouteSignUp:
		return `Next: run "careervista signup".`
	}
	return ""
}
