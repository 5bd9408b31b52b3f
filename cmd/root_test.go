// ABOUTME: Shared fixtures for command tests plus root-level checks
// ABOUTME: Runs commands against an httptest backend and an in-memory store

package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/careervista/careervista-cli/internal/client"
	"github.com/careervista/careervista-cli/internal/config"
	"github.com/careervista/careervista-cli/internal/flows"
	"github.com/careervista/careervista-cli/internal/session/sessiontest"
	"github.com/careervista/careervista-cli/internal/storage"
)

// backend is a scripted stand-in for the job board API.
type backend struct {
	t *testing.T

	mu       sync.Mutex
	requests []string
	bodies   map[string]json.RawMessage

	token   string
	profile client.Profile
	apps    []client.JobApplication

	// status overrides the response code per "METHOD path".
	status map[string]int
}

func newBackend(t *testing.T) (*backend, *httptest.Server) {
	b := &backend{
		t:      t,
		bodies: map[string]json.RawMessage{},
		status: map[string]int{},
	}
	srv := httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(srv.Close)
	return b, srv
}

func (b *backend) serve(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + r.URL.Path
	body, _ := io.ReadAll(r.Body)

	b.mu.Lock()
	b.requests = append(b.requests, key)
	if len(body) > 0 {
		b.bodies[key] = body
	}
	code, override := b.status[key]
	b.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if override {
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(map[string]string{"error": "backend says no"})
		return
	}

	switch {
	case key == "POST /userlogin/login":
		json.NewEncoder(w).Encode(client.LoginResponse{Token: b.token})
	case strings.HasPrefix(key, "GET /user/profile/"):
		json.NewEncoder(w).Encode(b.profile)
	case strings.HasPrefix(key, "GET /job-applications/user/"):
		json.NewEncoder(w).Encode(b.apps)
	case key == "POST /assets/demo/upload":
		json.NewEncoder(w).Encode(map[string]string{"secure_url": "https://assets.example.com/demo/resume.pdf"})
	case strings.HasPrefix(key, "POST /userlogin/"), strings.HasPrefix(key, "PUT /user/profile/"):
		json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
	default:
		http.NotFound(w, r)
	}
}

func (b *backend) Requests() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.requests...)
}

func (b *backend) Body(key string, v any) {
	b.t.Helper()
	b.mu.Lock()
	raw := b.bodies[key]
	b.mu.Unlock()
	if err := json.Unmarshal(raw, v); err != nil {
		b.t.Fatalf("decoding body of %s: %v", key, err)
	}
}

func testConfig(apiURL string) *config.Config {
	return &config.Config{
		APIURL:       apiURL,
		UploadURL:    apiURL + "/assets",
		CloudName:    "demo",
		UploadPreset: "PDF_Resume",
		LogLevel:     "error",
		LogFormat:    "text",
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// signedOutApp wires the command stack to srv with an empty store.
func signedOutApp(srv *httptest.Server) (*app, *storage.MemoryStore) {
	store := storage.NewMemory()
	return newApp(testConfig(srv.URL), store, quietLogger()), store
}

// signedInApp is signedOutApp with a session for userID already stored.
func signedInApp(t *testing.T, srv *httptest.Server, userID string) (*app, *storage.MemoryStore) {
	_, store := sessiontest.LoggedIn(t, userID)
	return newApp(testConfig(srv.URL), store, quietLogger()), store
}

func withJSONOutput(t *testing.T) {
	jsonOutput = true
	t.Cleanup(func() { jsonOutput = false })
}

func decodeResult(t *testing.T, out *bytes.Buffer) result {
	t.Helper()
	var r result
	if err := json.Unmarshal(out.Bytes(), &r); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out.String())
	}
	return r
}

func TestJSONOutput(t *testing.T) {
	withJSONOutput(t)

	if !IsJSONOutput() {
		t.Error("expected IsJSONOutput to return true")
	}
}

func TestRouteHint(t *testing.T) {
	if !strings.Contains(routeHint(flows.RouteLogin), "careervista login") {
		t.Error("expected login hint")
	}
	if routeHint(flows.RouteHome) != "" {
		t.Error("expected no hint for home")
	}
}

func TestCLIEffectsPrintsNotices(t *testing.T) {
	var buf bytes.Buffer
	fx := cliEffects{&buf}

	fx.Notify(flows.Notice{Level: flows.NoticeSuccess, Text: "done"})
	fx.Notify(flows.Notice{Level: flows.NoticeError, Text: "broken"})
	fx.Navigate(flows.RouteResetPassword)

	out := buf.String()
	if !strings.Contains(out, "✓ done") {
		t.Errorf("expected success notice, got %q", out)
	}
	if !strings.Contains(out, "✗ broken") {
		t.Errorf("expected error notice, got %q", out)
	}
	if !strings.Contains(out, "password reset") {
		t.Errorf("expected reset hint, got %q", out)
	}
}

func TestCLIEffectsSilentInJSONMode(t *testing.T) {
	withJSONOutput(t)
	var buf bytes.Buffer
	fx := cliEffects{&buf}

	fx.Notify(flows.Notice{Level: flows.NoticeSuccess, Text: "done"})
	fx.Navigate(flows.RouteLogin)

	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestSubcommandsRegistered(t *testing.T) {
	want := []string{"login", "logout", "password", "profile", "applications", "account", "theme", "config", "ui", "signup"}
	have := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		have[c.Name()] = true
	}
	for _, name := range want {
		if !have[name] {
			t.Errorf("expected %q to be registered", name)
		}
	}
}

func TestTUIDepsShareTheStack(t *testing.T) {
	_, srv := newBackend(t)
	a, store := signedOutApp(srv)

	deps := tuiDeps(a, true)

	if deps.Session != a.sess || deps.Store != storage.Store(store) {
		t.Error("expected the interface to share the session and store")
	}
	if deps.Auth == nil || deps.Profiles == nil || deps.Apps == nil || deps.Uploader == nil {
		t.Error("expected every backend slice wired")
	}
	if !deps.DarkBackground {
		t.Error("expected background flag passed through")
	}
}
