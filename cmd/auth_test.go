// ABOUTME: Tests for the login and logout commands
// ABOUTME: Verifies stored session state, output and exit codes

package cmd

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/careervista/careervista-cli/internal/client"
	"github.com/careervista/careervista-cli/internal/flows"
	"github.com/careervista/careervista-cli/internal/session"
	"github.com/careervista/careervista-cli/internal/session/sessiontest"
	"github.com/careervista/careervista-cli/internal/validate"
)

func TestLoginCommand_Success(t *testing.T) {
	b, srv := newBackend(t)
	b.token = sessiontest.Token(t, "u1")
	a, store := signedOutApp(srv)
	var buf bytes.Buffer

	exitCode := runLogin(context.Background(), &buf, a, "u1@example.com", "Secret1!")

	if exitCode != exitOK {
		t.Errorf("expected exit code %d, got %d\n%s", exitOK, exitCode, buf.String())
	}
	if got, _ := store.Get(session.KeyToken); got != b.token {
		t.Error("expected token stored")
	}
	if !strings.Contains(buf.String(), flows.MsgLoggedIn) {
		t.Errorf("expected success notice, got %q", buf.String())
	}

	var sent client.LoginRequest
	b.Body("POST /userlogin/login", &sent)
	if sent.Email != "u1@example.com" || sent.Password != "Secret1!" {
		t.Errorf("unexpected login body %+v", sent)
	}
}

func TestLoginCommand_ValidationSkipsBackend(t *testing.T) {
	b, srv := newBackend(t)
	a, _ := signedOutApp(srv)
	var buf bytes.Buffer

	exitCode := runLogin(context.Background(), &buf, a, "", "")

	if exitCode != exitInvalid {
		t.Errorf("expected exit code %d, got %d", exitInvalid, exitCode)
	}
	if len(b.Requests()) != 0 {
		t.Errorf("expected no requests, got %v", b.Requests())
	}
	if !strings.Contains(buf.String(), validate.MsgLoginIDRequired) {
		t.Errorf("expected login id error, got %q", buf.String())
	}
}

func TestLoginCommand_ServerRejects(t *testing.T) {
	b, srv := newBackend(t)
	b.status["POST /userlogin/login"] = http.StatusUnauthorized
	a, _ := signedOutApp(srv)
	withJSONOutput(t)
	var buf bytes.Buffer

	exitCode := runLogin(context.Background(), &buf, a, "u1@example.com", "Secret1!")

	if exitCode != exitError {
		t.Errorf("expected exit code %d, got %d", exitError, exitCode)
	}
	r := decodeResult(t, &buf)
	if r.OK || r.Error != "backend says no" {
		t.Errorf("expected server message in result, got %+v", r)
	}
}

func TestLogoutCommand_ClearsSessionKeepsTheme(t *testing.T) {
	b, srv := newBackend(t)
	a, store := signedInApp(t, srv, "u1")
	if err := a.sess.SetTheme(session.ThemeDark); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer

	exitCode := runLogout(context.Background(), &buf, a)

	if exitCode != exitOK {
		t.Errorf("expected exit code %d, got %d", exitOK, exitCode)
	}
	if _, ok := store.Get(session.KeyToken); ok {
		t.Error("expected token removed")
	}
	if a.sess.Theme() != session.ThemeDark {
		t.Errorf("expected theme kept, got %s", a.sess.Theme())
	}
	if reqs := b.Requests(); len(reqs) != 1 || reqs[0] != "POST /userlogin/logout" {
		t.Errorf("expected one logout request, got %v", reqs)
	}
}

func TestLogoutCommand_NotLoggedIn(t *testing.T) {
	b, srv := newBackend(t)
	a, _ := signedOutApp(srv)
	var buf bytes.Buffer

	exitCode := runLogout(context.Background(), &buf, a)

	if exitCode != exitInvalid {
		t.Errorf("expected exit code %d, got %d", exitInvalid, exitCode)
	}
	if len(b.Requests()) != 0 {
		t.Error("expected no backend call without a token")
	}
}
