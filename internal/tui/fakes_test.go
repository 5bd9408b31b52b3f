// ABOUTME: Fake backend for driving the TUI without a network
// ABOUTME: Implements the auth, profile, applications and upload slices

package tui

import (
	"context"
	"sync"

	"github.com/careervista/careervista-cli/internal/client"
)

type fakeBackend struct {
	mu    sync.Mutex
	calls []string

	loginToken string
	loginErr   error
	logoutErr  error
	forgotErr  error

	profile   client.Profile
	updated   client.ProfileUpdate
	updateErr error

	apps []client.JobApplication

	uploadURL string
}

func (f *fakeBackend) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
}

func (f *fakeBackend) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeBackend) Login(_ context.Context, in client.LoginRequest) (*client.LoginResponse, error) {
	f.record("login")
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &client.LoginResponse{Token: f.loginToken}, nil
}

func (f *fakeBackend) Logout(context.Context) error {
	f.record("logout")
	return f.logoutErr
}

func (f *fakeBackend) ChangePassword(context.Context, client.ChangePasswordRequest) error {
	f.record("change-password")
	return nil
}

func (f *fakeBackend) ForgotPassword(context.Context, client.ForgotPasswordRequest) error {
	f.record("forgot-password")
	return f.forgotErr
}

func (f *fakeBackend) ResetPassword(context.Context, client.ResetPasswordRequest) error {
	f.record("reset-password")
	return nil
}

func (f *fakeBackend) GetProfile(_ context.Context, userID string) (*client.Profile, error) {
	f.record("get-profile:" + userID)
	p := f.profile
	return &p, nil
}

func (f *fakeBackend) UpdateProfile(_ context.Context, userID string, in client.ProfileUpdate) error {
	f.record("update-profile:" + userID)
	f.mu.Lock()
	f.updated = in
	f.mu.Unlock()
	return f.updateErr
}

func (f *fakeBackend) ListApplications(_ context.Context, userID string) ([]client.JobApplication, error) {
	f.record("list-applications:" + userID)
	return f.apps, nil
}

func (f *fakeBackend) Upload(_ context.Context, filename string, _ []byte, publicID string) (string, error) {
	f.record("upload:" + filename)
	return f.uploadURL, nil
}
