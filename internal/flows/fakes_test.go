// ABOUTME: In-package fakes for the backend slices the flows depend on
// ABOUTME: Every call is appended to a shared log so ordering can be asserted

package flows

import (
	"context"
	"sync"

	"github.com/careervista/careervista-cli/internal/client"
)

type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) add(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, name)
}

func (l *callLog) list() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

type fakeAuth struct {
	log *callLog

	loginToken string
	loginErr   error
	logoutErr  error
	changeErr  error
	forgotErr  error
	resetErr   error

	changeReq client.ChangePasswordRequest
	forgotReq client.ForgotPasswordRequest
	resetReq  client.ResetPasswordRequest
	loginReq  client.LoginRequest
}

func newFakeAuth() *fakeAuth {
	return &fakeAuth{log: &callLog{}, loginToken: "tok"}
}

func (f *fakeAuth) Login(_ context.Context, in client.LoginRequest) (*client.LoginResponse, error) {
	f.log.add("login")
	f.loginReq = in
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &client.LoginResponse{Token: f.loginToken}, nil
}

func (f *fakeAuth) Logout(context.Context) error {
	f.log.add("logout")
	return f.logoutErr
}

func (f *fakeAuth) ChangePassword(_ context.Context, in client.ChangePasswordRequest) error {
	f.log.add("change-password")
	f.changeReq = in
	return f.changeErr
}

func (f *fakeAuth) ForgotPassword(_ context.Context, in client.ForgotPasswordRequest) error {
	f.log.add("forgot-password")
	f.forgotReq = in
	return f.forgotErr
}

func (f *fakeAuth) ResetPassword(_ context.Context, in client.ResetPasswordRequest) error {
	f.log.add("reset-password")
	f.resetReq = in
	return f.resetErr
}

type fakeProfiles struct {
	log       *callLog
	profile   client.Profile
	getErr    error
	updateErr error
	updated   []client.ProfileUpdate
	userIDs   []string
}

func (f *fakeProfiles) GetProfile(_ context.Context, userID string) (*client.Profile, error) {
	f.log.add("get-profile")
	f.userIDs = append(f.userIDs, userID)
	if f.getErr != nil {
		return nil, f.getErr
	}
	p := f.profile
	return &p, nil
}

func (f *fakeProfiles) UpdateProfile(_ context.Context, userID string, in client.ProfileUpdate) error {
	f.log.add("update-profile")
	f.userIDs = append(f.userIDs, userID)
	f.updated = append(f.updated, in)
	return f.updateErr
}

type fakeUploader struct {
	log       *callLog
	url       string
	err       error
	publicIDs []string
}

func (f *fakeUploader) Upload(_ context.Context, _ string, _ []byte, publicID string) (string, error) {
	f.log.add("upload")
	f.publicIDs = append(f.publicIDs, publicID)
	return f.url, f.err
}

type fakeApplications struct {
	log   *callLog
	items []client.JobApplication
	err   error
}

func (f *fakeApplications) ListApplications(_ context.Context, userID string) ([]client.JobApplication, error) {
	f.log.add("list:" + userID)
	return f.items, f.err
}

// effectLog is an Effects that writes into the same call log as the fakes.
type effectLog struct {
	log *callLog
	Recorder
}

func (e *effectLog) Notify(n Notice) {
	e.log.add("notify:" + n.Text)
	e.Recorder.Notify(n)
}

func (e *effectLog) Navigate(to Route) {
	e.log.add("navigate:" + string(to))
	e.Recorder.Navigate(to)
}
