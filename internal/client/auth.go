// ABOUTME: Authentication endpoints: login, logout and the password flows
// ABOUTME: All live under /userlogin on the backend

package client

import (
	"context"
	"fmt"
	"net/http"
)

// LoginRequest is the body of POST /userlogin/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued session token.
type LoginResponse struct {
	Token   string `json:"token"`
	Message string `json:"message,omitempty"`
}

// ChangePasswordRequest is the body of POST /userlogin/change-password.
type ChangePasswordRequest struct {
	OldPassword     string `json:"oldPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// ForgotPasswordRequest is the body of POST /userlogin/forgot-password.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest is the body of POST /userlogin/reset-password.
type ResetPasswordRequest struct {
	Email       string `json:"email"`
	NewPassword string `json:"newPassword"`
}

// Login calls POST /userlogin/login
func (c *Client) Login(ctx context.Context, in LoginRequest) (*LoginResponse, error) {
	var out LoginResponse
	if err := c.do(ctx, http.MethodPost, "/userlogin/login", in, &out, false); err != nil {
		return nil, err
	}
	if out.Token == "" {
		return nil, fmt.Errorf("invalid response from backend: no token")
	}
	return &out, nil
}

// Logout calls POST /userlogin/logout
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/userlogin/logout", struct{}{}, nil, true)
}

// ChangePassword calls POST /userlogin/change-password
func (c *Client) ChangePassword(ctx context.Context, in ChangePasswordRequest) error {
	return c.do(ctx, http.MethodPost, "/userlogin/change-password", in, nil, true)
}

// ForgotPassword calls POST /userlogin/forgot-password
func (c *Client) ForgotPassword(ctx context.Context, in ForgotPasswordRequest) error {
	return c.do(ctx, http.MethodPost, "/userlogin/forgot-password", in, nil, false)
}

// ResetPassword calls POST /userlogin/reset-password
func (c *Client) ResetPassword(ctx context.Context, in ResetPasswordRequest) error {
	return c.do(ctx, http.MethodPost, "/userlogin/reset-password", in, nil, false)
}
