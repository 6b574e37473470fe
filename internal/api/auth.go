package api

import (
	"context"
	"net/http"

	"github.com/carehub-project/carectl/internal/model"
)

// LoginCredentials is the payload for POST /auth/login
type LoginCredentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterInput is the payload for POST /auth/register. The backend lets
// the caller pick the role, doctor included, with no verification step; the
// behavior is kept as the backend defines it.
type RegisterInput struct {
	Name     string     `json:"name" validate:"required"`
	Email    string     `json:"email" validate:"required,email"`
	Password string     `json:"password" validate:"required,min=8"`
	Role     model.Role `json:"role,omitempty" validate:"omitempty,oneof=patient doctor"`
}

// UpdateProfileInput is the payload for PATCH /auth/update
type UpdateProfileInput struct {
	Name string `json:"name" validate:"required"`
}

// ChangePasswordInput is the payload for PATCH /auth/change-password
type ChangePasswordInput struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

// UserList is the envelope for GET /auth
type UserList struct {
	Count int          `json:"count"`
	Users []model.User `json:"users"`
}

// Register creates an account. A successful registration yields an
// authenticated session, indistinguishable from a login.
func (c *Client) Register(ctx context.Context, input RegisterInput) (*model.AuthResponse, error) {
	if err := c.check(input); err != nil {
		return nil, err
	}
	var resp model.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, input, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login exchanges credentials for tokens and the identity record
func (c *Client) Login(ctx context.Context, creds LoginCredentials) (*model.AuthResponse, error) {
	if err := c.check(creds); err != nil {
		return nil, err
	}
	var resp model.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, creds, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout asks the backend to invalidate the refresh token server-side
func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	body := map[string]string{"refreshToken": refreshToken}
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, body, nil)
}

// UpdateProfile changes the caller's identity record and returns the new one
func (c *Client) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*model.User, error) {
	if err := c.check(input); err != nil {
		return nil, err
	}
	var resp struct {
		Message string     `json:"message"`
		User    model.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodPatch, "/auth/update", nil, input, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// ChangePassword rotates the caller's password
func (c *Client) ChangePassword(ctx context.Context, input ChangePasswordInput) error {
	if err := c.check(input); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPatch, "/auth/change-password", nil, input, nil)
}

// RefreshToken trades a refresh token for a fresh access token
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	body := map[string]string{"refreshToken": refreshToken}
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/refresh", nil, body, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// ListUsers returns every account; admin only on the backend side
func (c *Client) ListUsers(ctx context.Context) (*UserList, error) {
	var resp UserList
	if err := c.do(ctx, http.MethodGet, "/auth", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
