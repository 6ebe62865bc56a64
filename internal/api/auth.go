package api

import (
	"context"
	"net/http"

	"smartpath/internal/models"
)

// AuthClient talks to the authentication endpoints
type AuthClient struct {
	*Client
}

// NewAuthClient creates an auth client sharing the base transport
func NewAuthClient(client *Client) *AuthClient {
	return &AuthClient{Client: client}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is the token envelope returned on a successful login
type LoginResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// Login exchanges credentials for an access token
func (c *AuthClient) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, ErrValidation
	}
	var result LoginResult
	if err := c.do(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Profile fetches the current user's profile using the stored token
func (c *AuthClient) Profile(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/auth/profile", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ProfileUpdate carries the editable profile fields
type ProfileUpdate struct {
	FullName   string `json:"full_name,omitempty"`
	SchoolName string `json:"school_name,omitempty"`
	GradeLevel int    `json:"grade_level,omitempty"`
}

// UpdateProfile changes the current user's editable fields
func (c *AuthClient) UpdateProfile(ctx context.Context, update ProfileUpdate) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPut, "/auth/profile", update, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

type resetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// ResetPassword sets a new password using an emailed reset token
func (c *AuthClient) ResetPassword(ctx context.Context, token, newPassword string) error {
	if token == "" || newPassword == "" {
		return ErrValidation
	}
	return c.do(ctx, http.MethodPost, "/auth/reset-password", resetPasswordRequest{Token: token, NewPassword: newPassword}, nil)
}
