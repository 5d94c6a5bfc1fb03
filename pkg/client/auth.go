package client

import (
	"context"
	"errors"
	"net/http"

	"github.com/ValenCardozo/expert-pancake/internal/core/domain"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// RegisterInput is the self-service signup payload. New accounts always get
// the regular user role.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
	Age      int    `json:"age,omitempty"`
}

// Authenticate exchanges credentials for a signed token. It satisfies the
// session store's Authenticator, so a Client can be plugged straight into
// session.NewStore. A 401 here is a wrong password, not a dead session.
func (c *Client) Authenticate(ctx context.Context, email, secret string) (string, error) {
	var resp loginResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", false, loginRequest{Email: email, Password: secret}, &resp)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}
	return resp.Token, nil
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", false, in, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// ForgotPassword asks the server to issue a reset challenge. The server acks
// regardless of whether the email is registered.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	body := struct {
		Email string `json:"email"`
	}{Email: email}
	return c.do(ctx, http.MethodPost, "/auth/forgotPassword", false, body, nil)
}

// ResetPassword redeems a reset challenge. Challenges are single use; a
// second redemption fails.
func (c *Client) ResetPassword(ctx context.Context, userID, token, newPassword string) error {
	body := struct {
		ID          string `json:"id"`
		Token       string `json:"token"`
		NewPassword string `json:"newPassword"`
	}{ID: userID, Token: token, NewPassword: newPassword}
	return c.do(ctx, http.MethodPost, "/auth/resetPassword", false, body, nil)
}
