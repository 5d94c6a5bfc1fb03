package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/ValenCardozo/expert-pancake/internal/core/domain"
)

// UserInput is the admin create payload for an account. Role defaults to
// the regular user role when empty.
type UserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
	Age      int    `json:"age,omitempty"`
	Role     string `json:"role,omitempty"`
}

// UserPage is one page of the account listing.
type UserPage struct {
	Users      []*domain.User `json:"users"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
}

func (c *Client) ListUsers(ctx context.Context, opts ListOptions) (*UserPage, error) {
	var page UserPage
	if err := c.do(ctx, http.MethodGet, "/v1/users"+opts.encode(), true, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) GetUser(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodGet, "/v1/users/"+url.PathEscape(id), true, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) CreateUser(ctx context.Context, in UserInput) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodPost, "/v1/users", true, in, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) UpdateUser(ctx context.Context, id string, in UserInput) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodPut, "/v1/users/"+url.PathEscape(id), true, in, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUserRole flips an account between the known roles. The server
// refuses role changes on the caller's own account.
func (c *Client) UpdateUserRole(ctx context.Context, id, role string) (*domain.User, error) {
	body := struct {
		Role string `json:"role"`
	}{Role: role}
	var user domain.User
	if err := c.do(ctx, http.MethodPatch, "/v1/users/"+url.PathEscape(id)+"/role", true, body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/v1/users/"+url.PathEscape(id), true, nil, nil)
}
