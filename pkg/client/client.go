// Package client is a Go client for the admin API. It attaches the active
// session credential to every protected request and, when the server rejects
// that credential, drops the local session so the caller never keeps acting
// on stale auth state.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// ErrSessionRejected is returned when the server answers a protected request
// with 401. By the time the caller sees it the local session has already been
// logged out.
var ErrSessionRejected = errors.New("session rejected by server")

// Class is how a response is handled after the status line is known.
type Class int

const (
	// ClassOK: success, decode the body.
	ClassOK Class = iota
	// ClassAuthRejected: the server refused the session credential. The
	// local session must be dropped.
	ClassAuthRejected
	// ClassError: any other failure. Surfaced to the caller, session kept.
	ClassError
)

// Classify maps a response status to its handling class. A 401 counts as a
// credential rejection only on requests that carried the session; on public
// endpoints (login itself) it is an ordinary error.
func Classify(status int, authed bool) Class {
	switch {
	case status >= 200 && status <= 299:
		return ClassOK
	case status == http.StatusUnauthorized && authed:
		return ClassAuthRejected
	default:
		return ClassError
	}
}

// Session is the slice of the session store the client depends on: the
// outbound credential and the ability to drop the session when the server
// rejects it.
type Session interface {
	Credential() string
	Logout(ctx context.Context) error
}

// APIError is any non-2xx answer that is not a credential rejection.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// Client talks to one admin API deployment.
//
// The client and the session store reference each other: the store calls
// Authenticate during login, the client reads the store's credential on
// every protected request. Wire them in two steps:
//
//	c := client.New(url, log)
//	store := session.NewStore(storage, validator, c, log)
//	c.AttachSession(store)
type Client struct {
	baseURL string
	http    *http.Client
	session Session
	log     zerolog.Logger
}

func New(baseURL string, log zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		log:     log,
	}
}

// AttachSession binds the session store. Protected requests go out
// unauthenticated until a session is attached.
func (c *Client) AttachSession(s Session) {
	c.session = s
}

// SetHTTPClient replaces the underlying HTTP client. Intended for tests and
// callers that need custom transports.
func (c *Client) SetHTTPClient(h *http.Client) {
	c.http = h
}

// do builds and executes one request. When authed is true the current
// credential (if any) goes out as a bearer token, and a 401 answer logs the
// session out before returning ErrSessionRejected. Each response triggers at
// most one logout; an already-empty session makes it a no-op.
func (c *Client) do(ctx context.Context, method, path string, authed bool, body, out any) error {
	var payload io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		payload = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed && c.session != nil {
		if cred := c.session.Credential(); cred != "" {
			req.Header.Set("Authorization", "Bearer "+cred)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch Classify(resp.StatusCode, authed) {
	case ClassAuthRejected:
		c.log.Warn().Str("path", path).Msg("credential rejected, dropping session")
		if c.session != nil {
			if err := c.session.Logout(ctx); err != nil {
				c.log.Error().Err(err).Msg("logout after rejection failed")
			}
		}
		return ErrSessionRejected
	case ClassError:
		return &APIError{Status: resp.StatusCode, Message: errorMessage(resp.Body)}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// errorMessage extracts the server's error text. The API envelope uses
// "error"; echo's default handler uses "message". Falls back to raw text.
func errorMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(raw) == 0 {
		return "unexpected response"
	}
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Error != "" {
			return body.Error
		}
		if body.Message != "" {
			return body.Message
		}
	}
	return string(raw)
}
