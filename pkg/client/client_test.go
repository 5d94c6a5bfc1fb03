package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/ValenCardozo/expert-pancake/internal/auth/session"
	"github.com/ValenCardozo/expert-pancake/internal/auth/token"
	"github.com/ValenCardozo/expert-pancake/internal/core/domain"
)

var testKey = []byte("client-test-secret")

func signedToken(t *testing.T) string {
	t.Helper()
	issuer := token.NewIssuer(testKey, time.Hour)
	raw, err := issuer.Sign(&domain.User{
		ID:    "u-1",
		Name:  "Ana",
		Email: "ana@example.com",
		Role:  domain.RoleUser,
	}, time.Now())
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return raw
}

// newSession wires a store whose outbound credential comes from storage,
// decoded without signature verification the way a client does.
func newSession(storage session.CredentialStorage, auth session.Authenticator) *session.Store {
	return session.NewStore(storage, token.NewValidator(nil), auth, zerolog.Nop())
}

func TestLoginThroughClient(t *testing.T) {
	raw := signedToken(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/login" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode login request: %v", err)
		}
		if req.Password != "s3cret" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "invalid credentials"})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"token": raw})
	}))
	defer srv.Close()

	c := New(srv.URL, zerolog.Nop())
	store := newSession(session.NewMemoryStorage(), c)
	c.AttachSession(store)

	identity, err := store.Login(context.Background(), "ana@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if identity.ID != "u-1" || identity.Role != domain.RoleUser {
		t.Fatalf("unexpected identity: %+v", identity)
	}
	if store.Credential() != raw {
		t.Fatal("expected issued token to become the active credential")
	}

	if _, err := store.Login(context.Background(), "ana@example.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestRestoredCredentialIsAttached(t *testing.T) {
	raw := signedToken(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer "+raw {
			t.Fatalf("unexpected Authorization header: %q", got)
		}
		json.NewEncoder(w).Encode(ProductPage{Items: []*domain.Product{{ID: "p-1", Name: "Lamp"}}, Total: 1, Page: 1, Limit: 20, TotalPages: 1})
	}))
	defer srv.Close()

	storage := session.NewMemoryStorage()
	storage.Write(context.Background(), raw)

	store := newSession(storage, nil)
	if err := store.Restore(context.Background()); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if store.Current().IsZero() {
		t.Fatal("expected restored session")
	}

	c := New(srv.URL, zerolog.Nop())
	c.AttachSession(store)
	page, err := c.ListProducts(context.Background(), ListOptions{})
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].Name != "Lamp" {
		t.Fatalf("unexpected page: %+v", page)
	}
}

func TestRejectedCredentialDropsSession(t *testing.T) {
	raw := signedToken(t)

	var sawBearer []bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawBearer = append(sawBearer, r.Header.Get("Authorization") != "")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "session expired"})
	}))
	defer srv.Close()

	storage := session.NewMemoryStorage()
	storage.Write(context.Background(), raw)

	store := newSession(storage, nil)
	if err := store.Restore(context.Background()); err != nil {
		t.Fatalf("restore: %v", err)
	}

	c := New(srv.URL, zerolog.Nop())
	c.AttachSession(store)
	if _, err := c.ListProducts(context.Background(), ListOptions{}); !errors.Is(err, ErrSessionRejected) {
		t.Fatalf("expected ErrSessionRejected, got %v", err)
	}
	if !store.Current().IsZero() {
		t.Fatal("expected session to be dropped")
	}
	if persisted, _ := storage.Read(context.Background()); persisted != "" {
		t.Fatal("expected persisted credential to be cleared")
	}

	// A second call goes out unauthenticated and the repeated rejection is
	// still classified, with nothing left to log out.
	if _, err := c.ListProducts(context.Background(), ListOptions{}); !errors.Is(err, ErrSessionRejected) {
		t.Fatalf("expected ErrSessionRejected, got %v", err)
	}
	if len(sawBearer) != 2 || !sawBearer[0] || sawBearer[1] {
		t.Fatalf("expected bearer on first request only, got %v", sawBearer)
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		status int
		authed bool
		want   Class
	}{
		{http.StatusOK, true, ClassOK},
		{http.StatusCreated, false, ClassOK},
		{http.StatusNoContent, true, ClassOK},
		{http.StatusUnauthorized, true, ClassAuthRejected},
		{http.StatusUnauthorized, false, ClassError},
		{http.StatusForbidden, true, ClassError},
		{http.StatusNotFound, true, ClassError},
		{http.StatusInternalServerError, true, ClassError},
	}
	for _, tc := range cases {
		if got := Classify(tc.status, tc.authed); got != tc.want {
			t.Fatalf("Classify(%d, %v) = %v, want %v", tc.status, tc.authed, got, tc.want)
		}
	}
}

func TestAPIErrorCarriesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "product not found"})
	}))
	defer srv.Close()

	storage := session.NewMemoryStorage()
	storage.Write(context.Background(), signedToken(t))
	store := newSession(storage, nil)
	if err := store.Restore(context.Background()); err != nil {
		t.Fatalf("restore: %v", err)
	}

	c := New(srv.URL, zerolog.Nop())
	c.AttachSession(store)
	_, err := c.GetProduct(context.Background(), "missing")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusNotFound || apiErr.Message != "product not found" {
		t.Fatalf("unexpected error: %+v", apiErr)
	}
}

func TestResetFlowPayloads(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/forgotPassword":
			var req struct {
				Email string `json:"email"`
			}
			json.NewDecoder(r.Body).Decode(&req)
			if req.Email != "ana@example.com" {
				t.Fatalf("unexpected email: %q", req.Email)
			}
			w.WriteHeader(http.StatusAccepted)
			json.NewEncoder(w).Encode(map[string]string{"message": "reset instructions sent"})
		case "/auth/resetPassword":
			var req struct {
				ID          string `json:"id"`
				Token       string `json:"token"`
				NewPassword string `json:"newPassword"`
			}
			json.NewDecoder(r.Body).Decode(&req)
			if req.ID != "u-1" || req.Token != "challenge" || req.NewPassword != "newpass1" {
				t.Fatalf("unexpected reset payload: %+v", req)
			}
			json.NewEncoder(w).Encode(map[string]string{"message": "password updated"})
		default:
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, zerolog.Nop())
	if err := c.ForgotPassword(context.Background(), "ana@example.com"); err != nil {
		t.Fatalf("forgot password: %v", err)
	}
	if err := c.ResetPassword(context.Background(), "u-1", "challenge", "newpass1"); err != nil {
		t.Fatalf("reset password: %v", err)
	}
}
