// Package guard holds the pure route-guard decisions. Guards are evaluated
// fresh on every navigation, keep no state of their own, and never panic:
// an unresolved session is treated as empty, not as authorized.
package guard

import (
	"net/url"

	"github.com/ValenCardozo/expert-pancake/internal/core/domain"
)

// Well-known navigation targets.
const (
	HomePath      = "/"
	LoginPath     = "/login"
	ForbiddenPath = "/forbidden"
)

// Decision is the outcome of a guard evaluation: either render the requested
// view or redirect elsewhere.
type Decision struct {
	Allow    bool
	Redirect string
}

func allow() Decision {
	return Decision{Allow: true}
}

func redirect(target string) Decision {
	return Decision{Redirect: target}
}

// PublicOnly admits only unauthenticated sessions; an authenticated one is
// sent home.
func PublicOnly(session domain.Identity) Decision {
	if session.IsZero() {
		return allow()
	}
	return redirect(HomePath)
}

// AuthRequired admits authenticated sessions. The originally requested
// location travels along in the login redirect so the post-login flow can
// return there (best effort).
func AuthRequired(session domain.Identity, requested string) Decision {
	if !session.IsZero() {
		return allow()
	}
	return redirect(loginRedirect(requested))
}

// RoleRequired admits authenticated sessions whose role is in allowed. An
// authenticated session with the wrong role is sent to the access-denied
// view, never back to login.
func RoleRequired(session domain.Identity, requested string, allowed ...string) Decision {
	if session.IsZero() {
		return redirect(loginRedirect(requested))
	}
	for _, role := range allowed {
		if session.Role == role {
			return allow()
		}
	}
	return redirect(ForbiddenPath)
}

func loginRedirect(requested string) string {
	if requested == "" || requested == LoginPath {
		return LoginPath
	}
	return LoginPath + "?next=" + url.QueryEscape(requested)
}
