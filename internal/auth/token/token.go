// Package token issues and validates the bearer credentials that carry an
// embedded identity. Decoding is a pure function of the raw token and the
// supplied clock reading, producing either a complete Identity or a typed
// rejection. Downstream code never inspects unchecked claims.
package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ValenCardozo/expert-pancake/internal/core/domain"
)

// ErrInvalidToken is the sentinel all decode rejections match via errors.Is.
var ErrInvalidToken = errors.New("invalid token")

// Rejection reasons carried by InvalidTokenError.
const (
	ReasonMalformed       = "malformed"
	ReasonBadSignature    = "bad_signature"
	ReasonMissingExpiry   = "missing_expiry"
	ReasonExpired         = "expired"
	ReasonMissingIdentity = "missing_identity"
)

// InvalidTokenError reports why a credential was rejected.
type InvalidTokenError struct {
	Reason string
}

func (e *InvalidTokenError) Error() string {
	return fmt.Sprintf("invalid token: %s", e.Reason)
}

func (e *InvalidTokenError) Is(target error) bool {
	return target == ErrInvalidToken
}

func invalid(reason string) (domain.Identity, error) {
	return domain.Identity{}, &InvalidTokenError{Reason: reason}
}

// Validator decodes credentials into identities.
//
// With a key, the HS256 signature is verified (server side). With a nil key
// the signature is skipped: that is the client-side decode of a token the
// client itself received from the server, where the server remains the
// authority and the client only needs the embedded claims and expiry.
type Validator struct {
	key []byte
}

func NewValidator(key []byte) *Validator {
	return &Validator{key: key}
}

// Decode parses raw and returns the embedded Identity. It fails with an
// InvalidTokenError when the token is malformed, its signature does not
// verify (keyed validators only), the expiry claim is absent or not after
// now, or the identity claims are missing or incomplete. Deterministic for
// a given raw and now; no side effects.
func (v *Validator) Decode(raw string, now time.Time) (domain.Identity, error) {
	claims := jwt.MapClaims{}

	if v.key == nil {
		parser := jwt.NewParser()
		if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
			return invalid(ReasonMalformed)
		}
	} else {
		tkn, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
			if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, jwt.ErrTokenSignatureInvalid
			}
			return v.key, nil
		}, jwt.WithoutClaimsValidation())
		if err != nil {
			if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
				return invalid(ReasonBadSignature)
			}
			return invalid(ReasonMalformed)
		}
		if !tkn.Valid {
			return invalid(ReasonBadSignature)
		}
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return invalid(ReasonMissingExpiry)
	}
	if !exp.Time.After(now) {
		return invalid(ReasonExpired)
	}

	identity, ok := identityFromClaims(claims)
	if !ok {
		return invalid(ReasonMissingIdentity)
	}
	return identity, nil
}

// identityFromClaims extracts the nested "user" claim object. id, name,
// email and role are required; age is optional.
func identityFromClaims(claims jwt.MapClaims) (domain.Identity, bool) {
	sub, ok := claims["user"].(map[string]interface{})
	if !ok {
		return domain.Identity{}, false
	}

	identity := domain.Identity{
		ID:    stringClaim(sub["id"]),
		Name:  stringClaim(sub["name"]),
		Email: stringClaim(sub["email"]),
		Role:  stringClaim(sub["role"]),
	}
	if age, ok := sub["age"].(float64); ok {
		identity.Age = int(age)
	}

	if identity.ID == "" || identity.Name == "" || identity.Email == "" || identity.Role == "" {
		return domain.Identity{}, false
	}
	return identity, true
}

// stringClaim tolerates numeric ids: JSON numbers arrive as float64.
func stringClaim(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatInt(int64(val), 10)
	default:
		return ""
	}
}

// Issuer signs credentials for authenticated users.
type Issuer struct {
	key []byte
	ttl time.Duration
}

func NewIssuer(key []byte, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Issuer{key: key, ttl: ttl}
}

// Sign produces an HS256 token expiring ttl after now, embedding the user's
// identity under the "user" claim so Decode round-trips it.
func (i *Issuer) Sign(user *domain.User, now time.Time) (string, error) {
	sub := map[string]interface{}{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
	}
	if user.Age > 0 {
		sub["age"] = user.Age
	}

	claims := jwt.MapClaims{
		"exp":  now.Add(i.ttl).Unix(),
		"user": sub,
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(i.key)
}

// TTL exposes the configured token lifetime.
func (i *Issuer) TTL() time.Duration {
	return i.ttl
}
