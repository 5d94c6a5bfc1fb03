package domain

// Identity is the set of user attributes embedded in a credential. It is
// always derived from a validated token, never persisted, and discarded on
// logout.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Age   int    `json:"age,omitempty"`
	Role  string `json:"role"`
}

// IsZero reports whether the identity is empty (no authenticated user).
func (i Identity) IsZero() bool {
	return i == Identity{}
}
