// Package models contains the client-side data model: the session credential,
// the user profile, and the request/response shapes exchanged with the
// prediction backend, including normalization of its heterogeneous field names.
package models

import "time"

// SessionTTL is how long a freshly issued token is considered valid locally.
// The token itself is opaque to the client and is never decoded; expiry is a
// locally stored convention.
const SessionTTL = 24 * time.Hour

// Credential is the bearer token plus its locally assumed expiry.
// Token and ExpiresAt are always set and cleared together; a token without a
// valid expiry is treated as absent.
type Credential struct {
	Token     string
	ExpiresAt time.Time
}

// NewCredential builds a credential for a token issued at the given instant.
func NewCredential(token string, issuedAt time.Time) Credential {
	return Credential{Token: token, ExpiresAt: issuedAt.Add(SessionTTL)}
}

// Valid reports whether the credential is structurally complete.
func (c Credential) Valid() bool {
	return c.Token != "" && !c.ExpiresAt.IsZero()
}

// Expired reports whether the credential is past its expiry at the given instant.
func (c Credential) Expired(now time.Time) bool {
	return !c.ExpiresAt.After(now)
}
