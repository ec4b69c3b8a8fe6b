package models

import (
	"bytes"
	"encoding/json"
	"strings"
)

// UserID is an opaque backend-assigned identifier. Backends return it either
// as a JSON number or a string, so it unmarshals from both and is kept as text.
type UserID string

// UnmarshalJSON accepts a JSON string or number.
func (id *UserID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = UserID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = UserID(n.String())
	return nil
}

// UserProfile is the cached identity of the logged-in user.
type UserProfile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	ID    UserID `json:"id,omitempty"`
}

// Valid reports whether the profile is structurally usable. A profile without
// an email is discarded entirely, never partially trusted.
func (u UserProfile) Valid() bool {
	return u.Email != ""
}

// NormalizeEmail lower-cases and trims an email before storage or comparison.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// emailLocalPart returns the part of the email before '@', used as a display
// name fallback when the backend omits one.
func emailLocalPart(email string) string {
	if i := strings.IndexByte(email, '@'); i > 0 {
		return email[:i]
	}
	return email
}
