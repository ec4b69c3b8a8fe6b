package models

import (
	"bytes"
	"encoding/json"
)

// loginEnvelope covers the token spellings different backend versions use.
// Exactly one of the fields is expected to be set.
type loginEnvelope struct {
	Token       string          `json:"token"`
	JWT         string          `json:"jwt"`
	AccessToken string          `json:"accessToken"`
	User        json.RawMessage `json:"user"`

	// Flat fallbacks when no nested user object is present.
	Name     string `json:"name"`
	Username string `json:"username"`
	ID       UserID `json:"id"`
}

// ExtractToken pulls the bearer token out of a login/registration response
// body. The body may be a bare JSON string or an object carrying the token
// under "token", "jwt" or "accessToken". Returns false when no token is found.
func ExtractToken(body []byte) (string, bool) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return "", false
	}

	if body[0] == '"' {
		var s string
		if err := json.Unmarshal(body, &s); err != nil || s == "" {
			return "", false
		}
		return s, true
	}

	var env loginEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return "", false
	}
	for _, tok := range []string{env.Token, env.JWT, env.AccessToken} {
		if tok != "" {
			return tok, true
		}
	}
	return "", false
}

// ExtractUser builds a UserProfile from a login response body. The user data
// may sit in a nested "user" object or flat on the top level. The email the
// user logged in with wins over anything in the response; the display name
// falls back to the email's local part when the backend omits it.
func ExtractUser(body []byte, email string) UserProfile {
	email = NormalizeEmail(email)
	profile := UserProfile{Email: email}

	var env loginEnvelope
	if err := json.Unmarshal(bytes.TrimSpace(body), &env); err == nil {
		if len(env.User) > 0 {
			var nested struct {
				Name     string `json:"name"`
				Username string `json:"username"`
				ID       UserID `json:"id"`
			}
			if err := json.Unmarshal(env.User, &nested); err == nil {
				profile.Name = firstNonEmpty(nested.Name, nested.Username)
				profile.ID = nested.ID
			}
		} else {
			profile.Name = firstNonEmpty(env.Name, env.Username)
			profile.ID = env.ID
		}
	}

	if profile.Name == "" {
		profile.Name = emailLocalPart(email)
	}
	if profile.Name == "" {
		profile.Name = "User"
	}
	return profile
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
