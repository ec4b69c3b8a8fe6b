// Package sessionstore persists the client session — credential, user
// profile, and the last prediction payload — in a local SQLite database.
// It performs no network I/O.
package sessionstore

import (
	"context"
	"errors"

	"github.com/glucotrack/glucotrack/internal/client/models"
)

// Storage keys. Token, user and expiry form one logical unit: they are
// written and cleared together, and a partial subset is never trusted.
const (
	keyToken      = "token"
	keyUser       = "user"
	keyExpiry     = "tokenExpiry"
	keyPrediction = "predictionData"
)

// ErrCorrupt is returned by Load when fully present session data fails
// validation. The store clears the remnants before returning it.
var ErrCorrupt = errors.New("corrupt session data")

// Session is the durable session unit as read back from storage.
type Session struct {
	Credential models.Credential
	User       models.UserProfile
}

// Store is the persistent session store contract.
type Store interface {
	// Save persists credential and user atomically.
	Save(ctx context.Context, cred models.Credential, user models.UserProfile) error
	// Load returns the stored session; (nil, nil) when none exists or only
	// a partial remnant did (which is wiped); ErrCorrupt after wiping fully
	// present data that fails validation.
	Load(ctx context.Context) (*Session, error)
	// Clear removes the session keys as one unit.
	Clear(ctx context.Context) error

	// SavePrediction stores the raw JSON of the last prediction response.
	SavePrediction(ctx context.Context, raw []byte) error
	// LoadPrediction returns the stored prediction payload, nil when absent.
	LoadPrediction(ctx context.Context) ([]byte, error)
}
