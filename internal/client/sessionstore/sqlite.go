package sessionstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/glucotrack/glucotrack/internal/client/models"
	"github.com/glucotrack/glucotrack/internal/dbx"
)

// SQLiteStore keeps session data in a single key-value table.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore wraps an opened client database.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func get(ctx context.Context, q dbx.DBTX, key string) ([]byte, error) {
	var value []byte
	err := q.QueryRowContext(ctx, `SELECT value FROM session_data WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session_data[%s]: %w", key, err)
	}
	return value, nil
}

func set(ctx context.Context, q dbx.DBTX, key string, value []byte) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO session_data (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set session_data[%s]: %w", key, err)
	}
	return nil
}

func del(ctx context.Context, q dbx.DBTX, keys ...string) error {
	for _, key := range keys {
		if _, err := q.ExecContext(ctx, `DELETE FROM session_data WHERE key = ?`, key); err != nil {
			return fmt.Errorf("failed to delete session_data[%s]: %w", key, err)
		}
	}
	return nil
}

// Save writes token, expiry and user in a single transaction so a reader
// never observes a subset of the three.
func (s *SQLiteStore) Save(ctx context.Context, cred models.Credential, user models.UserProfile) error {
	if !cred.Valid() {
		return fmt.Errorf("refusing to save incomplete credential")
	}
	if !user.Valid() {
		return fmt.Errorf("refusing to save invalid user profile")
	}

	userJSON, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encoding user profile: %w", err)
	}
	expiry := strconv.FormatInt(cred.ExpiresAt.UnixMilli(), 10)

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := set(ctx, tx, keyToken, []byte(cred.Token)); err != nil {
			return err
		}
		if err := set(ctx, tx, keyExpiry, []byte(expiry)); err != nil {
			return err
		}
		return set(ctx, tx, keyUser, userJSON)
	})
}

// Load reads the session back. An empty store yields (nil, nil). A partial
// remnant (some keys missing) means no session was ever completely written:
// it is treated as absent too, after wiping the leftovers. Only data that is
// fully present but fails validation is corrupt: the store is cleared and
// ErrCorrupt returned.
func (s *SQLiteStore) Load(ctx context.Context) (*Session, error) {
	token, err := get(ctx, s.db, keyToken)
	if err != nil {
		return nil, err
	}
	expiry, err := get(ctx, s.db, keyExpiry)
	if err != nil {
		return nil, err
	}
	userJSON, err := get(ctx, s.db, keyUser)
	if err != nil {
		return nil, err
	}

	if token == nil && expiry == nil && userJSON == nil {
		return nil, nil
	}

	if len(token) == 0 || len(expiry) == 0 || len(userJSON) == 0 {
		if err := s.Clear(ctx); err != nil {
			return nil, err
		}
		return nil, nil
	}

	sess, ok := decodeSession(token, expiry, userJSON)
	if !ok {
		if err := s.Clear(ctx); err != nil {
			return nil, err
		}
		return nil, ErrCorrupt
	}
	return sess, nil
}

func decodeSession(token, expiry, userJSON []byte) (*Session, bool) {
	millis, err := strconv.ParseInt(string(expiry), 10, 64)
	if err != nil || millis <= 0 {
		return nil, false
	}

	var user models.UserProfile
	if err := json.Unmarshal(userJSON, &user); err != nil || !user.Valid() {
		return nil, false
	}

	return &Session{
		Credential: models.Credential{
			Token:     string(token),
			ExpiresAt: time.UnixMilli(millis),
		},
		User: user,
	}, true
}

// Clear removes the session keys as one unit. The prediction payload is kept:
// it is display data, not proof of identity.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return del(ctx, tx, keyToken, keyExpiry, keyUser)
	})
}

// SavePrediction stores the raw prediction response for the diet view.
func (s *SQLiteStore) SavePrediction(ctx context.Context, raw []byte) error {
	return set(ctx, s.db, keyPrediction, raw)
}

// LoadPrediction returns the stored prediction payload, nil when absent.
func (s *SQLiteStore) LoadPrediction(ctx context.Context) ([]byte, error) {
	return get(ctx, s.db, keyPrediction)
}
