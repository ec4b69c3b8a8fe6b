package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/glucotrack/glucotrack/internal/client/models"
	"github.com/glucotrack/glucotrack/internal/client/session"
	"github.com/glucotrack/glucotrack/internal/client/sessionstore"
	"github.com/glucotrack/glucotrack/internal/logging"
	"github.com/stretchr/testify/require"
)

func silencePrintln(t *testing.T) {
	t.Helper()
	orig := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = orig })
}

func capturePrintln(t *testing.T) *[]string {
	t.Helper()
	orig := printlnFn
	lines := &[]string{}
	printlnFn = func(args ...any) (int, error) {
		s := ""
		for i, a := range args {
			if i > 0 {
				s += " "
			}
			switch v := a.(type) {
			case string:
				s += v
			case error:
				s += v.Error()
			}
		}
		*lines = append(*lines, s)
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return lines
}

type fakeStore struct {
	sess    *sessionstore.Session
	loadErr error
	pred    []byte
}

func (f *fakeStore) Save(_ context.Context, cred models.Credential, user models.UserProfile) error {
	f.sess = &sessionstore.Session{Credential: cred, User: user}
	return nil
}
func (f *fakeStore) Load(context.Context) (*sessionstore.Session, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.sess, nil
}
func (f *fakeStore) Clear(context.Context) error {
	f.sess = nil
	return nil
}
func (f *fakeStore) SavePrediction(_ context.Context, raw []byte) error {
	f.pred = append([]byte(nil), raw...)
	return nil
}
func (f *fakeStore) LoadPrediction(context.Context) ([]byte, error) {
	return f.pred, nil
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newTestManager(t *testing.T, st sessionstore.Store) *session.Manager {
	t.Helper()
	m := session.NewManager(st, testLogger(), session.WithErrorTTL(0))
	m.Hydrate(context.Background())
	return m
}

func activeSession() *sessionstore.Session {
	return &sessionstore.Session{
		Credential: models.NewCredential("tok123", time.Now()),
		User:       models.UserProfile{Name: "Alice", Email: "alice@example.org"},
	}
}

func TestTokenFromStore(t *testing.T) {
	st := &fakeStore{sess: activeSession()}

	tok, err := tokenFromStore(st)(context.Background())
	require.NoError(t, err)
	require.Equal(t, "tok123", tok)
}

func TestTokenFromStore_Empty(t *testing.T) {
	st := &fakeStore{}

	tok, err := tokenFromStore(st)(context.Background())
	require.NoError(t, err)
	require.Empty(t, tok)
}

func TestTokenFromStore_CorruptMeansAnonymous(t *testing.T) {
	st := &fakeStore{loadErr: sessionstore.ErrCorrupt}

	tok, err := tokenFromStore(st)(context.Background())
	require.NoError(t, err)
	require.Empty(t, tok)
}

func TestTokenFromStore_StorageErrorPropagates(t *testing.T) {
	st := &fakeStore{loadErr: errors.New("disk gone")}

	_, err := tokenFromStore(st)(context.Background())
	require.Error(t, err)
}

func TestIsLoggedIn(t *testing.T) {
	anon := &App{manager: newTestManager(t, &fakeStore{})}
	require.False(t, anon.isLoggedIn())

	authed := &App{manager: newTestManager(t, &fakeStore{sess: activeSession()})}
	require.True(t, authed.isLoggedIn())
}
