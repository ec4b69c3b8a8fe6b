// Package session owns the in-memory authentication state of the client and
// keeps it in lockstep with the persistent session store. It is the single
// writer of session truth: every other component reads state from here or
// asks it to change.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/glucotrack/glucotrack/internal/client/models"
	"github.com/glucotrack/glucotrack/internal/client/sessionstore"
	"github.com/glucotrack/glucotrack/internal/logging"
)

// User-facing session messages.
const (
	MsgExpired       = "Your session has expired. Please login again."
	MsgInvalid       = "Session invalid. Please login again."
	MsgInitFailed    = "Failed to initialize authentication."
	MsgLogoutUnclean = "Failed to logout properly."
)

// DefaultErrorTTL is how long a session-level error stays visible before it
// clears itself.
const DefaultErrorTTL = 5 * time.Second

// State is a point-in-time snapshot of the session.
type State struct {
	Authenticated bool
	User          *models.UserProfile
	Loading       bool
	Err           string
}

// Manager is the session lifecycle state machine. Construct with NewManager,
// call Hydrate exactly once at startup, then read state via Snapshot and
// mutate it through Activate / Logout / Invalidate.
type Manager struct {
	store  sessionstore.Store
	log    logging.Logger
	now    func() time.Time
	errTTL time.Duration

	hydrateOnce sync.Once
	ready       chan struct{}

	mu            sync.Mutex
	authenticated bool
	user          *models.UserProfile
	loading       bool
	errMsg        string
	errGen        uint64
}

// Option customizes a Manager.
type Option func(*Manager)

// WithErrorTTL overrides how long session errors stay before auto-clearing.
// Zero disables auto-clearing.
func WithErrorTTL(d time.Duration) Option {
	return func(m *Manager) { m.errTTL = d }
}

// WithClock injects a time source, used by tests.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// NewManager builds a manager over the given store. The manager starts in the
// hydrating state: Loading reports true until Hydrate has run.
func NewManager(store sessionstore.Store, log logging.Logger, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		log:     log,
		now:     time.Now,
		errTTL:  DefaultErrorTTL,
		ready:   make(chan struct{}),
		loading: true,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Hydrate performs the one-time startup read of persisted session data.
// A valid unexpired credential with a valid profile authenticates the
// session; an expired or corrupt one clears the store and leaves an
// explanatory error; an empty store leaves a clean anonymous state.
// Storage failures never propagate: they become the error field.
//
// Hydrate resolves the readiness gate; calls after the first are no-ops.
func (m *Manager) Hydrate(ctx context.Context) {
	m.hydrateOnce.Do(func() {
		defer func() {
			m.mu.Lock()
			m.loading = false
			m.mu.Unlock()
			close(m.ready)
		}()

		sess, err := m.store.Load(ctx)
		switch {
		case errors.Is(err, sessionstore.ErrCorrupt):
			m.log.Warn(ctx, "stored session data invalid, cleared")
			m.setState(false, nil, MsgInvalid)
		case err != nil:
			m.log.Error(ctx, "session hydration failed", "error", err)
			m.setState(false, nil, MsgInitFailed)
		case sess == nil:
			m.setState(false, nil, "")
		case sess.Credential.Expired(m.now()):
			m.log.Warn(ctx, "stored credential expired", "email", sess.User.Email)
			if err := m.store.Clear(ctx); err != nil {
				m.log.Error(ctx, "failed to clear expired session", "error", err)
			}
			m.setState(false, nil, MsgExpired)
		default:
			m.log.Info(ctx, "session restored", "email", sess.User.Email)
			user := sess.User
			m.setState(true, &user, "")
		}
	})
}

// AwaitReady blocks until hydration has resolved. Authenticated flows must
// pass this gate before trusting the credential, instead of relying on
// incidental startup ordering.
func (m *Manager) AwaitReady(ctx context.Context) error {
	select {
	case <-m.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Activate persists the credential/user pair and flips the in-memory state to
// authenticated, as a single operation from the caller's perspective. When
// persistence fails the state is left untouched and the error is returned.
func (m *Manager) Activate(ctx context.Context, cred models.Credential, user models.UserProfile) error {
	if err := m.store.Save(ctx, cred, user); err != nil {
		m.log.Error(ctx, "failed to persist session", "error", err)
		return err
	}
	m.log.Info(ctx, "session activated", "email", user.Email)
	m.setState(true, &user, "")
	return nil
}

// Logout clears the durable session and resets in-memory state. It always
// succeeds from the caller's perspective: when storage deletion fails the
// user is still logged out in memory and the error field notes the unclean
// wipe. Calling it on an anonymous session is a no-op that leaves the same
// state.
func (m *Manager) Logout(ctx context.Context) {
	errMsg := ""
	if err := m.store.Clear(ctx); err != nil {
		m.log.Error(ctx, "logout could not wipe stored session", "error", err)
		errMsg = MsgLogoutUnclean
	} else {
		m.log.Info(ctx, "logged out")
	}
	m.setState(false, nil, errMsg)
}

// Invalidate is the forced-logout path taken when the backend rejects the
// credential (401): clear both sides and surface the explanation.
func (m *Manager) Invalidate(ctx context.Context, msg string) {
	if err := m.store.Clear(ctx); err != nil {
		m.log.Error(ctx, "failed to clear rejected session", "error", err)
	}
	m.log.Warn(ctx, "session invalidated", "reason", msg)
	m.setState(false, nil, msg)
}

// SetError sets the session-level error message. It auto-clears after the
// configured TTL unless a newer error has replaced it in the meantime.
func (m *Manager) SetError(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setErrorLocked(msg)
}

// ClearError removes the error message without any other state change.
func (m *Manager) ClearError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errMsg = ""
	m.errGen++
}

// Snapshot returns a copy of the current state.
func (m *Manager) Snapshot() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	var user *models.UserProfile
	if m.user != nil {
		u := *m.user
		user = &u
	}
	return State{
		Authenticated: m.authenticated,
		User:          user,
		Loading:       m.loading,
		Err:           m.errMsg,
	}
}

// Authenticated reports whether a live credential is active.
func (m *Manager) Authenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.authenticated
}

func (m *Manager) setState(authenticated bool, user *models.UserProfile, errMsg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.authenticated = authenticated
	m.user = user
	m.setErrorLocked(errMsg)
}

func (m *Manager) setErrorLocked(msg string) {
	m.errMsg = msg
	m.errGen++
	if msg == "" || m.errTTL <= 0 {
		return
	}
	gen := m.errGen
	time.AfterFunc(m.errTTL, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.errGen == gen {
			m.errMsg = ""
		}
	})
}
