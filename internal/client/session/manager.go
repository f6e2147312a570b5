package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/stockdash/internal/client/models"
	"github.com/dmitrijs2005/stockdash/internal/client/repositories/kv"
	"github.com/dmitrijs2005/stockdash/internal/dbx"
	"github.com/dmitrijs2005/stockdash/internal/logging"
)

// Durable keys in the session table.
const (
	TokenKey = "token"
	UserKey  = "user"
)

// InvalidationFunc is called after a session has been torn down because the
// token expired, was unreadable or was rejected by the backend.
type InvalidationFunc func(ctx context.Context, reason error)

// Manager owns the current Session and its durable copy.
type Manager struct {
	db     *sql.DB
	logger logging.Logger
	now    func() time.Time

	mu        sync.RWMutex
	current   Session
	listeners []InvalidationFunc
}

func NewManager(db *sql.DB, logger logging.Logger) *Manager {
	return &Manager{
		db:      db,
		logger:  logger,
		now:     time.Now,
		current: Anonymous,
	}
}

// OnInvalidate registers fn to run after every invalidation.
func (m *Manager) OnInvalidate(fn InvalidationFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

func (m *Manager) Current() Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Token returns the raw bearer token of the current session, or "".
func (m *Manager) Token() string {
	return m.Current().Token().String()
}

// Load restores the session persisted by a previous run. It is Validate under
// another name: the durable store is the source of truth.
func (m *Manager) Load(ctx context.Context) (Session, error) {
	return m.Validate(ctx)
}

// Establish persists a freshly issued token and its user and makes them the
// current session. Both keys are written in one transaction.
func (m *Manager) Establish(ctx context.Context, raw string, user models.User) (Session, error) {
	tok, err := ParseToken(raw)
	if err != nil {
		return Anonymous, err
	}
	if !tok.ValidAt(m.now()) {
		return Anonymous, ErrSessionExpired
	}

	if err := m.write(ctx, tok, user); err != nil {
		return Anonymous, err
	}

	s := NewAuthenticated(tok, user)
	m.replace(s)
	m.logger.Info(ctx, "session established", "user", user.Email, "role", user.Role, "expires", tok.ExpiresAt())
	return s, nil
}

// UpdateUser rewrites the cached user of the current session, keeping its token.
func (m *Manager) UpdateUser(ctx context.Context, user models.User) error {
	cur := m.Current()
	if !cur.Authenticated() {
		return ErrSessionExpired
	}
	if err := m.write(ctx, cur.Token(), user); err != nil {
		return err
	}
	m.replace(NewAuthenticated(cur.Token(), user))
	return nil
}

// Validate re-reads the durable copy and checks the token against the clock.
// Absent keys yield Anonymous and no error. An expired, malformed or corrupt
// record is cleared, listeners are notified and the cause is returned.
// Storage failures leave the current session untouched.
func (m *Manager) Validate(ctx context.Context) (Session, error) {
	s, err := m.read(ctx)
	if err == nil && s.Authenticated() && !s.Token().ValidAt(m.now()) {
		err = ErrSessionExpired
	}

	switch {
	case err == nil:
		m.replace(s)
		return s, nil
	case errors.Is(err, ErrSessionExpired), errors.Is(err, ErrMalformedToken), errors.Is(err, ErrCorruptUser):
		if cerr := m.teardown(ctx, err); cerr != nil {
			return Anonymous, errors.Join(err, cerr)
		}
		return Anonymous, err
	default:
		return m.Current(), err
	}
}

// Invalidate forcibly ends the current session, e.g. after the backend
// answered 401. Listeners fire only when there was a session to end.
func (m *Manager) Invalidate(ctx context.Context, reason error) error {
	if !m.Current().Authenticated() {
		return m.Clear(ctx)
	}
	return m.teardown(ctx, reason)
}

// Clear removes both durable keys and resets to Anonymous without notifying
// listeners. Used by logout.
func (m *Manager) Clear(ctx context.Context) error {
	store := kv.NewSQLiteRepository(m.db, kv.SessionTable)
	err := store.Clear(ctx)
	m.replace(Anonymous)
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (m *Manager) teardown(ctx context.Context, reason error) error {
	err := m.Clear(ctx)

	m.logger.Warn(ctx, "session invalidated", "reason", reason)

	m.mu.RLock()
	listeners := append([]InvalidationFunc(nil), m.listeners...)
	m.mu.RUnlock()

	for _, fn := range listeners {
		fn(ctx, reason)
	}
	return err
}

func (m *Manager) replace(s Session) {
	m.mu.Lock()
	m.current = s
	m.mu.Unlock()
}

func (m *Manager) read(ctx context.Context) (Session, error) {
	store := kv.NewSQLiteRepository(m.db, kv.SessionTable)

	rawToken, err := store.Get(ctx, TokenKey)
	if err != nil {
		return Anonymous, err
	}
	rawUser, err := store.Get(ctx, UserKey)
	if err != nil {
		return Anonymous, err
	}

	if rawToken == nil && rawUser == nil {
		return Anonymous, nil
	}
	if rawToken == nil {
		return Anonymous, fmt.Errorf("%w: user without token", ErrMalformedToken)
	}

	tok, err := ParseToken(string(rawToken))
	if err != nil {
		return Anonymous, err
	}

	if rawUser == nil {
		return Anonymous, fmt.Errorf("%w: token without user", ErrCorruptUser)
	}
	var user models.User
	if err := json.Unmarshal(rawUser, &user); err != nil {
		return Anonymous, fmt.Errorf("%w: %w", ErrCorruptUser, err)
	}
	if !user.Role.Valid() {
		return Anonymous, fmt.Errorf("%w: unknown role %q", ErrCorruptUser, user.Role)
	}

	return NewAuthenticated(tok, user), nil
}

func (m *Manager) write(ctx context.Context, tok Token, user models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	err = dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		store := kv.NewSQLiteRepository(tx, kv.SessionTable)
		if err := store.Set(ctx, TokenKey, []byte(tok.String())); err != nil {
			return err
		}
		return store.Set(ctx, UserKey, data)
	})
	if err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}
