// Package session holds who is logged in. All mutation goes through
// Initialize, Login and Logout so the token and user are always seen
// together.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/harentsoaR/medischedule-portal/internal/models"
	"github.com/harentsoaR/medischedule-portal/internal/storage"
	"github.com/harentsoaR/medischedule-portal/internal/utils"
)

type State int

const (
	Initializing State = iota
	Ready
)

func (s State) String() string {
	if s == Ready {
		return "ready"
	}
	return "initializing"
}

var ErrInvalidLogin = errors.New("session: login needs a token and a user with a known role")

// Authenticator validates a token against the backend's "who am I" endpoint.
type Authenticator interface {
	CurrentUser(ctx context.Context, token string) (models.User, error)
}

// Snapshot is a consistent copy of the session.
type Snapshot struct {
	Token string
	User  *models.User
	State State
}

func (s Snapshot) Authenticated() bool {
	return s.User != nil
}

// Role returns the user's role; ok is false when logged out.
func (s Snapshot) Role() (models.Role, bool) {
	if s.User == nil {
		return "", false
	}
	return s.User.Role, true
}

type Store struct {
	kv   storage.Store
	auth Authenticator
	log  zerolog.Logger
	now  func() time.Time

	mu    sync.RWMutex
	token string
	user  *models.User
	state State

	initOnce sync.Once
	ready    chan struct{}
}

func New(kv storage.Store, auth Authenticator, log zerolog.Logger) *Store {
	return &Store{
		kv:    kv,
		auth:  auth,
		log:   log,
		now:   time.Now,
		ready: make(chan struct{}),
	}
}

// Initialize restores the persisted session once per process. A missing
// token means logged out; a token the backend rejects, or that cannot be
// checked, is discarded. It always ends in Ready.
func (s *Store) Initialize(ctx context.Context) {
	s.initOnce.Do(func() {
		defer func() {
			s.mu.Lock()
			s.state = Ready
			s.mu.Unlock()
			close(s.ready)
		}()

		token, err := s.kv.Get(ctx, storage.KeyToken)
		if errors.Is(err, storage.ErrNotFound) || (err == nil && token == "") {
			s.log.Debug().Msg("no persisted session")
			return
		}
		if err != nil {
			s.log.Error().Err(err).Msg("read persisted token")
			s.discard(ctx)
			return
		}

		if expired, ok := utils.TokenExpired(token, s.now()); ok && expired {
			s.log.Info().Msg("persisted token expired, logging out")
			s.discard(ctx)
			return
		}

		user, err := s.auth.CurrentUser(ctx, token)
		if err != nil {
			s.log.Warn().Err(err).Msg("failed to fetch user, logging out")
			s.discard(ctx)
			return
		}
		if !user.Role.Valid() {
			s.log.Warn().Str("role", string(user.Role)).Msg("backend returned unknown role, logging out")
			s.discard(ctx)
			return
		}

		s.mu.Lock()
		s.token = token
		s.user = &user
		s.mu.Unlock()
		s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("session restored")
	})
}

func (s *Store) discard(ctx context.Context) {
	if err := s.Logout(ctx); err != nil {
		s.log.Error().Err(err).Msg("clear persisted token")
	}
}

// WaitReady blocks until Initialize has finished or ctx is done.
func (s *Store) WaitReady(ctx context.Context) error {
	select {
	case <-s.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Login persists the token and then publishes token and user together. On
// any error the previous session stays as it was.
func (s *Store) Login(ctx context.Context, token string, user models.User) error {
	if token == "" || !user.Role.Valid() {
		return ErrInvalidLogin
	}
	if err := s.kv.Set(ctx, storage.KeyToken, token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}

	s.mu.Lock()
	s.token = token
	s.user = &user
	s.mu.Unlock()
	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("logged in")
	return nil
}

// Logout clears the in-memory pair unconditionally and then the persisted
// token; the storage error, if any, is returned.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	hadUser := s.user != nil
	s.token = ""
	s.user = nil
	s.mu.Unlock()
	if hadUser {
		s.log.Info().Msg("logged out")
	}

	if err := s.kv.Delete(ctx, storage.KeyToken); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

func (s *Store) Current() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := Snapshot{Token: s.token, State: s.state}
	if s.user != nil {
		u := *s.user
		snap.User = &u
	}
	return snap
}

// Token implements apiclient.TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Store) User() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

func (s *Store) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state == Ready
}
