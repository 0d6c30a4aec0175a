package session

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/harentsoaR/medischedule-portal/internal/models"
	"github.com/harentsoaR/medischedule-portal/internal/storage"
	"github.com/harentsoaR/medischedule-portal/internal/utils"
)

type fakeAuth struct {
	calls  int32
	userFn func(ctx context.Context, token string) (models.User, error)
}

func (f *fakeAuth) CurrentUser(ctx context.Context, token string) (models.User, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.userFn == nil {
		return models.User{}, errors.New("unexpected call")
	}
	return f.userFn(ctx, token)
}

type brokenStore struct {
	storage.Store
	setErr    error
	deleteErr error
}

func (b brokenStore) Set(ctx context.Context, key, value string) error {
	if b.setErr != nil {
		return b.setErr
	}
	return b.Store.Set(ctx, key, value)
}

func (b brokenStore) Delete(ctx context.Context, key string) error {
	if b.deleteErr != nil {
		return b.deleteErr
	}
	return b.Store.Delete(ctx, key)
}

var doctor = models.User{ID: "d1", Role: models.RoleDoctor, FullName: "Dr. A", Email: "doc@x.com"}

// checkPairing asserts the token/user invariant on a snapshot.
func checkPairing(t *testing.T, s *Store) Snapshot {
	t.Helper()
	snap := s.Current()
	if snap.User != nil && snap.Token == "" {
		t.Fatalf("user %+v visible without a token", snap.User)
	}
	if snap.State == Ready && snap.Token != "" && snap.User == nil {
		t.Fatalf("token %q visible without a validated user", snap.Token)
	}
	return snap
}

func TestInitializeWithoutToken(t *testing.T) {
	auth := &fakeAuth{}
	s := New(storage.NewMemoryStore(), auth, zerolog.Nop())
	if s.Ready() {
		t.Fatal("store must start initializing")
	}

	s.Initialize(context.Background())

	snap := checkPairing(t, s)
	if snap.State != Ready || snap.Authenticated() {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if auth.calls != 0 {
		t.Fatalf("expected no /auth/me call, got %d", auth.calls)
	}
}

func TestInitializeRestoresValidToken(t *testing.T) {
	kv := storage.NewMemoryStore()
	_ = kv.Set(context.Background(), storage.KeyToken, "t1")
	auth := &fakeAuth{userFn: func(ctx context.Context, token string) (models.User, error) {
		if token != "t1" {
			return models.User{}, errors.New("wrong token")
		}
		return doctor, nil
	}}

	s := New(kv, auth, zerolog.Nop())
	s.Initialize(context.Background())

	snap := checkPairing(t, s)
	if snap.Token != "t1" || snap.User == nil || snap.User.ID != "d1" {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if role, ok := snap.Role(); !ok || role != models.RoleDoctor {
		t.Fatalf("Role() = %q, %v", role, ok)
	}
}

func TestInitializeInvalidTokenLogsOut(t *testing.T) {
	kv := storage.NewMemoryStore()
	_ = kv.Set(context.Background(), storage.KeyToken, "stale")
	auth := &fakeAuth{userFn: func(ctx context.Context, token string) (models.User, error) {
		return models.User{}, errors.New("401 Invalid token")
	}}

	s := New(kv, auth, zerolog.Nop())
	s.Initialize(context.Background())

	snap := checkPairing(t, s)
	if snap.Token != "" || snap.User != nil || snap.State != Ready {
		t.Fatalf("expected fully logged out, got %+v", snap)
	}
	if _, err := kv.Get(context.Background(), storage.KeyToken); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("persisted token should be cleared, err = %v", err)
	}
}

func TestInitializeUnknownRoleLogsOut(t *testing.T) {
	kv := storage.NewMemoryStore()
	_ = kv.Set(context.Background(), storage.KeyToken, "t1")
	auth := &fakeAuth{userFn: func(ctx context.Context, token string) (models.User, error) {
		return models.User{ID: "x", Role: "superuser"}, nil
	}}

	s := New(kv, auth, zerolog.Nop())
	s.Initialize(context.Background())

	if snap := checkPairing(t, s); snap.Authenticated() || snap.Token != "" {
		t.Fatalf("unknown role must not be restored: %+v", snap)
	}
}

func TestInitializeExpiredJWTSkipsBackend(t *testing.T) {
	expired, err := utils.GenerateJWT([]byte("k"), "d1", "doctor", -time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	kv := storage.NewMemoryStore()
	_ = kv.Set(context.Background(), storage.KeyToken, expired)
	auth := &fakeAuth{}

	s := New(kv, auth, zerolog.Nop())
	s.Initialize(context.Background())

	if snap := checkPairing(t, s); snap.Authenticated() {
		t.Fatalf("expired token restored: %+v", snap)
	}
	if auth.calls != 0 {
		t.Fatalf("expired token should not reach the backend, got %d calls", auth.calls)
	}
}

func TestInitializeRunsOnce(t *testing.T) {
	kv := storage.NewMemoryStore()
	_ = kv.Set(context.Background(), storage.KeyToken, "t1")
	auth := &fakeAuth{userFn: func(ctx context.Context, token string) (models.User, error) { return doctor, nil }}

	s := New(kv, auth, zerolog.Nop())
	s.Initialize(context.Background())
	s.Initialize(context.Background())

	if auth.calls != 1 {
		t.Fatalf("expected one /auth/me call, got %d", auth.calls)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.WaitReady(ctx); err != nil {
		t.Fatalf("WaitReady: %v", err)
	}
}

func TestWaitReadyBlocksUntilInitialized(t *testing.T) {
	s := New(storage.NewMemoryStore(), &fakeAuth{}, zerolog.Nop())
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := s.WaitReady(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline, got %v", err)
	}
}

func TestLoginAndLogout(t *testing.T) {
	kv := storage.NewMemoryStore()
	s := New(kv, &fakeAuth{}, zerolog.Nop())
	s.Initialize(context.Background())
	ctx := context.Background()

	if err := s.Login(ctx, "t1", doctor); err != nil {
		t.Fatalf("Login: %v", err)
	}
	snap := checkPairing(t, s)
	if snap.Token != "t1" || snap.User == nil || snap.User.Role != models.RoleDoctor {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if v, _ := kv.Get(ctx, storage.KeyToken); v != "t1" {
		t.Fatalf("persisted token = %q", v)
	}
	if s.Token() != "t1" {
		t.Fatalf("Token() = %q", s.Token())
	}

	if err := s.Logout(ctx); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	snap = checkPairing(t, s)
	if snap.Token != "" || snap.User != nil {
		t.Fatalf("expected logged out, got %+v", snap)
	}
	if _, err := kv.Get(ctx, storage.KeyToken); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("persisted token not cleared: %v", err)
	}
}

func TestLoginRejectsIncompletePair(t *testing.T) {
	s := New(storage.NewMemoryStore(), &fakeAuth{}, zerolog.Nop())
	ctx := context.Background()

	if err := s.Login(ctx, "", doctor); !errors.Is(err, ErrInvalidLogin) {
		t.Fatalf("empty token: err = %v", err)
	}
	if err := s.Login(ctx, "t1", models.User{ID: "x", Role: "nurse"}); !errors.Is(err, ErrInvalidLogin) {
		t.Fatalf("unknown role: err = %v", err)
	}
	if snap := checkPairing(t, s); snap.Authenticated() || snap.Token != "" {
		t.Fatalf("rejected login changed state: %+v", snap)
	}
}

func TestLoginStorageFailureKeepsPreviousSession(t *testing.T) {
	mem := storage.NewMemoryStore()
	s := New(mem, &fakeAuth{}, zerolog.Nop())
	ctx := context.Background()
	if err := s.Login(ctx, "t1", doctor); err != nil {
		t.Fatal(err)
	}

	s.kv = brokenStore{Store: mem, setErr: errors.New("disk full")}
	patient := models.User{ID: "p1", Role: models.RolePatient}
	if err := s.Login(ctx, "t2", patient); err == nil {
		t.Fatal("expected storage error")
	}
	snap := checkPairing(t, s)
	if snap.Token != "t1" || snap.User.ID != "d1" {
		t.Fatalf("failed login must not change the session, got %+v", snap)
	}
}

func TestLogoutFailsClosed(t *testing.T) {
	mem := storage.NewMemoryStore()
	s := New(brokenStore{Store: mem, deleteErr: errors.New("read-only")}, &fakeAuth{}, zerolog.Nop())
	ctx := context.Background()
	if err := s.Login(ctx, "t1", doctor); err != nil {
		t.Fatal(err)
	}

	if err := s.Logout(ctx); err == nil {
		t.Fatal("expected storage error to be reported")
	}
	if snap := checkPairing(t, s); snap.Authenticated() || snap.Token != "" {
		t.Fatalf("in-memory session must be cleared even when storage fails: %+v", snap)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s := New(storage.NewMemoryStore(), &fakeAuth{}, zerolog.Nop())
	_ = s.Login(context.Background(), "t1", doctor)

	snap := s.Current()
	snap.User.Role = models.RoleAdmin
	if u, _ := s.User(); u.Role != models.RoleDoctor {
		t.Fatal("mutating a snapshot leaked into the store")
	}
}
