package service

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/vetcare/central/internal/core/domain"
)

type stubDirectory struct {
	authFn func(ctx context.Context, creds domain.Credentials) (*domain.Identity, error)
}

func (d *stubDirectory) Authenticate(ctx context.Context, creds domain.Credentials) (*domain.Identity, error) {
	return d.authFn(ctx, creds)
}

// directoryWith accepts only the given email/password pair.
func directoryWith(email, password string, id *domain.Identity) *stubDirectory {
	return &stubDirectory{authFn: func(_ context.Context, creds domain.Credentials) (*domain.Identity, error) {
		if creds.Email != email {
			return nil, domain.ErrUserNotFound
		}
		if creds.Password != password {
			return nil, domain.ErrInvalidCredentials
		}
		return id.Clone(), nil
	}}
}

type stubKV struct {
	mu      sync.Mutex
	data    map[string][]byte
	loadErr error
	saveErr error
	delErr  error
}

func newStubKV() *stubKV {
	return &stubKV{data: make(map[string][]byte)}
}

func (s *stubKV) Load(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.data[key], nil
}

func (s *stubKV) Save(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.data[key] = append([]byte(nil), value...)
	return nil
}

func (s *stubKV) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.delErr != nil {
		return s.delErr
	}
	delete(s.data, key)
	return nil
}

func (s *stubKV) has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.data[key]
	return ok
}

type recordingAuditor struct {
	mu     sync.Mutex
	events []domain.AuthEvent
}

func (a *recordingAuditor) Record(ev domain.AuthEvent) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, ev)
}

func (a *recordingAuditor) kinds() []domain.AuthEventKind {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]domain.AuthEventKind, len(a.events))
	for i, ev := range a.events {
		out[i] = ev.Kind
	}
	return out
}

var errConnRefused = errors.New("dial tcp 127.0.0.1:27017: connection refused")

var vetIdentity = &domain.Identity{
	ID:       "2",
	Name:     "Dra. Laura Gómez",
	Email:    "vet@vetcare.test",
	Role:     domain.RoleVeterinarian,
	ImageURL: "https://example.test/laura.png",
}

func testDeps(dir *stubDirectory, kv *stubKV, aud *recordingAuditor) SessionDeps {
	deps := SessionDeps{Directory: dir, Persisted: kv, Log: zerolog.Nop()}
	if aud != nil {
		deps.Auditor = aud
	}
	return deps
}
