package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/vetcare/central/internal/core/domain"
	"github.com/vetcare/central/internal/core/ports"
	"github.com/vetcare/central/internal/metrics"
)

// PersistedIdentityKey is the fixed name of the persisted identity slot.
const PersistedIdentityKey = "currentUser"

// SessionDeps are the collaborators shared by every session store.
type SessionDeps struct {
	Directory ports.UserDirectory
	Persisted ports.IdentityStore
	Auditor   ports.Auditor // optional
	Log       zerolog.Logger
}

// SessionStore is the single source of truth for who is logged in on one
// browser session. In-memory state only changes through Restore, Login and
// Logout, and Login/Logout keep the persisted slot in step with it.
type SessionStore struct {
	sessionID string
	key       string
	deps      SessionDeps
	log       zerolog.Logger

	restoreOnce sync.Once

	mu       sync.Mutex
	identity *domain.Identity
	loading  bool
}

// NewSessionStore returns an unauthenticated store whose identity is persisted
// under key. Call Restore once before serving reads.
func NewSessionStore(sessionID, key string, deps SessionDeps) *SessionStore {
	return &SessionStore{
		sessionID: sessionID,
		key:       key,
		deps:      deps,
		log:       deps.Log.With().Str("component", "session").Str("session_id", sessionID).Logger(),
	}
}

// Current returns a snapshot of the session. It never touches storage.
func (s *SessionStore) Current() domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.Session{Identity: s.identity.Clone(), Loading: s.loading}
}

// Restore adopts the persisted identity when it is present and well-formed.
// Anything else leaves the session unauthenticated; it never fails.
func (s *SessionStore) Restore(ctx context.Context) domain.Session {
	data, err := s.deps.Persisted.Load(ctx, s.key)
	switch {
	case err != nil:
		metrics.SessionRestoresTotal.WithLabelValues("storage_error").Inc()
		s.log.Warn().Err(err).Msg("persisted identity unreadable, starting unauthenticated")
		return s.Current()
	case len(data) == 0:
		metrics.SessionRestoresTotal.WithLabelValues("absent").Inc()
		return s.Current()
	}

	id, err := decodeIdentity(data)
	if err != nil {
		metrics.SessionRestoresTotal.WithLabelValues("malformed").Inc()
		s.log.Warn().Err(err).Msg("discarding malformed persisted identity")
		s.record(domain.AuthEvent{Kind: domain.EventRestoreRejected, Reason: err.Error()})
		return s.Current()
	}

	s.mu.Lock()
	s.identity = id
	s.mu.Unlock()

	metrics.SessionRestoresTotal.WithLabelValues("restored").Inc()
	s.log.Debug().Str("identity_id", id.ID).Str("role", string(id.Role)).Msg("session restored")
	return s.Current()
}

// ensureRestored runs Restore the first time it is called.
func (s *SessionStore) ensureRestored(ctx context.Context) {
	s.restoreOnce.Do(func() { s.Restore(ctx) })
}

// Login checks creds against the directory. On success the identity is
// persisted, then adopted and returned. On failure the current identity is
// left as it was and a *domain.AuthError is returned. Only one login may be
// in flight per store.
func (s *SessionStore) Login(ctx context.Context, creds domain.Credentials) (*domain.Identity, error) {
	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		metrics.LoginAttemptsTotal.WithLabelValues(domain.ReasonLabel(domain.ErrLoginInProgress)).Inc()
		return nil, &domain.AuthError{Reason: domain.ErrLoginInProgress}
	}
	s.loading = true
	s.mu.Unlock()

	start := time.Now()
	id, err := s.authenticate(ctx, creds)
	if err == nil {
		err = s.persist(ctx, id)
	}

	s.mu.Lock()
	s.loading = false
	if err == nil {
		s.identity = id.Clone()
	}
	s.mu.Unlock()

	result := domain.ReasonLabel(err)
	metrics.LoginAttemptsTotal.WithLabelValues(result).Inc()
	metrics.LoginDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())

	if err != nil {
		s.log.Info().Err(err).Str("email", creds.Email).Str("reason", result).Msg("login failed")
		s.record(domain.AuthEvent{Kind: domain.EventLoginFailed, Email: creds.Email, Reason: result})
		return nil, err
	}

	s.log.Info().Str("identity_id", id.ID).Str("role", string(id.Role)).Msg("login succeeded")
	s.record(domain.AuthEvent{Kind: domain.EventLoginSucceeded, IdentityID: id.ID, Email: id.Email})
	return id, nil
}

func (s *SessionStore) authenticate(ctx context.Context, creds domain.Credentials) (*domain.Identity, error) {
	creds.Email = strings.TrimSpace(creds.Email)
	if creds.Email == "" || creds.Password == "" {
		return nil, &domain.AuthError{Reason: domain.ErrInvalidCredentials}
	}

	id, err := s.deps.Directory.Authenticate(ctx, creds)
	switch {
	case err == nil:
		if verr := id.Validate(); verr != nil {
			return nil, &domain.AuthError{Reason: domain.ErrDirectoryUnavailable, Cause: verr}
		}
		return id, nil
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrUserNotFound):
		return nil, &domain.AuthError{Reason: domain.ErrInvalidCredentials, Cause: err}
	default:
		return nil, &domain.AuthError{Reason: domain.ErrDirectoryUnavailable, Cause: err}
	}
}

func (s *SessionStore) persist(ctx context.Context, id *domain.Identity) error {
	data, err := json.Marshal(id)
	if err != nil {
		return &domain.AuthError{Reason: domain.ErrSessionStorage, Cause: err}
	}
	if err := s.deps.Persisted.Save(ctx, s.key, data); err != nil {
		return &domain.AuthError{Reason: domain.ErrSessionStorage, Cause: err}
	}
	return nil
}

// Logout clears the identity and the persisted slot. It is idempotent; the
// in-memory identity is cleared even when the persisted slot cannot be.
func (s *SessionStore) Logout(ctx context.Context) error {
	s.mu.Lock()
	prev := s.identity
	s.identity = nil
	s.mu.Unlock()

	ev := domain.AuthEvent{Kind: domain.EventLogout}
	if prev != nil {
		ev.IdentityID, ev.Email = prev.ID, prev.Email
	}

	if err := s.deps.Persisted.Delete(ctx, s.key); err != nil {
		s.log.Error().Err(err).Msg("failed to clear persisted identity")
		ev.Reason = "session_storage"
		s.record(ev)
		return fmt.Errorf("logout: %w: %w", domain.ErrSessionStorage, err)
	}

	if prev != nil {
		s.log.Info().Str("identity_id", prev.ID).Msg("logged out")
		s.record(ev)
	}
	return nil
}

func (s *SessionStore) record(ev domain.AuthEvent) {
	if s.deps.Auditor == nil {
		return
	}
	ev.SessionID = s.sessionID
	ev.At = time.Now().UTC()
	s.deps.Auditor.Record(ev)
}

// decodeIdentity parses and validates a persisted identity.
func decodeIdentity(data []byte) (*domain.Identity, error) {
	var id domain.Identity
	if err := json.Unmarshal(data, &id); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformedPersistedState, err)
	}
	if err := id.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformedPersistedState, err)
	}
	return &id, nil
}
