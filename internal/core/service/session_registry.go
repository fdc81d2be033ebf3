package service

import (
	"context"
	"sync"

	"github.com/vetcare/central/internal/core/domain"
	"github.com/vetcare/central/internal/metrics"
)

// PersistedKey returns the persisted identity slot of a browser session.
func PersistedKey(sessionID string) string {
	return "vetcare:session:" + sessionID + ":" + PersistedIdentityKey
}

// SessionRegistry hands out the SessionStore of a browser session to the
// requests working on it. A store lives only while at least one request holds
// it; the persisted slot carries the identity between requests, and the next
// request restores it into a fresh store.
//
// Requests on the same session id share one store, so a second login on a
// session with a login in flight is rejected by that store.
type SessionRegistry struct {
	deps SessionDeps

	mu     sync.Mutex
	stores map[string]*heldStore
}

type heldStore struct {
	store   *SessionStore
	holders int
}

func NewSessionRegistry(deps SessionDeps) *SessionRegistry {
	return &SessionRegistry{deps: deps, stores: make(map[string]*heldStore)}
}

// acquire returns the store of sessionID, creating it if no request holds it.
// Every acquire must be paired with a release.
func (r *SessionRegistry) acquire(sessionID string) *SessionStore {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.stores[sessionID]
	if !ok {
		h = &heldStore{store: NewSessionStore(sessionID, PersistedKey(sessionID), r.deps)}
		r.stores[sessionID] = h
		metrics.ActiveSessions.Inc()
	}
	h.holders++
	return h.store
}

func (r *SessionRegistry) release(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.stores[sessionID]
	if !ok {
		return
	}
	h.holders--
	if h.holders <= 0 {
		delete(r.stores, sessionID)
		metrics.ActiveSessions.Dec()
	}
}

// Len returns the number of stores currently held by requests.
func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.stores)
}

// Current returns the session of sessionID. An empty id is always
// unauthenticated.
func (r *SessionRegistry) Current(ctx context.Context, sessionID string) domain.Session {
	if sessionID == "" {
		return domain.Session{}
	}
	st := r.acquire(sessionID)
	defer r.release(sessionID)

	st.ensureRestored(ctx)
	return st.Current()
}

// Login runs a login on the store of sessionID.
func (r *SessionRegistry) Login(ctx context.Context, sessionID string, creds domain.Credentials) (*domain.Identity, error) {
	if sessionID == "" {
		return nil, &domain.AuthError{Reason: domain.ErrUnauthenticated}
	}
	st := r.acquire(sessionID)
	defer r.release(sessionID)

	st.ensureRestored(ctx)
	return st.Login(ctx, creds)
}

// Logout clears the session of sessionID, in memory and in the persisted slot.
func (r *SessionRegistry) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	st := r.acquire(sessionID)
	defer r.release(sessionID)

	st.ensureRestored(ctx)
	return st.Logout(ctx)
}
