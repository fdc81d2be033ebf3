package ports

import (
	"context"

	"github.com/vetcare/central/internal/core/domain"
)

// SessionManager owns the session store of every browser session, keyed by
// session id.
type SessionManager interface {
	Current(ctx context.Context, sessionID string) domain.Session
	Login(ctx context.Context, sessionID string, creds domain.Credentials) (*domain.Identity, error)
	Logout(ctx context.Context, sessionID string) error
}
