package ports

import (
	"context"

	"github.com/vetcare/central/internal/core/domain"
)

// UserDirectory verifies credentials on its own side and returns the matching
// identity. Password material never leaves the directory.
//
// Authenticate returns domain.ErrInvalidCredentials when no user matches or the
// password is wrong, and an error wrapping domain.ErrDirectoryUnavailable when
// the directory could not answer.
type UserDirectory interface {
	Authenticate(ctx context.Context, creds domain.Credentials) (*domain.Identity, error)
}
