package ports

import "context"

// IdentityStore is the key-value slot holding a serialised identity.
type IdentityStore interface {
	// Load returns (nil, nil) when key holds nothing.
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
	// Delete succeeds when key is already absent.
	Delete(ctx context.Context, key string) error
}
