// Package memory holds in-process implementations of the storage ports, used
// for the mock mode of the dashboard and in tests.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/vetcare/central/internal/core/domain"
)

type account struct {
	identity domain.Identity
	hash     []byte
}

// Directory is a mock user directory. Passwords are kept as bcrypt hashes so
// verification happens the same way as in the Mongo directory.
type Directory struct {
	mu       sync.RWMutex
	accounts map[string]account // by lower-cased email
	cost     int
}

// NewDirectory returns an empty directory hashing with cost (bcrypt.DefaultCost
// when cost is 0).
func NewDirectory(cost int) *Directory {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Directory{accounts: make(map[string]account), cost: cost}
}

// DemoIdentities are the accounts of the dashboard's mock mode, one per role.
func DemoIdentities() []domain.Identity {
	return []domain.Identity{
		{ID: "1", Name: "Ana Martínez", Email: "admin@vetcare.com", Role: domain.RoleAdmin},
		{ID: "2", Name: "Dra. Laura Gómez", Email: "laura@vetcare.com", Role: domain.RoleVeterinarian},
		{ID: "3", Name: "Carlos Ruiz", Email: "recepcion@vetcare.com", Role: domain.RoleReceptionist},
		{ID: "4", Name: "María López", Email: "maria@example.com", Role: domain.RoleClient},
	}
}

// NewDemoDirectory returns a directory seeded with DemoIdentities, all sharing
// password.
func NewDemoDirectory(password string, cost int) (*Directory, error) {
	d := NewDirectory(cost)
	for _, id := range DemoIdentities() {
		if err := d.Add(id, password); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Add registers id with password.
func (d *Directory) Add(id domain.Identity, password string) error {
	if err := id.Validate(); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), d.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	key := strings.ToLower(strings.TrimSpace(id.Email))
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.accounts[key]; exists {
		return domain.ErrUserExists
	}
	d.accounts[key] = account{identity: id, hash: hash}
	return nil
}

// Authenticate implements ports.UserDirectory.
func (d *Directory) Authenticate(ctx context.Context, creds domain.Credentials) (*domain.Identity, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDirectoryUnavailable, err)
	}

	d.mu.RLock()
	acc, ok := d.accounts[strings.ToLower(strings.TrimSpace(creds.Email))]
	d.mu.RUnlock()
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if bcrypt.CompareHashAndPassword(acc.hash, []byte(creds.Password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	id := acc.identity
	return &id, nil
}
