package ports

import (
	"context"

	"github.com/vetcare/central/internal/core/domain"
)

// AuditRepository persists authentication events.
type AuditRepository interface {
	InsertEvent(ctx context.Context, event *domain.AuthEvent) error
}

// AuditService processes a single authentication event.
type AuditService interface {
	Process(ctx context.Context, event domain.AuthEvent) error
}

// Auditor accepts events without blocking the caller.
type Auditor interface {
	Record(event domain.AuthEvent)
}
