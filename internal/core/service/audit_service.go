package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/vetcare/central/internal/core/domain"
	"github.com/vetcare/central/internal/core/ports"
	"github.com/vetcare/central/internal/metrics"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService that stores events in repo.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log.With().Str("component", "audit").Logger()}
}

// Process persists a single authentication event.
func (s *auditService) Process(ctx context.Context, ev domain.AuthEvent) error {
	if err := s.repo.InsertEvent(ctx, &ev); err != nil {
		metrics.AuditEventsTotal.WithLabelValues(string(ev.Kind), "failed").Inc()
		return fmt.Errorf("audit %s: %w", ev.Kind, err)
	}
	metrics.AuditEventsTotal.WithLabelValues(string(ev.Kind), "stored").Inc()

	s.log.Debug().
		Str("kind", string(ev.Kind)).
		Str("session_id", ev.SessionID).
		Str("identity_id", ev.IdentityID).
		Str("reason", ev.Reason).
		Msg("audit event stored")
	return nil
}
