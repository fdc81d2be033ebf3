package memory

import (
	"context"
	"sync"

	"github.com/vetcare/central/internal/core/domain"
)

const defaultAuditCapacity = 1024

// AuditLog keeps the most recent audit events in a ring buffer.
type AuditLog struct {
	mu     sync.Mutex
	events []domain.AuthEvent
	next   int
	full   bool
}

// NewAuditLog returns a log holding at most capacity events.
func NewAuditLog(capacity int) *AuditLog {
	if capacity <= 0 {
		capacity = defaultAuditCapacity
	}
	return &AuditLog{events: make([]domain.AuthEvent, capacity)}
}

// InsertEvent implements ports.AuditRepository.
func (l *AuditLog) InsertEvent(_ context.Context, ev *domain.AuthEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events[l.next] = *ev
	l.next = (l.next + 1) % len(l.events)
	if l.next == 0 {
		l.full = true
	}
	return nil
}

// Events returns the stored events, oldest first.
func (l *AuditLog) Events() []domain.AuthEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.full {
		return append([]domain.AuthEvent(nil), l.events[:l.next]...)
	}
	out := make([]domain.AuthEvent, 0, len(l.events))
	out = append(out, l.events[l.next:]...)
	return append(out, l.events[:l.next]...)
}
