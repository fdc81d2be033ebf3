package domain

import "time"

// AuthEventKind classifies an entry of the authentication audit trail.
type AuthEventKind string

const (
	EventLoginSucceeded  AuthEventKind = "login_succeeded"
	EventLoginFailed     AuthEventKind = "login_failed"
	EventLogout          AuthEventKind = "logout"
	EventRestoreRejected AuthEventKind = "restore_rejected"
)

// AuthEvent records a session lifecycle change for diagnostics.
type AuthEvent struct {
	Kind       AuthEventKind
	SessionID  string
	IdentityID string // empty when no identity was involved
	Email      string
	Reason     string // internal failure reason, never shown to users
	At         time.Time
}
