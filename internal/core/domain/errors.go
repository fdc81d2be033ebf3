package domain

import "errors"

var (
	ErrUnauthenticated         = errors.New("unauthenticated")
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrDirectoryUnavailable    = errors.New("user directory unavailable")
	ErrMalformedPersistedState = errors.New("malformed persisted state")
	ErrSessionStorage          = errors.New("session storage unavailable")
	ErrLoginInProgress         = errors.New("login already in progress")

	ErrMalformedIdentity = errors.New("malformed identity")
	ErrUnknownRole       = errors.New("unknown role")
	ErrUnknownFeature    = errors.New("unknown feature")
	ErrUserNotFound      = errors.New("user not found")
	ErrUserExists        = errors.New("user already exists")
)

// LoginFailedMessage is the only failure text shown to users.
const LoginFailedMessage = "incorrect credentials or connection error"

// AuthError is returned by a failed login. Its message never says why the
// login failed; Reason (one of the sentinels above) and Cause do, through
// errors.Is and errors.As.
type AuthError struct {
	Reason error
	Cause  error
}

func (e *AuthError) Error() string { return LoginFailedMessage }

func (e *AuthError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Reason != nil {
		errs = append(errs, e.Reason)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

// ReasonLabel is the short telemetry label for a login failure.
func ReasonLabel(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, ErrDirectoryUnavailable):
		return "directory_unavailable"
	case errors.Is(err, ErrSessionStorage):
		return "session_storage"
	case errors.Is(err, ErrLoginInProgress):
		return "in_progress"
	default:
		return "unknown"
	}
}

// ValidationError wraps a record that failed schema validation.
type ValidationError struct {
	Err   error
	Cause error
}

func (e *ValidationError) Error() string {
	return e.Err.Error() + ": " + e.Cause.Error()
}

func (e *ValidationError) Unwrap() []error { return []error{e.Err, e.Cause} }
