package access

import "github.com/vetcare/central/internal/core/domain"

// Decision is the outcome of a route guard check.
type Decision int

const (
	Allow Decision = iota
	// RedirectLogin: no identity, or the identity's role is not allowed.
	RedirectLogin
	// RedirectHome: role allowed, but the required feature is not.
	RedirectHome
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectLogin:
		return "redirect_login"
	case RedirectHome:
		return "redirect_home"
	default:
		return "unknown"
	}
}

const (
	LoginPath = "/login"
	HomePath  = "/"
)

// Target is the path a denied caller should be sent to, or "" for Allow.
func (d Decision) Target() string {
	switch d {
	case RedirectLogin:
		return LoginPath
	case RedirectHome:
		return HomePath
	default:
		return ""
	}
}

// Rule is what a protected route requires. Feature is optional.
type Rule struct {
	AllowedRoles []domain.Role
	Feature      domain.FeatureKey
}

// Decide evaluates rule against the session's identity.
func (r *Resolver) Decide(s domain.Session, rule Rule) Decision {
	if !s.Authenticated() || !r.HasRole(s.Identity, rule.AllowedRoles...) {
		return RedirectLogin
	}
	if rule.Feature != "" && !r.HasFeature(s.Identity, rule.Feature) {
		return RedirectHome
	}
	return Allow
}
