package access

import (
	"slices"

	"github.com/vetcare/central/internal/core/domain"
)

// HasRole reports whether id is present and its role is one of allowed.
// An absent identity or an empty role set always denies.
func HasRole(id *domain.Identity, allowed ...domain.Role) bool {
	if id == nil {
		return false
	}
	return slices.Contains(allowed, id.Role)
}

// Resolver answers role and feature questions against a fixed Policy.
type Resolver struct {
	policy Policy
}

func NewResolver(policy Policy) *Resolver {
	return &Resolver{policy: policy}
}

// HasRole is the package-level HasRole, exposed on the resolver for callers
// that only hold a *Resolver.
func (r *Resolver) HasRole(id *domain.Identity, allowed ...domain.Role) bool {
	return HasRole(id, allowed...)
}

// HasFeature reports whether id is present and its role is allowed to use
// feature. Unknown feature keys deny.
func (r *Resolver) HasFeature(id *domain.Identity, feature domain.FeatureKey) bool {
	if id == nil {
		return false
	}
	return r.policy.Allows(id.Role, feature)
}

// Features returns the known feature keys with the decision for id.
func (r *Resolver) Features(id *domain.Identity) map[domain.FeatureKey]bool {
	out := make(map[domain.FeatureKey]bool, len(domain.Features()))
	for _, f := range domain.Features() {
		out[f] = r.HasFeature(id, f)
	}
	return out
}
