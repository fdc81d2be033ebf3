// Package access decides whether an identity may open a route or use a
// feature. Everything here is pure: no I/O after the policy is loaded and no
// memory of earlier decisions.
package access

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vetcare/central/internal/core/domain"
)

// Policy maps each feature key to the roles allowed to use it. A Policy is
// immutable once built; features missing from it deny everyone.
type Policy struct {
	features map[domain.FeatureKey]map[domain.Role]struct{}
}

// NewPolicy builds a Policy from a feature → roles table, rejecting unknown
// feature keys and roles.
func NewPolicy(table map[domain.FeatureKey][]domain.Role) (Policy, error) {
	p := Policy{features: make(map[domain.FeatureKey]map[domain.Role]struct{}, len(table))}
	for feature, roles := range table {
		if !feature.Known() {
			return Policy{}, fmt.Errorf("policy: %w: %q", domain.ErrUnknownFeature, feature)
		}
		set := make(map[domain.Role]struct{}, len(roles))
		for _, r := range roles {
			if !r.Valid() {
				return Policy{}, fmt.Errorf("policy: feature %s: %w: %q", feature, domain.ErrUnknownRole, r)
			}
			set[r] = struct{}{}
		}
		p.features[feature] = set
	}
	return p, nil
}

// DefaultPolicy is the clinic's built-in feature table.
func DefaultPolicy() Policy {
	p, err := NewPolicy(map[domain.FeatureKey][]domain.Role{
		domain.FeatureBillingView:      {domain.RoleAdmin, domain.RoleReceptionist},
		domain.FeatureBillingCreate:    {domain.RoleAdmin, domain.RoleReceptionist},
		domain.FeatureBillingPayment:   {domain.RoleAdmin, domain.RoleReceptionist},
		domain.FeatureFinancialStats:   {domain.RoleAdmin},
		domain.FeatureMedicalDiagnosis: {domain.RoleAdmin, domain.RoleVeterinarian},
		domain.FeatureProductsPricing:  {domain.RoleAdmin, domain.RoleReceptionist},
	})
	if err != nil {
		panic(err)
	}
	return p
}

// policyFile is the YAML layout of a policy file:
//
//	features:
//	  billing_view: [admin, receptionist]
//	  financial_stats: [admin]
type policyFile struct {
	Features map[string][]string `yaml:"features"`
}

// LoadPolicy decodes a YAML policy document.
func LoadPolicy(r io.Reader) (Policy, error) {
	var doc policyFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return Policy{}, fmt.Errorf("policy: decode: %w", err)
	}
	if len(doc.Features) == 0 {
		return Policy{}, fmt.Errorf("policy: no features defined")
	}

	table := make(map[domain.FeatureKey][]domain.Role, len(doc.Features))
	for key, names := range doc.Features {
		roles := make([]domain.Role, 0, len(names))
		for _, n := range names {
			r, err := domain.ParseRole(n)
			if err != nil {
				return Policy{}, fmt.Errorf("policy: feature %s: %w: %q", key, err, n)
			}
			roles = append(roles, r)
		}
		table[domain.FeatureKey(key)] = roles
	}
	return NewPolicy(table)
}

// LoadPolicyFile reads the policy at path. An empty path yields DefaultPolicy.
func LoadPolicyFile(path string) (Policy, error) {
	if path == "" {
		return DefaultPolicy(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return Policy{}, fmt.Errorf("policy: open: %w", err)
	}
	defer f.Close()
	return LoadPolicy(f)
}

// Allows reports whether role may use feature.
func (p Policy) Allows(role domain.Role, feature domain.FeatureKey) bool {
	roles, ok := p.features[feature]
	if !ok {
		return false
	}
	_, ok = roles[role]
	return ok
}

// Roles returns the roles allowed for feature, in canonical role order.
func (p Policy) Roles(feature domain.FeatureKey) []domain.Role {
	out := make([]domain.Role, 0, 4)
	for _, r := range domain.Roles() {
		if p.Allows(r, feature) {
			out = append(out, r)
		}
	}
	return out
}
