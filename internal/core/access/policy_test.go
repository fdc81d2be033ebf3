package access

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/vetcare/central/internal/core/domain"
)

func TestLoadPolicy(t *testing.T) {
	doc := `
features:
  billing_view: [admin, receptionist, veterinarian]
  financial_stats: [admin]
`
	p, err := LoadPolicy(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("LoadPolicy returned error: %v", err)
	}

	if !p.Allows(domain.RoleVeterinarian, domain.FeatureBillingView) {
		t.Fatalf("expected veterinarian to be granted billing_view")
	}
	if p.Allows(domain.RoleReceptionist, domain.FeatureFinancialStats) {
		t.Fatalf("receptionist should not get financial_stats")
	}
	// Features missing from the file deny everyone.
	if p.Allows(domain.RoleAdmin, domain.FeatureMedicalDiagnosis) {
		t.Fatalf("missing feature should deny")
	}
}

func TestLoadPolicy_Rejects(t *testing.T) {
	cases := map[string]struct {
		doc  string
		want error
	}{
		"unknown feature": {doc: "features:\n  inventory_delete: [admin]\n", want: domain.ErrUnknownFeature},
		"unknown role":    {doc: "features:\n  billing_view: [owner]\n", want: domain.ErrUnknownRole},
	}
	for name, tc := range cases {
		if _, err := LoadPolicy(strings.NewReader(tc.doc)); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", name, tc.want, err)
		}
	}

	if _, err := LoadPolicy(strings.NewReader("features: {}\n")); err == nil {
		t.Fatalf("expected error for empty policy")
	}
	if _, err := LoadPolicy(strings.NewReader("roles:\n  - admin\n")); err == nil {
		t.Fatalf("expected error for unknown top-level field")
	}
}

func TestLoadPolicyFile(t *testing.T) {
	p, err := LoadPolicyFile("")
	if err != nil {
		t.Fatalf("empty path returned error: %v", err)
	}
	if !slices.Equal(p.Roles(domain.FeatureFinancialStats), []domain.Role{domain.RoleAdmin}) {
		t.Fatalf("empty path should yield the default policy")
	}

	path := filepath.Join(t.TempDir(), "policy.yaml")
	if err := os.WriteFile(path, []byte("features:\n  products_pricing: [admin]\n"), 0o600); err != nil {
		t.Fatalf("write policy: %v", err)
	}
	p, err = LoadPolicyFile(path)
	if err != nil {
		t.Fatalf("LoadPolicyFile returned error: %v", err)
	}
	if p.Allows(domain.RoleReceptionist, domain.FeatureProductsPricing) {
		t.Fatalf("file policy should override the default")
	}

	if _, err := LoadPolicyFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestDefaultPolicyMatchesShippedFile(t *testing.T) {
	p, err := LoadPolicyFile(filepath.Join("..", "..", "..", "configs", "policy.yaml"))
	if err != nil {
		t.Fatalf("load shipped policy: %v", err)
	}
	def := DefaultPolicy()
	for _, f := range domain.Features() {
		if !slices.Equal(p.Roles(f), def.Roles(f)) {
			t.Fatalf("%s: shipped %v, default %v", f, p.Roles(f), def.Roles(f))
		}
	}
}
