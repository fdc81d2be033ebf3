package mongo

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vetcare/central/internal/core/domain"
)

func TestUserRecord_ToIdentity(t *testing.T) {
	oid := primitive.NewObjectID()
	rec := userRecord{
		ID:           oid,
		Name:         "Carlos Ruiz",
		Email:        "recepcion@vetcare.test",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Role:         "receptionist",
	}

	id, err := rec.toIdentity()
	if err != nil {
		t.Fatalf("toIdentity returned error: %v", err)
	}
	if id.ID != oid.Hex() || id.Role != domain.RoleReceptionist || id.Email != rec.Email {
		t.Fatalf("unexpected identity: %+v", id)
	}
}

func TestUserRecord_ToIdentityRejectsIncomplete(t *testing.T) {
	base := userRecord{
		ID:           primitive.NewObjectID(),
		Name:         "Carlos Ruiz",
		Email:        "recepcion@vetcare.test",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Role:         "receptionist",
	}

	mutate := map[string]func(r *userRecord){
		"no id":      func(r *userRecord) { r.ID = primitive.NilObjectID },
		"no hash":    func(r *userRecord) { r.PasswordHash = "" },
		"no name":    func(r *userRecord) { r.Name = "" },
		"no email":   func(r *userRecord) { r.Email = "" },
		"no role":    func(r *userRecord) { r.Role = "" },
		"bogus role": func(r *userRecord) { r.Role = "superuser" },
	}
	for name, m := range mutate {
		rec := base
		m(&rec)
		if _, err := rec.toIdentity(); !errors.Is(err, domain.ErrMalformedIdentity) {
			t.Fatalf("%s: expected ErrMalformedIdentity, got %v", name, err)
		}
	}
}

func TestNormaliseEmail(t *testing.T) {
	if got := normaliseEmail("  Admin@VetCare.Test "); got != "admin@vetcare.test" {
		t.Fatalf("unexpected %q", got)
	}
}
