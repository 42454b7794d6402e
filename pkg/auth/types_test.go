package auth

import (
	"testing"

	"github.com/google/uuid"
)

func TestAnonymous(t *testing.T) {
	ident := Anonymous()

	if !ident.IsAnonymous() {
		t.Error("anonymous identity should report IsAnonymous")
	}
	if ident.IsAuthenticated() {
		t.Error("anonymous identity should not report IsAuthenticated")
	}
	if !ident.ActiveTenant.IsDefault() {
		t.Error("anonymous identity should carry the default tenant sentinel")
	}
	if len(ident.Tenants) != 0 || len(ident.Permissions) != 0 {
		t.Error("anonymous identity should have empty tenant and permission lists")
	}
	if ident.Name != "" || ident.Email != "" {
		t.Error("anonymous identity should have empty name and email")
	}
}

func TestIdentity_IsAnonymous(t *testing.T) {
	userID := uuid.MustParse("11111111-1111-1111-1111-111111111111")

	ident := Identity{UserID: userID}
	if ident.IsAnonymous() {
		t.Error("identity with a user id should not be anonymous")
	}
	if !ident.IsAuthenticated() {
		t.Error("identity with a user id should be authenticated")
	}
}

func TestIdentity_HasPermission(t *testing.T) {
	ident := Identity{
		UserID: uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		Permissions: []Permission{
			{ID: 7, Name: "tenant.save"},
			{ID: 9, Name: "files.upload"},
		},
	}

	tests := []struct {
		name       string
		permission string
		want       bool
	}{
		{"held permission", "tenant.save", true},
		{"other held permission", "files.upload", true},
		{"missing permission", "tenant.fetch", false},
		{"match is case-sensitive", "Tenant.Save", false},
		{"empty name", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ident.HasPermission(tt.permission); got != tt.want {
				t.Errorf("HasPermission(%q) = %v, want %v", tt.permission, got, tt.want)
			}
		})
	}
}

func TestDefaultTenant(t *testing.T) {
	tenant := DefaultTenant()

	if !tenant.IsDefault() {
		t.Error("default tenant should report IsDefault")
	}
	if tenant.ID != uuid.Nil {
		t.Errorf("default tenant id = %s, want nil UUID", tenant.ID)
	}

	real := Tenant{ID: uuid.MustParse("22222222-2222-2222-2222-222222222222"), Name: "acme"}
	if real.IsDefault() {
		t.Error("tenant with a real id should not be the default sentinel")
	}
}

func TestClaim_Sentinel(t *testing.T) {
	if !EmptyClaim().IsEmpty() {
		t.Error("empty claim should report IsEmpty")
	}

	claim := NewClaim(
		uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		uuid.MustParse("22222222-2222-2222-2222-222222222222"),
		"alice",
		"alice@example.com",
	)
	if claim.IsEmpty() {
		t.Error("claim with a user id should not be empty")
	}

	// Only the user id decides emptiness.
	tenantOnly := NewClaim(uuid.Nil, uuid.MustParse("22222222-2222-2222-2222-222222222222"), "", "")
	if !tenantOnly.IsEmpty() {
		t.Error("claim with a nil user id should be empty regardless of tenant")
	}
}
