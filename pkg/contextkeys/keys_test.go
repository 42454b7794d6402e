package contextkeys

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/quorali/atrium/pkg/auth"
)

func TestGetIdentity_Fallback(t *testing.T) {
	ident := GetIdentity(context.Background())
	if !ident.IsAnonymous() {
		t.Error("context without an identity should yield the anonymous sentinel")
	}
}

func TestWithIdentity_RoundTrip(t *testing.T) {
	userID := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	ctx := WithIdentity(context.Background(), auth.Identity{UserID: userID, Name: "alice"})

	ident := GetIdentity(ctx)
	if ident.UserID != userID {
		t.Errorf("UserID = %s, want %s", ident.UserID, userID)
	}
	if ident.Name != "alice" {
		t.Errorf("Name = %q, want %q", ident.Name, "alice")
	}
}

func TestLookupIdentity(t *testing.T) {
	if _, ok := LookupIdentity(context.Background()); ok {
		t.Error("empty context should report no identity present")
	}

	ctx := WithIdentity(context.Background(), auth.Anonymous())
	if _, ok := LookupIdentity(ctx); !ok {
		t.Error("an attached identity should be reported present, even the anonymous one")
	}
}

func TestWithIdentity_Idempotent(t *testing.T) {
	first := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	second := uuid.MustParse("22222222-2222-2222-2222-222222222222")

	ctx := WithIdentity(context.Background(), auth.Identity{UserID: first})
	ctx = WithIdentity(ctx, auth.Identity{UserID: second})

	if got := GetIdentity(ctx).UserID; got != first {
		t.Errorf("second write should be ignored, got UserID %s, want %s", got, first)
	}
}
