package auth

import (
	"time"

	"github.com/google/uuid"
)

// Claim is the set of facts embedded in a signed token. A nil UserID
// denotes "no identity" (the empty sentinel). Claims are created by the
// token codec and are never persisted.
type Claim struct {
	UserID    uuid.UUID
	TenantID  uuid.UUID
	UserName  string
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// NewClaim creates a Claim for the given user and tenant. Timestamps are
// filled in by the codec at signing time.
func NewClaim(userID, tenantID uuid.UUID, userName, email string) Claim {
	return Claim{
		UserID:   userID,
		TenantID: tenantID,
		UserName: userName,
		Email:    email,
	}
}

// EmptyClaim returns the "no identity" sentinel.
func EmptyClaim() Claim {
	return Claim{}
}

// IsEmpty reports whether the claim is the "no identity" sentinel.
func (c Claim) IsEmpty() bool {
	return c.UserID == uuid.Nil
}
