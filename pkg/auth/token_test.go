package auth

import (
	"io"
	"strconv"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/quorali/atrium/pkg/observability"
)

func testCodec(secret string) *TokenCodec {
	return NewTokenCodec(secret, 0, observability.NewLogger(observability.ErrorLevel, io.Discard))
}

func TestTokenCodec_RoundTrip(t *testing.T) {
	codec := testCodec("test-secret")

	claim := NewClaim(
		uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		uuid.MustParse("22222222-2222-2222-2222-222222222222"),
		"alice",
		"alice@example.com",
	)

	token, err := codec.Generate(claim)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !codec.Validate(token) {
		t.Fatal("freshly generated token should validate")
	}

	parsed := codec.Parse(token)
	if parsed.IsEmpty() {
		t.Fatal("freshly generated token should parse to a non-empty claim")
	}
	if parsed.UserID != claim.UserID {
		t.Errorf("UserID = %s, want %s", parsed.UserID, claim.UserID)
	}
	if parsed.TenantID != claim.TenantID {
		t.Errorf("TenantID = %s, want %s", parsed.TenantID, claim.TenantID)
	}
	if parsed.UserName != "alice" {
		t.Errorf("UserName = %q, want %q", parsed.UserName, "alice")
	}
	if parsed.Email != "alice@example.com" {
		t.Errorf("Email = %q, want %q", parsed.Email, "alice@example.com")
	}
	if got := parsed.ExpiresAt.Sub(parsed.IssuedAt); got != TokenTTL {
		t.Errorf("expiry - issue = %v, want %v", got, TokenTTL)
	}
}

func TestTokenCodec_Deterministic(t *testing.T) {
	codec := testCodec("test-secret")

	claim := NewClaim(
		uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		uuid.MustParse("22222222-2222-2222-2222-222222222222"),
		"alice",
		"alice@example.com",
	)
	claim.IssuedAt = time.Unix(1700000000, 0)

	first, err := codec.Generate(claim)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	second, err := codec.Generate(claim)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if first != second {
		t.Error("identical claim and timestamp should produce identical tokens")
	}
}

func TestTokenCodec_Tampering(t *testing.T) {
	codec := testCodec("test-secret")

	token, err := codec.Generate(NewClaim(
		uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		uuid.MustParse("22222222-2222-2222-2222-222222222222"),
		"alice",
		"alice@example.com",
	))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	// Mutate one character at positions across header, payload and
	// signature; every mutation must break validation.
	for _, pos := range []int{0, len(token) / 3, len(token) / 2, 2 * len(token) / 3, len(token) - 1} {
		mutated := []byte(token)
		if mutated[pos] == 'A' {
			mutated[pos] = 'B'
		} else {
			mutated[pos] = 'A'
		}
		if string(mutated) == token {
			continue
		}
		if codec.Validate(string(mutated)) {
			t.Errorf("tampered token at position %d should not validate", pos)
		}
		if !codec.Parse(string(mutated)).IsEmpty() {
			t.Errorf("tampered token at position %d should parse to the empty claim", pos)
		}
	}
}

func TestTokenCodec_WrongSecret(t *testing.T) {
	codec := testCodec("test-secret")
	other := testCodec("other-secret")

	token, err := codec.Generate(NewClaim(
		uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		uuid.Nil,
		"alice",
		"alice@example.com",
	))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if other.Validate(token) {
		t.Error("token signed with a different secret should not validate")
	}
	if !other.Parse(token).IsEmpty() {
		t.Error("token signed with a different secret should parse to the empty claim")
	}
}

func TestTokenCodec_Expired(t *testing.T) {
	codec := testCodec("test-secret")

	claim := NewClaim(
		uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		uuid.MustParse("22222222-2222-2222-2222-222222222222"),
		"alice",
		"alice@example.com",
	)
	claim.IssuedAt = time.Now().Add(-2 * time.Hour)

	token, err := codec.Generate(claim)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if codec.Validate(token) {
		t.Error("expired token should not validate")
	}
	if !codec.Parse(token).IsEmpty() {
		t.Error("expired token should parse to the empty claim")
	}
}

func TestTokenCodec_Malformed(t *testing.T) {
	codec := testCodec("test-secret")

	for _, token := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		if codec.Validate(token) {
			t.Errorf("Validate(%q) = true, want false", token)
		}
		if !codec.Parse(token).IsEmpty() {
			t.Errorf("Parse(%q) should return the empty claim", token)
		}
	}
}

func TestTokenCodec_MalformedUUIDClaims(t *testing.T) {
	codec := testCodec("test-secret")

	// Properly signed and unexpired, but sid/client_id are not UUIDs.
	// Decoding falls back to the nil UUID, which is the empty sentinel.
	exp := strconv.FormatInt(time.Now().Add(1*time.Hour).Unix(), 10)
	iat := strconv.FormatInt(time.Now().Unix(), 10)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iat":                iat,
		"exp":                exp,
		"sid":                "not-a-uuid",
		"client_id":          "also-not-a-uuid",
		"preferred_username": "alice",
		"email":              "alice@example.com",
	}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("SignedString() error = %v", err)
	}

	if !codec.Validate(token) {
		t.Error("signature and expiry are valid, Validate should pass")
	}
	parsed := codec.Parse(token)
	if !parsed.IsEmpty() {
		t.Error("malformed sid should fall back to the nil UUID sentinel")
	}
	if parsed.TenantID != uuid.Nil {
		t.Error("malformed client_id should fall back to the nil UUID")
	}
}

func TestTokenCodec_MissingExpiry(t *testing.T) {
	codec := testCodec("test-secret")

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid": "11111111-1111-1111-1111-111111111111",
	}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("SignedString() error = %v", err)
	}

	if codec.Validate(token) {
		t.Error("token without an exp claim should not validate")
	}
	if !codec.Parse(token).IsEmpty() {
		t.Error("token without an exp claim should parse to the empty claim")
	}
}
