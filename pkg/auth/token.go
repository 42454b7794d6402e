package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/quorali/atrium/pkg/observability"
)

// TokenTTL is the fixed lifetime of an issued token. Expiry is never
// extended in place; a new token must be issued to extend a session.
const TokenTTL = 1 * time.Hour

// Claim keys used on the wire. All values travel as strings.
const (
	claimIssuedAt  = "iat"
	claimExpiresAt = "exp"
	claimUserID    = "sid"
	claimTenantID  = "client_id"
	claimUserName  = "preferred_username"
	claimEmail     = "email"
)

var (
	// ErrTokenMalformed indicates input that is not a structurally valid token.
	ErrTokenMalformed = errors.New("token malformed")
	// ErrTokenSignatureInvalid indicates a signature mismatch.
	ErrTokenSignatureInvalid = errors.New("token signature invalid")
	// ErrTokenExpired indicates a verified token whose expiry has passed.
	ErrTokenExpired = errors.New("token expired")
)

// TokenCodec signs Claims into tamper-evident bearer tokens and verifies
// them back. It is stateless aside from the fixed shared secret, and safe
// for concurrent use.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	logger *observability.Logger
}

// NewTokenCodec creates a codec for the given shared secret. A
// non-positive ttl falls back to TokenTTL.
func NewTokenCodec(secret string, ttl time.Duration, logger *observability.Logger) *TokenCodec {
	if ttl <= 0 {
		ttl = TokenTTL
	}
	if logger == nil {
		logger = observability.NewLogger(observability.InfoLevel, nil)
	}
	return &TokenCodec{
		secret: []byte(secret),
		ttl:    ttl,
		logger: logger,
	}
}

// Generate signs the claim into an encoded bearer token. The issue time
// is taken from the claim when set (second precision), otherwise the
// current time; expiry is always issue time plus the codec TTL.
func (c *TokenCodec) Generate(claim Claim) (string, error) {
	issued := claim.IssuedAt
	if issued.IsZero() {
		issued = time.Now()
	}
	issued = issued.Truncate(time.Second)
	expires := issued.Add(c.ttl)

	claims := jwt.MapClaims{
		claimIssuedAt:  strconv.FormatInt(issued.Unix(), 10),
		claimExpiresAt: strconv.FormatInt(expires.Unix(), 10),
		claimUserID:    claim.UserID.String(),
		claimTenantID:  claim.TenantID.String(),
		claimUserName:  claim.UserName,
		claimEmail:     claim.Email,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("unable to sign claims: %w", err)
	}
	return token, nil
}

// Validate reports whether the token carries a valid signature and an
// unexpired `exp` claim.
func (c *TokenCodec) Validate(token string) bool {
	_, err := c.verify(token)
	if err != nil {
		c.logger.WithError(err).Warn("unable to validate token")
		return false
	}
	return true
}

// Parse verifies the token and decodes its Claim. Any failure (malformed
// input, bad signature, expired token) returns the empty sentinel Claim;
// Parse never returns an error to the caller.
func (c *TokenCodec) Parse(token string) Claim {
	claims, err := c.verify(token)
	if err != nil {
		c.logger.WithError(err).Warn("unable to verify token")
		return EmptyClaim()
	}

	userID := uuid.Nil
	if sid, ok := claims[claimUserID].(string); ok {
		if id, err := uuid.Parse(sid); err == nil {
			userID = id
		} else {
			c.logger.Warn("invalid user id in token")
		}
	}

	tenantID := uuid.Nil
	if cid, ok := claims[claimTenantID].(string); ok {
		if id, err := uuid.Parse(cid); err == nil {
			tenantID = id
		} else {
			c.logger.Warn("invalid tenant id in token")
		}
	}

	userName, _ := claims[claimUserName].(string)
	email, _ := claims[claimEmail].(string)

	issued, _ := claimTime(claims, claimIssuedAt)
	expires, _ := claimTime(claims, claimExpiresAt)

	return Claim{
		UserID:    userID,
		TenantID:  tenantID,
		UserName:  userName,
		Email:     email,
		IssuedAt:  issued,
		ExpiresAt: expires,
	}
}

// verify checks the HMAC signature and the string-valued `exp` claim.
// Claims travel as strings, so the library's numeric claim validation is
// disabled and expiry is enforced here.
func (c *TokenCodec) verify(token string) (jwt.MapClaims, error) {
	parsed, err := jwt.Parse(token,
		func(t *jwt.Token) (interface{}, error) {
			return c.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return nil, fmt.Errorf("%w: %v", ErrTokenSignatureInvalid, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrTokenMalformed
	}

	expires, err := claimTime(claims, claimExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}
	if time.Now().After(expires) {
		return nil, ErrTokenExpired
	}

	return claims, nil
}

func claimTime(claims jwt.MapClaims, key string) (time.Time, error) {
	raw, ok := claims[key].(string)
	if !ok {
		return time.Time{}, fmt.Errorf("missing %q claim", key)
	}
	seconds, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %q claim: %v", key, err)
	}
	return time.Unix(seconds, 0), nil
}
