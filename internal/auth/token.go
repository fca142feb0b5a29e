package auth

import (
	"regexp"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultExpiry is the identity token lifetime used when the configured
// duration string is missing or unparseable.
const DefaultExpiry = 7 * 24 * time.Hour

// Identity is the payload carried by a signed identity token. Tokens are
// immutable; a changed identity requires signing a brand-new token.
type Identity struct {
	UserID      uuid.UUID
	Email       string
	DisplayName string
}

// claims is the JWT claim set for identity tokens. The user ID rides in the
// registered Subject claim; email and display name are custom claims.
type claims struct {
	Email       string `json:"email"`
	DisplayName string `json:"name"`
	jwt.RegisteredClaims
}

// TokenConfig configures a Signer. Secret is the HMAC signing key; Expiry is
// a duration string like "7d", "12h", "30m" or "45s".
type TokenConfig struct {
	Secret string
	Expiry string
}

// Signer issues and verifies HS256-signed identity tokens. Tokens remain
// valid until natural expiry — there is no server-side revocation list, so
// logout and password changes do not invalidate outstanding tokens. Handlers
// that need stronger guarantees re-fetch the user record instead.
type Signer struct {
	secret []byte
	expiry time.Duration
}

// NewSigner creates a Signer from the given config.
func NewSigner(cfg TokenConfig) *Signer {
	return &Signer{
		secret: []byte(cfg.Secret),
		expiry: ParseExpiry(cfg.Expiry),
	}
}

// Sign produces a compact signed token encoding the identity plus issued-at
// and expiry timestamps.
func (s *Signer) Sign(id Identity) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Email:       id.Email,
		DisplayName: id.DisplayName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	})

	return token.SignedString(s.secret)
}

// Verify validates the token's signature and expiry and returns the decoded
// identity. Any failure — bad signature, expired, malformed, wrong algorithm —
// yields nil; it never returns an error for the caller to branch on.
func (s *Signer) Verify(tokenString string) *Identity {
	c := &claims{}
	token, err := jwt.ParseWithClaims(tokenString, c, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil
	}

	userID, err := uuid.Parse(c.Subject)
	if err != nil {
		return nil
	}

	return &Identity{
		UserID:      userID,
		Email:       c.Email,
		DisplayName: c.DisplayName,
	}
}

// Expiry returns the configured token lifetime, used for the auth cookie's
// max-age.
func (s *Signer) Expiry() time.Duration {
	return s.expiry
}

var expiryPattern = regexp.MustCompile(`^(\d+)([dhms])$`)

// ParseExpiry converts a duration string ("7d", "12h", "30m", "45s") into a
// time.Duration. Unparseable input falls back to DefaultExpiry.
func ParseExpiry(expiry string) time.Duration {
	m := expiryPattern.FindStringSubmatch(expiry)
	if m == nil {
		return DefaultExpiry
	}

	value, err := strconv.Atoi(m[1])
	if err != nil {
		return DefaultExpiry
	}

	switch m[2] {
	case "d":
		return time.Duration(value) * 24 * time.Hour
	case "h":
		return time.Duration(value) * time.Hour
	case "m":
		return time.Duration(value) * time.Minute
	case "s":
		return time.Duration(value) * time.Second
	}
	return DefaultExpiry
}
