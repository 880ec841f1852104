package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL matches the auth cookie max age (7 days). The cookie and
// the token must expire together.
const DefaultTokenTTL = 7 * 24 * time.Hour

// ErrInvalidToken is the single outcome for every verification failure:
// bad signature, malformed structure, or expiry. Callers cannot distinguish
// them, so a probe learns nothing about why a token was rejected.
var ErrInvalidToken = errors.New("invalid token")

type claims struct {
	UserID string `json:"sub"`
	jwt.RegisteredClaims
}

// Tokens issues and verifies the signed session tokens that bind a request
// to exactly one account identifier.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokens(secret string, ttl time.Duration) *Tokens {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Tokens{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// WithClock replaces the token clock. Tests use this to simulate expiry.
func (t *Tokens) WithClock(now func() time.Time) *Tokens {
	t.now = now
	return t
}

// Issue mints a signed token carrying the account identifier and an absolute
// expiry. The token carries nothing else.
func (t *Tokens) Issue(userID string) (string, error) {
	now := t.now()
	c := claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return token.SignedString(t.secret)
}

// Verify validates signature and expiry atomically and returns the embedded
// account identifier. Every failure collapses to ErrInvalidToken.
func (t *Tokens) Verify(tokenString string) (string, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.now))
	if err != nil {
		return "", ErrInvalidToken
	}

	c, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid || c.UserID == "" {
		return "", ErrInvalidToken
	}

	return c.UserID, nil
}
