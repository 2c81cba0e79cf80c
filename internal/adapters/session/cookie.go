package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jsamuelsen/recharge-proxy/internal/domain"
	"github.com/jsamuelsen/recharge-proxy/internal/ports"
)

const cookieIssuer = "recharge-proxy"

// sessionClaims is the signed cookie payload. The payload is signed, not
// encrypted: the caller can read its own session.
type sessionClaims struct {
	Session domain.CallerSession `json:"sess"`
	jwt.RegisteredClaims
}

// CookieStore keeps the whole session in the cookie value as an HS256 JWT.
// The key returned by Set is the token; Get verifies signature and expiry.
type CookieStore struct {
	secret []byte
	now    func() time.Time
}

var _ ports.SessionStore = (*CookieStore)(nil)

// NewCookieStore creates a signed-cookie store. The secret must be non-empty.
func NewCookieStore(secret string) (*CookieStore, error) {
	if secret == "" {
		return nil, errors.New("cookie store secret is required")
	}

	return &CookieStore{secret: []byte(secret), now: time.Now}, nil
}

// Get implements ports.SessionStore. Tampered, expired or malformed tokens
// are reported as not found.
func (s *CookieStore) Get(_ context.Context, key string) (*domain.CallerSession, error) {
	if key == "" {
		return nil, domain.NewNotFoundError(entityName, "")
	}

	claims := &sessionClaims{}

	_, err := jwt.ParseWithClaims(key, claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(cookieIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.NewNotFoundError(entityName, ""), err)
	}

	return &claims.Session, nil
}

// Set implements ports.SessionStore. The incoming key is ignored; a freshly
// signed token is returned.
func (s *CookieStore) Set(_ context.Context, _ string, sess *domain.CallerSession, ttl time.Duration) (string, error) {
	now := s.now()

	claims := sessionClaims{
		Session: *sess,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cookieIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing session: %w", err)
	}

	return token, nil
}

// Expire implements ports.SessionStore. Nothing is held server-side; the
// HTTP layer clears the cookie.
func (s *CookieStore) Expire(context.Context, string) error {
	return nil
}
