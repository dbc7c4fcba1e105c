package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"campusevents/internal/domain"
	"campusevents/internal/domain/entities"
)

// Claims is the token payload: the subject is the user id.
type Claims struct {
	Email         string `json:"email,omitempty"`
	EmailVerified bool   `json:"email_verified,omitempty"`
	Role          string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Gate verifies HS256 bearer tokens and turns them into identities. It also
// issues tokens for local use by the CLI.
type Gate struct {
	secret []byte
	issuer string
	now    func() time.Time
}

func NewGate(secret, issuer string) *Gate {
	return &Gate{secret: []byte(secret), issuer: issuer, now: time.Now}
}

// WithClock replaces the time source, for tests.
func (g *Gate) WithClock(now func() time.Time) *Gate {
	g.now = now
	return g
}

// Verify parses a raw token. Any failure is reported as ErrAuthRequired so
// callers can map it straight to 401.
func (g *Gate) Verify(raw string) (entities.Identity, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return entities.Identity{}, domain.ErrAuthRequired
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(g.now),
		jwt.WithExpirationRequired(),
	}
	if g.issuer != "" {
		opts = append(opts, jwt.WithIssuer(g.issuer))
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return g.secret, nil
	}, opts...)
	if err != nil {
		return entities.Identity{}, fmt.Errorf("%w: %v", domain.ErrAuthRequired, err)
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return entities.Identity{}, fmt.Errorf("%w: token has no subject", domain.ErrAuthRequired)
	}

	role := entities.Role(claims.Role)
	if role != entities.RoleManager {
		role = entities.RoleStudent
	}
	return entities.Identity{
		UID:           claims.Subject,
		Email:         claims.Email,
		EmailVerified: claims.EmailVerified,
		Role:          role,
	}, nil
}

// Issue signs a token for id valid for ttl.
func (g *Gate) Issue(id entities.Identity, ttl time.Duration) (string, error) {
	if !id.IsAuthenticated() {
		return "", errors.New("issue token: identity has no uid")
	}
	now := g.now()
	claims := Claims{
		Email:         id.Email,
		EmailVerified: id.EmailVerified,
		Role:          string(id.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.UID,
			Issuer:    g.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) string {
	const prefix = "bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
