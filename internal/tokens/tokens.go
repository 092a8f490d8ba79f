package tokens

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/folio-site/folio/backend/internal/models"
	"github.com/folio-site/folio/backend/pkg/apierror"
	"github.com/folio-site/folio/backend/pkg/middleware"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload of an admin access token.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// GenerateAccessToken creates a signed JWT access token for the user
func GenerateAccessToken(secret string, u *models.User, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("empty signing secret")
	}
	now := time.Now()
	claims := Claims{
		Username: u.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	jt := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return jt.SignedString([]byte(secret))
}

// ParseAccessToken validates signature and expiry and returns the claims.
// Every failure is reported as apierror.ErrUnauthenticated.
func ParseAccessToken(secret, raw string) (*Claims, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, apierror.New(apierror.ErrUnauthenticated, "No token, authorization denied")
	}
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithExpirationRequired())
	if err != nil || !tok.Valid {
		return nil, apierror.New(apierror.ErrUnauthenticated, "Token is not valid")
	}
	if claims.Subject == "" {
		return nil, apierror.New(apierror.ErrUnauthenticated, "Token is not valid")
	}
	return claims, nil
}

// Verifier adapts ParseAccessToken to the bearer middleware.
type Verifier struct {
	secret string
}

func NewVerifier(secret string) *Verifier { return &Verifier{secret: secret} }

func (v *Verifier) Verify(ctx context.Context, raw string) (*middleware.Identity, error) {
	c, err := ParseAccessToken(v.secret, raw)
	if err != nil {
		return nil, err
	}
	return &middleware.Identity{Subject: c.Subject, Username: c.Username}, nil
}
