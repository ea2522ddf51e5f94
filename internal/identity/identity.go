// Package identity authenticates requests with JWT bearer tokens and carries
// the retailer id through the request context. Every business route is
// tenant-scoped, so the id extracted here is the only tenant key handlers use.
package identity

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey struct{}

var retailerIDKey contextKey

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid token")
)

// Claims is the token body issued at login. RetailerID is the tenant key.
type Claims struct {
	RetailerID string `json:"retailer_id"`
	jwt.RegisteredClaims
}

type Authenticator struct {
	secret []byte
	ttl    time.Duration
}

func NewAuthenticator(secret string, ttl time.Duration) *Authenticator {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Authenticator{secret: []byte(secret), ttl: ttl}
}

// IssueToken signs a token for a retailer.
func (a *Authenticator) IssueToken(retailerID string) (string, error) {
	now := time.Now()
	claims := Claims{
		RetailerID: retailerID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   retailerID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ParseToken validates a signed token and returns the retailer id.
func (a *Authenticator) ParseToken(raw string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	if claims.RetailerID == "" {
		return "", ErrInvalidToken
	}
	return claims.RetailerID, nil
}

// Middleware rejects requests without a valid bearer token and stores the
// retailer id in the request context.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := bearerToken(r)
		if err != nil {
			unauthorized(w, err)
			return
		}
		retailerID, err := a.ParseToken(raw)
		if err != nil {
			unauthorized(w, err)
			return
		}
		ctx := context.WithValue(r.Context(), retailerIDKey, retailerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RetailerID returns the authenticated retailer id, or "" outside the
// middleware.
func RetailerID(ctx context.Context) string {
	id, _ := ctx.Value(retailerIDKey).(string)
	return id
}

func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", ErrMissingToken
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", ErrInvalidToken
	}
	return parts[1], nil
}

func unauthorized(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	fmt.Fprintf(w, `{"error":%q}`, err.Error())
}
