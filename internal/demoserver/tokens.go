package demoserver

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenKindAccess  = "access"
	tokenKindRefresh = "refresh"
)

type authClaims struct {
	Kind string `json:"kind"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies the demo server's HMAC tokens.
type TokenIssuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenIssuer(secret string, accessTTL, refreshTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// Issue returns a fresh access/refresh token pair for userID.
func (t *TokenIssuer) Issue(userID string) (access, refresh string, err error) {
	access, err = t.sign(userID, tokenKindAccess, t.accessTTL)
	if err != nil {
		return "", "", err
	}
	refresh, err = t.sign(userID, tokenKindRefresh, t.refreshTTL)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (t *TokenIssuer) sign(userID, kind string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, authClaims{
		Kind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("signing %s token: %w", kind, err)
	}
	return signed, nil
}

// VerifyAccess validates an access token and returns the subject user ID.
func (t *TokenIssuer) VerifyAccess(raw string) (string, error) {
	return t.verify(raw, tokenKindAccess)
}

// VerifyRefresh validates a refresh token and returns the subject user ID.
func (t *TokenIssuer) VerifyRefresh(raw string) (string, error) {
	return t.verify(raw, tokenKindRefresh)
}

func (t *TokenIssuer) verify(raw, kind string) (string, error) {
	parsed, err := jwt.ParseWithClaims(raw, &authClaims{}, func(token *jwt.Token) (any, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method %s", token.Method.Alg())
		}
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithLeeway(30*time.Second))
	if err != nil {
		return "", err
	}

	claims, ok := parsed.Claims.(*authClaims)
	if !ok || !parsed.Valid {
		return "", fmt.Errorf("invalid token")
	}
	if claims.Kind != kind {
		return "", fmt.Errorf("wrong token kind %q", claims.Kind)
	}
	return claims.Subject, nil
}
