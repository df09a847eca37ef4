package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"dottie-backend/pkg/apperrors"
)

// DefaultTokenTTL is the access-token lifetime when none is configured
const DefaultTokenTTL = 15 * time.Minute

// TokenService issues and resolves HMAC-SHA256 signed bearer tokens whose
// subject claim is the user's email.
type TokenService struct {
	signingKey []byte
	ttl        time.Duration
	timeFunc   func() time.Time // injectable for tests
}

// NewTokenService creates a token service. A zero ttl falls back to the
// 15 minute default.
func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt signing secret must not be empty")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{
		signingKey: []byte(secret),
		ttl:        ttl,
		timeFunc:   time.Now,
	}, nil
}

// IssueToken creates a signed token for the given subject email
func (s *TokenService) IssueToken(email string) (string, error) {
	now := s.timeFunc()
	claims := jwt.RegisteredClaims{
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		ID:        uuid.New().String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", apperrors.Internal("failed to sign token", err)
	}
	return signed, nil
}

// ResolveSubject validates a token and returns its subject email. Invalid
// signature, expiry and a missing subject all surface as authentication
// errors.
func (s *TokenService) ResolveSubject(tokenString string) (string, error) {
	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithTimeFunc(func() time.Time { return s.timeFunc() }),
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwt.RegisteredClaims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.signingKey, nil
		},
		parserOpts...,
	)
	if err != nil {
		return "", apperrors.Authentication("could not validate credentials", err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return "", apperrors.Authentication("could not validate credentials", nil)
	}
	if claims.Subject == "" {
		return "", apperrors.Authentication("token has no subject", nil)
	}

	return claims.Subject, nil
}
