package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fusandy452/aistudent-backend/internal/core/domain"
)

const userTokenTTL = 7 * 24 * time.Hour

// JWTTokenService issues and validates HS256 user bearer tokens.
//
// The optional test bypass maps one configured literal token to a synthetic
// identity. It is resolved at construction from explicit configuration and is
// never enabled by the zero value.
type JWTTokenService struct {
	secret    []byte
	ttl       time.Duration
	testToken string
}

func NewTokenService(secret string) *JWTTokenService {
	return &JWTTokenService{secret: []byte(secret), ttl: userTokenTTL}
}

// EnableTestBypass registers the literal bypass token. Callers must gate this
// on a non-production test-mode flag.
func (s *JWTTokenService) EnableTestBypass(token string) {
	s.testToken = token
}

// Issue signs a 7-day claims token embedding user id, email, name and provider.
func (s *JWTTokenService) Issue(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ExternalID,
		"email":    user.Email,
		"name":     user.Name,
		"provider": user.Provider,
		"exp":      time.Now().Add(s.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate verifies signature and expiry and returns the decoded claims.
// Any decode, signature or expiry failure maps to domain.ErrInvalidToken.
func (s *JWTTokenService) Validate(token string) (*domain.TokenClaims, error) {
	if s.testToken != "" && token == s.testToken {
		return &domain.TokenClaims{
			UserID:   "test-user",
			Email:    "test@example.com",
			Name:     "Test User",
			Provider: "test",
		}, nil
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}

	out := &domain.TokenClaims{}
	out.UserID, _ = claims["user_id"].(string)
	out.Email, _ = claims["email"].(string)
	out.Name, _ = claims["name"].(string)
	out.Provider, _ = claims["provider"].(string)
	if out.UserID == "" {
		return nil, domain.ErrInvalidToken
	}
	return out, nil
}
