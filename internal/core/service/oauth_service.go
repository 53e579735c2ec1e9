package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/fusandy452/aistudent-backend/internal/core/domain"
	"github.com/fusandy452/aistudent-backend/internal/core/ports"
)

// OAuthLoginService turns a verified provider identity into a local user row
// and an application bearer token.
type OAuthLoginService struct {
	users  ports.UserRepository
	tokens ports.TokenService
	logger zerolog.Logger
}

func NewOAuthLoginService(users ports.UserRepository, tokens ports.TokenService, logger zerolog.Logger) *OAuthLoginService {
	return &OAuthLoginService{users: users, tokens: tokens, logger: logger}
}

// CompleteLogin upserts the user keyed by (provider, external id): created on
// first login, profile fields refreshed on every subsequent one. On success a
// 7-day token is issued for the user.
func (s *OAuthLoginService) CompleteLogin(ctx context.Context, identity *domain.ExternalIdentity) (string, *domain.User, error) {
	now := time.Now().UTC()
	user := &domain.User{
		Provider:   identity.Provider,
		ExternalID: identity.ExternalID,
		Email:      identity.Email,
		Name:       identity.Name,
		AvatarURL:  identity.AvatarURL,
		UpdatedAt:  now,
	}

	existing, err := s.users.FindByProviderID(ctx, identity.Provider, identity.ExternalID)
	switch {
	case err == nil:
		user.ID = existing.ID
		user.CreatedAt = existing.CreatedAt
		if err := s.users.Update(ctx, user); err != nil {
			return "", nil, err
		}
		s.logger.Info().Str("provider", identity.Provider).Str("user_id", identity.ExternalID).Msg("existing user logged in")
	case errors.Is(err, domain.ErrUserNotFound):
		user.CreatedAt = now
		if err := s.users.Create(ctx, user); err != nil {
			return "", nil, err
		}
		s.logger.Info().Str("provider", identity.Provider).Str("user_id", identity.ExternalID).Msg("new user created")
	default:
		return "", nil, err
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}
