package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/fusandy452/aistudent-backend/internal/core/domain"
	"github.com/fusandy452/aistudent-backend/internal/core/ports"
)

// ProfileService persists intake submissions and serves owner-scoped reads.
type ProfileService struct {
	profiles ports.ProfileRepository
	stats    ports.UsageStatRepository
	logger   zerolog.Logger
}

func NewProfileService(profiles ports.ProfileRepository, stats ports.UsageStatRepository, logger zerolog.Logger) *ProfileService {
	return &ProfileService{profiles: profiles, stats: stats, logger: logger}
}

// Submit stores a new profile under a collision-resistant id and records a
// profile_created usage stat. The stat write is best-effort.
func (s *ProfileService) Submit(ctx context.Context, input ports.IntakeInput) (string, error) {
	role, _ := input.Fields["user_role"].(string)
	profile := &domain.Profile{
		ProfileID: "profile_" + uuid.NewString(),
		UserID:    input.UserID,
		Role:      role,
		Fields:    input.Fields,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.profiles.Save(ctx, profile); err != nil {
		s.logger.Error().Err(err).Msg("failed to save profile")
		return "", err
	}

	if err := s.stats.Save(ctx, &domain.UsageStat{
		UserID:     input.UserID,
		ProfileID:  profile.ProfileID,
		ActionType: domain.ActionProfileCreated,
		Details:    map[string]any{"role": role},
		CreatedAt:  profile.CreatedAt,
	}); err != nil {
		s.logger.Warn().Err(err).Msg("failed to record usage stat")
	}

	s.logger.Info().Str("profile_id", profile.ProfileID).Str("role", role).Msg("profile saved")
	return profile.ProfileID, nil
}

// GetProfile returns the profile only when it belongs to the requesting user.
func (s *ProfileService) GetProfile(ctx context.Context, profileID, requestingUserID string) (*domain.Profile, error) {
	profile, err := s.profiles.FindByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if profile.UserID != requestingUserID {
		return nil, domain.ErrAccessDenied
	}
	return profile, nil
}
