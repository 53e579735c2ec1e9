package ports

import (
	"context"

	"github.com/fusandy452/aistudent-backend/internal/core/domain"
)

// ProfileRepository defines persistence for intake profiles.
type ProfileRepository interface {
	Save(ctx context.Context, p *domain.Profile) error
	FindByID(ctx context.Context, profileID string) (*domain.Profile, error)
	Count(ctx context.Context) (int64, error)
}

// UsageStatRepository records append-only audit entries.
type UsageStatRepository interface {
	Save(ctx context.Context, s *domain.UsageStat) error
}
