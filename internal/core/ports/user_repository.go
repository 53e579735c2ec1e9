package ports

import (
	"context"

	"github.com/fusandy452/aistudent-backend/internal/core/domain"
)

// UserRepository defines persistence for OAuth end users.
type UserRepository interface {
	// FindByProviderID looks up a user by (provider, external id).
	FindByProviderID(ctx context.Context, provider, externalID string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	// Update refreshes the mutable profile fields (email, name, avatar)
	// of an existing (provider, external id) row.
	Update(ctx context.Context, user *domain.User) error
	Count(ctx context.Context) (int64, error)
}
