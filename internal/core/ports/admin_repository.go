package ports

import (
	"context"
	"time"

	"github.com/fusandy452/aistudent-backend/internal/core/domain"
)

// AdminRepository defines persistence for operator accounts.
type AdminRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.AdminAccount, error)
	Create(ctx context.Context, admin *domain.AdminAccount) error
	CountByRole(ctx context.Context, role string) (int64, error)
	UpdateLastLogin(ctx context.Context, adminID string, at time.Time) error
}

// AdminSessionStore holds opaque admin sessions. The store owns expiry: a
// session that has passed its TTL must no longer be returned by Get.
type AdminSessionStore interface {
	Put(ctx context.Context, session *domain.AdminSession) error
	Get(ctx context.Context, sessionID string) (*domain.AdminSession, error)
	Delete(ctx context.Context, sessionID string) error
}
