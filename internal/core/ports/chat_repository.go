package ports

import (
	"context"

	"github.com/fusandy452/aistudent-backend/internal/core/domain"
)

// ChatRepository defines persistence for conversation turns. Append-only:
// messages are never mutated or deleted.
type ChatRepository interface {
	Save(ctx context.Context, m *domain.ChatMessage) error
	Count(ctx context.Context) (int64, error)
}
