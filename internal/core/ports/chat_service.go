package ports

import (
	"context"

	"github.com/fusandy452/aistudent-backend/internal/core/domain"
)

// TextGenerator produces a completion for a fully built prompt. An empty
// string (with nil error) means the backend is unconfigured or failed; the
// caller substitutes a fallback reply.
type TextGenerator interface {
	Configured() bool
	Generate(ctx context.Context, prompt string) (string, error)
}

// ChatInput carries one chat request from an authenticated user.
type ChatInput struct {
	UserID    string
	ProfileID string
	Message   string
	UserRole  string
	Language  string
}

// ChatService builds the advisor prompt, calls the model, persists the
// exchange, and always returns a non-empty reply.
type ChatService interface {
	Chat(ctx context.Context, input ChatInput) (string, error)
}

// IntakeInput carries a profile submission.
type IntakeInput struct {
	UserID string
	Fields map[string]any
}

// IntakeService persists an intake profile plus its audit record and
// returns the generated profile id.
type IntakeService interface {
	Submit(ctx context.Context, input IntakeInput) (string, error)
	GetProfile(ctx context.Context, profileID, requestingUserID string) (*domain.Profile, error)
}
