package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/fusandy452/aistudent-backend/internal/api/metrics"
	"github.com/fusandy452/aistudent-backend/internal/core/domain"
	"github.com/fusandy452/aistudent-backend/internal/core/ports"
)

// AdvisorChatService proxies one conversation turn to the text generator.
// It never fails visibly: every path produces a non-empty reply, trading
// strict error signaling for conversational continuity.
type AdvisorChatService struct {
	profiles  ports.ProfileRepository
	messages  ports.ChatRepository
	stats     ports.UsageStatRepository
	generator ports.TextGenerator
	logger    zerolog.Logger
}

func NewAdvisorChatService(
	profiles ports.ProfileRepository,
	messages ports.ChatRepository,
	stats ports.UsageStatRepository,
	generator ports.TextGenerator,
	logger zerolog.Logger,
) *AdvisorChatService {
	return &AdvisorChatService{
		profiles:  profiles,
		messages:  messages,
		stats:     stats,
		generator: generator,
		logger:    logger,
	}
}

// Chat builds the role- and language-conditioned prompt, calls the model and
// persists both turns plus a usage stat when a non-empty message was sent.
// Failed or empty generations are replaced with a fixed apology in the
// requested language.
func (s *AdvisorChatService) Chat(ctx context.Context, input ports.ChatInput) (string, error) {
	message := strings.TrimSpace(input.Message)
	userRole := input.UserRole
	if userRole == "" {
		userRole = "student"
	}
	language := input.Language
	if language != domain.LanguageEN {
		language = domain.LanguageZH
	}

	var profile *domain.Profile
	if input.ProfileID != "" {
		p, err := s.profiles.FindByID(ctx, input.ProfileID)
		if err != nil {
			s.logger.Warn().Err(err).Str("profile_id", input.ProfileID).Msg("profile lookup failed, continuing without it")
		} else {
			profile = p
		}
	}

	prompt := buildPrompt(userRole, message, language, profile)

	var reply string
	if !s.generator.Configured() {
		s.logger.Warn().Msg("text generator not configured, using fallback reply")
		metrics.ChatFallbacksTotal.WithLabelValues("unconfigured").Inc()
		reply = unavailableReply(language)
	} else {
		text, err := s.generator.Generate(ctx, prompt)
		if err != nil {
			s.logger.Error().Err(err).Msg("generation failed, using fallback reply")
		}
		reply = strings.TrimSpace(text)
		if reply == "" {
			metrics.ChatFallbacksTotal.WithLabelValues("generation_failed").Inc()
			reply = apologyReply(language)
		}
	}

	if message != "" {
		s.persistTurn(ctx, input, message, reply, userRole, language)
	}

	return reply, nil
}

func (s *AdvisorChatService) persistTurn(ctx context.Context, input ports.ChatInput, message, reply, userRole, language string) {
	now := time.Now().UTC()

	save := func(direction domain.ChatDirection, content string) {
		err := s.messages.Save(ctx, &domain.ChatMessage{
			ProfileID: input.ProfileID,
			UserID:    input.UserID,
			Direction: direction,
			Content:   content,
			Language:  language,
			UserRole:  userRole,
			CreatedAt: now,
		})
		if err != nil {
			s.logger.Error().Err(err).Str("direction", string(direction)).Msg("failed to save chat message")
		}
	}
	save(domain.ChatFromUser, message)
	save(domain.ChatFromAI, reply)

	if err := s.stats.Save(ctx, &domain.UsageStat{
		UserID:     input.UserID,
		ProfileID:  input.ProfileID,
		ActionType: domain.ActionChatMessage,
		Details:    map[string]any{"language": language, "user_role": userRole},
		CreatedAt:  now,
	}); err != nil {
		s.logger.Warn().Err(err).Msg("failed to record usage stat")
	}
}
