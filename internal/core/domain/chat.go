package domain

import "time"

// ChatDirection distinguishes who produced a conversation turn.
type ChatDirection string

const (
	ChatFromUser ChatDirection = "user"
	ChatFromAI   ChatDirection = "ai"
)

const (
	LanguageZH = "zh"
	LanguageEN = "en"
)

// ChatMessage is one turn of conversation. Append-only.
type ChatMessage struct {
	ProfileID string        `json:"profile_id,omitempty" bson:"profile_id,omitempty"`
	UserID    string        `json:"user_id" bson:"user_id"`
	Direction ChatDirection `json:"message_type" bson:"message_type"`
	Content   string        `json:"message_content" bson:"message_content"`
	Language  string        `json:"language" bson:"language"`
	UserRole  string        `json:"user_role" bson:"user_role"`
	CreatedAt time.Time     `json:"created_at" bson:"created_at"`
}
