package domain

import (
	"errors"
	"time"
)

var ErrProfileNotFound = errors.New("profile not found")
var ErrAccessDenied = errors.New("access denied")

// Profile is a free-form intake record submitted by an authenticated user.
// One user may own several profiles; reads are restricted to the owner.
type Profile struct {
	ProfileID string         `json:"profile_id" bson:"profile_id"`
	UserID    string         `json:"user_id" bson:"user_id"`
	Role      string         `json:"user_role,omitempty" bson:"user_role,omitempty"`
	Fields    map[string]any `json:"fields,omitempty" bson:"fields,omitempty"`
	CreatedAt time.Time      `json:"created_at" bson:"created_at"`
}

// UsageStat is an append-only audit record of a user action.
type UsageStat struct {
	UserID     string         `json:"user_id" bson:"user_id"`
	ProfileID  string         `json:"profile_id,omitempty" bson:"profile_id,omitempty"`
	ActionType string         `json:"action_type" bson:"action_type"`
	Details    map[string]any `json:"action_details,omitempty" bson:"action_details,omitempty"`
	CreatedAt  time.Time      `json:"created_at" bson:"created_at"`
}

const (
	ActionProfileCreated = "profile_created"
	ActionChatMessage    = "chat_message"
)
