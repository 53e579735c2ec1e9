package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fusandy452/aistudent-backend/internal/core/domain"
)

const (
	collectionChatMessages = "chat_messages"
	collectionUsageStats   = "usage_stats"
)

// ChatRepository persists conversation turns. Append-only by construction:
// only inserts are implemented.
type ChatRepository struct {
	col *mongo.Collection
}

func NewChatRepository(db *mongo.Database) *ChatRepository {
	return &ChatRepository{col: db.Collection(collectionChatMessages)}
}

func (r *ChatRepository) Save(ctx context.Context, m *domain.ChatMessage) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, m); err != nil {
		return fmt.Errorf("insert chat message: %w", err)
	}
	return nil
}

func (r *ChatRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.col.CountDocuments(ctx, bson.M{})
}

// EnsureIndexes creates the per-profile history index.
func (r *ChatRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "profile_id", Value: 1}, {Key: "created_at", Value: 1}},
	})
	return err
}

// UsageStatRepository records append-only audit entries.
type UsageStatRepository struct {
	col *mongo.Collection
}

func NewUsageStatRepository(db *mongo.Database) *UsageStatRepository {
	return &UsageStatRepository{col: db.Collection(collectionUsageStats)}
}

func (r *UsageStatRepository) Save(ctx context.Context, s *domain.UsageStat) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, s); err != nil {
		return fmt.Errorf("insert usage stat: %w", err)
	}
	return nil
}
