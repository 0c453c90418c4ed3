package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kraftflix/movie-api/internal/core/domain"
	"github.com/kraftflix/movie-api/internal/core/ports"
)

const collectionAuthEvents = "auth_events"

// authEventRetention bounds how long the audit trail is kept.
const authEventRetention = 90 * 24 * time.Hour

// AuthEventRepository implements ports.AuthEventRepository using MongoDB.
type AuthEventRepository struct {
	col *mongo.Collection
}

var _ ports.AuthEventRepository = (*AuthEventRepository)(nil)

func NewAuthEventRepository(db *mongo.Database) *AuthEventRepository {
	return &AuthEventRepository{col: db.Collection(collectionAuthEvents)}
}

// Insert persists one audit entry. The internal reason is stored but is never
// exposed through the API.
func (r *AuthEventRepository) Insert(ctx context.Context, event *domain.AuthEvent) error {
	doc := bson.M{
		"type":        string(event.Type),
		"username":    event.Username,
		"at":          event.At.UTC(),
		"recorded_at": time.Now().UTC(),
	}
	if event.Target != "" {
		doc["target"] = event.Target
	}
	if event.TokenID != "" {
		doc["token_id"] = event.TokenID
	}
	if event.Reason != "" {
		doc["reason"] = event.Reason
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert auth event: %w", err)
	}
	return nil
}

func (r *AuthEventRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}, {Key: "at", Value: -1}}},
		{
			Keys:    bson.D{{Key: "at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(int32(authEventRetention.Seconds())),
		},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
