package repository

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/adagio/visitor-lookup/internal/domain"
)

type redisVisitorRepository struct {
	client *redis.Client
	prefix string
}

// NewRedisVisitorRepository returns an implementation storing each record
// as a hash at "{prefix}:{user_id}". A hash only matches when its user_id
// field equals the requested id.
func NewRedisVisitorRepository(client *redis.Client, prefix string) VisitorRepository {
	return &redisVisitorRepository{client: client, prefix: prefix}
}

// visitorKey is the hash key holding the record for userID.
func (r *redisVisitorRepository) visitorKey(userID string) string {
	return r.prefix + ":" + userID
}

func (r *redisVisitorRepository) FindByUserID(ctx context.Context, userID string) (*domain.VisitorRecord, error) {
	fields, err := r.client.HGetAll(ctx, r.visitorKey(userID)).Result()
	if err != nil {
		return nil, err
	}
	// The key only locates the hash; the stored user_id must still match.
	if fields[domain.FieldUserID] != userID {
		return nil, ErrNotFound
	}

	doc := make(map[string]any, len(fields))
	for k, v := range fields {
		doc[k] = v
	}
	return recordFromDocument(userID, doc), nil
}

func (r *redisVisitorRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
