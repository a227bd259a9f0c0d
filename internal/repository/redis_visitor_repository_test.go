package repository

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	return client, mr
}

func TestRedisVisitorRepository_FindByUserID(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	repo := NewRedisVisitorRepository(client, "visitor_ids")
	ctx := context.Background()

	mr.HSet("visitor_ids:u1", "user_id", "u1", "visitor_id", "v1")
	mr.HSet("visitor_ids:u3", "user_id", "u3", "source", "import")
	mr.HSet("visitor_ids:u5", "user_id", "someone-else", "visitor_id", "v5")
	mr.HSet("visitor_ids:u6", "visitor_id", "v6")

	t.Run("found", func(t *testing.T) {
		record, err := repo.FindByUserID(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, "u1", record.UserID)
		assert.Equal(t, "v1", record.VisitorID)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := repo.FindByUserID(ctx, "u2")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("missing visitor id", func(t *testing.T) {
		record, err := repo.FindByUserID(ctx, "u3")
		require.NoError(t, err)
		assert.Empty(t, record.VisitorID)
	})

	t.Run("stored user id differs", func(t *testing.T) {
		_, err := repo.FindByUserID(ctx, "u5")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("stored user id missing", func(t *testing.T) {
		_, err := repo.FindByUserID(ctx, "u6")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, repo.Ping(ctx))
	})
}

func TestRedisVisitorRepository_ServerDown(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer client.Close()

	repo := NewRedisVisitorRepository(client, "visitor_ids")
	mr.Close()

	_, err := repo.FindByUserID(context.Background(), "u1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Error(t, repo.Ping(context.Background()))
}
