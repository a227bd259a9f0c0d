package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adagio/visitor-lookup/internal/domain"
)

type postgresVisitorRepository struct {
	pool  *pgxpool.Pool
	query string
}

// NewPostgresVisitorRepository returns an implementation over a JSONB
// document table with columns (id, data).
func NewPostgresVisitorRepository(pool *pgxpool.Pool, table string) VisitorRepository {
	query := fmt.Sprintf(`
        SELECT data FROM %s
        WHERE data->>'user_id' = $1
        LIMIT 1`, pgx.Identifier{table}.Sanitize())
	return &postgresVisitorRepository{pool: pool, query: query}
}

func (r *postgresVisitorRepository) FindByUserID(ctx context.Context, userID string) (*domain.VisitorRecord, error) {
	var doc map[string]any
	if err := r.pool.QueryRow(ctx, r.query, userID).Scan(&doc); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return recordFromDocument(userID, doc), nil
}

func (r *postgresVisitorRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}
