package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/adagio/visitor-lookup/internal/config"
	"github.com/adagio/visitor-lookup/internal/persistence"
	"github.com/adagio/visitor-lookup/internal/repository"
)

// openVisitorStore connects the configured document store. The returned
// func releases the client and is safe to call once at shutdown.
func openVisitorStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.VisitorRepository, func(), error) {
	switch cfg.Store.Backend {
	case config.StoreBackendFirestore:
		fs, err := persistence.NewFirestore(ctx, cfg.Store, logger)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewFirestoreVisitorRepository(fs.Client, cfg.Store.Collection), fs.Close, nil

	case config.StoreBackendMongo:
		m, err := persistence.NewMongo(ctx, cfg.Store, logger)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() { m.Close(context.Background()) }
		return repository.NewMongoVisitorRepository(m.Collection(cfg.Store.Collection)), closeFn, nil

	case config.StoreBackendPostgres:
		pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, nil, err
		}
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pg.Pool, logger); err != nil {
				pg.Close()
				return nil, nil, err
			}
		}
		return repository.NewPostgresVisitorRepository(pg.Pool, cfg.Store.Collection), pg.Close, nil

	case config.StoreBackendRedis:
		rd := persistence.NewRedis(ctx, cfg.Redis, logger)
		return repository.NewRedisVisitorRepository(rd.Client, cfg.Store.Collection), rd.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}
