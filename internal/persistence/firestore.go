package persistence

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"

	"github.com/adagio/visitor-lookup/internal/config"
)

// Firestore wraps a Cloud Firestore client.
type Firestore struct {
	Client *firestore.Client
}

// NewFirestore opens a client for the configured project and database.
// Credentials come from the ambient Google application default credentials.
func NewFirestore(ctx context.Context, cfg config.StoreConfig, logger *zap.Logger) (*Firestore, error) {
	client, err := firestore.NewClientWithDatabase(ctx, cfg.ProjectID, cfg.DatabaseID)
	if err != nil {
		return nil, fmt.Errorf("create firestore client: %w", err)
	}

	logger.Info("firestore client ready",
		zap.String("project", cfg.ProjectID),
		zap.String("database", cfg.DatabaseID),
	)
	return &Firestore{Client: client}, nil
}

// Close releases the client.
func (f *Firestore) Close() {
	if f != nil && f.Client != nil {
		_ = f.Client.Close()
	}
}
