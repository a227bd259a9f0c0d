package repository

import (
	"context"
	"errors"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/adagio/visitor-lookup/internal/domain"
)

type firestoreVisitorRepository struct {
	client     *firestore.Client
	collection string
}

// NewFirestoreVisitorRepository returns a Firestore-backed implementation.
func NewFirestoreVisitorRepository(client *firestore.Client, collection string) VisitorRepository {
	return &firestoreVisitorRepository{client: client, collection: collection}
}

func (r *firestoreVisitorRepository) FindByUserID(ctx context.Context, userID string) (*domain.VisitorRecord, error) {
	iter := r.client.Collection(r.collection).
		Where(domain.FieldUserID, "==", userID).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if errors.Is(err, iterator.Done) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return recordFromDocument(userID, doc.Data()), nil
}

func (r *firestoreVisitorRepository) Ping(ctx context.Context) error {
	iter := r.client.Collection(r.collection).Limit(1).Documents(ctx)
	defer iter.Stop()

	if _, err := iter.Next(); err != nil && !errors.Is(err, iterator.Done) {
		return err
	}
	return nil
}
