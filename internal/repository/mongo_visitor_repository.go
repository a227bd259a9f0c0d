package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/adagio/visitor-lookup/internal/domain"
)

type mongoVisitorRepository struct {
	coll *mongo.Collection
}

// NewMongoVisitorRepository returns a MongoDB-backed implementation.
func NewMongoVisitorRepository(coll *mongo.Collection) VisitorRepository {
	return &mongoVisitorRepository{coll: coll}
}

func (r *mongoVisitorRepository) FindByUserID(ctx context.Context, userID string) (*domain.VisitorRecord, error) {
	var doc bson.M
	err := r.coll.FindOne(ctx, bson.D{{Key: domain.FieldUserID, Value: userID}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return recordFromDocument(userID, doc), nil
}

func (r *mongoVisitorRepository) Ping(ctx context.Context) error {
	return r.coll.Database().Client().Ping(ctx, readpref.PrimaryPreferred())
}
