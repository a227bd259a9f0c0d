package repository

import (
	"context"
	"errors"

	"github.com/adagio/visitor-lookup/internal/domain"
)

// ErrNotFound is returned when no document matches the user id.
var ErrNotFound = errors.New("visitor record not found")

// VisitorRepository defines read access to visitor records.
type VisitorRepository interface {
	// FindByUserID returns the first document whose user_id equals userID.
	FindByUserID(ctx context.Context, userID string) (*domain.VisitorRecord, error)
	// Ping checks that the backing store is reachable.
	Ping(ctx context.Context) error
}

// recordFromDocument maps a schema-less document onto a VisitorRecord.
// A missing or non-string visitor_id yields an empty VisitorID.
func recordFromDocument(userID string, doc map[string]any) *domain.VisitorRecord {
	record := &domain.VisitorRecord{UserID: userID}
	if v, ok := doc[domain.FieldVisitorID].(string); ok {
		record.VisitorID = v
	}
	return record
}
