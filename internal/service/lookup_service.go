package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/adagio/visitor-lookup/internal/domain"
	"github.com/adagio/visitor-lookup/internal/observability"
	"github.com/adagio/visitor-lookup/internal/repository"
	apperrors "github.com/adagio/visitor-lookup/pkg/util/errorutil"
)

// Lookup outcomes recorded in metrics.
const (
	OutcomeFound        = "found"
	OutcomeNotFound     = "not_found"
	OutcomeMissingField = "missing_field"
	OutcomeError        = "error"
)

// LookupDependencies encapsulates requirements for the lookup service.
type LookupDependencies struct {
	Visitors repository.VisitorRepository
	Logger   *zap.Logger
	Metrics  *observability.Metrics
	// Clock defaults to time.Now.
	Clock func() time.Time
}

// LookupService resolves user ids to visitor ids.
type LookupService struct {
	visitors repository.VisitorRepository
	logger   *zap.Logger
	metrics  *observability.Metrics
	now      func() time.Time
}

// NewLookupService builds the service.
func NewLookupService(deps LookupDependencies) *LookupService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := deps.Clock
	if now == nil {
		now = time.Now
	}
	return &LookupService{
		visitors: deps.Visitors,
		logger:   logger,
		metrics:  deps.Metrics,
		now:      now,
	}
}

// Lookup returns the visitor record for userID and the UTC time it was found.
func (s *LookupService) Lookup(ctx context.Context, userID string) (*domain.VisitorRecord, time.Time, error) {
	if userID == "" {
		return nil, time.Time{}, apperrors.NewBadRequest("user_id is required")
	}

	s.logger.Info("looking up visitor ID", zap.String("user_id", userID))

	record, err := s.visitors.FindByUserID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		s.metrics.RecordLookup(OutcomeNotFound)
		s.logger.Warn("no visitor ID found", zap.String("user_id", userID))
		return nil, time.Time{}, apperrors.NewNotFound(fmt.Sprintf("No visitor ID found for user_id: %s", userID))
	}
	if err != nil {
		s.metrics.RecordLookup(OutcomeError)
		s.logger.Error("error looking up visitor ID", zap.String("user_id", userID), zap.Error(err))
		return nil, time.Time{}, apperrors.NewInternalError("Internal server error during lookup", err)
	}

	if record.VisitorID == "" {
		s.metrics.RecordLookup(OutcomeMissingField)
		s.logger.Error("visitor ID field missing", zap.String("user_id", userID))
		return nil, time.Time{}, apperrors.NewMissingField("Visitor ID field missing in database record")
	}

	s.metrics.RecordLookup(OutcomeFound)
	s.logger.Info("found visitor ID",
		zap.String("user_id", userID),
		zap.String("visitor_id", record.VisitorID),
	)
	return record, s.now().UTC(), nil
}
