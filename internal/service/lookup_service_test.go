package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/adagio/visitor-lookup/internal/domain"
	"github.com/adagio/visitor-lookup/internal/repository"
	apperrors "github.com/adagio/visitor-lookup/pkg/util/errorutil"
)

type memoryVisitors struct {
	docs  map[string]string
	err   error
	calls int
}

func (m *memoryVisitors) FindByUserID(_ context.Context, userID string) (*domain.VisitorRecord, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	visitorID, ok := m.docs[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &domain.VisitorRecord{UserID: userID, VisitorID: visitorID}, nil
}

func (m *memoryVisitors) Ping(context.Context) error { return m.err }

var fixedNow = time.Date(2024, 3, 5, 10, 30, 0, 0, time.FixedZone("CET", 3600))

func newTestService(visitors repository.VisitorRepository, logger *zap.Logger) *LookupService {
	return NewLookupService(LookupDependencies{
		Visitors: visitors,
		Logger:   logger,
		Clock:    func() time.Time { return fixedNow },
	})
}

func TestLookupFound(t *testing.T) {
	svc := newTestService(&memoryVisitors{docs: map[string]string{"u1": "v1"}}, nil)

	record, foundAt, err := svc.Lookup(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "v1", record.VisitorID)
	assert.Equal(t, "u1", record.UserID)
	assert.Equal(t, time.UTC, foundAt.Location())
	assert.True(t, foundAt.Equal(fixedNow))
}

func TestLookupErrors(t *testing.T) {
	tests := []struct {
		name       string
		visitors   *memoryVisitors
		userID     string
		wantCode   string
		wantStatus int
		wantMsg    string
		wantCalls  int
	}{
		{
			name:       "empty user id",
			visitors:   &memoryVisitors{},
			userID:     "",
			wantCode:   apperrors.CodeBadRequest,
			wantStatus: http.StatusBadRequest,
			wantMsg:    "user_id is required",
		},
		{
			name:       "not found",
			visitors:   &memoryVisitors{docs: map[string]string{"u1": "v1"}},
			userID:     "u2",
			wantCode:   apperrors.CodeNotFound,
			wantStatus: http.StatusNotFound,
			wantMsg:    "No visitor ID found for user_id: u2",
			wantCalls:  1,
		},
		{
			name:       "missing visitor id",
			visitors:   &memoryVisitors{docs: map[string]string{"u3": ""}},
			userID:     "u3",
			wantCode:   apperrors.CodeMissingField,
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "Visitor ID field missing in database record",
			wantCalls:  1,
		},
		{
			name:       "store failure",
			visitors:   &memoryVisitors{err: errors.New("connection refused")},
			userID:     "u1",
			wantCode:   apperrors.CodeInternal,
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "Internal server error during lookup",
			wantCalls:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(tt.visitors, nil)

			record, _, err := svc.Lookup(context.Background(), tt.userID)
			require.Error(t, err)
			assert.Nil(t, record)

			de := apperrors.ToDomainError(err)
			assert.Equal(t, tt.wantCode, de.Code)
			assert.Equal(t, tt.wantStatus, de.HTTPStatus)
			assert.Equal(t, tt.wantMsg, de.Message)
			assert.Equal(t, tt.wantCalls, tt.visitors.calls)
		})
	}
}

func TestLookupLogsUserIDOnFailure(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	svc := newTestService(&memoryVisitors{err: errors.New("deadline exceeded")}, zap.New(core))

	_, _, err := svc.Lookup(context.Background(), "u9")
	require.Error(t, err)

	entries := logs.FilterLevelExact(zapcore.ErrorLevel).All()
	require.Len(t, entries, 1)
	assert.Equal(t, "u9", entries[0].ContextMap()["user_id"])
}
