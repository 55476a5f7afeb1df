package repositories

//go:generate mockgen -source=activity_repositories.go -destination=mocks/mock_activity_repository.go -package=mocks

import (
	"context"
	"time"

	"github.com/SscSPs/erp_ledger/internal/core/domain"
)

// ActivityLogRepository persists the audit trail.
type ActivityLogRepository interface {
	// SaveActivity appends a record and assigns its ID.
	SaveActivity(ctx context.Context, activity *domain.ActivityLog) error

	// FindActivityByID retrieves a single record.
	FindActivityByID(ctx context.Context, activityID int) (*domain.ActivityLog, error)

	// ListActivities returns matching records, newest first.
	ListActivities(ctx context.Context, filter domain.ActivityFilter) ([]domain.ActivityLog, error)

	// SummarizeActivities counts all records, those at or after since, and
	// groups them by action, entity type and username. Ties for the most
	// active user go to the lowest username. The recent newest records are
	// included.
	SummarizeActivities(ctx context.Context, since time.Time, recent int) (*domain.ActivitySummary, error)
}
