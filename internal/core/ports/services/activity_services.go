package services

import (
	"context"

	"github.com/SscSPs/erp_ledger/internal/core/domain"
)

// ActivityLogSvcFacade records and queries the audit trail.
type ActivityLogSvcFacade interface {
	// LogActivity stores a record, filling in system defaults.
	LogActivity(ctx context.Context, activity domain.ActivityLog) (*domain.ActivityLog, error)

	// GetActivityByID retrieves a single record.
	GetActivityByID(ctx context.Context, activityID int) (*domain.ActivityLog, error)

	// ListActivities returns matching records, newest first.
	ListActivities(ctx context.Context, filter domain.ActivityFilter) ([]domain.ActivityLog, error)

	// Summary counts the whole trail, the last 24 hours, and groups by
	// action, entity type and user.
	Summary(ctx context.Context) (*domain.ActivitySummary, error)
}
