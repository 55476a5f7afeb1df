package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/erp_ledger/internal/apperrors"
	"github.com/SscSPs/erp_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/erp_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/erp_ledger/internal/core/ports/services"
)

const (
	defaultActivityPageSize = 50
	maxActivityPageSize     = 500
	activitySummaryWindow   = 24 * time.Hour
)

type activityLogService struct {
	BaseService
	repo portsrepo.ActivityLogRepository
}

// NewActivityLogService creates the audit trail service.
func NewActivityLogService(repo portsrepo.ActivityLogRepository, options ...Option) portssvc.ActivityLogSvcFacade {
	svc := &activityLogService{repo: repo}
	applyOptions(&svc.BaseService, options)
	return svc
}

var _ portssvc.ActivityLogSvcFacade = (*activityLogService)(nil)

func (s *activityLogService) LogActivity(ctx context.Context, activity domain.ActivityLog) (*domain.ActivityLog, error) {
	activity.Action = strings.ToUpper(strings.TrimSpace(activity.Action))
	activity.EntityType = strings.TrimSpace(activity.EntityType)
	if activity.Action == "" || activity.EntityType == "" {
		return nil, fmt.Errorf("%w: activity requires an action and an entity type", apperrors.ErrValidation)
	}
	activity.ApplyDefaults(s.CurrentTime())

	if err := s.repo.SaveActivity(ctx, &activity); err != nil {
		return nil, fmt.Errorf("failed to save activity: %w", err)
	}

	s.LogDebug(ctx, "Activity recorded",
		slog.Int("activity_id", activity.ActivityID),
		slog.String("action", activity.Action),
		slog.String("entity_type", activity.EntityType))
	return &activity, nil
}

func (s *activityLogService) GetActivityByID(ctx context.Context, activityID int) (*domain.ActivityLog, error) {
	activity, err := s.repo.FindActivityByID(ctx, activityID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find activity", slog.Int("activity_id", activityID))
		}
		return nil, err
	}
	return activity, nil
}

func (s *activityLogService) ListActivities(ctx context.Context, filter domain.ActivityFilter) ([]domain.ActivityLog, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultActivityPageSize
	}
	if filter.Limit > maxActivityPageSize {
		filter.Limit = maxActivityPageSize
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, fmt.Errorf("%w: from date is after to date", apperrors.ErrValidation)
	}

	activities, err := s.repo.ListActivities(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list activities")
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	if activities == nil {
		return []domain.ActivityLog{}, nil
	}
	return activities, nil
}

func (s *activityLogService) Summary(ctx context.Context) (*domain.ActivitySummary, error) {
	since := s.CurrentTime().Add(-activitySummaryWindow)
	summary, err := s.repo.SummarizeActivities(ctx, since, domain.RecentActivityCount)
	if err != nil {
		s.LogError(ctx, err, "Failed to summarize activities")
		return nil, fmt.Errorf("failed to summarize activities: %w", err)
	}
	if summary.ActionCounts == nil {
		summary.ActionCounts = map[string]int{}
	}
	if summary.EntityTypeCounts == nil {
		summary.EntityTypeCounts = map[string]int{}
	}
	if summary.RecentActivity == nil {
		summary.RecentActivity = []domain.ActivityLog{}
	}
	return summary, nil
}
