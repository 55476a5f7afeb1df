package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/erp_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/erp_ledger/internal/core/ports/services"
	"github.com/SscSPs/erp_ledger/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	ActivityLogger portssvc.ActivityLogSvcFacade
	Now            func() time.Time
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// CurrentTime returns the service clock in UTC.
func (s *BaseService) CurrentTime() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// RecordActivity writes an audit record for a completed mutation. A failure is
// logged and otherwise ignored: the mutation has already been committed.
func (s *BaseService) RecordActivity(ctx context.Context, actor domain.Actor, activity domain.ActivityLog) {
	if s.ActivityLogger == nil {
		return
	}
	activity.UserID = actor.UserID
	activity.Username = actor.Username
	activity.IPAddress = actor.IPAddress
	activity.UserAgent = actor.UserAgent
	if _, err := s.ActivityLogger.LogActivity(ctx, activity); err != nil {
		s.LogError(ctx, err, "Failed to record activity",
			slog.String("action", activity.Action),
			slog.String("entity_type", activity.EntityType),
			slog.String("entity_id", activity.EntityID))
	}
}
