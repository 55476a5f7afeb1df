package services

import (
	"time"

	portssvc "github.com/SscSPs/erp_ledger/internal/core/ports/services"
)

// Option configures the shared parts of a service.
type Option func(*BaseService)

// WithActivityLogger records mutations in the activity log.
func WithActivityLogger(logger portssvc.ActivityLogSvcFacade) Option {
	return func(s *BaseService) {
		s.ActivityLogger = logger
	}
}

// WithClock overrides the service clock.
func WithClock(now func() time.Time) Option {
	return func(s *BaseService) {
		s.Now = now
	}
}

func applyOptions(base *BaseService, options []Option) {
	for _, option := range options {
		option(base)
	}
}
