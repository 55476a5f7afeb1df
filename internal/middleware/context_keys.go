package middleware

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/erp_ledger/internal/core/domain"
)

// contextKey is used for values stored in the request context.
// Using a custom type prevents collisions.
type contextKey string

const (
	userIDKey    = contextKey("userID")
	usernameKey  = contextKey("username")
	loggerCtxKey = contextKey("logger")
)

// GetUserIDFromContext retrieves the authenticated user ID from the request context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, ok := c.Request.Context().Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

// ActorFromContext describes the caller for audit purposes. Unauthenticated
// requests are attributed to the system user.
func ActorFromContext(c *gin.Context) domain.Actor {
	actor := domain.SystemActor
	if userID, ok := GetUserIDFromContext(c); ok {
		actor.UserID = userID
		actor.Username, _ = c.Request.Context().Value(usernameKey).(string)
	}
	actor.IPAddress = c.ClientIP()
	actor.UserAgent = c.Request.UserAgent()
	return actor
}

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerCtxKey, logger)
}

// GetLoggerFromCtx retrieves the request-scoped logger from a standard context.
// It falls back to the default logger when the logging middleware did not run,
// e.g. during startup seeding or in tests.
func GetLoggerFromCtx(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return slog.Default()
	}
	if logger, ok := ctx.Value(loggerCtxKey).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}
