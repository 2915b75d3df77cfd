// Package observability provides logging, metrics, and tracing.
package observability

import (
	"context"
	"log/slog"
	"os"

	"github.com/google/uuid"
)

// Logger wraps slog.Logger to provide specialized logging methods.
type Logger struct {
	*slog.Logger
}

// GlobalLogger is the default logger instance for the application.
var GlobalLogger *Logger

func init() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	GlobalLogger = &Logger{Logger: slog.New(handler)}
}

// SetGlobalLogger replaces the default logger. Passing nil is a no-op.
func SetGlobalLogger(l *slog.Logger) {
	if l == nil {
		return
	}
	GlobalLogger = &Logger{Logger: l}
}

// LogContextKey is a type for context keys used by the logging package.
type LogContextKey string

// CorrelationID is the context key carrying a request's correlation ID.
const CorrelationID LogContextKey = "correlation_id"

// LoggingConfig defines which types of automated logging are enabled.
type LoggingConfig struct {
	EnableCorrelationID bool
	EnableRepoLogging   bool
	EnableGroupLogging  bool
}

// Config holds the current logging configuration.
var Config = LoggingConfig{
	EnableCorrelationID: true,
	EnableRepoLogging:   true,
	EnableGroupLogging:  true,
}

// GenerateCorrelationID creates a new unique correlation ID.
func GenerateCorrelationID() string {
	return uuid.NewString()
}

// WithCorrelationID returns a new context with the given correlation ID.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, CorrelationID, id)
}

// ExtractCorrelationID retrieves the correlation ID from the context.
func ExtractCorrelationID(ctx context.Context) string {
	if id, ok := ctx.Value(CorrelationID).(string); ok {
		return id
	}
	return ""
}

func withFields(attrs []any, fields map[string]interface{}) []any {
	for k, v := range fields {
		attrs = append(attrs, slog.Any(k, v))
	}
	return attrs
}

// RepoLogger provides structured logging for repository operations.
type RepoLogger struct {
	tableName string
	logger    *Logger
}

// NewRepoLogger creates a new RepoLogger for the given table.
func NewRepoLogger(tableName string) *RepoLogger {
	return &RepoLogger{
		tableName: tableName,
		logger:    GlobalLogger,
	}
}

func (l *RepoLogger) log(ctx context.Context, operation string, fields map[string]interface{}) {
	if !Config.EnableRepoLogging {
		return
	}
	attrs := []any{
		slog.String("table", l.tableName),
		slog.String("operation", operation),
		slog.String("correlation_id", ExtractCorrelationID(ctx)),
	}
	l.logger.DebugContext(ctx, "repository "+operation, withFields(attrs, fields)...)
}

// LogCreate logs a repository create operation.
func (l *RepoLogger) LogCreate(ctx context.Context, fields map[string]interface{}) {
	l.log(ctx, "create", fields)
}

// LogUpdate logs a repository update operation.
func (l *RepoLogger) LogUpdate(ctx context.Context, fields map[string]interface{}) {
	l.log(ctx, "update", fields)
}

// LogDelete logs a repository delete operation.
func (l *RepoLogger) LogDelete(ctx context.Context, fields map[string]interface{}) {
	l.log(ctx, "delete", fields)
}

// LogError logs a repository error.
func (l *RepoLogger) LogError(ctx context.Context, err error, operation string) {
	if !Config.EnableRepoLogging {
		return
	}
	l.logger.ErrorContext(ctx, "repository error",
		slog.String("table", l.tableName),
		slog.String("operation", operation),
		slog.String("correlation_id", ExtractCorrelationID(ctx)),
		slog.String("error", err.Error()),
	)
}

// GroupLogger logs group lifecycle, membership, and messaging events.
type GroupLogger struct {
	component string
	logger    *Logger
}

// NewGroupLogger creates a GroupLogger tagged with the given component.
func NewGroupLogger(component string) *GroupLogger {
	return &GroupLogger{
		component: component,
		logger:    GlobalLogger,
	}
}

// LogEvent logs a committed state change on a group.
func (l *GroupLogger) LogEvent(ctx context.Context, groupID uint, event string, fields map[string]interface{}) {
	if !Config.EnableGroupLogging {
		return
	}
	attrs := []any{
		slog.String("component", l.component),
		slog.Uint64("group_id", uint64(groupID)),
		slog.String("event", event),
		slog.String("correlation_id", ExtractCorrelationID(ctx)),
	}
	l.logger.InfoContext(ctx, "group event", withFields(attrs, fields)...)
}

// LogDenied logs an operation rejected by a rule, not by a fault.
func (l *GroupLogger) LogDenied(ctx context.Context, groupID, actorID uint, op string, code string) {
	if !Config.EnableGroupLogging {
		return
	}
	l.logger.InfoContext(ctx, "group operation rejected",
		slog.String("component", l.component),
		slog.Uint64("group_id", uint64(groupID)),
		slog.Uint64("actor_id", uint64(actorID)),
		slog.String("op", op),
		slog.String("code", code),
		slog.String("correlation_id", ExtractCorrelationID(ctx)),
	)
}

// LogError logs an unexpected failure.
func (l *GroupLogger) LogError(ctx context.Context, groupID uint, op string, err error) {
	l.logger.ErrorContext(ctx, "group operation failed",
		slog.String("component", l.component),
		slog.Uint64("group_id", uint64(groupID)),
		slog.String("op", op),
		slog.String("error", err.Error()),
		slog.String("correlation_id", ExtractCorrelationID(ctx)),
	)
}

// LogAsyncOperationError logs an error in a best-effort background operation.
func LogAsyncOperationError(ctx context.Context, operation string, err error, fields map[string]interface{}) {
	attrs := []any{
		slog.String("operation", operation),
		slog.String("type", "async_error"),
		slog.String("error", err.Error()),
		slog.String("correlation_id", ExtractCorrelationID(ctx)),
	}
	GlobalLogger.WarnContext(ctx, "async operation failed", withFields(attrs, fields)...)
}
