package events

import (
	"context"
	"log/slog"

	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/platform/metrics"
	"github.com/phrazzld/taskboard-api/internal/redact"
)

// AuditHandler writes account events to the structured log and counts them.
type AuditHandler struct {
	logger *slog.Logger
}

var _ EventHandler = (*AuditHandler)(nil)

// NewAuditHandler creates an AuditHandler. A nil logger uses slog.Default.
func NewAuditHandler(log *slog.Logger) *AuditHandler {
	if log == nil {
		log = slog.Default()
	}
	return &AuditHandler{logger: log.With("component", "audit")}
}

// HandleEvent implements EventHandler.
func (h *AuditHandler) HandleEvent(ctx context.Context, event *AccountEvent) error {
	metrics.RecordAccountEvent(event.Type)

	attrs := []any{
		"event_id", event.ID,
		"event_type", event.Type,
		"user_id", event.UserID,
		"email", redact.String(event.Email),
	}
	for k, v := range event.Detail {
		attrs = append(attrs, k, v)
	}

	log := logger.FromContextOrDefault(ctx, h.logger)
	level := slog.LevelInfo
	if event.Type == AccountLoginFailed {
		level = slog.LevelWarn
	}
	log.Log(ctx, level, "account event", attrs...)
	return nil
}
