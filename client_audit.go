package iacrm

import (
	"context"
	"time"
)

// Audit event types emitted by the client. Sinks can filter on these to
// route security-relevant events separately from request-flow noise.
const (
	auditEventLoginSuccess     = "login_success"
	auditEventLoginFailure     = "login_failure"
	auditEventRefreshTriggered = "refresh_triggered"
	auditEventRefreshSuccess   = "refresh_success"
	auditEventRefreshFailure   = "refresh_failure"
	auditEventRequestQueued    = "request_queued"
	auditEventRequestReplayed  = "request_replayed"
	auditEventLogout           = "logout"
)

// emitAudit hands one event to the async dispatcher. The metadata closure
// is only invoked when auditing is enabled, so callers can build maps
// without paying for them on the disabled path.
func (c *Client) emitAudit(ctx context.Context, eventType string, success bool, cause error, metadata func() map[string]string) {
	if c == nil || c.audit == nil {
		return
	}

	event := AuditEvent{
		Timestamp: time.Now().UTC(),
		EventType: eventType,
		RequestID: requestIDFromContext(ctx),
		Success:   success,
	}
	if cause != nil {
		event.Error = cause.Error()
	}
	if metadata != nil {
		event.Metadata = metadata()
	}

	c.audit.Emit(ctx, event)
}
