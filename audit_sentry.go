package iacrm

import (
	"context"

	sentry "github.com/getsentry/sentry-go"
)

// SentrySink is an [AuditSink] that forwards failed events to Sentry.
// Successful events are skipped; only refresh failures, login failures, and
// session terminations are worth an alert.
type SentrySink struct {
	hub *sentry.Hub
}

// NewSentrySink creates a [SentrySink] using the given hub, or the current
// global hub when nil.
func NewSentrySink(hub *sentry.Hub) *SentrySink {
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	return &SentrySink{hub: hub}
}

// Emit describes the emit operation and its observable behavior.
//
// Emit may return an error when input validation, dependency calls, or security checks fail.
// Emit does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *SentrySink) Emit(_ context.Context, event AuditEvent) {
	if s == nil || s.hub == nil || event.Success {
		return
	}

	s.hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("event_type", event.EventType)
		if event.RequestID != "" {
			scope.SetTag("request_id", event.RequestID)
		}
		for k, v := range event.Metadata {
			scope.SetExtra(k, v)
		}
		msg := event.EventType
		if event.Error != "" {
			msg = event.EventType + ": " + event.Error
		}
		s.hub.CaptureMessage(msg)
	})
}
