package iacrm

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Nickdtt/ia-crm/internal/crmtest"
)

type countingSink struct {
	count atomic.Int64
}

func (s *countingSink) Emit(context.Context, AuditEvent) {
	s.count.Add(1)
}

func (s *countingSink) Count() int64 {
	return s.count.Load()
}

type captureSink struct {
	events chan AuditEvent
}

func newCaptureSink(buffer int) *captureSink {
	if buffer <= 0 {
		buffer = 1
	}
	return &captureSink{
		events: make(chan AuditEvent, buffer),
	}
}

func (s *captureSink) Emit(ctx context.Context, event AuditEvent) {
	select {
	case s.events <- event:
	case <-ctx.Done():
	}
}

type gateSink struct {
	gate chan struct{}
}

func newGateSink() *gateSink {
	return &gateSink{
		gate: make(chan struct{}),
	}
}

func (s *gateSink) Emit(context.Context, AuditEvent) {
	<-s.gate
}

func TestAuditDisabledNoSinkCalls(t *testing.T) {
	srv := crmtest.New()
	defer srv.Close()

	sink := &countingSink{}
	b := New(srv.URL()).WithAuditSink(sink)
	b.config.Audit.Enabled = false
	client, err := b.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer client.Close()

	_ = client.Login(context.Background(), crmtest.Email, "wrong-password")
	time.Sleep(30 * time.Millisecond)

	if sink.Count() != 0 {
		t.Fatalf("expected no audit sink calls when disabled, got %d", sink.Count())
	}
}

func TestAuditLoginEvents(t *testing.T) {
	srv := crmtest.New()
	defer srv.Close()

	sink := newCaptureSink(8)
	client, err := New(srv.URL()).WithAuditSink(sink).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer client.Close()

	_ = client.Login(context.Background(), crmtest.Email, "wrong-password")

	select {
	case ev := <-sink.events:
		if ev.EventType != auditEventLoginFailure {
			t.Fatalf("expected %q, got %q", auditEventLoginFailure, ev.EventType)
		}
		if ev.Success {
			t.Fatal("expected failure event")
		}
		if ev.Error == "" {
			t.Fatal("expected error to be populated")
		}
		if ev.Error == "wrong-password" {
			t.Fatal("sensitive password leaked in error")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("expected audit event to be received")
	}

	if err := client.Login(context.Background(), crmtest.Email, crmtest.Password); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	select {
	case ev := <-sink.events:
		if ev.EventType != auditEventLoginSuccess {
			t.Fatalf("expected %q, got %q", auditEventLoginSuccess, ev.EventType)
		}
		if !ev.Success {
			t.Fatal("expected success event")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("expected audit event to be received")
	}
}

func TestAuditRefreshCycleEventsCarryRequestID(t *testing.T) {
	srv := crmtest.New()
	defer srv.Close()

	sink := newCaptureSink(16)
	client, err := New(srv.URL()).WithAuditSink(sink).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer client.Close()

	store := client.store
	seedExpired(t, srv, store)

	if status, _ := ping(t, client); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	client.Close()

	want := map[string]bool{
		auditEventRefreshTriggered: false,
		auditEventRefreshSuccess:   false,
		auditEventRequestReplayed:  false,
	}
	requestIDs := make(map[string]bool)
	for {
		select {
		case ev := <-sink.events:
			if _, ok := want[ev.EventType]; ok {
				want[ev.EventType] = true
				if ev.RequestID == "" {
					t.Fatalf("expected request id on %q", ev.EventType)
				}
				requestIDs[ev.RequestID] = true
			}
		default:
			for eventType, seen := range want {
				if !seen {
					t.Fatalf("missing audit event %q", eventType)
				}
			}
			if len(requestIDs) != 1 {
				t.Fatalf("expected one correlating request id, got %d", len(requestIDs))
			}
			return
		}
	}
}

func TestAuditBufferFullDropIfFullTrueDoesNotBlock(t *testing.T) {
	sink := newGateSink()
	dispatcher := newAuditDispatcher(AuditConfig{
		Enabled:    true,
		BufferSize: 1,
		DropIfFull: true,
	}, sink)
	defer func() {
		close(sink.gate)
		dispatcher.Close()
	}()

	dispatcher.Emit(context.Background(), AuditEvent{EventType: "e1"})
	dispatcher.Emit(context.Background(), AuditEvent{EventType: "e2"})

	start := time.Now()
	dispatcher.Emit(context.Background(), AuditEvent{EventType: "e3"})
	if time.Since(start) > 100*time.Millisecond {
		t.Fatal("expected non-blocking emit when DropIfFull is true")
	}
	if dispatcher.Dropped() == 0 {
		t.Fatal("expected dropped counter to increase")
	}
}

func TestAuditCloseDrainsBufferedEvents(t *testing.T) {
	sink := &countingSink{}
	dispatcher := newAuditDispatcher(AuditConfig{
		Enabled:    true,
		BufferSize: 32,
		DropIfFull: true,
	}, sink)

	const events = 20
	for i := 0; i < events; i++ {
		dispatcher.Emit(context.Background(), AuditEvent{EventType: "e"})
	}
	dispatcher.Close()

	if got := sink.Count(); got != events {
		t.Fatalf("expected %d drained events, got %d", events, got)
	}
}

func TestJSONWriterSinkEncodesEvents(t *testing.T) {
	var buf bytes.Buffer
	sink := NewJSONWriterSink(&buf)

	sink.Emit(context.Background(), AuditEvent{
		Timestamp: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		EventType: "logout",
		RequestID: "req-1",
		Success:   true,
		Metadata:  map[string]string{"reason": "user_requested"},
	})

	var decoded AuditEvent
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if decoded.EventType != "logout" || decoded.RequestID != "req-1" {
		t.Fatalf("unexpected event %+v", decoded)
	}
	if decoded.Metadata["reason"] != "user_requested" {
		t.Fatal("expected metadata to round-trip")
	}
}
