package iacrm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Nickdtt/ia-crm/credential"
	"github.com/Nickdtt/ia-crm/internal/crmtest"
)

func TestLogoutClearsCredentialsAndSignalsOnce(t *testing.T) {
	srv := crmtest.New()
	defer srv.Close()
	client, store, done := newTestClient(t, srv)
	defer done()

	ctx := context.Background()
	if err := client.Login(ctx, crmtest.Email, crmtest.Password); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	events, cancel := client.OnLogout()
	defer cancel()

	if err := client.Logout(ctx); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if _, err := store.Load(ctx); !errors.Is(err, credential.ErrNoCredentials) {
		t.Fatalf("expected cleared store, got %v", err)
	}

	select {
	case ev := <-events:
		if ev.Reason != LogoutRequested {
			t.Fatalf("expected reason %q, got %q", LogoutRequested, ev.Reason)
		}
		if ev.At.IsZero() {
			t.Fatal("expected event timestamp")
		}
	case <-time.After(time.Second):
		t.Fatal("expected a logout signal")
	}

	// Second logout in the logged-out state is a no-op.
	if err := client.Logout(ctx); err != nil {
		t.Fatalf("repeat Logout failed: %v", err)
	}
	select {
	case <-events:
		t.Fatal("expected exactly one logout signal")
	default:
	}

	if got := client.MetricsSnapshot().Counters[MetricLogout]; got != 1 {
		t.Fatalf("expected 1 logout, got %d", got)
	}
}

func TestLoginRearmsLogoutSignal(t *testing.T) {
	srv := crmtest.New()
	defer srv.Close()
	client, _, done := newTestClient(t, srv)
	defer done()

	ctx := context.Background()
	events, cancel := client.OnLogout()
	defer cancel()

	for i := 0; i < 2; i++ {
		if err := client.Login(ctx, crmtest.Email, crmtest.Password); err != nil {
			t.Fatalf("Login failed: %v", err)
		}
		if err := client.Logout(ctx); err != nil {
			t.Fatalf("Logout failed: %v", err)
		}

		select {
		case ev := <-events:
			if ev.Reason != LogoutRequested {
				t.Fatalf("expected reason %q, got %q", LogoutRequested, ev.Reason)
			}
		case <-time.After(time.Second):
			t.Fatalf("expected logout signal on cycle %d", i)
		}
	}
}

func TestUnsubscribedChannelReceivesNothing(t *testing.T) {
	srv := crmtest.New()
	defer srv.Close()
	client, _, done := newTestClient(t, srv)
	defer done()

	ctx := context.Background()
	if err := client.Login(ctx, crmtest.Email, crmtest.Password); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	events, cancel := client.OnLogout()
	cancel()

	if err := client.Logout(ctx); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}

	select {
	case <-events:
		t.Fatal("expected no signal after unsubscribe")
	default:
	}
}
