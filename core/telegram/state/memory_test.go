package state

import (
	"context"
	"testing"
	"time"
)

func TestMemoryManagerLifecycle(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryManager(0)

	if got := m.GetState(ctx, 1); got != StateIdle {
		t.Fatalf("fresh user state = %q, want idle", got)
	}

	const waiting State = "awaiting_contact"
	if err := m.SetState(ctx, 1, waiting); err != nil {
		t.Fatal(err)
	}
	if got := m.GetState(ctx, 1); got != waiting {
		t.Fatalf("state = %q, want %q", got, waiting)
	}
	if got := m.GetState(ctx, 2); got != StateIdle {
		t.Fatalf("other user state = %q, want idle", got)
	}

	if err := m.ClearState(ctx, 1); err != nil {
		t.Fatal(err)
	}
	if got := m.GetState(ctx, 1); got != StateIdle {
		t.Fatalf("cleared state = %q, want idle", got)
	}
}

func TestMemoryManagerSetIdleClears(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryManager(0)

	if err := m.SetState(ctx, 5, "awaiting_contact"); err != nil {
		t.Fatal(err)
	}
	if err := m.SetState(ctx, 5, StateIdle); err != nil {
		t.Fatal(err)
	}
	if got := m.GetState(ctx, 5); got != StateIdle {
		t.Fatalf("state = %q, want idle", got)
	}
}

func TestMemoryManagerTTLExpiry(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryManager(10 * time.Millisecond)

	if err := m.SetState(ctx, 9, "awaiting_contact"); err != nil {
		t.Fatal(err)
	}
	time.Sleep(25 * time.Millisecond)
	if got := m.GetState(ctx, 9); got != StateIdle {
		t.Fatalf("expired state = %q, want idle", got)
	}
}
