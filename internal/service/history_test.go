package service

import (
	"context"
	"testing"

	"gigahouse/internal/store"
)

func seedHistory(t *testing.T, mem *store.Memory, id, raw string) {
	t.Helper()
	if err := mem.Set(context.Background(), store.Join(store.PathHistory, id), raw); err != nil {
		t.Fatalf("seed %s: %v", id, err)
	}
}

func TestHistoryService_List_SkipsInvalidAndSortsDescending(t *testing.T) {
	mem := store.NewMemory()
	seedHistory(t, mem, "a", `{"evento":"Luz encendida","timestamp":"2024-01-01T10:00"}`)
	seedHistory(t, mem, "b", `{"evento":"Luz apagada","timestamp":"2024-01-02T09:00"}`)
	seedHistory(t, mem, "c", `{"evento":"","timestamp":"2024-01-03T00:00"}`) // no description
	seedHistory(t, mem, "d", `{"evento":"sin fecha"}`)                       // no timestamp
	seedHistory(t, mem, "e", `not json at all`)                              // malformed

	svc := NewHistoryService(mem)
	entries, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("entries = %d, want invalid ones skipped silently", len(entries))
	}
	if entries[0].ID != "b" || entries[1].ID != "a" {
		t.Fatalf("order = [%s %s], want newest first", entries[0].ID, entries[1].ID)
	}
}

func TestHistoryService_SubscriptionKeepsViewCurrent(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	seedHistory(t, mem, "a", `{"evento":"uno","timestamp":"2024-01-01T10:00"}`)

	svc := NewHistoryService(mem)
	if err := svc.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer svc.Stop()

	entries, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("initial view = %d entries", len(entries))
	}

	seedHistory(t, mem, "b", `{"evento":"dos","timestamp":"2024-01-02T10:00"}`)

	entries, err = svc.List(ctx)
	if err != nil {
		t.Fatalf("List after append: %v", err)
	}
	if len(entries) != 2 || entries[0].Event != "dos" {
		t.Fatalf("view after append = %+v", entries)
	}
}

func TestHistoryService_AppendWritesOrderableTimestamps(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	svc := NewHistoryService(mem)

	if err := svc.Append(ctx, "primero"); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := svc.Append(ctx, "segundo"); err != nil {
		t.Fatalf("Append: %v", err)
	}

	entries, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d", len(entries))
	}
	for _, e := range entries {
		if e.ID == "" {
			t.Fatal("entries must carry their store-assigned key")
		}
		if !e.Valid() {
			t.Fatalf("appended entry invalid: %+v", e)
		}
	}
	// Equal-second timestamps keep both entries; order between them is stable.
	if entries[0].Timestamp < entries[1].Timestamp {
		t.Fatalf("order = %q before %q", entries[0].Timestamp, entries[1].Timestamp)
	}
}
