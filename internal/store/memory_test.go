package store

import (
	"context"
	"errors"
	"testing"
)

func TestMemory_GetSetList(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if _, ok, err := m.Get(ctx, "estado_leds/ledIzqArriba"); err != nil || ok {
		t.Fatalf("Get on empty store: ok=%v err=%v", ok, err)
	}

	if err := m.Set(ctx, "estado_leds/ledIzqArriba", "1"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := m.Set(ctx, "estado_leds/temperaturaActual", "27.5"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := m.Set(ctx, "historial/abc", `{"evento":"x"}`); err != nil {
		t.Fatalf("Set: %v", err)
	}

	raw, ok, err := m.Get(ctx, "estado_leds/ledIzqArriba")
	if err != nil || !ok || raw != "1" {
		t.Fatalf("Get = (%q, %v, %v)", raw, ok, err)
	}

	snap, err := m.List(ctx, "estado_leds")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(snap) != 2 || snap["ledIzqArriba"] != "1" || snap["temperaturaActual"] != "27.5" {
		t.Fatalf("List subtree = %v", snap)
	}
}

func TestMemory_SubscribeFiresInitialAndOnChange(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	if err := m.Set(ctx, "estado_leds/ledIzqArriba", "0"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	var got []Snapshot
	stop, err := m.Subscribe("estado_leds", Listener{
		OnChange: func(s Snapshot) { got = append(got, s) },
	})
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	defer stop()

	if len(got) != 1 || got[0]["ledIzqArriba"] != "0" {
		t.Fatalf("initial snapshot = %v", got)
	}

	if err := m.Set(ctx, "estado_leds/ledIzqArriba", "1"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if len(got) != 2 || got[1]["ledIzqArriba"] != "1" {
		t.Fatalf("change snapshot = %v", got)
	}

	// Writes outside the subscribed subtree do not notify.
	if err := m.Set(ctx, "historial/x", `{}`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("unrelated write notified: %d snapshots", len(got))
	}
}

func TestMemory_DisposerStopsNotifications(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	calls := 0
	stop, err := m.Subscribe("estado_leds", Listener{
		OnChange: func(Snapshot) { calls++ },
	})
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if calls != 1 {
		t.Fatalf("initial notifications = %d", calls)
	}

	stop()
	stop() // idempotent

	if err := m.Set(ctx, "estado_leds/ledIzqArriba", "1"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if calls != 1 {
		t.Fatalf("disposed subscription still notified: %d", calls)
	}
}

func TestMemory_CloseCancelsSubscriptions(t *testing.T) {
	m := NewMemory()

	var cancelErr error
	if _, err := m.Subscribe("estado_leds", Listener{
		OnCancel: func(err error) { cancelErr = err },
	}); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	if err := m.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !errors.Is(cancelErr, ErrClosed) {
		t.Fatalf("OnCancel err = %v, want ErrClosed", cancelErr)
	}
}
