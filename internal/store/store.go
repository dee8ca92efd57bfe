package store

import (
	"context"
	"errors"
	"strconv"
	"strings"
)

// Root paths of the remote state tree.
const (
	PathStateTree = "estado_leds"
	PathSchedules = "programacion"
	PathHistory   = "historial"
)

// ErrClosed is passed to OnCancel handlers when the store shuts down while
// subscriptions are still held.
var ErrClosed = errors.New("store closed")

// Snapshot is the subtree below a subscribed or listed path, keyed by the path
// relative to that root ("" addresses the root value itself). Values are raw
// JSON.
type Snapshot map[string]string

// Listener receives change notifications for one subscription. OnChange fires
// once with the current snapshot on subscribe and again after every write at or
// below the subscribed path. OnCancel, if set, fires when the subscription ends
// abnormally; the subscriber is expected to keep its last-known values.
type Listener struct {
	OnChange func(Snapshot)
	OnCancel func(error)
}

// Store is a key-addressable tree of device state. The last write to a path
// wins; there are no transactions across paths and readers must treat values as
// eventually consistent.
type Store interface {
	// Get returns the raw value at path and whether it exists.
	Get(ctx context.Context, path string) (string, bool, error)
	// Set overwrites the value at path and notifies matching subscriptions.
	Set(ctx context.Context, path, raw string) error
	// List returns the subtree at prefix.
	List(ctx context.Context, prefix string) (Snapshot, error)
	// Subscribe registers a listener for changes at or below path. The returned
	// disposer must be invoked when the owning scope ends.
	Subscribe(path string, l Listener) (func(), error)
	// Close cancels all subscriptions and releases resources.
	Close() error
}

// Join builds a tree path from segments.
func Join(parts ...string) string {
	return strings.Join(parts, "/")
}

// Int decodes a raw integer value. Missing or malformed values decode to 0.
func Int(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return n
}

// Float decodes a raw float value, defaulting to 0 on malformed input.
func Float(raw string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return f
}

// FormatInt encodes an integer for storage.
func FormatInt(n int) string {
	return strconv.Itoa(n)
}
