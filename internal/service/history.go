package service

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"gigahouse/internal/models"
	"gigahouse/internal/store"
)

// HistoryService subscribes to the full event-log collection and keeps a
// decoded, reverse-chronological view. Entries missing a description or
// timestamp are skipped silently, not reported as errors.
type HistoryService struct {
	store store.Store

	mu   sync.RWMutex
	view []models.HistoryEntry
	stop func()
}

func NewHistoryService(st store.Store) *HistoryService {
	return &HistoryService{store: st}
}

// Start establishes the log subscription; it is held until Stop.
func (s *HistoryService) Start(_ context.Context) error {
	stop, err := s.store.Subscribe(store.PathHistory, store.Listener{
		OnChange: s.apply,
		// On cancellation the last decoded view stays in place.
	})
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.stop = stop
	s.mu.Unlock()
	return nil
}

func (s *HistoryService) Stop() {
	s.mu.Lock()
	stop := s.stop
	s.stop = nil
	s.mu.Unlock()
	if stop != nil {
		stop()
	}
}

// List returns the cached view, or reads through to the store when no
// subscription has been started.
func (s *HistoryService) List(ctx context.Context) ([]models.HistoryEntry, error) {
	s.mu.RLock()
	subscribed := s.stop != nil
	view := s.view
	s.mu.RUnlock()
	if subscribed {
		return append([]models.HistoryEntry(nil), view...), nil
	}

	snap, err := s.store.List(ctx, store.PathHistory)
	if err != nil {
		return nil, err
	}
	return decodeHistory(snap), nil
}

// Append writes a new immutable entry under a store-assigned key with the
// zero-padded timestamp layout the descending sort relies on.
func (s *HistoryService) Append(ctx context.Context, event string) error {
	entry := models.HistoryEntry{
		Event:     event,
		Timestamp: time.Now().UTC().Format(models.HistoryTimestampLayout),
	}
	raw, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, store.Join(store.PathHistory, uuid.NewString()), string(raw))
}

func (s *HistoryService) apply(snap store.Snapshot) {
	view := decodeHistory(snap)
	s.mu.Lock()
	s.view = view
	s.mu.Unlock()
}

// decodeHistory decodes every child record, discards invalid ones, and orders
// by timestamp descending. The comparison is lexicographic over the fixed
// zero-padded format, not date-aware.
func decodeHistory(snap store.Snapshot) []models.HistoryEntry {
	out := make([]models.HistoryEntry, 0, len(snap))
	for id, raw := range snap {
		if id == "" {
			continue
		}
		var e models.HistoryEntry
		if err := json.Unmarshal([]byte(raw), &e); err != nil {
			continue // malformed record, skip
		}
		e.ID = id
		if !e.Valid() {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp > out[j].Timestamp
	})
	return out
}
