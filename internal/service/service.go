package service

import (
	"context"

	"gigahouse/internal/device"
	"gigahouse/internal/models"
	"gigahouse/internal/store"
)

// Operation modes selected by deployment: cloud keeps device state in the
// shared store, direct talks to the microcontroller over HTTP.
const (
	ModeCloud  = "cloud"
	ModeDirect = "direct"
)

// Dispatcher converts a user intent into a state flip. The returned bool is
// the device's new state; on any failure it is false.
type Dispatcher interface {
	Toggle(ctx context.Context, deviceID string) (bool, error)
}

// Observer republishes remote state changes into a locally cached snapshot.
// Stop disposes the underlying subscription.
type Observer interface {
	Start(ctx context.Context) error
	Stop()
	Snapshot() models.StateSnapshot
	Probe(ctx context.Context) error
}

// Scheduler validates and persists timed-activation rules.
type Scheduler interface {
	Save(ctx context.Context, rule models.ScheduleRule) error
	Get(ctx context.Context, deviceID string) (models.ScheduleRule, bool, error)
}

// History exposes the append-only event log as a reverse-chronological view.
type History interface {
	Start(ctx context.Context) error
	Stop()
	List(ctx context.Context) ([]models.HistoryEntry, error)
	Append(ctx context.Context, event string) error
}

// Service aggregates all sub-services.
type Service struct {
	Dispatcher
	Observer
	Scheduler
	History
}

// Deps carries the injected collaborators. Store is always required; Device is
// required only in direct mode.
type Deps struct {
	Store  store.Store
	Device *device.Client
	Mode   string
}

// NewService wires the store and device client into concrete services.
func NewService(d Deps) *Service {
	history := NewHistoryService(d.Store)

	var (
		dispatcher Dispatcher
		observer   Observer
	)
	switch d.Mode {
	case ModeDirect:
		obs := NewDeviceObserver(d.Device)
		dispatcher = NewDirectToggleService(d.Device, obs)
		observer = obs
	default:
		dispatcher = NewToggleService(d.Store, history)
		observer = NewStoreObserver(d.Store)
	}

	return &Service{
		Dispatcher: dispatcher,
		Observer:   observer,
		Scheduler:  NewSchedulerService(d.Store),
		History:    history,
	}
}

// Start establishes the observer and history subscriptions.
func (s *Service) Start(ctx context.Context) error {
	if err := s.Observer.Start(ctx); err != nil {
		return err
	}
	return s.History.Start(ctx)
}

// Close disposes all held subscriptions.
func (s *Service) Close() {
	s.Observer.Stop()
	s.History.Stop()
}
