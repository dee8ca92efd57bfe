package service

import (
	"context"
	"sync"
	"time"

	"gigahouse/internal/device"
	"gigahouse/internal/models"
	"gigahouse/internal/store"
)

// temperatureKey and sirenKey live in the state tree next to the per-device
// integer fields.
const (
	temperatureKey = "temperaturaActual"
	sirenKey       = "bocinaManual"
)

// StoreObserver holds a subscription on the state tree and republishes every
// change into a UI-bound snapshot. On cancellation it marks connectivity lost
// and keeps the last-known values rather than clearing them.
type StoreObserver struct {
	store store.Store

	mu   sync.RWMutex
	snap models.StateSnapshot
	stop func()
}

func NewStoreObserver(st store.Store) *StoreObserver {
	return &StoreObserver{
		store: st,
		snap:  models.StateSnapshot{Devices: make(map[string]bool)},
	}
}

// Start subscribes to the state tree; the initial snapshot arrives before
// Start returns. The subscription is held until Stop.
func (o *StoreObserver) Start(_ context.Context) error {
	stop, err := o.store.Subscribe(store.PathStateTree, store.Listener{
		OnChange: o.apply,
		OnCancel: o.lost,
	})
	if err != nil {
		return err
	}
	o.mu.Lock()
	o.stop = stop
	o.mu.Unlock()
	return nil
}

// Stop disposes the subscription. Safe to call more than once.
func (o *StoreObserver) Stop() {
	o.mu.Lock()
	stop := o.stop
	o.stop = nil
	o.mu.Unlock()
	if stop != nil {
		stop()
	}
}

// Snapshot returns a copy of the last observed state.
func (o *StoreObserver) Snapshot() models.StateSnapshot {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return copySnapshot(o.snap)
}

// Probe issues a point-in-time read as a liveness check and refreshes the
// connectivity flag accordingly.
func (o *StoreObserver) Probe(ctx context.Context) error {
	_, _, err := o.store.Get(ctx, store.Join(store.PathStateTree, temperatureKey))
	o.mu.Lock()
	o.snap.Connected = err == nil
	o.mu.Unlock()
	return err
}

// apply decodes the fields of interest from a state-tree snapshot. Missing or
// malformed values decode to off/zero.
func (o *StoreObserver) apply(s store.Snapshot) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, d := range models.Catalog() {
		o.snap.Devices[d.ID] = store.Int(s[models.MapEndpoint(d.ID)]) == 1
	}
	o.snap.Temperature = store.Float(s[temperatureKey])
	o.snap.SirenManual = store.Int(s[sirenKey]) == 1
	o.snap.Siren = models.SirenStatus(o.snap.SirenManual, o.snap.Temperature)
	o.snap.Connected = true
	o.snap.UpdatedAt = time.Now().UTC()
}

func (o *StoreObserver) lost(error) {
	o.mu.Lock()
	o.snap.Connected = false
	o.mu.Unlock()
}

// DeviceObserver is the polling variant used in direct mode. There is no
// background poll: a probe runs at startup and lazily on user request, and
// device states only change through dispatcher results.
type DeviceObserver struct {
	client *device.Client

	mu   sync.RWMutex
	snap models.StateSnapshot
}

func NewDeviceObserver(client *device.Client) *DeviceObserver {
	return &DeviceObserver{
		client: client,
		snap:   models.StateSnapshot{Devices: make(map[string]bool)},
	}
}

// Start probes once. An unreachable device is not a startup failure; the
// snapshot just begins disconnected.
func (o *DeviceObserver) Start(ctx context.Context) error {
	_ = o.Probe(ctx)
	return nil
}

func (o *DeviceObserver) Stop() {}

func (o *DeviceObserver) Snapshot() models.StateSnapshot {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return copySnapshot(o.snap)
}

func (o *DeviceObserver) Probe(ctx context.Context) error {
	err := o.client.Probe(ctx)
	o.mu.Lock()
	o.snap.Connected = err == nil
	o.snap.UpdatedAt = time.Now().UTC()
	o.mu.Unlock()
	return err
}

// publish records a dispatcher-observed device state.
func (o *DeviceObserver) publish(deviceID string, on bool) {
	o.mu.Lock()
	o.snap.Devices[deviceID] = on
	o.snap.UpdatedAt = time.Now().UTC()
	o.mu.Unlock()
}

func copySnapshot(s models.StateSnapshot) models.StateSnapshot {
	out := s
	out.Devices = make(map[string]bool, len(s.Devices))
	for id, on := range s.Devices {
		out.Devices[id] = on
	}
	return out
}
