package service

import (
	"context"
	"encoding/json"
	"errors"

	"gigahouse/internal/models"
	"gigahouse/internal/store"
)

// Validation failures of the schedule writer. Corrected by the user, never
// retried automatically.
var (
	ErrMissingDevice  = errors.New("selecciona una luz")
	ErrMissingDate    = errors.New("selecciona una fecha")
	ErrMissingEndDate = errors.New("selecciona fecha de fin")
)

// SchedulerService persists timed-activation rules at programacion/{deviceId},
// fully replacing any prior rule. No versioning, no merge.
type SchedulerService struct {
	store store.Store
}

func NewSchedulerService(st store.Store) *SchedulerService {
	return &SchedulerService{store: st}
}

// Save validates the rule (first violation wins) and overwrites the record.
// Validation short-circuits before any store call.
func (s *SchedulerService) Save(ctx context.Context, rule models.ScheduleRule) error {
	if rule.DeviceID == "" {
		return ErrMissingDevice
	}
	if rule.StartDate == "" {
		return ErrMissingDate
	}
	if rule.Kind == models.ScheduleExtended && rule.EndDate == "" {
		return ErrMissingEndDate
	}

	raw, err := json.Marshal(rule)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, store.Join(store.PathSchedules, rule.DeviceID), string(raw))
}

// Get returns the stored rule for a device, reporting whether one exists.
func (s *SchedulerService) Get(ctx context.Context, deviceID string) (models.ScheduleRule, bool, error) {
	raw, ok, err := s.store.Get(ctx, store.Join(store.PathSchedules, deviceID))
	if err != nil || !ok {
		return models.ScheduleRule{}, false, err
	}
	var rule models.ScheduleRule
	if err := json.Unmarshal([]byte(raw), &rule); err != nil {
		return models.ScheduleRule{}, false, err
	}
	rule.DeviceID = deviceID
	return rule, true, nil
}
