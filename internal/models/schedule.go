package models

import (
	"encoding/json"
	"fmt"
)

// ScheduleKind selects the shape of a timed-activation rule.
type ScheduleKind string

const (
	// ScheduleSameDay activates on a single date.
	ScheduleSameDay ScheduleKind = "mismo_dia"
	// ScheduleExtended activates across a date range.
	ScheduleExtended ScheduleKind = "extendido"
)

// ScheduleRule is a device's timed-activation rule. EndDate is meaningful only
// for the Extended kind. Dates are "YYYY-MM-DD" strings, times are wall-clock
// "HH:MM" strings independent of date.
type ScheduleRule struct {
	DeviceID    string       `json:"-"` // storage key, not part of the record
	Kind        ScheduleKind `json:"-"`
	StartDate   string       `json:"-"`
	EndDate     string       `json:"-"`
	OnTime      string       `json:"-"`
	OffTime     string       `json:"-"`
	Description string       `json:"-"`
	Active      bool         `json:"-"`
}

// scheduleRecord is the wire shape stored at programacion/{deviceId}. The field
// set depends on the kind: mismo_dia carries fecha, extendido carries
// fecha_encendido/fecha_apagado.
type scheduleRecord struct {
	Tipo           string `json:"tipo"`
	Fecha          string `json:"fecha,omitempty"`
	FechaEncendido string `json:"fecha_encendido,omitempty"`
	FechaApagado   string `json:"fecha_apagado,omitempty"`
	HoraEncendido  string `json:"hora_encendido"`
	HoraApagado    string `json:"hora_apagado"`
	Descripcion    string `json:"descripcion"`
	Activo         bool   `json:"activo"`
}

// MarshalJSON emits the kind-specific record shape.
func (r ScheduleRule) MarshalJSON() ([]byte, error) {
	rec := scheduleRecord{
		Tipo:          string(r.Kind),
		HoraEncendido: r.OnTime,
		HoraApagado:   r.OffTime,
		Descripcion:   r.Description,
		Activo:        r.Active,
	}
	switch r.Kind {
	case ScheduleSameDay:
		rec.Fecha = r.StartDate
	case ScheduleExtended:
		rec.FechaEncendido = r.StartDate
		rec.FechaApagado = r.EndDate
	default:
		return nil, fmt.Errorf("unknown schedule kind %q", r.Kind)
	}
	return json.Marshal(rec)
}

// UnmarshalJSON restores a rule from either record shape.
func (r *ScheduleRule) UnmarshalJSON(data []byte) error {
	var rec scheduleRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	r.Kind = ScheduleKind(rec.Tipo)
	r.OnTime = rec.HoraEncendido
	r.OffTime = rec.HoraApagado
	r.Description = rec.Descripcion
	r.Active = rec.Activo
	switch r.Kind {
	case ScheduleExtended:
		r.StartDate = rec.FechaEncendido
		r.EndDate = rec.FechaApagado
	default:
		r.StartDate = rec.Fecha
	}
	return nil
}
