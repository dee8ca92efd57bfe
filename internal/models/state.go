package models

import "time"

// SirenAutoThresholdC is the temperature at which the siren switches on by
// itself when no manual override is active.
const SirenAutoThresholdC = 29.0

// Siren status values.
const (
	SirenOff    = "OFF"
	SirenManual = "MANUAL"
	SirenAuto   = "AUTO"
)

// StateSnapshot is the locally cached view of the remote device-state tree.
// It is eventually consistent: values reflect the last observed update and may
// be stale while Connected is false.
type StateSnapshot struct {
	Devices     map[string]bool `json:"devices"` // logical id → on/off
	Temperature float64         `json:"temperatura_actual"`
	SirenManual bool            `json:"bocina_manual"`
	Siren       string          `json:"bocina"` // OFF | MANUAL | AUTO
	Connected   bool            `json:"connected"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// SirenStatus derives the effective siren state from the manual override and
// the current temperature.
func SirenStatus(manual bool, temperatureC float64) string {
	switch {
	case manual:
		return SirenManual
	case temperatureC >= SirenAutoThresholdC:
		return SirenAuto
	default:
		return SirenOff
	}
}
