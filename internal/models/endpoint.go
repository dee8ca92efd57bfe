package models

// Logical device identifiers used by clients and the physical keys they map to
// under estado_leds/. Unknown identifiers pass through unchanged so ad-hoc keys
// (bocinaManual, temperaturaActual) address the store directly.
var endpointTable = map[string]string{
	"cuarto1": "ledIzqArriba",
	"cuarto2": "ledIzqAbajo",
	"cuarto3": "ledMedioArriba",
	"sala1":   "ledMedioAbajo",
	"sala2":   "ledDerArriba",
	"bano1":   "ledDerAbajo",
}

// logicalTable is the reverse mapping, built once at init.
var logicalTable = func() map[string]string {
	m := make(map[string]string, len(endpointTable))
	for logical, physical := range endpointTable {
		m[physical] = logical
	}
	return m
}()

// MapEndpoint returns the physical storage key for a logical device identifier.
// Identifiers outside the fixed table are returned unchanged.
func MapEndpoint(logical string) string {
	if physical, ok := endpointTable[logical]; ok {
		return physical
	}
	return logical
}

// LogicalEndpoint is the inverse of MapEndpoint, with the same identity fallback.
func LogicalEndpoint(physical string) string {
	if logical, ok := logicalTable[physical]; ok {
		return logical
	}
	return physical
}

// Device is a controllable endpoint with its user-facing display name.
type Device struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Catalog lists the controllable lights in display order.
func Catalog() []Device {
	return []Device{
		{ID: "cuarto1", Name: "Lado Izquierdo 2do Piso"},
		{ID: "cuarto2", Name: "Lado Izquierdo 1er Piso"},
		{ID: "cuarto3", Name: "Lado Medio 2do Piso"},
		{ID: "sala1", Name: "Lado Medio 1er Piso"},
		{ID: "sala2", Name: "Lado Derecho 2do Piso"},
		{ID: "bano1", Name: "Lado Derecho 1er Piso"},
	}
}
