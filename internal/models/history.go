package models

// HistoryTimestampLayout is the zero-padded format history timestamps are
// written with. Descending lexicographic order over it matches chronological
// order, which the history view relies on.
const HistoryTimestampLayout = "2006-01-02T15:04:05"

// HistoryEntry is one immutable record of the append-only event log.
type HistoryEntry struct {
	ID        string `json:"id,omitempty"` // store-assigned key, identity for rendering
	Event     string `json:"evento"`
	Timestamp string `json:"timestamp"`
}

// Valid reports whether the entry carries both required fields. Entries failing
// this are silently skipped by readers rather than surfaced as errors.
func (e HistoryEntry) Valid() bool {
	return e.Event != "" && e.Timestamp != ""
}
