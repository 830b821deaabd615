package tracking

import "time"

// HistoryEntry is one element of an order's append-only status history: the
// status that was observed, when it was recorded, why the reconciliation ran,
// and the carrier snapshot that triggered it (nil when the carrier omitted
// the shipment).
//
// Entries are never rewritten or truncated; the history is the only
// authoritative record of when a transition happened and what caused it.
type HistoryEntry struct {
	Status    Status          `json:"status"`
	Timestamp time.Time       `json:"timestamp"`
	Note      string          `json:"note"`
	Snapshot  *SnapshotRecord `json:"carrierSnapshot,omitempty"`
}
