// Package order contains the Order aggregate of the fulfillment engine.
//
// The aggregate guards the tracking invariants: an append-only status
// history with non-decreasing timestamps, a write-once tracking number, and
// status values that are always re-derived from the latest carrier snapshot
// rather than advanced locally. Orders are created elsewhere in the platform;
// this engine only restores them from persistence and applies reconciliation
// outcomes.
package order
