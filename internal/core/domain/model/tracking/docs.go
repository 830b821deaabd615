// Package tracking contains the carrier-facing value objects of the
// fulfillment engine: the order status enumeration and its terminal set, the
// carrier Snapshot value object with its serializable audit record, status
// history entries, and the pure MapStatus function that derives a status from
// a snapshot.
//
// Everything in this package is immutable and side-effect free, which keeps
// the status derivation exhaustively unit-testable independent of the carrier
// API and the database.
package tracking
