// Package reconcile implements the engine that converges two independently
// writable DNS views of the same zone toward equality without ever deleting
// or updating a record.
//
// The engine is a pure function from two live view snapshots to a plan: it
// keeps no state between runs. Everything needed to avoid re-propagating a
// record (a "sync loop") is recovered by re-parsing the provenance marker
// embedded in each record's comment field on every invocation.
//
// # Architecture
//
// The engine is built from small, independently testable pieces:
//
//  1. Marker: the provenance grammar written into the comment of every record
//     this system creates, and the strict parser that recognizes it.
//
//  2. Index: a per-view structure mapping hostname -> address -> record,
//     with hostnames canonicalized and malformed addresses skipped.
//
//  3. Diff: classifies every (hostname, address) pair of a source index
//     against a target index into an explicit sum type:
//     identical / missing / already_propagated / conflict.
//
//  4. Engine: runs Diff in both directions, dedupes the planned creations,
//     merges the conflict report, and applies creations one at a time with
//     per-record failure isolation.
//
// # Loop prevention
//
// Loop prevention has two halves, both enforced in Diff. Forward: an address
// that appears missing in the target is not created again if the target
// already holds a record whose marker traces back to the source record
// (same origin view, same original creation time). Reverse: a record that is
// itself a synced copy from the target view is never offered back to it,
// even when its original has since disappeared from the target.
//
// # Conflicts
//
// When both views hold native, divergent records for the same hostname the
// engine reports a conflict and creates nothing for that hostname in either
// direction. Conflicts are surfaced for a human; they are never auto-resolved.
//
// # Usage Example
//
//	engine := reconcile.NewEngine(loader, writer, log)
//	result, err := engine.Reconcile(ctx, zone, viewA, viewB, reconcile.Options{})
package reconcile
