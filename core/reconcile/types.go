package reconcile

import (
	"context"
	"fmt"
	"time"
)

// Record is one A record as observed from a view. Records are read-only once
// fetched: this system models change as create-if-absent only and never
// updates or deletes anything on the platform.
type Record struct {
	// ID is the platform-assigned object identifier.
	ID string

	// Hostname is the fully qualified name within the zone. Comparison is
	// case-insensitive; BuildIndex canonicalizes it.
	Hostname string

	// Address is the IPv4 address the hostname resolves to in this view.
	Address string

	// View identifies the view the record was observed in.
	View string

	// Comment is the free-text comment field. For records created by a prior
	// sync run it encodes the provenance marker.
	Comment string

	// CreatedAt is the platform-assigned creation timestamp, immutable once
	// set. It anchors loop prevention: a synced copy remembers the creation
	// time of the record it was derived from.
	CreatedAt time.Time

	// Marker is the parsed provenance of a synced derivative, nil for native
	// records. BuildIndex fills it from Comment when absent.
	Marker *Marker
}

// Creation is one planned create operation bound for a target view.
type Creation struct {
	// TargetView is the view the record will be created in.
	TargetView string `json:"target_view"`

	// SourceView is the view the address was copied from.
	SourceView string `json:"source_view"`

	// Hostname is the fully qualified record name.
	Hostname string `json:"hostname"`

	// Address is the IPv4 address to create.
	Address string `json:"address"`

	// Comment is the rendered provenance marker attached to the new record.
	Comment string `json:"comment"`
}

// Conflict reports a hostname whose native records diverge across the two
// views. Conflicts require manual resolution; the engine never creates
// anything for a conflicting hostname.
type Conflict struct {
	// Hostname is the fully qualified name in conflict.
	Hostname string `json:"hostname"`

	// AddressesA are the conflicting addresses observed in view A.
	AddressesA []string `json:"addresses_a"`

	// AddressesB are the conflicting addresses observed in view B.
	AddressesB []string `json:"addresses_b"`
}

/// Plan is the outcome of diffing both directions: the ordered creations the
// engine intends to emit plus the conflict report. It is computed fresh each
// run and never persisted.
type Plan struct {
	// RunID uniquely identifies this run for log correlation.
	RunID string `json:"run_id"`

	// Zone is the zone being reconciled.
	Zone string `json:"zone"`

	// ViewA and ViewB are the two views, in configuration order.
	ViewA string `json:"view_a"`
	ViewB string `json:"view_b"`

	// StartedAt is when the snapshots were loaded. It is also the syncedAt
	// timestamp rendered into every marker of this run.
	StartedAt time.Time `json:"started_at"`

	// Creations are the planned create operations, A->B first, then B->A,
	// each direction ordered by hostname and address.
	Creations []Creation `json:"creations"`

	// Conflicts are the divergent hostnames, ordered by hostname.
	Conflicts []Conflict `json:"conflicts"`

	// Summary provides aggregate counts.
	Summary PlanSummary `json:"summary"`
}

// PlanSummary provides aggregate statistics for a plan.
type PlanSummary struct {
	// RecordsA and RecordsB count the indexed (hostname, address) pairs per view.
	RecordsA int `json:"records_a"`
	RecordsB int `json:"records_b"`

	// SkippedA and SkippedB count records dropped for unparseable addresses.
	SkippedA int `json:"skipped_a"`
	SkippedB int `json:"skipped_b"`

	// MissingAToB and MissingBToA count planned creations per direction.
	MissingAToB int `json:"missing_a_to_b"`
	MissingBToA int `json:"missing_b_to_a"`

	// Identical counts pairs already equal on both sides, over both passes.
	Identical int `json:"identical"`

	// AlreadyPropagated counts pairs skipped by loop prevention.
	AlreadyPropagated int `json:"already_propagated"`

	// Conflicts counts distinct conflicting hostnames.
	Conflicts int `json:"conflicts"`
}

// CreationFailure records a single failed create. Failures are isolated: the
// remaining creations of the run still execute.
type CreationFailure struct {
	Creation Creation `json:"creation"`
	Reason   string   `json:"reason"`
}

// ApplyResult reports what actually happened when a plan was emitted to the
// platform. A run with failures is a partial success, not an error.
type ApplyResult struct {
	// CreatedAToB and CreatedBToA count successful creations per direction.
	CreatedAToB int `json:"created_a_to_b"`
	CreatedBToA int `json:"created_b_to_a"`

	// Failures lists the creations the platform rejected.
	Failures []CreationFailure `json:"failures"`
}

// Result is the full outcome of one reconciliation run.
type Result struct {
	Plan *Plan `json:"plan"`

	// Applied is nil for dry runs.
	Applied *ApplyResult `json:"applied,omitempty"`
}

// Options controls a reconciliation run.
type Options struct {
	// DryRun computes the plan without emitting any creation.
	DryRun bool
}

// Loader fetches the current A records of one (zone, view). Implementations
// wrap the platform API; a failed load aborts the whole run before anything
// is written.
type Loader interface {
	ListARecords(ctx context.Context, zone, view string) ([]Record, error)
}

// Writer creates a single A record in a view. Failures are per-record and do
// not abort the remaining creations of the run.
type Writer interface {
	CreateARecord(ctx context.Context, zone string, c Creation) error
}

// TransportError wraps a failure to load a view snapshot. Load-stage failures
// are fatal to the run; retry policy, if any, belongs to the platform client.
type TransportError struct {
	View string
	Err  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("loading records for view %q: %v", e.View, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
