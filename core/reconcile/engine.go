package reconcile

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Engine orchestrates one reconciliation run: load both views, diff both
// directions, and emit the planned creations. One engine is safe to reuse
// across runs; it holds no state between them.
type Engine struct {
	loader Loader
	writer Writer
	log    *zap.Logger

	// now is swapped out in tests for deterministic marker timestamps.
	now func() time.Time
}

// NewEngine creates an engine on top of the given platform collaborators.
func NewEngine(loader Loader, writer Writer, log *zap.Logger) *Engine {
	return &Engine{loader: loader, writer: writer, log: log, now: time.Now}
}

// Plan loads both view snapshots and computes the creations and conflicts of
// this run without writing anything. A load failure aborts with a
// *TransportError; nothing downstream of a successful load can abort.
func (e *Engine) Plan(ctx context.Context, zone, viewA, viewB string) (*Plan, error) {
	recordsA, err := e.loader.ListARecords(ctx, zone, viewA)
	if err != nil {
		return nil, &TransportError{View: viewA, Err: err}
	}
	recordsB, err := e.loader.ListARecords(ctx, zone, viewB)
	if err != nil {
		return nil, &TransportError{View: viewB, Err: err}
	}

	indexA := BuildIndex(viewA, recordsA, e.log)
	indexB := BuildIndex(viewB, recordsB, e.log)

	plan := &Plan{
		RunID:     uuid.NewString(),
		Zone:      zone,
		ViewA:     viewA,
		ViewB:     viewB,
		StartedAt: e.now().UTC(),
	}
	plan.Summary.RecordsA = indexA.Len()
	plan.Summary.RecordsB = indexB.Len()
	plan.Summary.SkippedA = indexA.Skipped
	plan.Summary.SkippedB = indexB.Skipped

	// The same (target view, hostname, address) can never legitimately be
	// planned twice in one run, but collapse it if it ever is.
	planned := make(map[creationKey]bool)
	conflicts := make(map[string]*Conflict)

	e.collect(plan, Diff(indexA, indexB), planned, conflicts, true)
	e.collect(plan, Diff(indexB, indexA), planned, conflicts, false)

	names := make([]string, 0, len(conflicts))
	for name := range conflicts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		plan.Conflicts = append(plan.Conflicts, *conflicts[name])
	}
	plan.Summary.Conflicts = len(plan.Conflicts)

	e.log.Info("reconciliation plan computed",
		zap.String("run_id", plan.RunID),
		zap.String("zone", zone),
		zap.String("view_a", viewA),
		zap.String("view_b", viewB),
		zap.Int("records_a", plan.Summary.RecordsA),
		zap.Int("records_b", plan.Summary.RecordsB),
		zap.Int("missing_a_to_b", plan.Summary.MissingAToB),
		zap.Int("missing_b_to_a", plan.Summary.MissingBToA),
		zap.Int("already_propagated", plan.Summary.AlreadyPropagated),
		zap.Int("conflicts", plan.Summary.Conflicts))

	return plan, nil
}

type creationKey struct {
	targetView string
	hostname   string
	address    string
}

// collect folds one directional diff pass into the plan. aToB tells which
// direction this pass represents relative to the plan's view order.
func (e *Engine) collect(plan *Plan, decisions []Decision, planned map[creationKey]bool, conflicts map[string]*Conflict, aToB bool) {
	sourceView, targetView := plan.ViewA, plan.ViewB
	if !aToB {
		sourceView, targetView = plan.ViewB, plan.ViewA
	}

	for _, d := range decisions {
		switch d.Class {
		case ClassIdentical:
			plan.Summary.Identical++

		case ClassAlreadyPropagated:
			plan.Summary.AlreadyPropagated++
			e.log.Debug("already propagated, skipping",
				zap.String("hostname", d.Hostname),
				zap.String("address", d.Address),
				zap.String("source_view", sourceView))

		case ClassMissing:
			key := creationKey{targetView, d.Hostname, d.Address}
			if planned[key] {
				continue
			}
			planned[key] = true
			marker := Marker{
				OriginView:        sourceView,
				SyncedAt:          plan.StartedAt,
				OriginalCreatedAt: d.Source.CreatedAt,
			}
			plan.Creations = append(plan.Creations, Creation{
				TargetView: targetView,
				SourceView: sourceView,
				Hostname:   d.Hostname,
				Address:    d.Address,
				Comment:    marker.String(),
			})
			if aToB {
				plan.Summary.MissingAToB++
			} else {
				plan.Summary.MissingBToA++
			}

		case ClassConflict:
			c := conflicts[d.Hostname]
			if c == nil {
				c = &Conflict{Hostname: d.Hostname}
				conflicts[d.Hostname] = c
			}
			if aToB {
				c.AddressesA = appendUnique(c.AddressesA, d.Address)
				for _, addr := range d.TargetAddresses {
					c.AddressesB = appendUnique(c.AddressesB, addr)
				}
			} else {
				c.AddressesB = appendUnique(c.AddressesB, d.Address)
				for _, addr := range d.TargetAddresses {
					c.AddressesA = appendUnique(c.AddressesA, addr)
				}
			}
			e.log.Warn("conflict detected, skipping hostname",
				zap.String("hostname", d.Hostname),
				zap.String("address", d.Address),
				zap.String("source_view", sourceView),
				zap.Strings("target_addresses", d.TargetAddresses))
		}
	}
}

func appendUnique(addrs []string, addr string) []string {
	for _, a := range addrs {
		if a == addr {
			return addrs
		}
	}
	addrs = append(addrs, addr)
	sort.Strings(addrs)
	return addrs
}

// Apply emits the planned creations one at a time. A failed creation is
// recorded against that single hostname/address and the remaining creations
// still run; the result may reflect a partial sync.
func (e *Engine) Apply(ctx context.Context, plan *Plan) *ApplyResult {
	out := &ApplyResult{}
	for _, c := range plan.Creations {
		if err := e.writer.CreateARecord(ctx, plan.Zone, c); err != nil {
			e.log.Error("record creation failed",
				zap.String("run_id", plan.RunID),
				zap.String("hostname", c.Hostname),
				zap.String("address", c.Address),
				zap.String("target_view", c.TargetView),
				zap.Error(err))
			out.Failures = append(out.Failures, CreationFailure{Creation: c, Reason: err.Error()})
			continue
		}
		e.log.Info("record created",
			zap.String("run_id", plan.RunID),
			zap.String("hostname", c.Hostname),
			zap.String("address", c.Address),
			zap.String("source_view", c.SourceView),
			zap.String("target_view", c.TargetView))
		if c.SourceView == plan.ViewA {
			out.CreatedAToB++
		} else {
			out.CreatedBToA++
		}
	}
	return out
}

// Reconcile is the full run: Plan, then Apply unless opts.DryRun. The only
// error it can return is the load-stage *TransportError.
func (e *Engine) Reconcile(ctx context.Context, zone, viewA, viewB string, opts Options) (*Result, error) {
	plan, err := e.Plan(ctx, zone, viewA, viewB)
	if err != nil {
		return nil, err
	}
	result := &Result{Plan: plan}
	if opts.DryRun {
		e.log.Info("dry run, skipping apply", zap.String("run_id", plan.RunID))
		return result, nil
	}
	result.Applied = e.Apply(ctx, plan)
	e.log.Info("reconciliation completed",
		zap.String("run_id", plan.RunID),
		zap.Int("created_a_to_b", result.Applied.CreatedAToB),
		zap.Int("created_b_to_a", result.Applied.CreatedBToA),
		zap.Int("failed", len(result.Applied.Failures)),
		zap.Int("conflicts", len(plan.Conflicts)))
	return result, nil
}
