package reconcile

import "sort"

// Classification is the four-way outcome for one source (hostname, address)
// pair diffed against the target view. Modeling it as an explicit sum type
// keeps the loop-prevention exclusion auditable instead of buried in nested
// conditionals.
type Classification string

const (
	// ClassIdentical means the exact pair already exists in the target.
	ClassIdentical Classification = "identical"

	// ClassMissing means the pair is absent from the target and safe to
	// create there.
	ClassMissing Classification = "missing"

	// ClassAlreadyPropagated means the pair was excluded by loop prevention:
	// either the target holds a copy tracing back to this record, or the
	// source record is itself a copy from the target. Steady-state no-op.
	ClassAlreadyPropagated Classification = "already_propagated"

	// ClassConflict means both views hold native, divergent records for the
	// hostname. Reported, never auto-resolved.
	ClassConflict Classification = "conflict"
)

// Decision is the classification of a single source (hostname, address) pair.
type Decision struct {
	Hostname string
	Address  string
	Class    Classification

	// Source is the record the decision was made for.
	Source Record

	// TargetAddresses holds the target's divergent addresses when Class is
	// ClassConflict, sorted.
	TargetAddresses []string
}

// Diff classifies every (hostname, address) pair present in the source index
// against the target index. Directionality matters: markers are asymmetric,
// so Diff(A, B) and Diff(B, A) are independent passes.
func Diff(source, target *Index) []Decision {
	var out []Decision
	for _, host := range source.Hostnames() {
		srcRecs := source.Records(host)
		tgtRecs := target.Records(host)

		// Overlapping address sets mean the hostname is the multi-address
		// case: each uncovered pair is independently missing, not a conflict.
		overlap := false
		for addr := range srcRecs {
			if _, ok := tgtRecs[addr]; ok {
				overlap = true
				break
			}
		}

		// Only target records that did not themselves originate from the
		// source view can witness a conflict.
		var nativeTargets []string
		for addr, rec := range tgtRecs {
			if rec.Marker == nil || rec.Marker.OriginView != source.View {
				nativeTargets = append(nativeTargets, addr)
			}
		}
		sort.Strings(nativeTargets)

		addrs := make([]string, 0, len(srcRecs))
		for addr := range srcRecs {
			addrs = append(addrs, addr)
		}
		sort.Strings(addrs)

		for _, addr := range addrs {
			out = append(out, classify(srcRecs[addr], source.View, target.View, tgtRecs, overlap, nativeTargets))
		}
	}
	return out
}

// classify decides the fate of one source pair. The order of the checks is
// the loop-prevention contract: derivative-of-target first, exact presence
// second, propagated-under-another-representation third, conflict last.
func classify(src Record, sourceView, targetView string, tgtRecs map[string]Record, overlap bool, nativeTargets []string) Decision {
	d := Decision{Hostname: src.Hostname, Address: src.Address, Source: src}

	// Reverse half of loop prevention: a record that is itself a copy from
	// the target view is never offered back to it. If its original has since
	// disappeared from the target the copy stays orphaned; cleaning it up
	// would require deletion, which this system never does.
	if src.Marker != nil && src.Marker.OriginView == targetView {
		if _, ok := tgtRecs[src.Address]; ok {
			d.Class = ClassIdentical
		} else {
			d.Class = ClassAlreadyPropagated
		}
		return d
	}

	if _, ok := tgtRecs[src.Address]; ok {
		d.Class = ClassIdentical
		return d
	}

	// Forward half of loop prevention: the address may already live in the
	// target under a different representation created by a prior run. The
	// marker must trace back to this exact record.
	for _, tgt := range tgtRecs {
		if tgt.Marker != nil &&
			tgt.Marker.OriginView == sourceView &&
			tgt.Marker.OriginalCreatedAt.Equal(src.CreatedAt) {
			d.Class = ClassAlreadyPropagated
			return d
		}
	}

	if len(nativeTargets) > 0 && !overlap && src.Marker == nil {
		d.Class = ClassConflict
		d.TargetAddresses = nativeTargets
		return d
	}

	d.Class = ClassMissing
	return d
}
