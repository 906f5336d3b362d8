package reconcile

import (
	"strings"
	"time"
)

// The literal tokens of the marker grammar. They are load-bearing: ParseMarker
// matches them exactly, and any deviation makes a comment non-marker text.
const (
	markerPrefix       = "Synced from "
	markerOnToken      = " on "
	markerCreatedToken = ", created: "

	// syncedAtLayout is always rendered in UTC so the comment reads the same
	// regardless of where a run happened to execute.
	syncedAtLayout = "2006-01-02 15:04:05 UTC"
)

// Marker is the provenance metadata embedded in the comment of a record that
// was created by a previous sync run. A record carries either no marker
// (native, independently authored in its view) or exactly one.
type Marker struct {
	// OriginView is the view the record was copied from. It must never equal
	// the view of the record carrying the marker; that asymmetry is the basis
	// of loop prevention.
	OriginView string

	// SyncedAt is when the copy was created by a prior run.
	SyncedAt time.Time

	// OriginalCreatedAt is the platform creation time of the record the copy
	// was derived from.
	OriginalCreatedAt time.Time
}

// String renders the marker into the comment attached to created records:
//
//	Synced from AZURE-3 on 2026-08-29 10:15:00 UTC, created: 2026-08-01T09:00:00Z
func (m Marker) String() string {
	var b strings.Builder
	b.WriteString(markerPrefix)
	b.WriteString(m.OriginView)
	b.WriteString(markerOnToken)
	b.WriteString(m.SyncedAt.UTC().Format(syncedAtLayout))
	b.WriteString(markerCreatedToken)
	b.WriteString(m.OriginalCreatedAt.Format(time.RFC3339Nano))
	return b.String()
}

// ParseMarker extracts a marker from a record comment. Any comment that does
// not match the grammar exactly yields (nil, false) and the record is treated
// as native. The asymmetry is deliberate: a false negative only delays
// propagation for one run, while a false positive would silently suppress it,
// so the parser never guesses and never errors on malformed input.
func ParseMarker(comment string) (*Marker, bool) {
	rest, ok := strings.CutPrefix(comment, markerPrefix)
	if !ok {
		return nil, false
	}
	origin, rest, ok := strings.Cut(rest, markerOnToken)
	if !ok || origin == "" {
		return nil, false
	}
	syncedRaw, createdRaw, ok := strings.Cut(rest, markerCreatedToken)
	if !ok {
		return nil, false
	}
	syncedAt, err := time.Parse(syncedAtLayout, syncedRaw)
	if err != nil {
		return nil, false
	}
	createdAt, err := time.Parse(time.RFC3339Nano, createdRaw)
	if err != nil {
		return nil, false
	}
	return &Marker{
		OriginView:        origin,
		SyncedAt:          syncedAt,
		OriginalCreatedAt: createdAt,
	}, true
}
