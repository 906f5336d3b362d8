package reconcile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMarker_RoundTrip verifies that formatting then parsing a marker
// reproduces the original triple exactly.
func TestMarker_RoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		marker Marker
	}{
		{
			name: "whole seconds",
			marker: Marker{
				OriginView:        "AZURE-3",
				SyncedAt:          time.Date(2026, 8, 29, 10, 15, 0, 0, time.UTC),
				OriginalCreatedAt: time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC),
			},
		},
		{
			name: "fractional creation timestamp",
			marker: Marker{
				OriginView:        "AZURE-9",
				SyncedAt:          time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
				OriginalCreatedAt: time.Date(2025, 12, 31, 23, 59, 59, 123456000, time.UTC),
			},
		},
		{
			name: "view name with punctuation",
			marker: Marker{
				OriginView:        "corp_internal.eu-west",
				SyncedAt:          time.Date(2026, 6, 15, 0, 0, 1, 0, time.UTC),
				OriginalCreatedAt: time.Date(2026, 6, 14, 12, 30, 0, 0, time.UTC),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, ok := ParseMarker(tt.marker.String())
			require.True(t, ok)
			assert.Equal(t, tt.marker.OriginView, parsed.OriginView)
			assert.True(t, tt.marker.SyncedAt.Equal(parsed.SyncedAt))
			assert.True(t, tt.marker.OriginalCreatedAt.Equal(parsed.OriginalCreatedAt))
		})
	}
}

// TestMarker_String pins the exact wire format. The literal tokens are part
// of the external contract; breaking them orphans every previously synced
// record.
func TestMarker_String(t *testing.T) {
	m := Marker{
		OriginView:        "AZURE-3",
		SyncedAt:          time.Date(2026, 8, 29, 10, 15, 0, 0, time.UTC),
		OriginalCreatedAt: time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC),
	}
	assert.Equal(t,
		"Synced from AZURE-3 on 2026-08-29 10:15:00 UTC, created: 2026-08-01T09:00:00Z",
		m.String())
}

// TestParseMarker_Rejects verifies the defensive default: anything that does
// not match the grammar exactly is treated as non-marker text.
func TestParseMarker_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		comment string
	}{
		{"empty comment", ""},
		{"plain text", "primary record for the payroll app"},
		{"lowercase prefix", "synced from AZURE-3 on 2026-08-29 10:15:00 UTC, created: 2026-08-01T09:00:00Z"},
		{"prefix only", "Synced from "},
		{"missing on token", "Synced from AZURE-3 2026-08-29 10:15:00 UTC, created: 2026-08-01T09:00:00Z"},
		{"empty origin view", "Synced from  on 2026-08-29 10:15:00 UTC, created: 2026-08-01T09:00:00Z"},
		{"missing created token", "Synced from AZURE-3 on 2026-08-29 10:15:00 UTC"},
		{"malformed synced timestamp", "Synced from AZURE-3 on yesterday, created: 2026-08-01T09:00:00Z"},
		{"synced timestamp without UTC suffix", "Synced from AZURE-3 on 2026-08-29 10:15:00, created: 2026-08-01T09:00:00Z"},
		{"malformed created timestamp", "Synced from AZURE-3 on 2026-08-29 10:15:00 UTC, created: last tuesday"},
		{"trailing garbage after created", "Synced from AZURE-3 on 2026-08-29 10:15:00 UTC, created: 2026-08-01T09:00:00Z and more"},
		{"leading whitespace", " Synced from AZURE-3 on 2026-08-29 10:15:00 UTC, created: 2026-08-01T09:00:00Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := ParseMarker(tt.comment)
			assert.False(t, ok)
			assert.Nil(t, m)
		})
	}
}

// TestParseMarker_KnownComment parses a comment as the platform stores it.
func TestParseMarker_KnownComment(t *testing.T) {
	m, ok := ParseMarker("Synced from AZURE-9 on 2026-02-03 04:05:06 UTC, created: 2026-01-01T00:00:00.5Z")
	require.True(t, ok)
	assert.Equal(t, "AZURE-9", m.OriginView)
	assert.True(t, m.SyncedAt.Equal(time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)))
	assert.True(t, m.OriginalCreatedAt.Equal(time.Date(2026, 1, 1, 0, 0, 0, 500000000, time.UTC)))
}
