package reconcile

import (
	"net/netip"
	"sort"
	"strings"

	"github.com/miekg/dns"
	"go.uber.org/zap"
)

// CanonicalHostname lower-cases a name and ensures it is fully qualified.
// Record names come back from the platform with whatever casing they were
// created with, and DNS name comparison is case-insensitive (RFC 4343).
func CanonicalHostname(name string) string {
	return strings.ToLower(dns.Fqdn(name))
}

// Index holds the A records of one view keyed by hostname, then by address.
// A hostname legitimately maps to multiple addresses within one view; a
// conflict is only ever defined across views.
type Index struct {
	// View identifies the view this index was built from.
	View string

	// Skipped counts records dropped for unparseable addresses.
	Skipped int

	hosts map[string]map[string]Record
}

// BuildIndex groups records by canonical hostname and address and parses the
// provenance marker of each. Records whose address does not parse as IPv4 are
// skipped and logged; a single malformed record must not sink the batch.
func BuildIndex(view string, records []Record, log *zap.Logger) *Index {
	idx := &Index{View: view, hosts: make(map[string]map[string]Record)}
	for _, rec := range records {
		addr, err := netip.ParseAddr(rec.Address)
		if err != nil || !addr.Is4() {
			idx.Skipped++
			log.Warn("skipping record with unparseable IPv4 address",
				zap.String("view", view),
				zap.String("hostname", rec.Hostname),
				zap.String("address", rec.Address))
			continue
		}
		rec.Hostname = CanonicalHostname(rec.Hostname)
		rec.Address = addr.String()
		rec.View = view
		if rec.Marker == nil {
			if m, ok := ParseMarker(rec.Comment); ok {
				rec.Marker = m
			}
		}
		byAddr := idx.hosts[rec.Hostname]
		if byAddr == nil {
			byAddr = make(map[string]Record)
			idx.hosts[rec.Hostname] = byAddr
		}
		byAddr[rec.Address] = rec
	}
	return idx
}

// Hostnames returns the hostnames present in the index, sorted for
// deterministic iteration.
func (idx *Index) Hostnames() []string {
	names := make([]string, 0, len(idx.hosts))
	for name := range idx.hosts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Records returns the records of one hostname keyed by address, or nil if the
// hostname is absent.
func (idx *Index) Records(hostname string) map[string]Record {
	return idx.hosts[hostname]
}

// Has reports whether the exact (hostname, address) pair exists in the view.
func (idx *Index) Has(hostname, address string) bool {
	_, ok := idx.hosts[hostname][address]
	return ok
}

// Len returns the number of indexed (hostname, address) pairs.
func (idx *Index) Len() int {
	n := 0
	for _, byAddr := range idx.hosts {
		n += len(byAddr)
	}
	return n
}
