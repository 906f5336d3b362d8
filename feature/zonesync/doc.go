// Package zonesync wires the reconciliation engine to the Infoblox Universal
// DDI platform for one configured (zone, view pair).
//
// It contributes three things: the adapter translating platform record
// objects into the engine's record values (and planned creations back into
// API calls), the Service that runs syncs with a single-flight guard and
// remembers the last result for the status endpoint, and the Fiber handler
// for the HTTP service mode.
package zonesync
