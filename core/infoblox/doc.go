// Package infoblox is a minimal client for the Infoblox Universal DDI REST
// API, covering exactly the surface the zone sync needs: listing the A
// records of a zone per view, resolving view names to object IDs, and
// creating single A records.
//
// The record listing endpoint cannot filter by view, so ListARecords fetches
// the whole zone and filters client-side by view_name. Record creation
// requires the view's object ID rather than its name; the client resolves and
// caches the mapping per view.
//
// Authentication is a static API token sent as "Authorization: Token <t>" on
// every request. The client performs no retries; callers treat a failed call
// as a transport failure.
package infoblox
