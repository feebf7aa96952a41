// Package api implements the HTTP REST API for limewatchd.
//
// New(store, engine, advisor) returns an http.Handler that serves:
//
//	GET  /api/v1/health        — source count and tendency tally
//	GET  /api/v1/sources       — latest assessment per live source
//	GET  /api/v1/sources/{id}  — single source; 404 if unknown or stale
//	GET  /api/v1/alerts        — firing plus recently resolved alerts
//	GET  /api/v1/snapshot      — full dump of all live sources + generated_at
//	POST /api/v1/soften        — one-shot calculation for a posted sample
//	POST /api/v1/advice        — calculation plus model commentary
//
// All endpoints:
//   - Respond with Content-Type: application/json
//   - Return 405 for methods other than the one listed
//   - Read live entries from the store (stale entries excluded from lists)
//
// JSON types are defined in types.go. No external HTTP framework is used.
package api
