// Package store holds the latest assessment per monitored source in memory.
//
// Put replaces the previous assessment for a source; List and Get serve the
// REST API and WebSocket hub, excluding entries older than the TTL; Run is
// the background eviction loop. Nothing is written to disk and no history is
// kept — a source that stops reporting simply ages out.
package store
