// Package types defines the shared in-memory records that flow between the
// intake poller, the assessment store, and the presentation surfaces (REST,
// WebSocket, alerts). These are canonical Go types, separate from the JSON
// shapes served by the API.
package types
