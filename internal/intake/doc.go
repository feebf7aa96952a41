// Package intake polls plant instrumentation for raw-water chemistry.
//
// Each configured source exposes its sensor readings as Prometheus text
// exposition gauges (water_ph, water_calcium_mg_per_l, ...). Reader.Read
// fetches and parses one scrape, checks the required gauges are present, and
// merges the per-source softening targets from config into a RawWaterSample
// for the engine.
//
// Authentication per source: apikey (configurable header) | bearer | none,
// with secrets resolved from the environment. A failed read returns an error
// and produces no sample — the previous assessment stays live in the store
// until its TTL lapses.
package intake
