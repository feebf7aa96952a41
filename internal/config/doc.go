// Package config loads and watches the limewatch configuration file.
//
// Top-level types:
//   - Config{Server, Intake, Alerts, Advisor} — full tree parsed from YAML
//   - ServerConfig — http_port, auth, assessment_ttl, broadcast_interval
//   - Source — id, endpoint, softening targets, auth (apikey|bearer|none), tls
//   - AlertsConfig — threshold rules ("lsi > 0.5") and webhook targets
//   - AdvisorConfig — key_env for the Anthropic credential
//
// Secrets are never stored in the file: API keys, bearer tokens, and webhook
// URLs are referenced by environment variable name (key_env, token_env,
// url_env) and resolved at use via Key()/Token()/URL().
//
// Load(path) reads the YAML file, applies defaults (30s poll, 5m assessment
// TTL, 5s broadcast, port 8080), then validates required fields and enums.
//
// Watch(ctx, path, onChange) uses fsnotify to detect file changes and calls
// onChange with the newly parsed Config. It handles the rename→create pattern
// used by atomic-save editors by re-adding the watch after the event, and
// keeps the previous config when a reload fails to parse.
package config
