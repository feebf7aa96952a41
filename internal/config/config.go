package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Default values applied when fields are absent from the config file.
const (
	DefaultHTTPPort          = 8080
	DefaultPollInterval      = 30 * time.Second
	DefaultAssessmentTTL     = 5 * time.Minute
	DefaultBroadcastInterval = 5 * time.Second
)

// Config is the top-level configuration tree parsed from config.yaml.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Intake  IntakeConfig  `yaml:"intake"`
	Alerts  AlertsConfig  `yaml:"alerts"`
	Advisor AdvisorConfig `yaml:"advisor"`
}

// ServerConfig holds the HTTP/WebSocket serving settings.
type ServerConfig struct {
	// HTTPPort is the port the REST API and WebSocket hub listen on.
	HTTPPort int `yaml:"http_port"`

	// Auth configures how incoming REST/WebSocket clients authenticate.
	Auth AuthConfig `yaml:"auth"`

	// AssessmentTTL is how long a source's latest assessment remains live in
	// the store after its last update. Default: 5m.
	AssessmentTTL time.Duration `yaml:"assessment_ttl"`

	// BroadcastInterval is how often the WebSocket hub pushes the current
	// snapshot to connected clients. Default: 5s.
	BroadcastInterval time.Duration `yaml:"broadcast_interval"`
}

// AuthConfig controls client authentication.
type AuthConfig struct {
	// Mode is one of: apikey | none.
	Mode string `yaml:"mode"`

	// KeyEnv is the name of the environment variable that holds the expected
	// API key. Used when Mode == "apikey".
	KeyEnv string `yaml:"key_env"`

	// Header is the HTTP header name to read the key from.
	// Defaults to "x-api-key" if empty.
	Header string `yaml:"header"`
}

// Key returns the expected API key resolved from the environment.
func (a AuthConfig) Key() string {
	if a.KeyEnv == "" {
		return ""
	}
	return os.Getenv(a.KeyEnv)
}

// EffectiveHeader returns the configured header name, or the default "x-api-key".
func (a AuthConfig) EffectiveHeader() string {
	if a.Header != "" {
		return a.Header
	}
	return "x-api-key"
}

// IntakeConfig holds the instrumentation polling settings.
type IntakeConfig struct {
	// PollInterval controls how often each source endpoint is read.
	PollInterval time.Duration `yaml:"poll_interval"`

	// Sources is the list of monitored raw-water intakes.
	Sources []Source `yaml:"sources"`
}

// Source describes one monitored intake: a sensor endpoint exposing water
// chemistry gauges in Prometheus text exposition format, plus the softening
// targets to dose against.
type Source struct {
	// ID is a unique, human-readable identifier for this intake.
	ID string `yaml:"id"`

	// Endpoint is the full URL of the instrument's metrics endpoint.
	Endpoint string `yaml:"endpoint"`

	// Targets are the residual hardness targets for this intake, mg/L as CaCO3.
	Targets TargetConfig `yaml:"targets"`

	// Auth configures how the poller authenticates to this endpoint.
	Auth SourceAuthConfig `yaml:"auth"`

	// TLS holds optional TLS dial options.
	TLS TLSConfig `yaml:"tls"`
}

// TargetConfig holds the per-source softening residual targets.
type TargetConfig struct {
	CalciumMgL   float64 `yaml:"calcium_mg_l"`
	MagnesiumMgL float64 `yaml:"magnesium_mg_l"`
}

// SourceAuthConfig specifies the authentication mode for a sensor endpoint.
type SourceAuthConfig struct {
	// Mode is one of: apikey | bearer | none.
	Mode string `yaml:"mode"`

	// Header is the HTTP header name to send the key in — used with "apikey".
	Header string `yaml:"header"`
	// KeyEnv is the name of the environment variable that holds the key value.
	KeyEnv string `yaml:"key_env"`

	// TokenEnv is the name of the environment variable that holds the bearer
	// token — used with "bearer".
	TokenEnv string `yaml:"token_env"`
}

// Key returns the API key value resolved from the environment.
func (a SourceAuthConfig) Key() string {
	if a.KeyEnv == "" {
		return ""
	}
	return os.Getenv(a.KeyEnv)
}

// Token returns the bearer token value resolved from the environment.
func (a SourceAuthConfig) Token() string {
	if a.TokenEnv == "" {
		return ""
	}
	return os.Getenv(a.TokenEnv)
}

// TLSConfig holds per-source TLS dial options.
type TLSConfig struct {
	// InsecureSkipVerify disables TLS certificate verification. Only for lab
	// instruments with internal CAs.
	InsecureSkipVerify bool `yaml:"insecure_skip_verify"`
}

// AlertsConfig holds alerting rules and webhook delivery targets.
type AlertsConfig struct {
	Rules    []AlertRule     `yaml:"rules"`
	Webhooks []WebhookConfig `yaml:"webhooks"`
}

// AlertRule defines one threshold-based alert condition.
type AlertRule struct {
	// Name is the human-readable alert identifier, used as the deduplication key.
	Name string `yaml:"name"`

	// Condition is a simple expression: "lsi > 0.5", "ccpp > 10",
	// "lime_dose > 300", "tendency == scaling".
	Condition string `yaml:"condition"`

	// Severity is one of: critical | warning | info.
	Severity string `yaml:"severity"`

	// Cooldown suppresses re-fires for this duration after an alert fires.
	// Defaults to 15 minutes if zero.
	Cooldown time.Duration `yaml:"cooldown"`
}

// WebhookConfig defines one webhook delivery target.
type WebhookConfig struct {
	// Type is one of: teams | slack | http.
	Type string `yaml:"type"`

	// URLEnv is the name of the environment variable that holds the webhook URL.
	URLEnv string `yaml:"url_env"`
}

// URL returns the webhook URL resolved from the environment.
func (w WebhookConfig) URL() string {
	if w.URLEnv == "" {
		return ""
	}
	return os.Getenv(w.URLEnv)
}

// AdvisorConfig configures the remote-LLM advice generator.
type AdvisorConfig struct {
	// KeyEnv is the name of the environment variable holding the Anthropic API
	// key. When unset or empty, advice generation is disabled and the API
	// reports the credential as missing.
	KeyEnv string `yaml:"key_env"`
}

// Key returns the advisor credential resolved from the environment.
func (a AdvisorConfig) Key() string {
	if a.KeyEnv == "" {
		return ""
	}
	return os.Getenv(a.KeyEnv)
}

// Load reads and parses the YAML config file at path.
// Missing optional fields are filled with sensible defaults before validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %q: %w", path, err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// defaults returns a Config pre-populated with default values.
func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:          DefaultHTTPPort,
			AssessmentTTL:     DefaultAssessmentTTL,
			BroadcastInterval: DefaultBroadcastInterval,
		},
		Intake: IntakeConfig{
			PollInterval: DefaultPollInterval,
		},
	}
}

// validate checks required fields and structural constraints.
func validate(cfg *Config) error {
	if cfg.Server.HTTPPort <= 0 || cfg.Server.HTTPPort > 65535 {
		return fmt.Errorf("server.http_port %d is out of range [1, 65535]", cfg.Server.HTTPPort)
	}
	switch cfg.Server.Auth.Mode {
	case "apikey", "none", "":
	default:
		return fmt.Errorf("server.auth.mode %q unknown: want apikey|none", cfg.Server.Auth.Mode)
	}
	if cfg.Server.AssessmentTTL < 0 {
		return fmt.Errorf("server.assessment_ttl must not be negative")
	}
	if cfg.Server.BroadcastInterval <= 0 {
		return fmt.Errorf("server.broadcast_interval must be positive")
	}
	if cfg.Intake.PollInterval <= 0 {
		return fmt.Errorf("intake.poll_interval must be positive")
	}
	for i, src := range cfg.Intake.Sources {
		if src.ID == "" {
			return fmt.Errorf("intake.sources[%d]: id is required", i)
		}
		if src.Endpoint == "" {
			return fmt.Errorf("intake.sources[%d] %q: endpoint is required", i, src.ID)
		}
		if src.Targets.CalciumMgL < 0 || src.Targets.MagnesiumMgL < 0 {
			return fmt.Errorf("intake.sources[%d] %q: targets must not be negative", i, src.ID)
		}
		switch src.Auth.Mode {
		case "apikey", "bearer", "none", "":
		default:
			return fmt.Errorf("intake.sources[%d] %q: unknown auth mode %q", i, src.ID, src.Auth.Mode)
		}
	}
	for i, rule := range cfg.Alerts.Rules {
		if rule.Name == "" {
			return fmt.Errorf("alerts.rules[%d]: name is required", i)
		}
		if rule.Condition == "" {
			return fmt.Errorf("alerts.rules[%d] %q: condition is required", i, rule.Name)
		}
	}
	return nil
}
