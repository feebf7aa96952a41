package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	p := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return p
}

func TestLoad_Defaults(t *testing.T) {
	p := writeConfig(t, `server: {}
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.HTTPPort != DefaultHTTPPort {
		t.Errorf("http_port: got %d, want %d", cfg.Server.HTTPPort, DefaultHTTPPort)
	}
	if cfg.Server.AssessmentTTL != DefaultAssessmentTTL {
		t.Errorf("assessment_ttl: got %v, want %v", cfg.Server.AssessmentTTL, DefaultAssessmentTTL)
	}
	if cfg.Server.BroadcastInterval != DefaultBroadcastInterval {
		t.Errorf("broadcast_interval: got %v, want %v", cfg.Server.BroadcastInterval, DefaultBroadcastInterval)
	}
	if cfg.Intake.PollInterval != DefaultPollInterval {
		t.Errorf("poll_interval: got %v, want %v", cfg.Intake.PollInterval, DefaultPollInterval)
	}
}

func TestLoad_FullConfig(t *testing.T) {
	p := writeConfig(t, `server:
  http_port: 9091
  auth:
    mode: apikey
    key_env: LW_KEY
    header: x-lw-key
  assessment_ttl: 10m
intake:
  poll_interval: 15s
  sources:
    - id: intake-north
      endpoint: http://plc-north:9522/metrics
      targets:
        calcium_mg_l: 40
        magnesium_mg_l: 10
      auth:
        mode: bearer
        token_env: PLC_NORTH_TOKEN
alerts:
  rules:
    - name: scale-forming
      condition: "lsi > 0.5"
      severity: warning
      cooldown: 30m
  webhooks:
    - type: slack
      url_env: SLACK_WEBHOOK
advisor:
  key_env: ANTHROPIC_API_KEY
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.HTTPPort != 9091 {
		t.Errorf("http_port: got %d, want 9091", cfg.Server.HTTPPort)
	}
	if cfg.Server.Auth.EffectiveHeader() != "x-lw-key" {
		t.Errorf("header: got %q, want x-lw-key", cfg.Server.Auth.EffectiveHeader())
	}
	if cfg.Server.AssessmentTTL != 10*time.Minute {
		t.Errorf("assessment_ttl: got %v, want 10m", cfg.Server.AssessmentTTL)
	}
	if cfg.Intake.PollInterval != 15*time.Second {
		t.Errorf("poll_interval: got %v, want 15s", cfg.Intake.PollInterval)
	}
	if len(cfg.Intake.Sources) != 1 {
		t.Fatalf("sources: got %d, want 1", len(cfg.Intake.Sources))
	}
	src := cfg.Intake.Sources[0]
	if src.Targets.CalciumMgL != 40 || src.Targets.MagnesiumMgL != 10 {
		t.Errorf("targets: got %v/%v, want 40/10", src.Targets.CalciumMgL, src.Targets.MagnesiumMgL)
	}
	if src.Auth.Mode != "bearer" {
		t.Errorf("source auth mode: got %q, want bearer", src.Auth.Mode)
	}
	if len(cfg.Alerts.Rules) != 1 || cfg.Alerts.Rules[0].Cooldown != 30*time.Minute {
		t.Errorf("alert rule not parsed: %+v", cfg.Alerts.Rules)
	}
	if cfg.Advisor.KeyEnv != "ANTHROPIC_API_KEY" {
		t.Errorf("advisor.key_env: got %q", cfg.Advisor.KeyEnv)
	}
}

func TestLoad_DefaultHeader(t *testing.T) {
	p := writeConfig(t, `server:
  auth:
    mode: apikey
    key_env: K
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if h := cfg.Server.Auth.EffectiveHeader(); h != "x-api-key" {
		t.Errorf("EffectiveHeader: got %q, want x-api-key", h)
	}
}

func TestLoad_EnvResolution(t *testing.T) {
	t.Setenv("TEST_LW_KEY", "supersecret")
	t.Setenv("TEST_LW_ANTHROPIC", "sk-ant-test")
	p := writeConfig(t, `server:
  auth:
    mode: apikey
    key_env: TEST_LW_KEY
advisor:
  key_env: TEST_LW_ANTHROPIC
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if k := cfg.Server.Auth.Key(); k != "supersecret" {
		t.Errorf("Key(): got %q, want supersecret", k)
	}
	if k := cfg.Advisor.Key(); k != "sk-ant-test" {
		t.Errorf("Advisor.Key(): got %q, want sk-ant-test", k)
	}
}

func TestLoad_Invalid(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"unknown auth mode", "server:\n  auth:\n    mode: oauth2\n"},
		{"source without endpoint", "intake:\n  sources:\n    - id: a\n"},
		{"source without id", "intake:\n  sources:\n    - endpoint: http://x/metrics\n"},
		{"negative target", "intake:\n  sources:\n    - id: a\n      endpoint: http://x/metrics\n      targets:\n        calcium_mg_l: -1\n"},
		{"rule without condition", "alerts:\n  rules:\n    - name: r\n"},
		{"bad port", "server:\n  http_port: 70000\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tc.yaml)); err == nil {
				t.Errorf("expected error, got nil")
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/path/config.yaml"); err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
}
