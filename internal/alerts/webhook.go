package alerts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
)

// deliver sends a to every configured webhook target. Delivery errors are
// logged and never surface to the evaluation path.
func (e *Engine) deliver(a *Alert) {
	for _, wh := range e.webhooks {
		url := wh.URL()
		if url == "" {
			continue
		}

		var err error
		switch wh.Type {
		case "slack":
			err = e.post(url, slackPayload(a))
		case "teams":
			err = e.post(url, teamsPayload(a))
		case "http":
			err = e.post(url, map[string]interface{}{"alert": a})
		default:
			slog.Warn("alerts: unknown webhook type — skipping", "type", wh.Type)
			continue
		}

		if err != nil {
			slog.Error("alerts: webhook delivery failed",
				"type", wh.Type,
				"rule", a.RuleName,
				"err", err,
			)
		} else {
			slog.Debug("alerts: webhook delivered",
				"type", wh.Type,
				"rule", a.RuleName,
				"state", a.State,
			)
		}
	}
}

// chemistryLine is the one-line stability summary shared by the chat-style
// webhook bodies.
func chemistryLine(a *Alert) string {
	return fmt.Sprintf("%s on %s: value %.2f, tendency %s, LSI %+.2f, CCPP %.1f mg/L as CaCO3",
		a.RuleName, a.SourceID, a.Value, a.Tendency, a.LSI, a.CCPP)
}

func slackPayload(a *Alert) map[string]string {
	verb := "fired"
	if a.State == "resolved" {
		verb = "resolved"
	}
	return map[string]string{
		"text": fmt.Sprintf("%s limewatch %s — %s", severityLabel(a.Severity), verb, chemistryLine(a)),
	}
}

func teamsPayload(a *Alert) map[string]interface{} {
	facts := []map[string]string{
		{"name": "Source", "value": a.SourceID},
		{"name": "State", "value": a.State},
		{"name": "Value", "value": fmt.Sprintf("%.2f", a.Value)},
		{"name": "Tendency", "value": a.Tendency},
		{"name": "LSI", "value": fmt.Sprintf("%+.2f", a.LSI)},
		{"name": "CCPP", "value": fmt.Sprintf("%.1f mg/L as CaCO3", a.CCPP)},
	}
	return map[string]interface{}{
		"@type":      "MessageCard",
		"@context":   "http://schema.org/extensions",
		"themeColor": severityColor(a.Severity),
		"summary":    a.RuleName,
		"title":      fmt.Sprintf("limewatch: %s %s on %s", a.RuleName, a.State, a.SourceID),
		"text":       a.Message,
		"sections":   []map[string]interface{}{{"facts": facts}},
	}
}

func (e *Engine) post(url string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("http post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook returned HTTP %d", resp.StatusCode)
	}
	return nil
}

func severityLabel(s string) string {
	switch s {
	case "critical":
		return "[CRITICAL]"
	case "warning":
		return "[WARNING]"
	default:
		return "[INFO]"
	}
}

func severityColor(s string) string {
	switch s {
	case "critical":
		return "FF4F6A"
	case "warning":
		return "FFAB40"
	default:
		return "00D4FF"
	}
}
