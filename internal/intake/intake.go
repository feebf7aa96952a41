package intake

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"

	"github.com/limewatch/limewatch/internal/config"
	"github.com/limewatch/limewatch/internal/softening"
)

const defaultReadTimeout = 10 * time.Second

// Gauge names the instrumentation is expected to expose. Concentrations match
// the engine's units: elemental mg/L for calcium and magnesium, mg/L as CaCO3
// for alkalinity.
const (
	metricPH           = "water_ph"
	metricCalcium      = "water_calcium_mg_per_l"
	metricMagnesium    = "water_magnesium_mg_per_l"
	metricAlkalinity   = "water_alkalinity_mg_per_l"
	metricConductivity = "water_conductivity_us_per_cm"
	metricSulphate     = "water_sulphate_mg_per_l"
	metricTemperature  = "water_temperature_c"
)

// requiredMetrics must all be present in a scrape for a sample to be built.
// Sulphate and conductivity instruments are not installed at every intake, so
// those two gauges are optional and default to zero.
var requiredMetrics = []string{
	metricPH, metricCalcium, metricMagnesium, metricAlkalinity, metricTemperature,
}

// Reader polls one intake's instrumentation endpoint and assembles
// RawWaterSamples from the exposed gauges plus the configured targets.
type Reader struct {
	src    config.Source
	client *http.Client
}

// New builds a Reader for the given source. The HTTP client is constructed
// once and reused across polls.
func New(src config.Source) (*Reader, error) {
	client, err := buildHTTPClient(src)
	if err != nil {
		return nil, fmt.Errorf("intake %q: build http client: %w", src.ID, err)
	}
	return &Reader{src: src, client: client}, nil
}

// SourceID returns the configured identifier for this intake.
func (r *Reader) SourceID() string { return r.src.ID }

// Read fetches the endpoint, parses the exposition text, and returns a sample
// ready for the softening engine. A connectivity, parse, or missing-gauge
// problem is returned as an error; the caller keeps the previous assessment.
func (r *Reader) Read(ctx context.Context) (softening.RawWaterSample, error) {
	mfs, err := fetchMetrics(ctx, r.client, r.src.Endpoint)
	if err != nil {
		return softening.RawWaterSample{}, fmt.Errorf("intake %q: %w", r.src.ID, err)
	}

	for _, name := range requiredMetrics {
		if _, ok := gaugeValue(mfs, name); !ok {
			return softening.RawWaterSample{}, fmt.Errorf("intake %q: gauge %s missing from scrape", r.src.ID, name)
		}
	}

	ph, _ := gaugeValue(mfs, metricPH)
	ca, _ := gaugeValue(mfs, metricCalcium)
	mg, _ := gaugeValue(mfs, metricMagnesium)
	alk, _ := gaugeValue(mfs, metricAlkalinity)
	temp, _ := gaugeValue(mfs, metricTemperature)
	cond, _ := gaugeValue(mfs, metricConductivity)
	sulphate, _ := gaugeValue(mfs, metricSulphate)

	return softening.RawWaterSample{
		PH:                 ph,
		CalciumMgL:         ca,
		MagnesiumMgL:       mg,
		AlkalinityMgL:      alk,
		ConductivityUScm:   cond,
		SulphateMgL:        sulphate,
		TemperatureC:       temp,
		TargetCalciumMgL:   r.src.Targets.CalciumMgL,
		TargetMagnesiumMgL: r.src.Targets.MagnesiumMgL,
	}, nil
}

// authRoundTripper injects authentication headers into every outgoing request.
type authRoundTripper struct {
	base http.RoundTripper
	src  config.Source
}

func (t *authRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	switch t.src.Auth.Mode {
	case "apikey":
		req = req.Clone(req.Context())
		header := t.src.Auth.Header
		if header == "" {
			header = "x-api-key"
		}
		req.Header.Set(header, t.src.Auth.Key())
	case "bearer":
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+t.src.Auth.Token())
	}
	return t.base.RoundTrip(req)
}

// buildHTTPClient validates the source's endpoint and constructs an
// http.Client for its auth and TLS settings. A relative or non-http(s)
// endpoint is a config mistake that would otherwise surface only as an
// opaque poll failure, so it is rejected here.
func buildHTTPClient(src config.Source) (*http.Client, error) {
	u, err := url.Parse(src.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("endpoint %q: %w", src.Endpoint, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("endpoint %q: want an absolute http(s) URL", src.Endpoint)
	}

	tlsCfg := &tls.Config{
		InsecureSkipVerify: src.TLS.InsecureSkipVerify, //nolint:gosec // user-configured
	}
	transport := &authRoundTripper{
		base: &http.Transport{TLSClientConfig: tlsCfg},
		src:  src,
	}
	return &http.Client{
		Transport: transport,
		Timeout:   defaultReadTimeout,
	}, nil
}

// fetchMetrics performs an HTTP GET to url and returns parsed metric families.
func fetchMetrics(ctx context.Context, client *http.Client, url string) (map[string]*dto.MetricFamily, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", string(expfmt.NewFormat(expfmt.TypeTextPlain)))

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http get: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return parseMetrics(resp.Body)
}

// parseMetrics decodes a Prometheus text exposition from rd into metric
// families. A partial result with a non-fatal parse warning still succeeds.
func parseMetrics(rd io.Reader) (map[string]*dto.MetricFamily, error) {
	var parser expfmt.TextParser
	mfs, err := parser.TextToMetricFamilies(rd)
	if err != nil && len(mfs) == 0 {
		return nil, fmt.Errorf("parse exposition text: %w", err)
	}
	return mfs, nil
}

// gaugeValue extracts the value of the first metric in the named family.
// Sensor endpoints expose one unlabeled series per gauge; gauge, untyped, and
// counter encodings are all accepted.
func gaugeValue(mfs map[string]*dto.MetricFamily, name string) (float64, bool) {
	mf := mfs[name]
	if mf == nil || len(mf.GetMetric()) == 0 {
		return 0, false
	}
	m := mf.GetMetric()[0]
	switch {
	case m.Gauge != nil:
		return m.Gauge.GetValue(), true
	case m.Untyped != nil:
		return m.Untyped.GetValue(), true
	case m.Counter != nil:
		return m.Counter.GetValue(), true
	}
	return 0, false
}
