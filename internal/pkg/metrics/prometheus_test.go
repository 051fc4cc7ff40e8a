package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sghaida/eyeosee/internal/pkg/logging"
)

func enabledConfig(url string) Config {
	return Config{
		Enabled:        true,
		PushgatewayURL: url,
		JobName:        "eyeosee-test",
		Timeout:        5 * time.Second,
		InstanceLabel:  "test",
	}
}

// TestPrometheusCollector_RecordGenerate verifies counters and gauges per run.
func TestPrometheusCollector_RecordGenerate(t *testing.T) {
	c, err := NewPrometheusCollector(enabledConfig("http://localhost:9091"), logging.NewNopLogger())
	require.NoError(t, err)

	c.RecordGenerate(GenerateRun{Output: "wiring/container.gen.go", Files: 5, Items: 4, Duration: 20 * time.Millisecond, Changed: true, Success: true})
	c.RecordGenerate(GenerateRun{Output: "wiring/container.gen.go", Files: 5, Items: 4, Duration: 10 * time.Millisecond, Success: true})
	c.RecordGenerate(GenerateRun{Output: "wiring/container.gen.go", Duration: time.Millisecond})

	assert.Equal(t, 1.0, testutil.ToFloat64(c.runs.WithLabelValues("wiring/container.gen.go", "success", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.runs.WithLabelValues("wiring/container.gen.go", "success", "false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.runs.WithLabelValues("wiring/container.gen.go", "error", "false")))
	assert.Equal(t, 4.0, testutil.ToFloat64(c.items.WithLabelValues("wiring/container.gen.go")))
	assert.Equal(t, 5.0, testutil.ToFloat64(c.files.WithLabelValues("wiring/container.gen.go")))

	families, err := c.GetRegistry().Gather()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["eyeosee_generate_duration_seconds"])
	assert.True(t, names["eyeosee_generate_runs_total"])
}

// TestPrometheusCollector_Push verifies metrics are PUT to the Pushgateway job path.
func TestPrometheusCollector_Push(t *testing.T) {
	var method, path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		path = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c, err := NewPrometheusCollector(enabledConfig(server.URL), logging.NewNopLogger())
	require.NoError(t, err)
	c.RecordGenerate(GenerateRun{Output: "out.go", Success: true})

	require.NoError(t, c.Push(context.Background()))
	assert.Equal(t, http.MethodPut, method)
	assert.True(t, strings.Contains(path, "/job/eyeosee-test"), path)
	assert.True(t, strings.Contains(path, "/instance/test"), path)
}

// TestPrometheusCollector_PushFailureIsSwallowed verifies push errors are not returned.
func TestPrometheusCollector_PushFailureIsSwallowed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c, err := NewPrometheusCollector(enabledConfig(server.URL), logging.NewNopLogger())
	require.NoError(t, err)
	assert.NoError(t, c.Push(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, c.Push(ctx))
}

// TestSanitizeLabel covers control characters and truncation.
func TestSanitizeLabel(t *testing.T) {
	assert.Equal(t, "a_b", sanitizeLabel("a\nb"))
	assert.Len(t, []rune(sanitizeLabel(strings.Repeat("é", 200))), maxLabelLength)
}

// TestNewCollector covers the implementation choice and validation.
func TestNewCollector(t *testing.T) {
	c, err := NewCollector(DefaultConfig(), logging.NewNopLogger())
	require.NoError(t, err)
	assert.IsType(t, &NopCollector{}, c)
	c.RecordGenerate(GenerateRun{})
	assert.NoError(t, c.Push(context.Background()))

	c, err = NewCollector(enabledConfig("http://localhost:9091"), logging.NewNopLogger())
	require.NoError(t, err)
	assert.IsType(t, &PrometheusCollector{}, c)

	tests := []struct {
		name string
		cfg  Config
		want error
	}{
		{"missing url", Config{Enabled: true, JobName: "j", Timeout: time.Second}, ErrPushgatewayURLRequired},
		{"bad url", Config{Enabled: true, PushgatewayURL: "not-a-url", JobName: "j", Timeout: time.Second}, ErrPushgatewayURLInvalid},
		{"missing job", Config{Enabled: true, PushgatewayURL: "http://h:1", Timeout: time.Second}, ErrJobNameRequired},
		{"bad timeout", Config{Enabled: true, PushgatewayURL: "http://h:1", JobName: "j"}, ErrInvalidTimeout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCollector(tt.cfg, logging.NewNopLogger())
			require.ErrorIs(t, err, tt.want)
		})
	}
}
