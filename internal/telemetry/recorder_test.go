package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/focuslog/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newTestRecorder(t *testing.T) (*Recorder, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	rec, err := NewRecorder(provider.Meter("test"))
	require.NoError(t, err)
	return rec, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Aggregation {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	out := map[string]metricdata.Aggregation{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m.Data
		}
	}
	return out
}

func TestRecorder_DayReport(t *testing.T) {
	rec, reader := newTestRecorder(t)
	var _ service.UseCaseObserver = rec

	for _, total := range []float64{90, 30} {
		rec.ObserveUseCase(context.Background(), service.UseCaseEvent{
			Name:     "day-report",
			Duration: 3 * time.Millisecond,
			Success:  true,
			Fields:   map[string]any{"sessions": 2, "total": total, "timezone": "Asia/Tokyo"},
		})
	}

	got := collect(t, reader)

	reports, ok := got["focuslog_day_reports_total"].(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, reports.DataPoints, 1)
	assert.Equal(t, int64(2), reports.DataPoints[0].Value)

	focus, ok := got["focuslog_day_focus_value_total"].(metricdata.Sum[float64])
	require.True(t, ok)
	require.Len(t, focus.DataPoints, 1)
	assert.Equal(t, 120.0, focus.DataPoints[0].Value)

	sessions, ok := got["focuslog_day_sessions"].(metricdata.Histogram[int64])
	require.True(t, ok)
	require.Len(t, sessions.DataPoints, 1)
	assert.Equal(t, uint64(2), sessions.DataPoints[0].Count)
	assert.Equal(t, int64(4), sessions.DataPoints[0].Sum)
}

func TestRecorder_FailedReportCountsOnly(t *testing.T) {
	rec, reader := newTestRecorder(t)
	rec.ObserveUseCase(context.Background(), service.UseCaseEvent{
		Name:    "day-report",
		Success: false,
		Fields:  map[string]any{"timezone": "UTC"},
	})

	got := collect(t, reader)
	assert.Contains(t, got, "focuslog_day_reports_total")
	assert.NotContains(t, got, "focuslog_day_sessions")
	assert.NotContains(t, got, "focuslog_day_focus_value_total")
}

func TestRecorder_OtherUseCasesOnlyLatency(t *testing.T) {
	rec, reader := newTestRecorder(t)
	rec.ObserveUseCase(context.Background(), service.UseCaseEvent{Name: "log-session", Success: true})

	got := collect(t, reader)
	assert.Contains(t, got, "focuslog_use_case_duration_ms")
	assert.NotContains(t, got, "focuslog_day_reports_total")
}

func TestNewExporter_Disabled(t *testing.T) {
	_, err := NewExporter(context.Background(), Config{})
	require.Error(t, err)
	assert.False(t, Config{}.Enabled())
	assert.True(t, Config{Endpoint: "localhost:4317"}.Enabled())
}
