package telemetry

import (
	"context"
	"fmt"

	"github.com/alexanderramin/focuslog/internal/service"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const dayReportUseCase = "day-report"

// Recorder turns service use-case events into metrics. It satisfies
// service.UseCaseObserver.
type Recorder struct {
	useCaseDuration metric.Float64Histogram
	reportsTotal    metric.Int64Counter
	daySessions     metric.Int64Histogram
	focusValueTotal metric.Float64Counter
}

func NewRecorder(meter metric.Meter) (*Recorder, error) {
	useCaseDuration, err := meter.Float64Histogram(
		"focuslog_use_case_duration_ms",
		metric.WithDescription("Service use-case latency"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating duration histogram: %w", err)
	}

	reportsTotal, err := meter.Int64Counter(
		"focuslog_day_reports_total",
		metric.WithDescription("Day reports computed"),
		metric.WithUnit("{report}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating reports counter: %w", err)
	}

	daySessions, err := meter.Int64Histogram(
		"focuslog_day_sessions",
		metric.WithDescription("Sessions per reviewed day"),
		metric.WithUnit("{session}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating sessions histogram: %w", err)
	}

	focusValueTotal, err := meter.Float64Counter(
		"focuslog_day_focus_value_total",
		metric.WithDescription("Summed session duration values across reports"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating focus value counter: %w", err)
	}

	return &Recorder{
		useCaseDuration: useCaseDuration,
		reportsTotal:    reportsTotal,
		daySessions:     daySessions,
		focusValueTotal: focusValueTotal,
	}, nil
}

func (r *Recorder) ObserveUseCase(ctx context.Context, event service.UseCaseEvent) {
	attrs := []attribute.KeyValue{
		attribute.String("use_case", event.Name),
		attribute.Bool("success", event.Success),
	}
	r.useCaseDuration.Record(ctx, float64(event.Duration.Microseconds())/1000, metric.WithAttributes(attrs...))

	if event.Name != dayReportUseCase {
		return
	}
	if tz, ok := event.Fields["timezone"].(string); ok {
		attrs = append(attrs, attribute.String("timezone", tz))
	}
	opt := metric.WithAttributes(attrs...)
	r.reportsTotal.Add(ctx, 1, opt)
	if !event.Success {
		return
	}
	if n, ok := event.Fields["sessions"].(int); ok {
		r.daySessions.Record(ctx, int64(n), opt)
	}
	if total, ok := event.Fields["total"].(float64); ok {
		r.focusValueTotal.Add(ctx, total, opt)
	}
}
