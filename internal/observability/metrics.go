// Package observability covers the server's telemetry: Loki log shipping and
// OpenTelemetry metrics. Both are optional; without configuration every call
// degrades to a no-op.
package observability

import (
	"context"
	"log"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "mcpgithub/server"

// Metrics holds the server's OpenTelemetry instruments.
type Metrics struct {
	toolCalls    metric.Int64Counter
	toolDuration metric.Float64Histogram
}

// NewMetrics creates the instrument set on the given provider.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	meter := mp.Meter(meterName)

	toolCalls, err := meter.Int64Counter("mcp.tool.calls",
		metric.WithDescription("Number of tool calls, by tool and status"))
	if err != nil {
		return nil, err
	}

	toolDuration, err := meter.Float64Histogram("mcp.tool.duration",
		metric.WithDescription("Tool call duration"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}

	return &Metrics{toolCalls: toolCalls, toolDuration: toolDuration}, nil
}

var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// Default returns the process-wide Metrics instance, built lazily on the
// global meter provider.
func Default() *Metrics {
	defaultMetricsOnce.Do(func() {
		m, err := NewMetrics(otel.GetMeterProvider())
		if err != nil {
			log.Printf("metrics init failed: %v", err)
			return
		}
		defaultMetrics = m
	})
	return defaultMetrics
}

// ObserveToolCall records one completed tool call. Safe on a nil receiver.
func (m *Metrics) ObserveToolCall(ctx context.Context, tool, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("tool", tool),
		attribute.String("status", status),
	)
	m.toolCalls.Add(ctx, 1, attrs)
	m.toolDuration.Record(ctx, elapsed.Seconds(), attrs)
}
