// Package observe provides the chronicler's OpenTelemetry metrics and the
// Prometheus bridge used to scrape them.
//
// Tests should build a [Metrics] with [NewMetrics] and their own
// [metric.MeterProvider] rather than rely on [DefaultMetrics].
package observe

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/talgya/chronicler"

// Metrics holds the metric instruments recorded around chronicle compilation.
type Metrics struct {
	// CompileDuration tracks the wall time of a single compilation, in seconds.
	CompileDuration metric.Float64Histogram

	// Compilations counts compile requests. Use with attribute.String("outcome", ...).
	Compilations metric.Int64Counter

	// ChaptersCompiled counts chapters emitted, mythological ones included.
	ChaptersCompiled metric.Int64Counter

	// EntriesNarrated counts lore-worthy events rendered into chronicles.
	EntriesNarrated metric.Int64Counter

	// CacheHits counts compilations served from a caller's chronicle cache.
	CacheHits metric.Int64Counter
}

var compileBuckets = []float64{
	0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 1,
}

// NewMetrics creates every instrument on the given provider.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.CompileDuration, err = m.Float64Histogram("chronicler.compile.duration",
		metric.WithDescription("Latency of compiling one chronicle."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(compileBuckets...),
	); err != nil {
		return nil, err
	}
	if met.Compilations, err = m.Int64Counter("chronicler.compilations",
		metric.WithDescription("Chronicle compile requests by outcome."),
	); err != nil {
		return nil, err
	}
	if met.ChaptersCompiled, err = m.Int64Counter("chronicler.chapters",
		metric.WithDescription("Chapters emitted across all chronicles."),
	); err != nil {
		return nil, err
	}
	if met.EntriesNarrated, err = m.Int64Counter("chronicler.entries",
		metric.WithDescription("Lore-worthy events narrated across all chronicles."),
	); err != nil {
		return nil, err
	}
	if met.CacheHits, err = m.Int64Counter("chronicler.cache.hits",
		metric.WithDescription("Chronicles served from cache."),
	); err != nil {
		return nil, err
	}
	return met, nil
}

// RecordCompile records one finished compilation. m may be nil.
func (m *Metrics) RecordCompile(ctx context.Context, elapsed time.Duration, outcome string, chapters, entries int) {
	if m == nil {
		return
	}
	m.CompileDuration.Record(ctx, elapsed.Seconds())
	m.Compilations.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	m.ChaptersCompiled.Add(ctx, int64(chapters))
	m.EntriesNarrated.Add(ctx, int64(entries))
}

// RecordCacheHit records a chronicle served from cache. m may be nil.
func (m *Metrics) RecordCacheHit(ctx context.Context) {
	if m == nil {
		return
	}
	m.CacheHits.Add(ctx, 1)
	m.Compilations.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "cached")))
}

var (
	defaultOnce    sync.Once
	defaultMetrics *Metrics
)

// DefaultMetrics returns instruments registered on the global meter provider.
// Call [InitProvider] first so the global provider is the Prometheus bridge.
func DefaultMetrics() *Metrics {
	defaultOnce.Do(func() {
		m, err := NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: default metrics: " + err.Error())
		}
		defaultMetrics = m
	})
	return defaultMetrics
}
