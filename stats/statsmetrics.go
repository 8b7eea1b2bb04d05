package stats

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// FetcherWithTelemetry implements Fetcher with calls wrapped with open telemetry metrics
type FetcherWithTelemetry struct {
	base               Fetcher
	attrs              metric.MeasurementOption
	callCounter        metric.Int64Counter
	errCounter         metric.Int64Counter
	fetchTimeHistogram metric.Int64Histogram
}

// NewFetcherWithTelemetry returns an instance of the Fetcher decorated with open telemetry timing and count metrics
func NewFetcherWithTelemetry(base Fetcher, name string, meter metric.Meter) (f *FetcherWithTelemetry, err error) {
	f = new(FetcherWithTelemetry)
	f.base = base
	f.attrs = metric.WithAttributes(attribute.String("name", name))

	if f.callCounter, err = meter.Int64Counter("fetcher_Fetch_Calls"); err != nil {
		return nil, err
	}

	if f.errCounter, err = meter.Int64Counter("fetcher_Fetch_Errors"); err != nil {
		return nil, err
	}

	if f.fetchTimeHistogram, err = meter.Int64Histogram("fetcher_Fetch_ProcessingTimeMillis", metric.WithUnit("ms")); err != nil {
		return nil, err
	}

	return f, nil
}

// Fetch implements Fetcher
func (f *FetcherWithTelemetry) Fetch(ctx context.Context, countryCode string) (snapshot *Snapshot, err error) {
	since := time.Now()
	defer func() {
		if err != nil {
			f.errCounter.Add(ctx, 1, f.attrs)
		}

		f.callCounter.Add(ctx, 1, f.attrs)
		f.fetchTimeHistogram.Record(ctx, time.Since(since).Milliseconds(), f.attrs)
	}()

	return f.base.Fetch(ctx, countryCode)
}
