package pandemico

import (
	"context"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"time"
)

const (
	pushReasonMention   = "mention"
	pushReasonSubscribe = "subscribe"
	pushReasonChange    = "change"
)

// instrumenter holds data for core instrumentation
type instrumenter struct {
	appName     string
	coreMetrics coreMetrics
	meter       metric.Meter
}

// coreMetrics holds core pandemico metrics
type coreMetrics struct {
	eventsReceived       metric.Int64Counter
	interactionsReceived metric.Int64Counter
	pushes               metric.Int64Counter
	pushFailures         metric.Int64Counter
	pushLatencyMillis    metric.Int64Histogram
	healthChecksSent     metric.Int64Counter
}

// newInstrumenter creates a new core instrumenter
func newInstrumenter(appName string, meter metric.Meter) (ins *instrumenter, err error) {
	ins = new(instrumenter)
	ins.appName = appName
	ins.meter = meter

	cm := &ins.coreMetrics
	if cm.eventsReceived, err = meter.Int64Counter("eventsReceived"); err != nil {
		return nil, err
	}

	if cm.interactionsReceived, err = meter.Int64Counter("interactionsReceived"); err != nil {
		return nil, err
	}

	if cm.pushes, err = meter.Int64Counter("pushes"); err != nil {
		return nil, err
	}

	if cm.pushFailures, err = meter.Int64Counter("pushFailures"); err != nil {
		return nil, err
	}

	if cm.pushLatencyMillis, err = meter.Int64Histogram("pushLatencyMillis", metric.WithUnit("ms")); err != nil {
		return nil, err
	}

	if cm.healthChecksSent, err = meter.Int64Counter("healthChecksSent"); err != nil {
		return nil, err
	}

	return ins, nil
}

// attrs returns the measurement attributes for the given key/value pairs, always including the app name
func (ins *instrumenter) attrs(kv ...attribute.KeyValue) metric.MeasurementOption {
	return metric.WithAttributes(append([]attribute.KeyValue{attribute.String("name", ins.appName)}, kv...)...)
}

func (ins *instrumenter) eventReceived(ctx context.Context, eventType string) {
	ins.coreMetrics.eventsReceived.Add(ctx, 1, ins.attrs(attribute.String("eventType", eventType)))
}

func (ins *instrumenter) interactionReceived(ctx context.Context, interactionType string) {
	ins.coreMetrics.interactionsReceived.Add(ctx, 1, ins.attrs(attribute.String("interactionType", interactionType)))
}

// pushed records a push of country data along with its outcome and latency
func (ins *instrumenter) pushed(ctx context.Context, reason string, since time.Time, err error) {
	attrs := ins.attrs(attribute.String("reason", reason))
	if err != nil {
		ins.coreMetrics.pushFailures.Add(ctx, 1, attrs)
	}

	ins.coreMetrics.pushes.Add(ctx, 1, attrs)
	ins.coreMetrics.pushLatencyMillis.Record(ctx, time.Since(since).Milliseconds(), attrs)
}

func (ins *instrumenter) healthCheckSent(ctx context.Context) {
	ins.coreMetrics.healthChecksSent.Add(ctx, 1, ins.attrs())
}
