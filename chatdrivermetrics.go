package pandemico

import (
	"context"
	"time"
	"unicode"

	"github.com/slack-go/slack"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// chatDriverWithTelemetry implements ChatDriver interface with all methods wrapped
// with open telemetry metrics
type chatDriverWithTelemetry struct {
	base                 ChatDriver
	attrs                metric.MeasurementOption
	methodCounters       map[string]metric.Int64Counter
	errCounters          map[string]metric.Int64Counter
	methodTimeHistograms map[string]metric.Int64Histogram
}

var chatDriverMethods = []string{"ListMembers", "OpenViewContext", "PostMessageContext"}

// newChatDriverWithTelemetry returns an instance of the ChatDriver decorated with open telemetry timing and count metrics
func newChatDriverWithTelemetry(base ChatDriver, name string, meter metric.Meter) (d chatDriverWithTelemetry, err error) {
	d.base = base
	d.attrs = metric.WithAttributes(attribute.String("name", name))

	if d.methodCounters, err = newChatDriverMethodCounters("Calls", meter); err != nil {
		return d, err
	}

	if d.errCounters, err = newChatDriverMethodCounters("Errors", meter); err != nil {
		return d, err
	}

	d.methodTimeHistograms, err = newChatDriverMethodTimeHistograms(meter)
	return d, err
}

func newChatDriverMethodTimeHistograms(meter metric.Meter) (histograms map[string]metric.Int64Histogram, err error) {
	histograms = make(map[string]metric.Int64Histogram)

	for _, m := range chatDriverMethods {
		if histograms[m], err = meter.Int64Histogram(instrumentName(m, "ProcessingTimeMillis"), metric.WithUnit("ms")); err != nil {
			return nil, err
		}
	}

	return histograms, nil
}

func newChatDriverMethodCounters(suffix string, meter metric.Meter) (counters map[string]metric.Int64Counter, err error) {
	counters = make(map[string]metric.Int64Counter)

	for _, m := range chatDriverMethods {
		if counters[m], err = meter.Int64Counter(instrumentName(m, suffix)); err != nil {
			return nil, err
		}
	}

	return counters, nil
}

// instrumentName returns the name of a chat driver instrument (i.e. chatDriver_PostMessageContext_Calls)
func instrumentName(method string, suffix string) string {
	n := []rune("ChatDriver_" + method + "_" + suffix)
	n[0] = unicode.ToLower(n[0])

	return string(n)
}

// record records the call of a method along with its latency and error, if any
func (_d chatDriverWithTelemetry) record(ctx context.Context, method string, since time.Time, err error) {
	if err != nil {
		_d.errCounters[method].Add(ctx, 1, _d.attrs)
	}

	_d.methodCounters[method].Add(ctx, 1, _d.attrs)
	_d.methodTimeHistograms[method].Record(ctx, time.Since(since).Milliseconds(), _d.attrs)
}

// ListMembers implements ChatDriver
func (_d chatDriverWithTelemetry) ListMembers(ctx context.Context) (members []slack.User, err error) {
	_since := time.Now()
	defer func() {
		_d.record(ctx, "ListMembers", _since, err)
	}()
	return _d.base.ListMembers(ctx)
}

// OpenViewContext implements ChatDriver
func (_d chatDriverWithTelemetry) OpenViewContext(ctx context.Context, triggerID string, view slack.ModalViewRequest) (resp *slack.ViewResponse, err error) {
	_since := time.Now()
	defer func() {
		_d.record(ctx, "OpenViewContext", _since, err)
	}()
	return _d.base.OpenViewContext(ctx, triggerID, view)
}

// PostMessageContext implements ChatDriver
func (_d chatDriverWithTelemetry) PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (rChannelID string, rTimestamp string, err error) {
	_since := time.Now()
	defer func() {
		_d.record(ctx, "PostMessageContext", _since, err)
	}()
	return _d.base.PostMessageContext(ctx, channelID, options...)
}
