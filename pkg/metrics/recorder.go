package metrics

import (
	"context"
	"errors"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/dmitrymomot/rpckit/route"
	"github.com/dmitrymomot/rpckit/rpc"
)

// Recorder records route outcomes and remote call outcomes.
// It implements route.Observer and rpc.Observer.
type Recorder struct {
	routeRequests metric.Int64Counter
	routeDuration metric.Float64Histogram
	callTotal     metric.Int64Counter
	callDuration  metric.Float64Histogram
}

// NewRecorder creates the instruments on meter.
func NewRecorder(meter metric.Meter) (*Recorder, error) {
	var (
		r    Recorder
		errs []error
		err  error
	)

	r.routeRequests, err = meter.Int64Counter("rpckit.route.requests",
		metric.WithDescription("Requests answered by routes, by final status."))
	errs = append(errs, err)

	r.routeDuration, err = meter.Float64Histogram("rpckit.route.duration",
		metric.WithDescription("Time spent answering a request."),
		metric.WithUnit("s"))
	errs = append(errs, err)

	r.callTotal, err = meter.Int64Counter("rpckit.client.calls",
		metric.WithDescription("Remote calls by outcome."))
	errs = append(errs, err)

	r.callDuration, err = meter.Float64Histogram("rpckit.client.duration",
		metric.WithDescription("Time spent on a remote call."),
		metric.WithUnit("s"))
	errs = append(errs, err)

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return &r, nil
}

// ObserveRoute implements route.Observer.
func (r *Recorder) ObserveRoute(ctx context.Context, d route.Descriptor, status int, elapsed time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("route", d.Path),
		attribute.String("method", d.Method.String()),
		attribute.String("status", strconv.Itoa(status)),
	)
	r.routeRequests.Add(ctx, 1, attrs)
	r.routeDuration.Record(ctx, elapsed.Seconds(), attrs)
}

// ObserveCall implements rpc.Observer. Calls without a response are
// recorded with status "0".
func (r *Recorder) ObserveCall(ctx context.Context, key route.Key, status int, elapsed time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	attrs := metric.WithAttributes(
		attribute.String("route", key.Path),
		attribute.String("method", key.Method.String()),
		attribute.String("status", strconv.Itoa(status)),
		attribute.String("outcome", outcome),
	)
	r.callTotal.Add(ctx, 1, attrs)
	r.callDuration.Record(ctx, elapsed.Seconds(), attrs)
}

var (
	_ route.Observer = (*Recorder)(nil)
	_ rpc.Observer   = (*Recorder)(nil)
)
