package telemetry

import (
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	meterName = "github.com/KirkDiggler/grubvote"
)

// Metrics holds all the OpenTelemetry metric instruments
type Metrics struct {
	// Session metrics
	SessionsCreatedTotal   metric.Int64Counter
	SessionsDestroyedTotal metric.Int64Counter
	ActiveSessions         metric.Int64UpDownCounter

	// Voting metrics
	VotingRoundsTotal      metric.Int64Counter
	RatingsSubmittedTotal  metric.Int64Counter
	MenuGenerationsTotal   metric.Int64Counter
	MenuGenerationDuration metric.Float64Histogram

	// Transport metrics
	ActiveConnections metric.Int64UpDownCounter
	RequestsTotal     metric.Int64Counter
}

var (
	once    sync.Once
	metrics *Metrics
)

// GetMetrics returns the singleton Metrics instance, initializing it if necessary
func GetMetrics() *Metrics {
	once.Do(func() {
		metrics = initMetrics()
	})
	return metrics
}

// Reason is the attribute recorded on SessionsDestroyedTotal
func Reason(reason string) metric.MeasurementOption {
	return metric.WithAttributes(attribute.String("reason", reason))
}

// Outcome is the attribute recorded on counters with a success/failure split
func Outcome(ok bool) metric.MeasurementOption {
	outcome := "ok"
	if !ok {
		outcome = "error"
	}
	return metric.WithAttributes(attribute.String("outcome", outcome))
}

// RequestType is the attribute recorded on RequestsTotal
func RequestType(kind string, ok bool) metric.MeasurementOption {
	outcome := "ok"
	if !ok {
		outcome = "error"
	}
	return metric.WithAttributes(
		attribute.String("type", kind),
		attribute.String("outcome", outcome),
	)
}

// initMetrics creates and registers all metric instruments
func initMetrics() *Metrics {
	meter := otel.GetMeterProvider().Meter(meterName)

	m := &Metrics{}

	m.SessionsCreatedTotal, _ = meter.Int64Counter(
		"grubvote.sessions.created.total",
		metric.WithDescription("Total number of sessions created"),
		metric.WithUnit("{session}"),
	)

	m.SessionsDestroyedTotal, _ = meter.Int64Counter(
		"grubvote.sessions.destroyed.total",
		metric.WithDescription("Total number of sessions destroyed, by reason"),
		metric.WithUnit("{session}"),
	)

	m.ActiveSessions, _ = meter.Int64UpDownCounter(
		"grubvote.sessions.active",
		metric.WithDescription("Number of live sessions"),
		metric.WithUnit("{session}"),
	)

	m.VotingRoundsTotal, _ = meter.Int64Counter(
		"grubvote.voting.rounds.total",
		metric.WithDescription("Total number of voting rounds that produced results"),
		metric.WithUnit("{round}"),
	)

	m.RatingsSubmittedTotal, _ = meter.Int64Counter(
		"grubvote.voting.submissions.total",
		metric.WithDescription("Total number of accepted rating submissions"),
		metric.WithUnit("{submission}"),
	)

	m.MenuGenerationsTotal, _ = meter.Int64Counter(
		"grubvote.menu.generations.total",
		metric.WithDescription("Total number of AI menu generation attempts"),
		metric.WithUnit("{generation}"),
	)

	m.MenuGenerationDuration, _ = meter.Float64Histogram(
		"grubvote.menu.generation.duration",
		metric.WithDescription("Duration of AI menu generation calls"),
		metric.WithUnit("ms"),
	)

	m.ActiveConnections, _ = meter.Int64UpDownCounter(
		"grubvote.ws.connections.active",
		metric.WithDescription("Number of open websocket connections"),
		metric.WithUnit("{connection}"),
	)

	m.RequestsTotal, _ = meter.Int64Counter(
		"grubvote.ws.requests.total",
		metric.WithDescription("Total number of websocket requests handled"),
		metric.WithUnit("{request}"),
	)

	return m
}
