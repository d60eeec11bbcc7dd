package usecase

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const instrumentationName = "github.com/miigangls/restaurant-tickets/internal/usecase"

var (
	tracer = otel.Tracer(instrumentationName)
	meter  = otel.Meter(instrumentationName)

	// Prometheusでは orders_placed_total / payments_recorded_total になる
	ordersPlacedCounter     = newCounter("orders_placed", "Number of orders committed")
	paymentsRecordedCounter = newCounter("payments_recorded", "Number of payments recorded, by status")
)

func newCounter(name, desc string) metric.Int64Counter {
	c, err := meter.Int64Counter(name, metric.WithDescription(desc))
	if err != nil {
		return noop.Int64Counter{}
	}
	return c
}
