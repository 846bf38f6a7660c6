package otel

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/Alturino/tourism/internal/constants"
)

var Meter = otel.Meter(
	constants.APP_CART_SERVICE,
	metric.WithInstrumentationAttributes(semconv.ServiceName(constants.APP_CART_SERVICE)),
)
