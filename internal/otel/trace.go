package otel

import (
	"go.opentelemetry.io/otel"

	"github.com/Alturino/tourism/internal/constants"
)

var Tracer = otel.Tracer(constants.APP_MAIN_TOURISM)
