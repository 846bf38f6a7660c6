package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"

	"github.com/Alturino/tourism/internal/constants"
	inHttp "github.com/Alturino/tourism/internal/http"
	"github.com/Alturino/tourism/internal/otel"
)

var errInternal = errors.New("Internal Server Error")

func RecoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, span := otel.Tracer.Start(r.Context(), "RecoverPanic")
		defer span.End()

		logger := zerolog.Ctx(c).
			With().
			Str(constants.KEY_TAG, "RecoverPanic").
			Str(constants.KEY_REQUEST_METHOD, r.Method).
			Str(constants.KEY_REQUEST_URI, r.RequestURI).
			Logger()
		defer func() {
			recovered := recover()
			if recovered == nil {
				return
			}
			err, ok := recovered.(error)
			if !ok {
				err = fmt.Errorf("%v", recovered)
			}
			logger.Error().Err(err).Stack().Msg("recovered from panic")
			otel.RecordError(err, span, attribute.String("http.route", r.URL.Path))
			inHttp.WriteFailed(c, w, http.StatusInternalServerError, errInternal)
		}()

		next.ServeHTTP(w, r.WithContext(c))
	})
}
