package cmd

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/Alturino/tourism/internal/config"
	"github.com/Alturino/tourism/internal/constants"
	"github.com/Alturino/tourism/internal/infra"
	"github.com/Alturino/tourism/internal/log"
	"github.com/Alturino/tourism/internal/middleware"
	"github.com/Alturino/tourism/internal/otel"
	"github.com/Alturino/tourism/internal/repository"
	"github.com/Alturino/tourism/safety/internal/controller"
	safetyOtel "github.com/Alturino/tourism/safety/internal/otel"
	"github.com/Alturino/tourism/safety/internal/places"
	"github.com/Alturino/tourism/safety/internal/service"
)

func RunSafetyService(c context.Context) {
	cfg := config.Get(c, constants.APP_SAFETY_SERVICE)

	logger := log.Get(fmt.Sprintf("/var/log/%s.log", constants.APP_SAFETY_SERVICE), cfg.Application).
		With().
		Str(constants.KEY_APP_NAME, constants.APP_SAFETY_SERVICE).
		Str(constants.KEY_TAG, "main RunSafetyService").
		Logger()
	c = logger.WithContext(c)

	c, span := safetyOtel.Tracer.Start(c, "RunSafetyService")
	defer span.End()

	logger = logger.With().Str(constants.KEY_PROCESS, "initializing otel sdk").Logger()
	logger.Info().Msg("initializing otel sdk")
	otelShutdowns, err := otel.InitOtelSdk(c, constants.APP_SAFETY_SERVICE, cfg.Otel)
	if err != nil {
		err = fmt.Errorf("failed initializing otel sdk with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	defer func() {
		l := logger.With().Str(constants.KEY_PROCESS, "shutting down otel").Logger()
		l.Info().Msg("shutting down otel")
		if err := otel.ShutdownOtel(context.WithoutCancel(c), otelShutdowns); err != nil {
			err = fmt.Errorf("failed shutting down otel with error=%w", err)
			l.Error().Err(err).Msg(err.Error())
			return
		}
		l.Info().Msg("shutdown otel")
	}()
	logger.Info().Msg("initialized otel sdk")

	logger = logger.With().Str(constants.KEY_PROCESS, "initializing database").Logger()
	logger.Info().Msg("initializing database")
	db := infra.NewDatabaseClient(logger.WithContext(c), cfg.Database)
	defer func() {
		logger.Info().Str(constants.KEY_PROCESS, "shutting down database").Msg("shutting down database")
		db.Close()
	}()
	logger.Info().Msg("initialized database")

	logger = logger.With().Str(constants.KEY_PROCESS, "initializing safety service").Logger()
	logger.Info().Msg("initializing safety service")
	queries := repository.New(db)
	placesClient := places.NewClient(cfg.Places)
	if !placesClient.Configured() {
		logger.Warn().Msg("places api key not configured, place lookups are disabled")
	}
	safetyService := service.NewSafetyService(queries, placesClient)
	logger.Info().Msg("initialized safety service")

	logger = logger.With().Str(constants.KEY_PROCESS, "initializing router").Logger()
	logger.Info().Msg("initializing router")
	router := mux.NewRouter()
	router.Use(
		otelmux.Middleware(constants.APP_SAFETY_SERVICE),
		middleware.Logging,
		middleware.RecoverPanic,
	)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	protected := router.NewRoute().Subrouter()
	protected.Use(middleware.Auth(cfg.Application.SecretKey))
	controller.AttachSafetyController(router, protected, safetyService)
	controller.AttachLocationController(protected, safetyService)
	logger.Info().Msg("initialized router")

	logger = logger.With().Str(constants.KEY_PROCESS, "serving http").Logger()
	server := infra.NewHttpServer(c, cfg.Application, router)
	if err = infra.Serve(logger.WithContext(c), server); err != nil {
		otel.RecordError(err, span)
		return
	}
	logger.Info().Msg("shutdown safety service")
}
