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
	"github.com/Alturino/tourism/user/internal/controller"
	userOtel "github.com/Alturino/tourism/user/internal/otel"
	"github.com/Alturino/tourism/user/internal/service"
)

func RunUserService(c context.Context) {
	cfg := config.Get(c, constants.APP_USER_SERVICE)

	logger := log.Get(fmt.Sprintf("/var/log/%s.log", constants.APP_USER_SERVICE), cfg.Application).
		With().
		Str(constants.KEY_APP_NAME, constants.APP_USER_SERVICE).
		Str(constants.KEY_TAG, "main RunUserService").
		Logger()
	c = logger.WithContext(c)

	c, span := userOtel.Tracer.Start(c, "RunUserService")
	defer span.End()

	logger = logger.With().Str(constants.KEY_PROCESS, "initializing otel sdk").Logger()
	logger.Info().Msg("initializing otel sdk")
	otelShutdowns, err := otel.InitOtelSdk(c, constants.APP_USER_SERVICE, cfg.Otel)
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

	logger = logger.With().Str(constants.KEY_PROCESS, "initializing user service").Logger()
	logger.Info().Msg("initializing user service")
	userService := service.NewUserService(repository.New(db), cfg.Application)
	logger.Info().Msg("initialized user service")

	logger = logger.With().Str(constants.KEY_PROCESS, "initializing router").Logger()
	logger.Info().Msg("initializing router")
	router := mux.NewRouter()
	router.Use(
		otelmux.Middleware(constants.APP_USER_SERVICE),
		middleware.Logging,
		middleware.RecoverPanic,
	)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	protected := router.NewRoute().Subrouter()
	protected.Use(middleware.Auth(cfg.Application.SecretKey))
	controller.AttachUserController(router, protected, userService)
	logger.Info().Msg("initialized router")

	logger = logger.With().Str(constants.KEY_PROCESS, "serving http").Logger()
	server := infra.NewHttpServer(c, cfg.Application, router)
	if err = infra.Serve(logger.WithContext(c), server); err != nil {
		otel.RecordError(err, span)
		return
	}
	logger.Info().Msg("shutdown user service")
}
