package cmd

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/Alturino/tourism/cart/internal/controller"
	"github.com/Alturino/tourism/cart/internal/event"
	cartOtel "github.com/Alturino/tourism/cart/internal/otel"
	"github.com/Alturino/tourism/cart/internal/service"
	"github.com/Alturino/tourism/internal/config"
	"github.com/Alturino/tourism/internal/constants"
	"github.com/Alturino/tourism/internal/infra"
	"github.com/Alturino/tourism/internal/log"
	"github.com/Alturino/tourism/internal/middleware"
	"github.com/Alturino/tourism/internal/otel"
	"github.com/Alturino/tourism/internal/repository"
)

func RunCartService(c context.Context) {
	cfg := config.Get(c, constants.APP_CART_SERVICE)

	logger := log.Get(fmt.Sprintf("/var/log/%s.log", constants.APP_CART_SERVICE), cfg.Application).
		With().
		Str(constants.KEY_APP_NAME, constants.APP_CART_SERVICE).
		Str(constants.KEY_TAG, "main RunCartService").
		Logger()
	c = logger.WithContext(c)

	c, span := cartOtel.Tracer.Start(c, "RunCartService")
	defer span.End()

	logger = logger.With().Str(constants.KEY_PROCESS, "initializing otel sdk").Logger()
	logger.Info().Msg("initializing otel sdk")
	otelShutdowns, err := otel.InitOtelSdk(c, constants.APP_CART_SERVICE, cfg.Otel)
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

	logger = logger.With().Str(constants.KEY_PROCESS, "initializing cache").Logger()
	logger.Info().Msg("initializing cache")
	cache := infra.NewCacheClient(logger.WithContext(c), cfg.Cache)
	defer func() {
		l := logger.With().Str(constants.KEY_PROCESS, "shutting down cache").Logger()
		if err := cache.Close(); err != nil {
			err = fmt.Errorf("failed shutting down cache with error=%w", err)
			l.Error().Err(err).Msg(err.Error())
			return
		}
		l.Info().Msg("shutdown cache")
	}()
	logger.Info().Msg("initialized cache")

	logger = logger.With().Str(constants.KEY_PROCESS, "initializing checkout publisher").Logger()
	logger.Info().Msg("initializing checkout publisher")
	broker := infra.NewBrokerConnection(logger.WithContext(c), cfg.Amqp)
	defer broker.Close()
	publisher, err := event.NewAmqpPublisher(broker)
	if err != nil {
		err = fmt.Errorf("failed initializing checkout publisher with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	defer publisher.Close()
	logger.Info().Msg("initialized checkout publisher")

	logger = logger.With().Str(constants.KEY_PROCESS, "initializing cart service").Logger()
	logger.Info().Msg("initializing cart service")
	queries := repository.New(db)
	cartService := service.NewCartService(db, queries, cache, publisher)
	logger.Info().Msg("initialized cart service")

	logger = logger.With().Str(constants.KEY_PROCESS, "initializing router").Logger()
	logger.Info().Msg("initializing router")
	router := mux.NewRouter()
	router.Use(
		otelmux.Middleware(constants.APP_CART_SERVICE),
		middleware.Logging,
		middleware.RecoverPanic,
	)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	protected := router.NewRoute().Subrouter()
	protected.Use(middleware.Auth(cfg.Application.SecretKey))
	controller.AttachCartController(protected, cartService)
	logger.Info().Msg("initialized router")

	logger = logger.With().Str(constants.KEY_PROCESS, "serving http").Logger()
	server := infra.NewHttpServer(c, cfg.Application, router)
	if err = infra.Serve(logger.WithContext(c), server); err != nil {
		otel.RecordError(err, span)
		return
	}
	logger.Info().Msg("shutdown cart service")
}
