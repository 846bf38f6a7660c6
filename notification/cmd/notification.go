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
	"github.com/Alturino/tourism/notification/internal/consumer"
	notificationOtel "github.com/Alturino/tourism/notification/internal/otel"
)

func RunNotificationService(c context.Context) {
	cfg := config.Get(c, constants.APP_NOTIFICATION_SERVICE)

	logger := log.Get(fmt.Sprintf("/var/log/%s.log", constants.APP_NOTIFICATION_SERVICE), cfg.Application).
		With().
		Str(constants.KEY_APP_NAME, constants.APP_NOTIFICATION_SERVICE).
		Str(constants.KEY_TAG, "main RunNotificationService").
		Logger()
	c = logger.WithContext(c)

	c, span := notificationOtel.Tracer.Start(c, "RunNotificationService")
	defer span.End()

	logger = logger.With().Str(constants.KEY_PROCESS, "initializing otel sdk").Logger()
	logger.Info().Msg("initializing otel sdk")
	otelShutdowns, err := otel.InitOtelSdk(c, constants.APP_NOTIFICATION_SERVICE, cfg.Otel)
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

	logger = logger.With().Str(constants.KEY_PROCESS, "initializing broker").Logger()
	logger.Info().Msg("initializing broker")
	broker := infra.NewBrokerConnection(logger.WithContext(c), cfg.Amqp)
	defer broker.Close()
	logger.Info().Msg("initialized broker")

	logger = logger.With().Str(constants.KEY_PROCESS, "initializing consumer").Logger()
	logger.Info().Msg("initializing consumer")
	checkoutConsumer, err := consumer.NewConsumer(broker, constants.APP_NOTIFICATION_SERVICE, consumer.LogCheckout)
	if err != nil {
		err = fmt.Errorf("failed initializing consumer with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	defer checkoutConsumer.Close()
	logger = logger.With().Str(constants.KEY_QUEUE, checkoutConsumer.Queue()).Logger()
	logger.Info().Msg("initialized consumer")

	go func() {
		if err := checkoutConsumer.Run(logger.WithContext(c)); err != nil {
			err = fmt.Errorf("failed running consumer with error=%w", err)
			logger.Error().Err(err).Msg(err.Error())
		}
	}()

	logger = logger.With().Str(constants.KEY_PROCESS, "initializing router").Logger()
	logger.Info().Msg("initializing router")
	router := mux.NewRouter()
	router.Use(
		otelmux.Middleware(constants.APP_NOTIFICATION_SERVICE),
		middleware.Logging,
		middleware.RecoverPanic,
	)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	logger.Info().Msg("initialized router")

	logger = logger.With().Str(constants.KEY_PROCESS, "serving http").Logger()
	server := infra.NewHttpServer(c, cfg.Application, router)
	if err = infra.Serve(logger.WithContext(c), server); err != nil {
		otel.RecordError(err, span)
		return
	}
	logger.Info().Msg("shutdown notification service")
}
