package infra

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/Alturino/tourism/internal/config"
	"github.com/Alturino/tourism/internal/constants"
	"github.com/Alturino/tourism/internal/otel"
)

const (
	EventsExchange           = "tourism.events"
	CartCheckedOutRoutingKey = "cart.checkedout.v1"
)

func ServiceQueue(serviceName, routingKey string) string {
	return serviceName + "." + routingKey
}

func DeclareEventsExchange(ch *amqp.Channel) error {
	return ch.ExchangeDeclare(
		EventsExchange,
		amqp.ExchangeTopic,
		true,
		false,
		false,
		false,
		nil,
	)
}

func NewBrokerConnection(c context.Context, cfg config.Amqp) *amqp.Connection {
	c, span := otel.Tracer.Start(c, "main NewBrokerConnection")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "main NewBrokerConnection").
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "dialing rabbitmq").Logger()
	logger.Info().Msg("dialing rabbitmq")
	conn, err := amqp.Dial(cfg.URL())
	if err != nil {
		err = fmt.Errorf("failed dialing rabbitmq with error=%w", err)
		otel.RecordError(err, span)
		logger.Fatal().Err(err).Msg(err.Error())
	}
	logger.Info().Msg("dialed rabbitmq")

	logger = logger.With().Str(constants.KEY_PROCESS, "declaring events exchange").Logger()
	logger.Info().Msg("declaring events exchange")
	ch, err := conn.Channel()
	if err != nil {
		err = fmt.Errorf("failed opening channel with error=%w", err)
		otel.RecordError(err, span)
		logger.Fatal().Err(err).Msg(err.Error())
	}
	defer ch.Close()
	err = DeclareEventsExchange(ch)
	if err != nil {
		err = fmt.Errorf("failed declaring exchange=%s with error=%w", EventsExchange, err)
		otel.RecordError(err, span)
		logger.Fatal().Err(err).Msg(err.Error())
	}
	logger.Info().Msg("declared events exchange")

	return conn
}
