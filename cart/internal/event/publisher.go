package event

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	otelGlobal "go.opentelemetry.io/otel"

	"github.com/Alturino/tourism/cart/internal/otel"
	"github.com/Alturino/tourism/cart/pkg/event"
	"github.com/Alturino/tourism/internal/constants"
	"github.com/Alturino/tourism/internal/infra"
	inOtel "github.com/Alturino/tourism/internal/otel"
)

type CheckoutPublisher interface {
	PublishCartCheckedOut(c context.Context, ev event.CartCheckedOut) error
}

// AmqpPublisher serializes publishes since an amqp channel is not safe for
// concurrent use.
type AmqpPublisher struct {
	mu sync.Mutex
	ch *amqp.Channel
}

func NewAmqpPublisher(conn *amqp.Connection) (*AmqpPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed opening channel with error=%w", err)
	}
	if err = infra.DeclareEventsExchange(ch); err != nil {
		return nil, fmt.Errorf("failed declaring exchange=%s with error=%w", infra.EventsExchange, err)
	}
	return &AmqpPublisher{ch: ch}, nil
}

func (p *AmqpPublisher) PublishCartCheckedOut(c context.Context, ev event.CartCheckedOut) error {
	c, span := otel.Tracer.Start(c, "AmqpPublisher PublishCartCheckedOut")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "AmqpPublisher PublishCartCheckedOut").
		Str(constants.KEY_ORDER_ID, ev.OrderID).
		Str(constants.KEY_ROUTING_KEY, infra.CartCheckedOutRoutingKey).
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "marshaling event").Logger()
	logger.Trace().Msg("marshaling event")
	body, err := json.Marshal(ev)
	if err != nil {
		err = fmt.Errorf("failed marshaling event with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Trace().Msg("marshaled event")

	headers := event.HeaderCarrier{}
	otelGlobal.GetTextMapPropagator().Inject(c, headers)

	logger = logger.With().Str(constants.KEY_PROCESS, "publishing event").Logger()
	logger.Info().Msg("publishing event")
	p.mu.Lock()
	defer p.mu.Unlock()
	err = p.ch.PublishWithContext(
		c,
		infra.EventsExchange,
		infra.CartCheckedOutRoutingKey,
		false,
		false,
		amqp.Publishing{
			Headers:      amqp.Table(headers),
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    ev.OrderID,
			Timestamp:    ev.CheckedOutAt,
			Type:         ev.EventType,
			Body:         body,
		},
	)
	if err != nil {
		err = fmt.Errorf("failed publishing event with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("published event")

	return nil
}

func (p *AmqpPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ch.Close()
}
