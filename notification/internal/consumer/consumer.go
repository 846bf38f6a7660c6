package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	otelGlobal "go.opentelemetry.io/otel"

	"github.com/Alturino/tourism/cart/pkg/event"
	"github.com/Alturino/tourism/internal/constants"
	"github.com/Alturino/tourism/internal/infra"
	inOtel "github.com/Alturino/tourism/internal/otel"
	"github.com/Alturino/tourism/notification/internal/metric"
	"github.com/Alturino/tourism/notification/internal/otel"
)

const PREFETCH_COUNT = 10

var (
	ErrDeliveriesClosed = errors.New("deliveries channel closed")
	ErrUnexpectedEvent  = errors.New("unexpected event type")
)

type Notifier func(c context.Context, ev event.CartCheckedOut) error

// Consumer reads checkout events from a durable queue bound to the events
// exchange. Undecodable messages are dropped, notifier failures are requeued.
type Consumer struct {
	ch     *amqp.Channel
	name   string
	queue  string
	notify Notifier
}

func NewConsumer(conn *amqp.Connection, serviceName string, notify Notifier) (*Consumer, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed opening channel with error=%w", err)
	}
	if err = infra.DeclareEventsExchange(ch); err != nil {
		return nil, fmt.Errorf("failed declaring exchange=%s with error=%w", infra.EventsExchange, err)
	}
	queue := infra.ServiceQueue(serviceName, infra.CartCheckedOutRoutingKey)
	if _, err = ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("failed declaring queue=%s with error=%w", queue, err)
	}
	if err = ch.QueueBind(queue, infra.CartCheckedOutRoutingKey, infra.EventsExchange, false, nil); err != nil {
		return nil, fmt.Errorf("failed binding queue=%s with error=%w", queue, err)
	}
	if err = ch.Qos(PREFETCH_COUNT, 0, false); err != nil {
		return nil, fmt.Errorf("failed setting qos with error=%w", err)
	}
	return &Consumer{ch: ch, name: serviceName, queue: queue, notify: notify}, nil
}

func (cs *Consumer) Queue() string {
	return cs.queue
}

// Run blocks until c is done or the broker closes the channel.
func (cs *Consumer) Run(c context.Context) error {
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "Consumer Run").
		Str(constants.KEY_QUEUE, cs.queue).
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "consuming queue").Logger()
	logger.Info().Msg("consuming queue")
	deliveries, err := cs.ch.Consume(cs.queue, cs.name, false, false, false, false, nil)
	if err != nil {
		err = fmt.Errorf("failed consuming queue=%s with error=%w", cs.queue, err)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}

	for {
		select {
		case <-c.Done():
			logger.Info().Msg("stopped consuming queue")
			return nil
		case d, ok := <-deliveries:
			if !ok {
				logger.Error().Err(ErrDeliveriesClosed).Msg(ErrDeliveriesClosed.Error())
				return ErrDeliveriesClosed
			}
			Deliver(logger.WithContext(c), d, cs.notify)
		}
	}
}

func (cs *Consumer) Close() error {
	return cs.ch.Close()
}

// Decode returns the checkout carried by d along with c joined to the
// publisher's trace.
func Decode(c context.Context, d amqp.Delivery) (context.Context, event.CartCheckedOut, error) {
	c = otelGlobal.GetTextMapPropagator().Extract(c, event.HeaderCarrier(d.Headers))

	ev := event.CartCheckedOut{}
	if err := json.Unmarshal(d.Body, &ev); err != nil {
		return c, event.CartCheckedOut{}, fmt.Errorf("failed unmarshaling event with error=%w", err)
	}
	if ev.EventType != event.TYPE_CART_CHECKED_OUT {
		return c, event.CartCheckedOut{}, fmt.Errorf("failed accepting eventType=%s with error=%w", ev.EventType, ErrUnexpectedEvent)
	}
	return c, ev, nil
}

func Deliver(c context.Context, d amqp.Delivery, notify Notifier) {
	c, ev, err := Decode(c, d)
	c, span := otel.Tracer.Start(c, "Consumer Deliver")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "Consumer Deliver").
		Str(constants.KEY_ROUTING_KEY, d.RoutingKey).
		Logger()

	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		metric.RejectedEvents.Inc()
		if err = d.Nack(false, false); err != nil {
			logger.Error().Err(err).Msg("failed rejecting message")
		}
		return
	}
	logger = logger.With().Str(constants.KEY_ORDER_ID, ev.OrderID).Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "notifying checkout").Logger()
	logger.Info().Msg("notifying checkout")
	if err = notify(logger.WithContext(c), ev); err != nil {
		err = fmt.Errorf("failed notifying checkout with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		if err = d.Nack(false, !d.Redelivered); err != nil {
			logger.Error().Err(err).Msg("failed requeueing message")
		}
		return
	}
	logger.Info().Msg("notified checkout")

	metric.Checkouts.WithLabelValues(ev.PaymentMethod).Inc()
	metric.CheckoutRevenue.Add(ev.Total.InexactFloat64())
	if err = d.Ack(false); err != nil {
		logger.Error().Err(err).Msg("failed acknowledging message")
	}
}

// LogCheckout writes one structured line per checkout.
func LogCheckout(c context.Context, ev event.CartCheckedOut) error {
	zerolog.Ctx(c).
		Info().
		Str(constants.KEY_USER_ID, ev.UserID.String()).
		Str("cartId", ev.CartID.String()).
		Str("paymentMethod", ev.PaymentMethod).
		Int("items", len(ev.Items)).
		Str("subtotal", ev.Subtotal.StringFixed(2)).
		Str("tax", ev.Tax.StringFixed(2)).
		Str("total", ev.Total.StringFixed(2)).
		Time("checkedOutAt", ev.CheckedOutAt).
		Msg("booking confirmed")
	return nil
}
