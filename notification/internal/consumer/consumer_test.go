package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	otelGlobal "go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/Alturino/tourism/cart/pkg/event"
	"github.com/Alturino/tourism/internal/constants"
	"github.com/Alturino/tourism/internal/infra"
	"github.com/Alturino/tourism/internal/testutil"
	"github.com/Alturino/tourism/notification/internal/metric"
)

type fakeAcknowledger struct {
	acked   bool
	nacked  bool
	requeue bool
}

func (f *fakeAcknowledger) Ack(tag uint64, multiple bool) error {
	f.acked = true
	return nil
}

func (f *fakeAcknowledger) Nack(tag uint64, multiple bool, requeue bool) error {
	f.nacked = true
	f.requeue = requeue
	return nil
}

func (f *fakeAcknowledger) Reject(tag uint64, requeue bool) error {
	return f.Nack(tag, false, requeue)
}

func checkout(paymentMethod string) event.CartCheckedOut {
	return event.CartCheckedOut{
		EventType:     event.TYPE_CART_CHECKED_OUT,
		OrderID:       "ORD-1700000000000-ab12cd34e",
		CartID:        uuid.New(),
		UserID:        uuid.New(),
		PaymentMethod: paymentMethod,
		Items:         []event.CheckedOutItem{{ItemType: "hotel", Name: "Sea View Residency", Quantity: 1}},
		Subtotal:      decimal.NewFromInt(4000),
		Tax:           decimal.NewFromInt(720),
		Total:         decimal.NewFromInt(4720),
		CheckedOutAt:  time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func body(t *testing.T, ev event.CartCheckedOut) []byte {
	t.Helper()
	b, err := json.Marshal(ev)
	require.NoError(t, err)
	return b
}

func TestDecode(t *testing.T) {
	wrongType := checkout("card")
	wrongType.EventType = "cart.abandoned.v1"

	testCases := []struct {
		name        string
		body        []byte
		expectedErr error
	}{
		{name: "checkout event", body: body(t, checkout("card"))},
		{name: "unexpected event type", body: body(t, wrongType), expectedErr: ErrUnexpectedEvent},
		{name: "malformed body", body: []byte(`{"orderId":`)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, ev, err := Decode(context.Background(), amqp.Delivery{Body: tc.body})
			switch {
			case tc.expectedErr != nil:
				assert.ErrorIs(t, err, tc.expectedErr)
			case tc.name == "malformed body":
				assert.Error(t, err)
			default:
				require.NoError(t, err)
				assert.Equal(t, "card", ev.PaymentMethod)
				assert.True(t, decimal.NewFromInt(4720).Equal(ev.Total))
			}
		})
	}
}

func TestDecodeExtractsTraceContext(t *testing.T) {
	otelGlobal.SetTextMapPropagator(propagation.TraceContext{})
	headers := amqp.Table{"traceparent": "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01"}

	c, _, err := Decode(context.Background(), amqp.Delivery{Headers: headers, Body: body(t, checkout("card"))})
	require.NoError(t, err)

	spanCtx := trace.SpanContextFromContext(c)
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", spanCtx.TraceID().String())
	assert.True(t, spanCtx.IsRemote())
}

func TestDeliver(t *testing.T) {
	errNotify := errors.New("smtp unavailable")
	testCases := []struct {
		name            string
		body            []byte
		redelivered     bool
		notifyErr       error
		expectedAck     bool
		expectedRequeue bool
		expectedNotify  bool
	}{
		{name: "acknowledge notified checkout", body: body(t, checkout("upi")), expectedAck: true, expectedNotify: true},
		{name: "drop malformed message", body: []byte("not json")},
		{
			name:            "requeue first notifier failure",
			body:            body(t, checkout("upi")),
			notifyErr:       errNotify,
			expectedRequeue: true,
			expectedNotify:  true,
		},
		{
			name:           "drop redelivered notifier failure",
			body:           body(t, checkout("upi")),
			redelivered:    true,
			notifyErr:      errNotify,
			expectedNotify: true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ack := &fakeAcknowledger{}
			notified := false
			notify := func(c context.Context, ev event.CartCheckedOut) error {
				notified = true
				return tc.notifyErr
			}
			checkoutsBefore := promtest.ToFloat64(metric.Checkouts.WithLabelValues("upi"))
			rejectedBefore := promtest.ToFloat64(metric.RejectedEvents)

			Deliver(context.Background(), amqp.Delivery{
				Acknowledger: ack,
				Body:         tc.body,
				Redelivered:  tc.redelivered,
				RoutingKey:   infra.CartCheckedOutRoutingKey,
			}, notify)

			assert.Equal(t, tc.expectedNotify, notified)
			assert.Equal(t, tc.expectedAck, ack.acked)
			assert.Equal(t, !tc.expectedAck, ack.nacked)
			assert.Equal(t, tc.expectedRequeue, ack.requeue)

			checkoutsDelta := promtest.ToFloat64(metric.Checkouts.WithLabelValues("upi")) - checkoutsBefore
			rejectedDelta := promtest.ToFloat64(metric.RejectedEvents) - rejectedBefore
			if tc.expectedAck {
				assert.Equal(t, 1.0, checkoutsDelta)
			} else {
				assert.Equal(t, 0.0, checkoutsDelta)
			}
			if tc.expectedNotify {
				assert.Equal(t, 0.0, rejectedDelta)
			} else {
				assert.Equal(t, 1.0, rejectedDelta)
			}
		})
	}
}

func TestConsumer(t *testing.T) {
	c, cancel := context.WithCancel(context.Background())
	defer cancel()
	conn := testutil.NewRabbitMQ(t, c)

	received := make(chan event.CartCheckedOut, 1)
	consumer, err := NewConsumer(conn, constants.APP_NOTIFICATION_SERVICE, func(c context.Context, ev event.CartCheckedOut) error {
		received <- ev
		return nil
	})
	require.NoError(t, err)
	t.Cleanup(func() { consumer.Close() })
	assert.Equal(t, "notification-service.cart.checkedout.v1", consumer.Queue())

	done := make(chan error, 1)
	go func() { done <- consumer.Run(c) }()

	ch, err := conn.Channel()
	require.NoError(t, err)
	t.Cleanup(func() { ch.Close() })

	published := checkout("card")
	err = ch.PublishWithContext(c, infra.EventsExchange, infra.CartCheckedOutRoutingKey, false, false, amqp.Publishing{
		ContentType: "application/json",
		Type:        published.EventType,
		Body:        body(t, published),
	})
	require.NoError(t, err)

	select {
	case ev := <-received:
		assert.Equal(t, published.OrderID, ev.OrderID)
		assert.Equal(t, published.UserID, ev.UserID)
	case <-time.After(30 * time.Second):
		t.Fatal("timed out waiting for checkout event")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("consumer did not stop")
	}
}
