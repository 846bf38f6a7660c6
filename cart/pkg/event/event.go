// Package event holds the messages the cart service publishes to the broker.
package event

import (
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
)

const TYPE_CART_CHECKED_OUT = "cart.checkedout.v1"

type CheckedOutItem struct {
	ItemType   string          `json:"itemType"`
	ItemID     uuid.UUID       `json:"itemId"`
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	StartDate  time.Time       `json:"startDate"`
	EndDate    time.Time       `json:"endDate"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

type CartCheckedOut struct {
	EventType     string           `json:"eventType"`
	OrderID       string           `json:"orderId"`
	CartID        uuid.UUID        `json:"cartId"`
	UserID        uuid.UUID        `json:"userId"`
	PaymentMethod string           `json:"paymentMethod"`
	Items         []CheckedOutItem `json:"items"`
	Subtotal      decimal.Decimal  `json:"subtotal"`
	Tax           decimal.Decimal  `json:"tax"`
	Total         decimal.Decimal  `json:"total"`
	CheckedOutAt  time.Time        `json:"checkedOutAt"`
}

// HeaderCarrier carries trace context in amqp message headers.
type HeaderCarrier amqp.Table

func (h HeaderCarrier) Get(key string) string {
	v, ok := h[key].(string)
	if !ok {
		return ""
	}
	return v
}

func (h HeaderCarrier) Set(key string, value string) {
	h[key] = value
}

func (h HeaderCarrier) Keys() []string {
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	return keys
}
