// Package pricing holds the cart pricing rules: line item pricing over a
// rental period and the derived subtotal, tax and total of a cart.
package pricing

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ItemType string

const (
	ItemTypeHotel   ItemType = "hotel"
	ItemTypeVehicle ItemType = "vehicle"
)

func (t ItemType) Valid() bool {
	return t == ItemTypeHotel || t == ItemTypeVehicle
}

func ParseItemType(s string) (ItemType, error) {
	t := ItemType(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidItemType, s)
	}
	return t, nil
}

var (
	ErrInvalidDateRange   = errors.New("end date must be after start date")
	ErrInvalidQuantity    = errors.New("quantity must be at least 1")
	ErrInvalidPrice       = errors.New("price per day must not be negative")
	ErrItemNotFound       = errors.New("item not found")
	ErrInvalidItemType    = errors.New("invalid item type")
	ErrInconsistentTotals = errors.New("stored cart totals do not match its items")
)

var (
	// TaxRate is the flat GST applied to the subtotal.
	TaxRate = decimal.RequireFromString("0.18")

	totalsTolerance = decimal.RequireFromString("0.005")
)

const day = 24 * time.Hour

// Days counts started 24h periods between start and end. A partial day is
// billed as a full one.
func Days(start, end time.Time) int64 {
	d := end.Sub(start)
	if d <= 0 {
		return 0
	}
	n := int64(d / day)
	if d%day != 0 {
		n++
	}
	return n
}

func PriceLineItem(
	itemType ItemType,
	unitPricePerDay decimal.Decimal,
	start, end time.Time,
	quantity int,
) (decimal.Decimal, error) {
	if !itemType.Valid() {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidItemType, itemType)
	}
	if quantity < 1 {
		return decimal.Zero, ErrInvalidQuantity
	}
	if unitPricePerDay.IsNegative() {
		return decimal.Zero, ErrInvalidPrice
	}
	days := Days(start, end)
	if days <= 0 {
		return decimal.Zero, ErrInvalidDateRange
	}
	return unitPricePerDay.Mul(decimal.NewFromInt(days)).Mul(decimal.NewFromInt(int64(quantity))), nil
}

type Details struct {
	Name     string `json:"name"`
	Image    string `json:"image"`
	Location string `json:"location"`
}

type LineItem struct {
	ItemType    ItemType        `json:"itemType"`
	ItemID      uuid.UUID       `json:"itemId"`
	Quantity    int             `json:"quantity"`
	StartDate   time.Time       `json:"startDate"`
	EndDate     time.Time       `json:"endDate"`
	PricePerDay decimal.Decimal `json:"pricePerDay"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
	Details     Details         `json:"itemDetails"`
}

func (l LineItem) sameItem(itemID uuid.UUID, itemType ItemType) bool {
	return l.ItemID == itemID && l.ItemType == itemType
}

// NewLineItem prices a line item. A nil pricePerDay means the catalog item
// could not be resolved.
func NewLineItem(
	itemType ItemType,
	itemID uuid.UUID,
	pricePerDay *decimal.Decimal,
	start, end time.Time,
	quantity int,
	details Details,
) (LineItem, error) {
	if pricePerDay == nil {
		return LineItem{}, ErrItemNotFound
	}
	total, err := PriceLineItem(itemType, *pricePerDay, start, end, quantity)
	if err != nil {
		return LineItem{}, err
	}
	return LineItem{
		ItemType:    itemType,
		ItemID:      itemID,
		Quantity:    quantity,
		StartDate:   start,
		EndDate:     end,
		PricePerDay: *pricePerDay,
		TotalPrice:  total,
		Details:     details,
	}, nil
}
