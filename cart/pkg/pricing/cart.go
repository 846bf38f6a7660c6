package pricing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cart keeps its items and derived totals in sync. Totals are only ever
// written by recompute.
type Cart struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time

	items    []LineItem
	subtotal decimal.Decimal
	tax      decimal.Decimal
	total    decimal.Decimal
}

func NewCart(id, userID uuid.UUID) *Cart {
	return &Cart{ID: id, UserID: userID, items: []LineItem{}}
}

func Restore(
	id, userID uuid.UUID,
	items []LineItem,
	version int64,
	createdAt, updatedAt time.Time,
) *Cart {
	c := &Cart{
		ID:        id,
		UserID:    userID,
		Version:   version,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
		items:     append([]LineItem{}, items...),
	}
	c.recompute()
	return c
}

func (c *Cart) Items() []LineItem {
	return append([]LineItem{}, c.items...)
}

func (c *Cart) Len() int {
	return len(c.items)
}

func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

func (c *Cart) Subtotal() decimal.Decimal {
	return c.subtotal
}

func (c *Cart) Tax() decimal.Decimal {
	return c.tax
}

func (c *Cart) Total() decimal.Decimal {
	return c.total
}

// Upsert replaces the line with the same item id and type in place, keeping
// its position and snapshot, or appends item when there is none.
func (c *Cart) Upsert(item LineItem) {
	defer c.recompute()
	for i := range c.items {
		if !c.items[i].sameItem(item.ItemID, item.ItemType) {
			continue
		}
		c.items[i].Quantity = item.Quantity
		c.items[i].StartDate = item.StartDate
		c.items[i].EndDate = item.EndDate
		c.items[i].PricePerDay = item.PricePerDay
		c.items[i].TotalPrice = item.TotalPrice
		return
	}
	c.items = append(c.items, item)
}

// Remove drops every line matching itemID and itemType and reports how many
// were removed.
func (c *Cart) Remove(itemID uuid.UUID, itemType ItemType) int {
	defer c.recompute()
	kept := c.items[:0]
	for _, item := range c.items {
		if item.sameItem(itemID, itemType) {
			continue
		}
		kept = append(kept, item)
	}
	removed := len(c.items) - len(kept)
	c.items = kept
	return removed
}

func (c *Cart) Clear() {
	c.items = []LineItem{}
	c.recompute()
}

func (c *Cart) VerifyTotals(subtotal, tax, total decimal.Decimal) error {
	if exceeds(subtotal, c.subtotal) || exceeds(tax, c.tax) || exceeds(total, c.total) {
		return fmt.Errorf(
			"%w: stored subtotal=%s tax=%s total=%s, computed subtotal=%s tax=%s total=%s",
			ErrInconsistentTotals,
			subtotal, tax, total,
			c.subtotal, c.tax, c.total,
		)
	}
	return nil
}

func exceeds(stored, computed decimal.Decimal) bool {
	return stored.Sub(computed).Abs().GreaterThan(totalsTolerance)
}

func (c *Cart) recompute() {
	subtotal := decimal.Zero
	for _, item := range c.items {
		subtotal = subtotal.Add(item.TotalPrice)
	}
	c.subtotal = subtotal
	c.tax = subtotal.Mul(TaxRate)
	c.total = c.subtotal.Add(c.tax)
}
