package pricing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLineItem(t *testing.T, itemType ItemType, itemId uuid.UUID, pricePerDay string, days int, quantity int) LineItem {
	t.Helper()
	item, err := NewLineItem(
		itemType,
		itemId,
		price(pricePerDay),
		start,
		start.Add(time.Duration(days)*day),
		quantity,
		Details{Name: string(itemType) + " " + itemId.String()[:8]},
	)
	require.NoError(t, err)
	return item
}

func assertTotalsInvariant(t *testing.T, cart *Cart) {
	t.Helper()
	subtotal := decimal.Zero
	for _, item := range cart.Items() {
		subtotal = subtotal.Add(item.TotalPrice)
	}
	assert.True(t, subtotal.Equal(cart.Subtotal()), "subtotal %s != %s", cart.Subtotal(), subtotal)
	assert.True(t, subtotal.Mul(TaxRate).Equal(cart.Tax()), "tax %s", cart.Tax())
	assert.True(t, cart.Subtotal().Add(cart.Tax()).Equal(cart.Total()), "total %s", cart.Total())
}

func TestCartUpsert(t *testing.T) {
	hotelId := uuid.New()
	vehicleId := uuid.New()

	t.Run("new hotel line computes totals", func(t *testing.T) {
		cart := NewCart(uuid.New(), uuid.New())

		cart.Upsert(mustLineItem(t, ItemTypeHotel, hotelId, "2000", 3, 1))

		require.Equal(t, 1, cart.Len())
		assert.Equal(t, "6000.00", cart.Subtotal().StringFixed(2))
		assert.Equal(t, "1080.00", cart.Tax().StringFixed(2))
		assert.Equal(t, "7080.00", cart.Total().StringFixed(2))
		assertTotalsInvariant(t, cart)
	})

	t.Run("same key replaces in place and keeps snapshot", func(t *testing.T) {
		cart := NewCart(uuid.New(), uuid.New())
		first := mustLineItem(t, ItemTypeHotel, hotelId, "2000", 3, 1)
		cart.Upsert(first)
		cart.Upsert(mustLineItem(t, ItemTypeVehicle, vehicleId, "50", 2, 1))

		update := mustLineItem(t, ItemTypeHotel, hotelId, "2500", 2, 2)
		update.Details = Details{Name: "changed"}
		cart.Upsert(update)

		items := cart.Items()
		require.Len(t, items, 2)
		assert.Equal(t, hotelId, items[0].ItemID)
		assert.Equal(t, 2, items[0].Quantity)
		assert.True(t, decimal.NewFromInt(10000).Equal(items[0].TotalPrice))
		assert.Equal(t, first.Details, items[0].Details)
		assert.Equal(t, vehicleId, items[1].ItemID)
		assertTotalsInvariant(t, cart)
	})

	t.Run("upsert is idempotent", func(t *testing.T) {
		cart := NewCart(uuid.New(), uuid.New())
		item := mustLineItem(t, ItemTypeVehicle, vehicleId, "75.50", 4, 1)

		cart.Upsert(item)
		subtotal := cart.Subtotal()
		cart.Upsert(item)

		assert.Equal(t, 1, cart.Len())
		assert.True(t, subtotal.Equal(cart.Subtotal()))
	})

	t.Run("same id with different type is a different line", func(t *testing.T) {
		cart := NewCart(uuid.New(), uuid.New())
		sharedId := uuid.New()

		cart.Upsert(mustLineItem(t, ItemTypeHotel, sharedId, "100", 1, 1))
		cart.Upsert(mustLineItem(t, ItemTypeVehicle, sharedId, "20", 1, 1))

		assert.Equal(t, 2, cart.Len())
		assert.Equal(t, "120", cart.Subtotal().String())
		assertTotalsInvariant(t, cart)
	})
}

func TestCartRemove(t *testing.T) {
	hotelId := uuid.New()
	vehicleId := uuid.New()

	tests := []struct {
		name            string
		items           []LineItem
		removeId        uuid.UUID
		removeType      ItemType
		expectedRemoved int
		expectedLen     int
	}{
		{
			name:            "removes matching line",
			items:           []LineItem{mustLineItem(t, ItemTypeHotel, hotelId, "100", 2, 1), mustLineItem(t, ItemTypeVehicle, vehicleId, "30", 1, 1)},
			removeId:        hotelId,
			removeType:      ItemTypeHotel,
			expectedRemoved: 1,
			expectedLen:     1,
		},
		{
			name:            "missing key is a no-op",
			items:           []LineItem{mustLineItem(t, ItemTypeHotel, hotelId, "100", 2, 1)},
			removeId:        uuid.New(),
			removeType:      ItemTypeHotel,
			expectedRemoved: 0,
			expectedLen:     1,
		},
		{
			name:            "type must match too",
			items:           []LineItem{mustLineItem(t, ItemTypeHotel, hotelId, "100", 2, 1)},
			removeId:        hotelId,
			removeType:      ItemTypeVehicle,
			expectedRemoved: 0,
			expectedLen:     1,
		},
		{
			name:            "empty cart",
			removeId:        hotelId,
			removeType:      ItemTypeHotel,
			expectedRemoved: 0,
			expectedLen:     0,
		},
		{
			name: "removes duplicates restored from storage",
			items: []LineItem{
				mustLineItem(t, ItemTypeHotel, hotelId, "100", 2, 1),
				mustLineItem(t, ItemTypeHotel, hotelId, "100", 3, 1),
			},
			removeId:        hotelId,
			removeType:      ItemTypeHotel,
			expectedRemoved: 2,
			expectedLen:     0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cart := Restore(uuid.New(), uuid.New(), tt.items, 1, start, start)

			removed := cart.Remove(tt.removeId, tt.removeType)

			assert.Equal(t, tt.expectedRemoved, removed)
			assert.Equal(t, tt.expectedLen, cart.Len())
			assertTotalsInvariant(t, cart)
		})
	}
}

func TestCartClear(t *testing.T) {
	cart := NewCart(uuid.New(), uuid.New())
	cart.Upsert(mustLineItem(t, ItemTypeHotel, uuid.New(), "2000", 3, 1))

	cart.Clear()

	assert.True(t, cart.IsEmpty())
	assert.True(t, cart.Subtotal().IsZero())
	assert.True(t, cart.Tax().IsZero())
	assert.True(t, cart.Total().IsZero())
}

func TestRestoreAndVerifyTotals(t *testing.T) {
	items := []LineItem{mustLineItem(t, ItemTypeHotel, uuid.New(), "2000", 3, 1)}
	cart := Restore(uuid.New(), uuid.New(), items, 4, start, start)

	tests := []struct {
		name        string
		subtotal    string
		tax         string
		total       string
		expectedErr error
	}{
		{name: "matching totals", subtotal: "6000", tax: "1080", total: "7080"},
		{name: "within tolerance", subtotal: "6000.004", tax: "1079.996", total: "7080.001"},
		{name: "stale total", subtotal: "6000", tax: "1080", total: "7000", expectedErr: ErrInconsistentTotals},
		{name: "empty stored totals", subtotal: "0", tax: "0", total: "0", expectedErr: ErrInconsistentTotals},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := cart.VerifyTotals(
				decimal.RequireFromString(tt.subtotal),
				decimal.RequireFromString(tt.tax),
				decimal.RequireFromString(tt.total),
			)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			assert.NoError(t, err)
		})
	}

	assert.Equal(t, int64(4), cart.Version)
	assertTotalsInvariant(t, cart)
}

func TestItemsReturnsCopy(t *testing.T) {
	cart := NewCart(uuid.New(), uuid.New())
	cart.Upsert(mustLineItem(t, ItemTypeHotel, uuid.New(), "100", 1, 1))

	items := cart.Items()
	items[0].TotalPrice = decimal.NewFromInt(1)

	assert.Equal(t, "100", cart.Items()[0].TotalPrice.String())
	assertTotalsInvariant(t, cart)
}
