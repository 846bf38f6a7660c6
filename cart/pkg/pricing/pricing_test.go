package pricing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var start = time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)

func price(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestDays(t *testing.T) {
	tests := []struct {
		name     string
		end      time.Time
		expected int64
	}{
		{name: "exact days", end: start.Add(3 * day), expected: 3},
		{name: "partial day rounds up", end: start.Add(2*day + time.Hour), expected: 3},
		{name: "one minute is one day", end: start.Add(time.Minute), expected: 1},
		{name: "same instant is zero", end: start, expected: 0},
		{name: "end before start is zero", end: start.Add(-day), expected: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Days(start, tt.end))
		})
	}
}

func TestPriceLineItem(t *testing.T) {
	tests := []struct {
		name        string
		itemType    ItemType
		price       string
		end         time.Time
		quantity    int
		expected    string
		expectedErr error
	}{
		{
			name:     "hotel for three days",
			itemType: ItemTypeHotel,
			price:    "2000",
			end:      start.Add(3 * day),
			quantity: 1,
			expected: "6000",
		},
		{
			name:     "vehicle quantity multiplies",
			itemType: ItemTypeVehicle,
			price:    "49.99",
			end:      start.Add(36 * time.Hour),
			quantity: 2,
			expected: "199.96",
		},
		{
			name:     "free item",
			itemType: ItemTypeHotel,
			price:    "0",
			end:      start.Add(day),
			quantity: 1,
			expected: "0",
		},
		{
			name:        "end equal to start",
			itemType:    ItemTypeHotel,
			price:       "100",
			end:         start,
			quantity:    1,
			expectedErr: ErrInvalidDateRange,
		},
		{
			name:        "end before start",
			itemType:    ItemTypeVehicle,
			price:       "100",
			end:         start.Add(-2 * day),
			quantity:    1,
			expectedErr: ErrInvalidDateRange,
		},
		{
			name:        "zero quantity",
			itemType:    ItemTypeHotel,
			price:       "100",
			end:         start.Add(day),
			quantity:    0,
			expectedErr: ErrInvalidQuantity,
		},
		{
			name:        "negative price",
			itemType:    ItemTypeHotel,
			price:       "-1",
			end:         start.Add(day),
			quantity:    1,
			expectedErr: ErrInvalidPrice,
		},
		{
			name:        "unknown type",
			itemType:    ItemType("flight"),
			price:       "100",
			end:         start.Add(day),
			quantity:    1,
			expectedErr: ErrInvalidItemType,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, err := PriceLineItem(tt.itemType, decimal.RequireFromString(tt.price), start, tt.end, tt.quantity)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.expected).Equal(actual), "expected %s got %s", tt.expected, actual)
		})
	}
}

func TestNewLineItem(t *testing.T) {
	itemId := uuid.New()
	details := Details{Name: "Taj", Image: "taj.jpg", Location: "Mumbai, Maharashtra"}

	t.Run("nil price is item not found", func(t *testing.T) {
		_, err := NewLineItem(ItemTypeHotel, itemId, nil, start, start.Add(day), 1, details)
		assert.ErrorIs(t, err, ErrItemNotFound)
	})

	t.Run("prices and keeps snapshot", func(t *testing.T) {
		item, err := NewLineItem(ItemTypeHotel, itemId, price("2000"), start, start.Add(3*day), 1, details)
		require.NoError(t, err)
		assert.Equal(t, itemId, item.ItemID)
		assert.Equal(t, details, item.Details)
		assert.True(t, decimal.NewFromInt(6000).Equal(item.TotalPrice))
	})
}

func TestParseItemType(t *testing.T) {
	actual, err := ParseItemType("vehicle")
	require.NoError(t, err)
	assert.Equal(t, ItemTypeVehicle, actual)

	_, err = ParseItemType("Hotel")
	assert.ErrorIs(t, err, ErrInvalidItemType)
}
