package request

import (
	"net/url"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHotelFilter(t *testing.T) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	t.Run("given empty query should use defaults", func(t *testing.T) {
		filter, err := ParseHotelFilter(url.Values{})
		require.NoError(t, err)
		assert.Nil(t, filter.MinPrice)
		assert.Empty(t, filter.Amenities)
		assert.False(t, filter.HasPoint())
		assert.Equal(t, DEFAULT_FILTER_RADIUS, filter.Radius)
		assert.Equal(t, Pagination{Page: DEFAULT_PAGE, Limit: DEFAULT_LIMIT}, filter.Pagination)
		assert.NoError(t, validate.Struct(filter))
	})

	t.Run("given full query should parse every filter", func(t *testing.T) {
		query, err := url.ParseQuery("minPrice=1000&maxPrice=5000.50&rating=4&amenities=wifi,%20pool,,&city=pan" +
			"&latitude=15.49&longitude=73.82&radius=2000&page=2&limit=5")
		require.NoError(t, err)
		filter, err := ParseHotelFilter(query)
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("1000").Equal(*filter.MinPrice))
		assert.True(t, decimal.RequireFromString("5000.50").Equal(*filter.MaxPrice))
		assert.Equal(t, 4.0, *filter.Rating)
		assert.Equal(t, []string{"wifi", "pool"}, filter.Amenities)
		assert.Equal(t, "pan", filter.City)
		assert.True(t, filter.HasPoint())
		assert.Equal(t, 2000.0, filter.Radius)
		assert.Equal(t, int32(5), filter.Offset())
		assert.NoError(t, validate.Struct(filter))
	})

	t.Run("given rating out of range should fail validation", func(t *testing.T) {
		filter, err := ParseHotelFilter(url.Values{"rating": {"6"}})
		require.NoError(t, err)
		assert.Error(t, validate.Struct(filter))
	})

	t.Run("given latitude without longitude should fail", func(t *testing.T) {
		_, err := ParseHotelFilter(url.Values{"latitude": {"15.49"}})
		assert.ErrorIs(t, err, ErrPartialPoint)
	})

	t.Run("given malformed price should fail", func(t *testing.T) {
		_, err := ParseHotelFilter(url.Values{"minPrice": {"cheap"}})
		assert.Error(t, err)
	})
}

func TestParseVehicleFilter(t *testing.T) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	filter, err := ParseVehicleFilter(url.Values{
		"type":         {"Scooter"},
		"brand":        {"hon"},
		"transmission": {"Automatic"},
		"seats":        {"2"},
		"limit":        {"101"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Scooter", filter.Type)
	assert.Equal(t, 2, *filter.Seats)
	assert.Error(t, validate.Struct(filter), "limit above the maximum")

	_, err = ParseVehicleFilter(url.Values{"seats": {"two"}})
	assert.Error(t, err)
}
