package response

import (
	"encoding/json"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Address struct {
	Street      string      `json:"street"`
	City        string      `json:"city"`
	State       string      `json:"state"`
	Country     string      `json:"country"`
	ZipCode     string      `json:"zipCode"`
	Coordinates Coordinates `json:"coordinates"`
}

type PriceRange struct {
	Min      decimal.Decimal `json:"min"`
	Max      decimal.Decimal `json:"max"`
	Currency string          `json:"currency"`
}

type Contact struct {
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Website string `json:"website"`
}

type Hotel struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Address     Address         `json:"address"`
	Rating      decimal.Decimal `json:"rating"`
	PriceRange  PriceRange      `json:"priceRange"`
	Amenities   []string        `json:"amenities"`
	Images      []string        `json:"images"`
	Contact     Contact         `json:"contact"`
	RoomTypes   json.RawMessage `json:"roomTypes"`
	Reviews     []Review        `json:"reviews,omitempty"`
	Distance    *int64          `json:"distance,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type Location struct {
	Address     string      `json:"address"`
	City        string      `json:"city"`
	State       string      `json:"state"`
	Coordinates Coordinates `json:"coordinates"`
}

type Vehicle struct {
	ID            uuid.UUID        `json:"id"`
	Name          string           `json:"name"`
	Type          string           `json:"type"`
	Brand         string           `json:"brand"`
	Model         string           `json:"model"`
	Year          int32            `json:"year"`
	Description   string           `json:"description"`
	PricePerDay   decimal.Decimal  `json:"pricePerDay"`
	PricePerHour  *decimal.Decimal `json:"pricePerHour"`
	Currency      string           `json:"currency"`
	Location      Location         `json:"location"`
	Features      []string         `json:"features"`
	Images        []string         `json:"images"`
	FuelType      string           `json:"fuelType"`
	Transmission  string           `json:"transmission"`
	Seats         int32            `json:"seats"`
	Mileage       *int32           `json:"mileage"`
	AverageRating decimal.Decimal  `json:"averageRating"`
	Reviews       []Review         `json:"reviews,omitempty"`
	Distance      *int64           `json:"distance,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

type Review struct {
	ID        uuid.UUID `json:"id"`
	UserId    uuid.UUID `json:"userId"`
	UserName  string    `json:"userName"`
	Rating    int16     `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

type Pagination struct {
	Current int  `json:"current"`
	Total   int  `json:"total"`
	HasNext bool `json:"hasNext"`
	HasPrev bool `json:"hasPrev"`
}

// NewPagination describes page out of count results split in pages of
// limit, where shown results were returned for page.
func NewPagination(page, limit, shown int, count int64) Pagination {
	offset := (page - 1) * limit
	return Pagination{
		Current: page,
		Total:   int(math.Ceil(float64(count) / float64(limit))),
		HasNext: int64(offset+shown) < count,
		HasPrev: page > 1,
	}
}

type Hotels struct {
	Hotels     []Hotel    `json:"hotels"`
	Pagination Pagination `json:"pagination"`
}

type Vehicles struct {
	Vehicles   []Vehicle  `json:"vehicles"`
	Pagination Pagination `json:"pagination"`
}
