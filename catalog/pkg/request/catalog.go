package request

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	DEFAULT_PAGE          = 1
	DEFAULT_LIMIT         = 10
	MAX_LIMIT             = 100
	DEFAULT_FILTER_RADIUS = 50000.0
	DEFAULT_NEARBY_RADIUS = 10000.0
	MAX_NEARBY_RESULTS    = 20
)

var ErrPartialPoint = errors.New("latitude and longitude must be given together")

type Pagination struct {
	Page  int `validate:"gte=1"         json:"page"`
	Limit int `validate:"gte=1,lte=100" json:"limit"`
}

func (p Pagination) Offset() int32 {
	return int32((p.Page - 1) * p.Limit)
}

type Geo struct {
	Latitude  *float64 `validate:"omitempty,latitude"  json:"latitude"`
	Longitude *float64 `validate:"omitempty,longitude" json:"longitude"`
	Radius    float64  `validate:"gt=0"                json:"radius"`
}

func (g Geo) HasPoint() bool {
	return g.Latitude != nil && g.Longitude != nil
}

type HotelFilter struct {
	MinPrice  *decimal.Decimal `json:"minPrice"`
	MaxPrice  *decimal.Decimal `json:"maxPrice"`
	Rating    *float64         `validate:"omitempty,gte=1,lte=5" json:"rating"`
	Amenities []string         `validate:"dive,max=64"            json:"amenities"`
	City      string           `validate:"max=255"                json:"city"`
	Geo
	Pagination
}

type VehicleFilter struct {
	Type         string           `validate:"max=20"          json:"type"`
	MinPrice     *decimal.Decimal `json:"minPrice"`
	MaxPrice     *decimal.Decimal `json:"maxPrice"`
	Brand        string           `validate:"max=255"         json:"brand"`
	Transmission string           `validate:"max=20"          json:"transmission"`
	FuelType     string           `validate:"max=20"          json:"fuelType"`
	Seats        *int             `validate:"omitempty,gte=1" json:"seats"`
	Geo
	Pagination
}

type Nearby struct {
	Latitude  float64 `validate:"latitude"  json:"latitude"`
	Longitude float64 `validate:"longitude" json:"longitude"`
	Radius    float64 `validate:"gt=0"      json:"radius"`
}

type Search struct {
	Query string `validate:"required,max=255" json:"query"`
	Pagination
}

type Review struct {
	Rating  int    `validate:"required,gte=1,lte=5"      json:"rating"`
	Comment string `validate:"required,min=10,max=1000" json:"comment"`
}

func parseInt(query url.Values, key string, def int) (int, error) {
	s := strings.TrimSpace(query.Get(key))
	if s == "" {
		return def, nil
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s=%q", key, s)
	}
	return i, nil
}

func parseFloat(query url.Values, key string) (*float64, error) {
	s := strings.TrimSpace(query.Get(key))
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s=%q", key, s)
	}
	return &f, nil
}

func parseDecimal(query url.Values, key string) (*decimal.Decimal, error) {
	s := strings.TrimSpace(query.Get(key))
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s=%q", key, s)
	}
	return &d, nil
}

// ParseFloat parses s, falling back to def when s is empty.
func ParseFloat(s string, def float64) (float64, error) {
	if strings.TrimSpace(s) == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number=%q", s)
	}
	return f, nil
}

func ParsePagination(query url.Values) (Pagination, error) {
	page, err := parseInt(query, "page", DEFAULT_PAGE)
	if err != nil {
		return Pagination{}, err
	}
	limit, err := parseInt(query, "limit", DEFAULT_LIMIT)
	if err != nil {
		return Pagination{}, err
	}
	return Pagination{Page: page, Limit: limit}, nil
}

func parseGeo(query url.Values) (Geo, error) {
	latitude, err := parseFloat(query, "latitude")
	if err != nil {
		return Geo{}, err
	}
	longitude, err := parseFloat(query, "longitude")
	if err != nil {
		return Geo{}, err
	}
	if (latitude == nil) != (longitude == nil) {
		return Geo{}, ErrPartialPoint
	}
	radius, err := ParseFloat(query.Get("radius"), DEFAULT_FILTER_RADIUS)
	if err != nil {
		return Geo{}, err
	}
	return Geo{Latitude: latitude, Longitude: longitude, Radius: radius}, nil
}

// splitList splits a comma separated value, dropping blank entries.
func splitList(s string) []string {
	values := []string{}
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}

func ParseHotelFilter(query url.Values) (HotelFilter, error) {
	filter := HotelFilter{City: strings.TrimSpace(query.Get("city")), Amenities: splitList(query.Get("amenities"))}
	var err error
	if filter.MinPrice, err = parseDecimal(query, "minPrice"); err != nil {
		return HotelFilter{}, err
	}
	if filter.MaxPrice, err = parseDecimal(query, "maxPrice"); err != nil {
		return HotelFilter{}, err
	}
	if filter.Rating, err = parseFloat(query, "rating"); err != nil {
		return HotelFilter{}, err
	}
	if filter.Geo, err = parseGeo(query); err != nil {
		return HotelFilter{}, err
	}
	if filter.Pagination, err = ParsePagination(query); err != nil {
		return HotelFilter{}, err
	}
	return filter, nil
}

func ParseVehicleFilter(query url.Values) (VehicleFilter, error) {
	filter := VehicleFilter{
		Type:         strings.TrimSpace(query.Get("type")),
		Brand:        strings.TrimSpace(query.Get("brand")),
		Transmission: strings.TrimSpace(query.Get("transmission")),
		FuelType:     strings.TrimSpace(query.Get("fuelType")),
	}
	var err error
	if filter.MinPrice, err = parseDecimal(query, "minPrice"); err != nil {
		return VehicleFilter{}, err
	}
	if filter.MaxPrice, err = parseDecimal(query, "maxPrice"); err != nil {
		return VehicleFilter{}, err
	}
	if query.Get("seats") != "" {
		seats, err := parseInt(query, "seats", 0)
		if err != nil {
			return VehicleFilter{}, err
		}
		filter.Seats = &seats
	}
	if filter.Geo, err = parseGeo(query); err != nil {
		return VehicleFilter{}, err
	}
	if filter.Pagination, err = ParsePagination(query); err != nil {
		return VehicleFilter{}, err
	}
	return filter, nil
}
