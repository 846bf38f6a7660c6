package request

import (
	"errors"
	"fmt"
	"strconv"
)

const (
	DEFAULT_CHECK_RADIUS            = 1000.0
	DEFAULT_SAFE_ALTERNATIVE_RADIUS = 10000.0
	DEFAULT_UNSAFE_LOCATION_RADIUS  = 5000.0
	DEFAULT_EMERGENCY_RADIUS        = 5000.0
	DEFAULT_NEARBY_PLACES_RADIUS    = 5000.0
	DEFAULT_ATTRACTIONS_RADIUS      = 10000.0
	DEFAULT_NEARBY_PLACE_TYPE       = "tourist_attraction"
	MAX_RADIUS                      = 50000.0
)

type Point struct {
	Latitude  float64 `validate:"latitude"  json:"latitude"`
	Longitude float64 `validate:"longitude" json:"longitude"`
}

type Area struct {
	Point
	Radius float64 `validate:"gt=0,lte=50000" json:"radius"`
}

type OptionalArea struct {
	Latitude  *float64 `validate:"omitempty,latitude"  json:"latitude"`
	Longitude *float64 `validate:"omitempty,longitude" json:"longitude"`
	Radius    float64  `validate:"gt=0,lte=50000"      json:"radius"`
}

// HasPoint reports whether both coordinates were given. Giving only one is
// rejected by Validate.
func (a OptionalArea) HasPoint() bool {
	return a.Latitude != nil && a.Longitude != nil
}

var (
	ErrPartialPoint = errors.New("latitude and longitude must be given together")
	ErrMissingPoint = errors.New("latitude and longitude are required")
)

func (a OptionalArea) Validate() error {
	if (a.Latitude == nil) != (a.Longitude == nil) {
		return ErrPartialPoint
	}
	return nil
}

type Report struct {
	Latitude    *float64 `validate:"required,latitude"                       json:"latitude"`
	Longitude   *float64 `validate:"required,longitude"                      json:"longitude"`
	Name        string   `validate:"required,min=3,max=255"                  json:"name"`
	Description string   `validate:"required,min=10"                         json:"description"`
	RiskLevel   string   `validate:"required,oneof=Low Medium High Critical" json:"riskLevel"`
	Reasons     []string `validate:"required"                                json:"reasons"`
}

type NearbyPlaces struct {
	Type   string  `validate:"required,max=64" json:"type"`
	Radius float64 `validate:"gt=0,lte=50000"  json:"radius"`
}

// ParseFloat parses s, falling back to def when s is empty.
func ParseFloat(s string, def float64) (float64, error) {
	if s == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number=%q", s)
	}
	return f, nil
}

// ParseOptionalFloat returns nil for an empty s.
func ParseOptionalFloat(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid number=%q", s)
	}
	return &f, nil
}
