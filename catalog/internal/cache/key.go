package cache

import (
	"time"

	"github.com/google/uuid"
)

const (
	KEY_HOTELS   = "hotels:"
	KEY_VEHICLES = "vehicles:"
	DETAIL_TTL   = time.Hour
)

func HotelKey(id uuid.UUID) string {
	return KEY_HOTELS + id.String()
}

func VehicleKey(id uuid.UUID) string {
	return KEY_VEHICLES + id.String()
}
