package cache

import (
	"time"

	"github.com/google/uuid"
)

const (
	KEY_CARTS = "carts:user:"
	CART_TTL  = time.Hour
)

func CartKey(userId uuid.UUID) string {
	return KEY_CARTS + userId.String()
}
