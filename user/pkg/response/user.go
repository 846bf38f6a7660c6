package response

import (
	"time"

	"github.com/google/uuid"
)

type Location struct {
	Latitude  float64    `json:"latitude"`
	Longitude float64    `json:"longitude"`
	Address   *string    `json:"address"`
	UpdatedAt *time.Time `json:"updatedAt"`
}

type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone"`
	FirstName *string   `json:"firstName"`
	LastName  *string   `json:"lastName"`
	Address   *string   `json:"address"`
	Location  *Location `json:"currentLocation"`
	IsSafe    bool      `json:"isSafe"`
	CreatedAt time.Time `json:"createdAt"`
}

type Auth struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
