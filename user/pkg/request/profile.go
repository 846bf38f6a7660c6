package request

type Profile struct {
	FirstName *string `validate:"omitempty,max=100" json:"firstName"`
	LastName  *string `validate:"omitempty,max=100" json:"lastName"`
	Phone     *string `validate:"omitempty,max=20"  json:"phone"`
	Address   *string `validate:"omitempty,max=500" json:"address"`
}

// Location is sent by the traveller app whenever the device moves.
type Location struct {
	Latitude  *float64 `validate:"required,latitude"  json:"latitude"`
	Longitude *float64 `validate:"required,longitude" json:"longitude"`
	Address   *string  `validate:"omitempty,max=500"  json:"address"`
}
