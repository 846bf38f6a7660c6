package request

import (
	"encoding/json"

	"github.com/rs/zerolog"
)

type Register struct {
	Name     string  `validate:"required,min=2,max=255"   json:"name"`
	Email    string  `validate:"required,email,max=255"   json:"email"`
	Password string  `validate:"required,min=6,max=72"    json:"password"`
	Phone    *string `validate:"omitempty,min=5,max=20"   json:"phone"`
}

func (r Register) MarshalZerologObject(e *zerolog.Event) {
	e.Str("email", r.Email).Str("name", r.Name).Str("password", "***")
}

func (r Register) MarshalJSON() ([]byte, error) {
	r.Password = "***"
	type R Register
	return json.Marshal(R(r))
}
