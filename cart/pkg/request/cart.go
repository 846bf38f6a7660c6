package request

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const DATE_LAYOUT = "2006-01-02"

// Date accepts either a calendar date or an RFC3339 timestamp.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string with error=%w", err)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		d.Time = t.UTC()
		return nil
	}
	t, err := time.Parse(DATE_LAYOUT, s)
	if err != nil {
		return fmt.Errorf("invalid date=%q, expected YYYY-MM-DD or RFC3339", s)
	}
	d.Time = t
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Time.Format(time.RFC3339))
}

type AddItem struct {
	ItemType  string    `validate:"required,oneof=hotel vehicle" json:"itemType"`
	ItemId    uuid.UUID `validate:"required,uuid"                json:"itemId"`
	StartDate Date      `validate:"required"                     json:"startDate"`
	EndDate   Date      `validate:"required"                     json:"endDate"`
	Quantity  int       `validate:"omitempty,gte=1"              json:"quantity"`
}

// QuantityOrDefault returns 1 when quantity was omitted.
func (r AddItem) QuantityOrDefault() int {
	if r.Quantity == 0 {
		return 1
	}
	return r.Quantity
}

type RemoveItem struct {
	ItemType string    `validate:"required,oneof=hotel vehicle" json:"itemType"`
	ItemId   uuid.UUID `validate:"required,uuid"                json:"itemId"`
}

type Checkout struct {
	PaymentMethod  string `validate:"omitempty,max=64"  json:"paymentMethod"`
	BillingAddress string `validate:"omitempty,max=512" json:"billingAddress"`
}
