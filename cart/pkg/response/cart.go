package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Alturino/tourism/cart/pkg/pricing"
)

const MONEY_PLACES = 2

type Details struct {
	Name     string `json:"name"`
	Image    string `json:"image"`
	Location string `json:"location"`
}

type CartItem struct {
	ItemType    string          `json:"itemType"`
	ItemId      uuid.UUID       `json:"itemId"`
	Quantity    int             `json:"quantity"`
	StartDate   time.Time       `json:"startDate"`
	EndDate     time.Time       `json:"endDate"`
	PricePerDay decimal.Decimal `json:"pricePerDay"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
	ItemDetails Details         `json:"itemDetails"`
}

type Cart struct {
	ID        uuid.UUID       `json:"id"`
	UserId    uuid.UUID       `json:"userId"`
	Items     []CartItem      `json:"items"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Tax       decimal.Decimal `json:"tax"`
	Total     decimal.Decimal `json:"total"`
	Version   int64           `json:"version"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type Checkout struct {
	Message string          `json:"message"`
	OrderId string          `json:"orderId"`
	Total   decimal.Decimal `json:"total"`
}

// FromCart renders money rounded to two places. The cart keeps full
// precision internally.
func FromCart(cart *pricing.Cart) Cart {
	items := cart.Items()
	res := Cart{
		ID:        cart.ID,
		UserId:    cart.UserID,
		Items:     make([]CartItem, 0, len(items)),
		Subtotal:  cart.Subtotal().Round(MONEY_PLACES),
		Tax:       cart.Tax().Round(MONEY_PLACES),
		Total:     cart.Total().Round(MONEY_PLACES),
		Version:   cart.Version,
		CreatedAt: cart.CreatedAt,
		UpdatedAt: cart.UpdatedAt,
	}
	for _, item := range items {
		res.Items = append(res.Items, CartItem{
			ItemType:    string(item.ItemType),
			ItemId:      item.ItemID,
			Quantity:    item.Quantity,
			StartDate:   item.StartDate,
			EndDate:     item.EndDate,
			PricePerDay: item.PricePerDay.Round(MONEY_PLACES),
			TotalPrice:  item.TotalPrice.Round(MONEY_PLACES),
			ItemDetails: Details(item.Details),
		})
	}
	return res
}
