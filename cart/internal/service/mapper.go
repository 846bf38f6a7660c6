package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Alturino/tourism/cart/pkg/event"
	"github.com/Alturino/tourism/cart/pkg/pricing"
	"github.com/Alturino/tourism/internal/repository"
)

func cartFromRow(row repository.Cart) (*pricing.Cart, error) {
	items := []pricing.LineItem{}
	if len(row.Items) > 0 {
		if err := json.Unmarshal(row.Items, &items); err != nil {
			return nil, fmt.Errorf("failed unmarshaling cart items with error=%w", err)
		}
	}
	return pricing.Restore(
		row.ID,
		row.UserID,
		items,
		row.Version,
		row.CreatedAt.Time,
		row.UpdatedAt.Time,
	), nil
}

func verifyStoredTotals(row repository.Cart, cart *pricing.Cart) error {
	return cart.VerifyTotals(
		repository.DecimalFromNumeric(row.Subtotal),
		repository.DecimalFromNumeric(row.Tax),
		repository.DecimalFromNumeric(row.Total),
	)
}

func updateParamsFromCart(cart *pricing.Cart) (repository.UpdateCartParams, error) {
	items, err := json.Marshal(cart.Items())
	if err != nil {
		return repository.UpdateCartParams{}, fmt.Errorf("failed marshaling cart items with error=%w", err)
	}
	return repository.UpdateCartParams{
		ID:       cart.ID,
		Items:    items,
		Subtotal: repository.NumericFromDecimal(cart.Subtotal()),
		Tax:      repository.NumericFromDecimal(cart.Tax()),
		Total:    repository.NumericFromDecimal(cart.Total()),
		Version:  cart.Version,
	}, nil
}

func hotelLineDetails(hotel repository.Hotel) pricing.Details {
	return pricing.Details{
		Name:     hotel.Name,
		Image:    firstImage(hotel.Images),
		Location: joinLocation(hotel.City, hotel.State),
	}
}

func vehicleLineDetails(vehicle repository.Vehicle) pricing.Details {
	return pricing.Details{
		Name:     vehicle.Name,
		Image:    firstImage(vehicle.Images),
		Location: joinLocation(vehicle.City, vehicle.State),
	}
}

func firstImage(images []string) string {
	if len(images) == 0 {
		return ""
	}
	return images[0]
}

func joinLocation(city, state string) string {
	parts := make([]string, 0, 2)
	for _, p := range []string{city, state} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

func checkedOutItems(items []pricing.LineItem) []event.CheckedOutItem {
	res := make([]event.CheckedOutItem, 0, len(items))
	for _, item := range items {
		res = append(res, event.CheckedOutItem{
			ItemType:   string(item.ItemType),
			ItemID:     item.ItemID,
			Name:       item.Details.Name,
			Quantity:   item.Quantity,
			StartDate:  item.StartDate,
			EndDate:    item.EndDate,
			TotalPrice: item.TotalPrice,
		})
	}
	return res
}
