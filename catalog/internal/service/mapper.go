package service

import (
	"encoding/json"

	"github.com/Alturino/tourism/catalog/pkg/request"
	"github.com/Alturino/tourism/catalog/pkg/response"
	"github.com/Alturino/tourism/internal/repository"
	"github.com/Alturino/tourism/safety/pkg/evaluation"
)

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func hotelResponse(h repository.Hotel) response.Hotel {
	roomTypes := json.RawMessage(h.RoomTypes)
	if len(roomTypes) == 0 {
		roomTypes = json.RawMessage("[]")
	}
	return response.Hotel{
		ID:          h.ID,
		Name:        h.Name,
		Description: h.Description,
		Address: response.Address{
			Street:      h.Street,
			City:        h.City,
			State:       h.State,
			Country:     h.Country,
			ZipCode:     h.ZipCode,
			Coordinates: response.Coordinates{Latitude: h.Latitude, Longitude: h.Longitude},
		},
		Rating: repository.DecimalFromNumeric(h.Rating),
		PriceRange: response.PriceRange{
			Min:      repository.DecimalFromNumeric(h.PriceMin),
			Max:      repository.DecimalFromNumeric(h.PriceMax),
			Currency: h.Currency,
		},
		Amenities: nonNil(h.Amenities),
		Images:    nonNil(h.Images),
		Contact:   response.Contact{Phone: h.Phone, Email: h.Email, Website: h.Website},
		RoomTypes: roomTypes,
		CreatedAt: h.CreatedAt.Time,
		UpdatedAt: h.UpdatedAt.Time,
	}
}

func vehicleResponse(v repository.Vehicle) response.Vehicle {
	res := response.Vehicle{
		ID:          v.ID,
		Name:        v.Name,
		Type:        v.Type,
		Brand:       v.Brand,
		Model:       v.Model,
		Year:        v.Year,
		Description: v.Description,
		PricePerDay: repository.DecimalFromNumeric(v.PricePerDay),
		Currency:    v.Currency,
		Location: response.Location{
			Address:     v.Address,
			City:        v.City,
			State:       v.State,
			Coordinates: response.Coordinates{Latitude: v.Latitude, Longitude: v.Longitude},
		},
		Features:      nonNil(v.Features),
		Images:        nonNil(v.Images),
		FuelType:      v.FuelType,
		Transmission:  v.Transmission,
		Seats:         v.Seats,
		AverageRating: repository.DecimalFromNumeric(v.AverageRating),
		CreatedAt:     v.CreatedAt.Time,
		UpdatedAt:     v.UpdatedAt.Time,
	}
	if v.PricePerHour.Valid {
		perHour := repository.DecimalFromNumeric(v.PricePerHour)
		res.PricePerHour = &perHour
	}
	if v.Mileage.Valid {
		mileage := v.Mileage.Int32
		res.Mileage = &mileage
	}
	return res
}

func reviewResponses(rows []repository.Review) []response.Review {
	reviews := make([]response.Review, 0, len(rows))
	for _, r := range rows {
		reviews = append(reviews, response.Review{
			ID:        r.ID,
			UserId:    r.UserID,
			UserName:  r.UserName,
			Rating:    r.Rating,
			Comment:   r.Comment,
			CreatedAt: r.CreatedAt.Time,
		})
	}
	return reviews
}

// withinGeo keeps items inside geo. The query prefilters with the same
// haversine formula, this drops rows that only passed through rounding and
// records the distance on each kept item.
func withinGeo[T any](
	items []T,
	geo request.Geo,
	location func(T) response.Coordinates,
	setDistance func(*T, int64),
) []T {
	if !geo.HasPoint() {
		return items
	}
	kept := make([]T, 0, len(items))
	for _, item := range items {
		at := location(item)
		d := evaluation.DistanceMeters(*geo.Latitude, *geo.Longitude, at.Latitude, at.Longitude)
		if float64(d) > geo.Radius {
			continue
		}
		setDistance(&item, d)
		kept = append(kept, item)
	}
	return kept
}

func hotelLocation(h response.Hotel) response.Coordinates {
	return h.Address.Coordinates
}

func setHotelDistance(h *response.Hotel, d int64) {
	h.Distance = &d
}

func vehicleLocation(v response.Vehicle) response.Coordinates {
	return v.Location.Coordinates
}

func setVehicleDistance(v *response.Vehicle, d int64) {
	v.Distance = &d
}
