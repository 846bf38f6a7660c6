package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/Alturino/tourism/catalog/pkg/request"
	inErrors "github.com/Alturino/tourism/internal/errors"
)

func statusFromError(err error) int {
	switch {
	case errors.Is(err, inErrors.ErrHotelNotFound),
		errors.Is(err, inErrors.ErrVehicleNotFound),
		errors.Is(err, inErrors.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, inErrors.ErrReviewExists):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func idFromPath(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed parsing id with error=%w", err)
	}
	return id, nil
}

func nearbyFromPath(r *http.Request) (request.Nearby, error) {
	pathValues := mux.Vars(r)
	latitude, err := request.ParseFloat(pathValues["latitude"], 0)
	if err != nil {
		return request.Nearby{}, fmt.Errorf("failed parsing latitude with error=%w", err)
	}
	longitude, err := request.ParseFloat(pathValues["longitude"], 0)
	if err != nil {
		return request.Nearby{}, fmt.Errorf("failed parsing longitude with error=%w", err)
	}
	radius, err := request.ParseFloat(r.URL.Query().Get("radius"), request.DEFAULT_NEARBY_RADIUS)
	if err != nil {
		return request.Nearby{}, fmt.Errorf("failed parsing radius with error=%w", err)
	}
	return request.Nearby{Latitude: latitude, Longitude: longitude, Radius: radius}, nil
}

func searchFromPath(r *http.Request) (request.Search, error) {
	pagination, err := request.ParsePagination(r.URL.Query())
	if err != nil {
		return request.Search{}, err
	}
	return request.Search{Query: mux.Vars(r)["query"], Pagination: pagination}, nil
}

func decodeReview(r *http.Request, validate *validator.Validate) (request.Review, error) {
	review := request.Review{}
	if err := json.NewDecoder(r.Body).Decode(&review); err != nil {
		return request.Review{}, fmt.Errorf("failed decoding request body with error=%w", err)
	}
	if err := validate.StructCtx(r.Context(), review); err != nil {
		return request.Review{}, fmt.Errorf("failed validating request body with error=%w", err)
	}
	return review, nil
}
