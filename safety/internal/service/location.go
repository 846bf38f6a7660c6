package service

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/Alturino/tourism/internal/constants"
	inErrors "github.com/Alturino/tourism/internal/errors"
	inOtel "github.com/Alturino/tourism/internal/otel"
	"github.com/Alturino/tourism/safety/internal/otel"
	"github.com/Alturino/tourism/safety/internal/places"
	"github.com/Alturino/tourism/safety/pkg/evaluation"
	"github.com/Alturino/tourism/safety/pkg/request"
	"github.com/Alturino/tourism/safety/pkg/response"
)

const (
	MAX_NEARBY_PHOTOS     = 3
	MAX_ATTRACTION_PHOTOS = 2
	MAX_ATTRACTIONS       = 20

	CATEGORY_ATTRACTION = "attraction"
	CATEGORY_RESTAURANT = "restaurant"
)

// NearbyPlaces searches places of one type around the stored location of
// userId.
func (svc *SafetyService) NearbyPlaces(
	c context.Context,
	userId uuid.UUID,
	param request.NearbyPlaces,
) (response.Places, error) {
	c, span := otel.Tracer.Start(c, "SafetyService NearbyPlaces")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "SafetyService NearbyPlaces").
		Str(constants.KEY_USER_ID, userId.String()).
		Str(constants.KEY_PLACE_TYPE, param.Type).
		Float64(constants.KEY_RADIUS, param.Radius).
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "finding user location").Logger()
	logger.Info().Msg("finding user location")
	user, err := svc.queries.FindUserById(c, userId)
	if errors.Is(err, pgx.ErrNoRows) {
		err = inErrors.ErrUserNotFound
	}
	if err != nil {
		err = fmt.Errorf("failed finding user location with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Places{}, err
	}
	if !user.Latitude.Valid || !user.Longitude.Valid {
		err = inErrors.ErrLocationUnavailable
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Places{}, err
	}
	point := evaluation.Coordinates{Latitude: user.Latitude.Float64, Longitude: user.Longitude.Float64}
	logger.Info().Msg("found user location")

	if !svc.places.Configured() {
		err = places.ErrNotConfigured
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Places{}, err
	}

	logger = logger.With().Str(constants.KEY_PROCESS, "searching nearby places").Logger()
	logger.Info().Msg("searching nearby places")
	c = logger.WithContext(c)
	found, err := svc.places.NearbySearch(c, point, param.Radius, param.Type)
	if err != nil {
		err = fmt.Errorf("failed searching nearby places with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Places{}, err
	}
	logger.Info().Int(constants.KEY_PLACES_COUNT, len(found)).Msg("searched nearby places")

	res := response.Places{Places: make([]response.Place, 0, len(found)), Location: point}
	for _, p := range found {
		res.Places = append(res.Places, placeResponse(p, MAX_NEARBY_PHOTOS))
	}
	return res, nil
}

// Attractions merges tourist attractions and restaurants around area, best
// rated first.
func (svc *SafetyService) Attractions(c context.Context, area request.Area) (response.Places, error) {
	c, span := otel.Tracer.Start(c, "SafetyService Attractions")
	defer span.End()

	point := evaluation.Coordinates{Latitude: area.Latitude, Longitude: area.Longitude}
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "SafetyService Attractions").
		Float64(constants.KEY_LATITUDE, point.Latitude).
		Float64(constants.KEY_LONGITUDE, point.Longitude).
		Float64(constants.KEY_RADIUS, area.Radius).
		Logger()

	if !svc.places.Configured() {
		err := places.ErrNotConfigured
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Places{}, err
	}

	logger = logger.With().Str(constants.KEY_PROCESS, "searching attractions").Logger()
	logger.Info().Msg("searching attractions")
	c = logger.WithContext(c)
	found := svc.places.SearchMany(c, point, area.Radius, places.TYPE_TOURIST_ATTRACTION, places.TYPE_RESTAURANT)

	all := []response.Place{}
	for _, placeType := range []string{places.TYPE_TOURIST_ATTRACTION, places.TYPE_RESTAURANT} {
		for _, p := range found[placeType] {
			place := placeResponse(p, MAX_ATTRACTION_PHOTOS)
			place.OpeningHours = nil
			place.Category = CATEGORY_RESTAURANT
			if p.HasType(places.TYPE_TOURIST_ATTRACTION) {
				place.Category = CATEGORY_ATTRACTION
			}
			all = append(all, place)
		}
	}
	slices.SortStableFunc(all, func(a, b response.Place) int {
		return cmp.Compare(ratingOf(b), ratingOf(a))
	})
	if len(all) > MAX_ATTRACTIONS {
		all = all[:MAX_ATTRACTIONS]
	}
	logger.Info().Int(constants.KEY_PLACES_COUNT, len(all)).Msg("searched attractions")
	return response.Places{Places: all, Location: point}, nil
}
