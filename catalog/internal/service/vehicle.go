package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"

	"github.com/Alturino/tourism/catalog/internal/cache"
	"github.com/Alturino/tourism/catalog/internal/otel"
	"github.com/Alturino/tourism/catalog/pkg/request"
	"github.com/Alturino/tourism/catalog/pkg/response"
	"github.com/Alturino/tourism/internal/constants"
	inErrors "github.com/Alturino/tourism/internal/errors"
	inOtel "github.com/Alturino/tourism/internal/otel"
	"github.com/Alturino/tourism/internal/repository"
)

var vehicleReviews = reviewOps{
	notFound: inErrors.ErrVehicleNotFound,
	exists: func(c context.Context, q *repository.Queries, id uuid.UUID) error {
		_, err := q.FindVehicleById(c, id)
		return err
	},
	countByUser: func(c context.Context, q *repository.Queries, id, userId uuid.UUID) (int64, error) {
		return q.CountVehicleReviewsByUser(c, id, userId)
	},
	insert: func(c context.Context, q *repository.Queries, arg repository.InsertReviewParams) (repository.Review, error) {
		return q.InsertVehicleReview(c, arg)
	},
	updateRating: func(c context.Context, q *repository.Queries, id uuid.UUID) error {
		_, err := q.UpdateVehicleRating(c, id)
		return err
	},
}

func vehicleFilterParams(filter request.VehicleFilter) repository.VehicleFilter {
	params := repository.VehicleFilter{
		Type:         repository.NullableText(filter.Type),
		MinPrice:     repository.NullableNumeric(filter.MinPrice),
		MaxPrice:     repository.NullableNumeric(filter.MaxPrice),
		Brand:        repository.NullableText(filter.Brand),
		Transmission: repository.NullableText(filter.Transmission),
		FuelType:     repository.NullableText(filter.FuelType),
		Radius:       filter.Radius,
	}
	if filter.Seats != nil {
		params.MinSeats = pgtype.Int4{Int32: int32(*filter.Seats), Valid: true}
	}
	if filter.HasPoint() {
		params.Latitude = repository.NullableFloat8(filter.Latitude)
		params.Longitude = repository.NullableFloat8(filter.Longitude)
	}
	return params
}

func (svc *CatalogService) FindVehicles(c context.Context, filter request.VehicleFilter) (response.Vehicles, error) {
	c, span := otel.Tracer.Start(c, "CatalogService FindVehicles")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "CatalogService FindVehicles").
		Any(constants.KEY_SEARCH_FILTER, filter).
		Logger()

	params := vehicleFilterParams(filter)

	logger = logger.With().Str(constants.KEY_PROCESS, "finding vehicles").Logger()
	logger.Info().Msg("finding vehicles")
	rows, err := svc.queries.FindVehicles(c, params, int32(filter.Limit), filter.Offset())
	if err != nil {
		err = fmt.Errorf("failed finding vehicles with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Vehicles{}, err
	}
	count, err := svc.queries.CountVehicles(c, params)
	if err != nil {
		err = fmt.Errorf("failed counting vehicles with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Vehicles{}, err
	}
	logger.Info().Int64("count", count).Msg("found vehicles")

	vehicles := make([]response.Vehicle, 0, len(rows))
	for _, row := range rows {
		vehicles = append(vehicles, vehicleResponse(row))
	}
	vehicles = withinGeo(vehicles, filter.Geo, vehicleLocation, setVehicleDistance)
	return response.Vehicles{
		Vehicles:   vehicles,
		Pagination: response.NewPagination(filter.Page, filter.Limit, len(rows), count),
	}, nil
}

func (svc *CatalogService) FindVehicleById(c context.Context, id uuid.UUID) (response.Vehicle, error) {
	c, span := otel.Tracer.Start(c, "CatalogService FindVehicleById")
	defer span.End()

	cacheKey := cache.VehicleKey(id)
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "CatalogService FindVehicleById").
		Str(constants.KEY_VEHICLE_ID, id.String()).
		Str(constants.KEY_CACHE_KEY, cacheKey).
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "finding vehicle in cache").Logger()
	logger.Trace().Msg("finding vehicle in cache")
	vehicle, err := findCached[response.Vehicle](c, svc.cache, cacheKey)
	if err == nil {
		logger.Trace().Msg("found vehicle in cache")
		return vehicle, nil
	}
	if !errors.Is(err, inErrors.ErrCacheMissed) {
		logger.Warn().Err(err).Msg(err.Error())
	}

	logger = logger.With().Str(constants.KEY_PROCESS, "finding vehicle in database").Logger()
	logger.Info().Msg("finding vehicle in database")
	row, err := svc.queries.FindVehicleById(c, id)
	if errors.Is(err, pgx.ErrNoRows) {
		err = inErrors.ErrVehicleNotFound
	}
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Vehicle{}, err
	}
	reviews, err := svc.queries.FindVehicleReviews(c, id)
	if err != nil {
		err = fmt.Errorf("failed finding vehicle reviews with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Vehicle{}, err
	}
	logger.Info().Msg("found vehicle in database")

	vehicle = vehicleResponse(row)
	vehicle.Reviews = reviewResponses(reviews)
	storeCached(logger.WithContext(c), svc.cache, cacheKey, vehicle, cache.DETAIL_TTL)
	return vehicle, nil
}

func (svc *CatalogService) AddVehicleReview(
	c context.Context,
	userId uuid.UUID,
	vehicleId uuid.UUID,
	param request.Review,
) (response.Vehicle, error) {
	c, span := otel.Tracer.Start(c, "CatalogService AddVehicleReview")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "CatalogService AddVehicleReview").
		Str(constants.KEY_VEHICLE_ID, vehicleId.String()).
		Str(constants.KEY_USER_ID, userId.String()).
		Str(constants.KEY_PROCESS, "adding review").
		Logger()

	logger.Info().Msg("adding review")
	if err := svc.addReview(logger.WithContext(c), vehicleReviews, vehicleId, userId, param); err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Vehicle{}, err
	}
	logger.Info().Msg("added review")

	invalidate(c, svc.cache, cache.VehicleKey(vehicleId))
	return svc.FindVehicleById(c, vehicleId)
}

func (svc *CatalogService) FindVehiclesNearby(c context.Context, param request.Nearby) ([]response.Vehicle, error) {
	c, span := otel.Tracer.Start(c, "CatalogService FindVehiclesNearby")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "CatalogService FindVehiclesNearby").
		Float64(constants.KEY_LATITUDE, param.Latitude).
		Float64(constants.KEY_LONGITUDE, param.Longitude).
		Float64(constants.KEY_RADIUS, param.Radius).
		Str(constants.KEY_PROCESS, "finding nearby vehicles").
		Logger()

	logger.Info().Msg("finding nearby vehicles")
	rows, err := svc.queries.FindVehiclesNearby(c, repository.FindNearbyParams{
		Latitude:  param.Latitude,
		Longitude: param.Longitude,
		Radius:    param.Radius,
		Limit:     request.MAX_NEARBY_RESULTS,
	})
	if err != nil {
		err = fmt.Errorf("failed finding nearby vehicles with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Int("count", len(rows)).Msg("found nearby vehicles")

	vehicles := make([]response.Vehicle, 0, len(rows))
	for _, row := range rows {
		vehicles = append(vehicles, vehicleResponse(row))
	}
	geo := request.Geo{Latitude: &param.Latitude, Longitude: &param.Longitude, Radius: param.Radius}
	return withinGeo(vehicles, geo, vehicleLocation, setVehicleDistance), nil
}

func (svc *CatalogService) SearchVehicles(c context.Context, param request.Search) (response.Vehicles, error) {
	c, span := otel.Tracer.Start(c, "CatalogService SearchVehicles")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "CatalogService SearchVehicles").
		Str(constants.KEY_QUERY, param.Query).
		Any(constants.KEY_PAGINATION, param.Pagination).
		Str(constants.KEY_PROCESS, "searching vehicles").
		Logger()

	logger.Info().Msg("searching vehicles")
	rows, err := svc.queries.SearchVehicles(c, repository.SearchParams{
		Query:  param.Query,
		Limit:  int32(param.Limit),
		Offset: param.Offset(),
	})
	if err != nil {
		err = fmt.Errorf("failed searching vehicles with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Vehicles{}, err
	}
	count, err := svc.queries.CountSearchVehicles(c, param.Query)
	if err != nil {
		err = fmt.Errorf("failed counting searched vehicles with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Vehicles{}, err
	}
	logger.Info().Int64("count", count).Msg("searched vehicles")

	vehicles := make([]response.Vehicle, 0, len(rows))
	for _, row := range rows {
		vehicles = append(vehicles, vehicleResponse(row))
	}
	return response.Vehicles{
		Vehicles:   vehicles,
		Pagination: response.NewPagination(param.Page, param.Limit, len(rows), count),
	}, nil
}

func (svc *CatalogService) VehicleTypes(c context.Context) ([]string, error) {
	c, span := otel.Tracer.Start(c, "CatalogService VehicleTypes")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "CatalogService VehicleTypes").
		Str(constants.KEY_PROCESS, "finding vehicle types").
		Logger()

	logger.Trace().Msg("finding vehicle types")
	types, err := svc.queries.FindVehicleTypes(c)
	if err != nil {
		err = fmt.Errorf("failed finding vehicle types with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Trace().Msg("found vehicle types")
	return types, nil
}

func (svc *CatalogService) VehicleBrands(c context.Context) ([]string, error) {
	c, span := otel.Tracer.Start(c, "CatalogService VehicleBrands")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "CatalogService VehicleBrands").
		Str(constants.KEY_PROCESS, "finding vehicle brands").
		Logger()

	logger.Trace().Msg("finding vehicle brands")
	brands, err := svc.queries.FindVehicleBrands(c)
	if err != nil {
		err = fmt.Errorf("failed finding vehicle brands with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Trace().Msg("found vehicle brands")
	return brands, nil
}
