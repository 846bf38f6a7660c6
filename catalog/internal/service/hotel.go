package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/Alturino/tourism/catalog/internal/cache"
	"github.com/Alturino/tourism/catalog/internal/otel"
	"github.com/Alturino/tourism/catalog/pkg/request"
	"github.com/Alturino/tourism/catalog/pkg/response"
	"github.com/Alturino/tourism/internal/constants"
	inErrors "github.com/Alturino/tourism/internal/errors"
	inOtel "github.com/Alturino/tourism/internal/otel"
	"github.com/Alturino/tourism/internal/repository"
)

var hotelReviews = reviewOps{
	notFound: inErrors.ErrHotelNotFound,
	exists: func(c context.Context, q *repository.Queries, id uuid.UUID) error {
		hotel, err := q.FindHotelById(c, id)
		if err == nil && !hotel.IsActive {
			return inErrors.ErrHotelNotFound
		}
		return err
	},
	countByUser: func(c context.Context, q *repository.Queries, id, userId uuid.UUID) (int64, error) {
		return q.CountHotelReviewsByUser(c, id, userId)
	},
	insert: func(c context.Context, q *repository.Queries, arg repository.InsertReviewParams) (repository.Review, error) {
		return q.InsertHotelReview(c, arg)
	},
	updateRating: func(c context.Context, q *repository.Queries, id uuid.UUID) error {
		_, err := q.UpdateHotelRating(c, id)
		return err
	},
}

func hotelFilterParams(filter request.HotelFilter) repository.HotelFilter {
	params := repository.HotelFilter{
		MinPrice:  repository.NullableNumeric(filter.MinPrice),
		MaxPrice:  repository.NullableNumeric(filter.MaxPrice),
		Amenities: filter.Amenities,
		City:      repository.NullableText(filter.City),
		Radius:    filter.Radius,
	}
	if filter.Rating != nil {
		params.MinRating = repository.NumericFromDecimal(decimal.NewFromFloat(*filter.Rating))
	}
	if filter.HasPoint() {
		params.Latitude = repository.NullableFloat8(filter.Latitude)
		params.Longitude = repository.NullableFloat8(filter.Longitude)
	}
	return params
}

func (svc *CatalogService) FindHotels(c context.Context, filter request.HotelFilter) (response.Hotels, error) {
	c, span := otel.Tracer.Start(c, "CatalogService FindHotels")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "CatalogService FindHotels").
		Any(constants.KEY_SEARCH_FILTER, filter).
		Logger()

	params := hotelFilterParams(filter)

	logger = logger.With().Str(constants.KEY_PROCESS, "finding hotels").Logger()
	logger.Info().Msg("finding hotels")
	rows, err := svc.queries.FindHotels(c, params, int32(filter.Limit), filter.Offset())
	if err != nil {
		err = fmt.Errorf("failed finding hotels with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Hotels{}, err
	}
	count, err := svc.queries.CountHotels(c, params)
	if err != nil {
		err = fmt.Errorf("failed counting hotels with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Hotels{}, err
	}
	logger.Info().Int64("count", count).Msg("found hotels")

	hotels := make([]response.Hotel, 0, len(rows))
	for _, row := range rows {
		hotels = append(hotels, hotelResponse(row))
	}
	hotels = withinGeo(hotels, filter.Geo, hotelLocation, setHotelDistance)
	return response.Hotels{
		Hotels:     hotels,
		Pagination: response.NewPagination(filter.Page, filter.Limit, len(rows), count),
	}, nil
}

// FindHotelById returns an active hotel with its reviews.
func (svc *CatalogService) FindHotelById(c context.Context, id uuid.UUID) (response.Hotel, error) {
	c, span := otel.Tracer.Start(c, "CatalogService FindHotelById")
	defer span.End()

	cacheKey := cache.HotelKey(id)
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "CatalogService FindHotelById").
		Str(constants.KEY_HOTEL_ID, id.String()).
		Str(constants.KEY_CACHE_KEY, cacheKey).
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "finding hotel in cache").Logger()
	logger.Trace().Msg("finding hotel in cache")
	hotel, err := findCached[response.Hotel](c, svc.cache, cacheKey)
	if err == nil {
		logger.Trace().Msg("found hotel in cache")
		return hotel, nil
	}
	if !errors.Is(err, inErrors.ErrCacheMissed) {
		logger.Warn().Err(err).Msg(err.Error())
	}

	logger = logger.With().Str(constants.KEY_PROCESS, "finding hotel in database").Logger()
	logger.Info().Msg("finding hotel in database")
	row, err := svc.queries.FindHotelById(c, id)
	if errors.Is(err, pgx.ErrNoRows) || (err == nil && !row.IsActive) {
		err = inErrors.ErrHotelNotFound
	}
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Hotel{}, err
	}
	reviews, err := svc.queries.FindHotelReviews(c, id)
	if err != nil {
		err = fmt.Errorf("failed finding hotel reviews with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Hotel{}, err
	}
	logger.Info().Msg("found hotel in database")

	hotel = hotelResponse(row)
	hotel.Reviews = reviewResponses(reviews)
	storeCached(logger.WithContext(c), svc.cache, cacheKey, hotel, cache.DETAIL_TTL)
	return hotel, nil
}

func (svc *CatalogService) AddHotelReview(
	c context.Context,
	userId uuid.UUID,
	hotelId uuid.UUID,
	param request.Review,
) (response.Hotel, error) {
	c, span := otel.Tracer.Start(c, "CatalogService AddHotelReview")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "CatalogService AddHotelReview").
		Str(constants.KEY_HOTEL_ID, hotelId.String()).
		Str(constants.KEY_USER_ID, userId.String()).
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "adding review").Logger()
	logger.Info().Msg("adding review")
	if err := svc.addReview(logger.WithContext(c), hotelReviews, hotelId, userId, param); err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Hotel{}, err
	}
	logger.Info().Msg("added review")

	invalidate(c, svc.cache, cache.HotelKey(hotelId))
	return svc.FindHotelById(c, hotelId)
}

func (svc *CatalogService) FindHotelsNearby(c context.Context, param request.Nearby) ([]response.Hotel, error) {
	c, span := otel.Tracer.Start(c, "CatalogService FindHotelsNearby")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "CatalogService FindHotelsNearby").
		Float64(constants.KEY_LATITUDE, param.Latitude).
		Float64(constants.KEY_LONGITUDE, param.Longitude).
		Float64(constants.KEY_RADIUS, param.Radius).
		Str(constants.KEY_PROCESS, "finding nearby hotels").
		Logger()

	logger.Info().Msg("finding nearby hotels")
	rows, err := svc.queries.FindHotelsNearby(c, repository.FindNearbyParams{
		Latitude:  param.Latitude,
		Longitude: param.Longitude,
		Radius:    param.Radius,
		Limit:     request.MAX_NEARBY_RESULTS,
	})
	if err != nil {
		err = fmt.Errorf("failed finding nearby hotels with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Int("count", len(rows)).Msg("found nearby hotels")

	hotels := make([]response.Hotel, 0, len(rows))
	for _, row := range rows {
		hotels = append(hotels, hotelResponse(row))
	}
	geo := request.Geo{Latitude: &param.Latitude, Longitude: &param.Longitude, Radius: param.Radius}
	return withinGeo(hotels, geo, hotelLocation, setHotelDistance), nil
}

func (svc *CatalogService) SearchHotels(c context.Context, param request.Search) (response.Hotels, error) {
	c, span := otel.Tracer.Start(c, "CatalogService SearchHotels")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "CatalogService SearchHotels").
		Str(constants.KEY_QUERY, param.Query).
		Any(constants.KEY_PAGINATION, param.Pagination).
		Str(constants.KEY_PROCESS, "searching hotels").
		Logger()

	logger.Info().Msg("searching hotels")
	rows, err := svc.queries.SearchHotels(c, repository.SearchParams{
		Query:  param.Query,
		Limit:  int32(param.Limit),
		Offset: param.Offset(),
	})
	if err != nil {
		err = fmt.Errorf("failed searching hotels with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Hotels{}, err
	}
	count, err := svc.queries.CountSearchHotels(c, param.Query)
	if err != nil {
		err = fmt.Errorf("failed counting searched hotels with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Hotels{}, err
	}
	logger.Info().Int64("count", count).Msg("searched hotels")

	hotels := make([]response.Hotel, 0, len(rows))
	for _, row := range rows {
		hotels = append(hotels, hotelResponse(row))
	}
	return response.Hotels{
		Hotels:     hotels,
		Pagination: response.NewPagination(param.Page, param.Limit, len(rows), count),
	}, nil
}
