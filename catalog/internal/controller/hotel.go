package controller

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/Alturino/tourism/catalog/internal/otel"
	"github.com/Alturino/tourism/catalog/internal/service"
	"github.com/Alturino/tourism/catalog/pkg/request"
	"github.com/Alturino/tourism/catalog/pkg/response"
	"github.com/Alturino/tourism/internal"
	"github.com/Alturino/tourism/internal/constants"
	inHttp "github.com/Alturino/tourism/internal/http"
	inOtel "github.com/Alturino/tourism/internal/otel"
)

type HotelService interface {
	FindHotels(c context.Context, filter request.HotelFilter) (response.Hotels, error)
	FindHotelById(c context.Context, id uuid.UUID) (response.Hotel, error)
	AddHotelReview(c context.Context, userId uuid.UUID, hotelId uuid.UUID, param request.Review) (response.Hotel, error)
	FindHotelsNearby(c context.Context, param request.Nearby) ([]response.Hotel, error)
	SearchHotels(c context.Context, param request.Search) (response.Hotels, error)
}

var _ HotelService = (*service.CatalogService)(nil)

type HotelController struct {
	service  HotelService
	validate *validator.Validate
}

func AttachHotelController(public *mux.Router, protected *mux.Router, service HotelService) {
	controller := HotelController{
		service:  service,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}

	router := public.PathPrefix("/hotels").Subrouter()
	router.HandleFunc("", controller.FindHotels).Methods(http.MethodGet)
	router.HandleFunc("/nearby/{latitude}/{longitude}", controller.FindHotelsNearby).Methods(http.MethodGet)
	router.HandleFunc("/search/{query}", controller.SearchHotels).Methods(http.MethodGet)
	router.HandleFunc("/{id}", controller.FindHotelById).Methods(http.MethodGet)

	protected.HandleFunc("/hotels/{id}/reviews", controller.AddHotelReview).Methods(http.MethodPost)
}

func (h HotelController) FindHotels(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "HotelController FindHotels")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "HotelController FindHotels").
		Str(constants.KEY_QUERY, r.URL.RawQuery).
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "parsing filter").Logger()
	logger.Info().Msg("parsing filter")
	filter, err := request.ParseHotelFilter(r.URL.Query())
	if err == nil {
		err = h.validate.StructCtx(c, filter)
	}
	if err != nil {
		err = fmt.Errorf("failed parsing filter with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailed(c, w, http.StatusBadRequest, err)
		return
	}
	logger.Info().Msg("parsed filter")

	logger = logger.With().Str(constants.KEY_PROCESS, "finding hotels").Logger()
	logger.Info().Msg("finding hotels")
	c = logger.WithContext(c)
	hotels, err := h.service.FindHotels(c, filter)
	if err != nil {
		err = fmt.Errorf("failed finding hotels with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailed(c, w, statusFromError(err), err)
		return
	}
	logger.Info().Msg("found hotels")

	inHttp.WriteSuccess(
		c,
		w,
		http.StatusOK,
		"found hotels",
		map[string]interface{}{"hotels": hotels.Hotels, "pagination": hotels.Pagination},
	)
}

func (h HotelController) FindHotelById(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "HotelController FindHotelById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "HotelController FindHotelById").
		Any(constants.KEY_PATH_VALUES, mux.Vars(r)).
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "parsing hotelId").Logger()
	logger.Info().Msg("parsing hotelId")
	id, err := idFromPath(r)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailed(c, w, http.StatusBadRequest, err)
		return
	}
	logger = logger.With().Str(constants.KEY_HOTEL_ID, id.String()).Logger()
	logger.Info().Msg("parsed hotelId")

	logger = logger.With().Str(constants.KEY_PROCESS, "finding hotel").Logger()
	logger.Info().Msg("finding hotel")
	c = logger.WithContext(c)
	hotel, err := h.service.FindHotelById(c, id)
	if err != nil {
		err = fmt.Errorf("failed finding hotel with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailed(c, w, statusFromError(err), err)
		return
	}
	logger.Info().Msg("found hotel")

	inHttp.WriteSuccess(c, w, http.StatusOK, "found hotel", map[string]interface{}{"hotel": hotel})
}

func (h HotelController) AddHotelReview(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "HotelController AddHotelReview")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "HotelController AddHotelReview").
		Any(constants.KEY_PATH_VALUES, mux.Vars(r)).
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "parsing hotelId").Logger()
	logger.Info().Msg("parsing hotelId")
	id, err := idFromPath(r)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailed(c, w, http.StatusBadRequest, err)
		return
	}
	logger = logger.With().Str(constants.KEY_HOTEL_ID, id.String()).Logger()
	logger.Info().Msg("parsed hotelId")

	logger = logger.With().Str(constants.KEY_PROCESS, "decoding requestbody").Logger()
	logger.Info().Msg("decoding requestbody")
	review, err := decodeReview(r, h.validate)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailed(c, w, http.StatusBadRequest, err)
		return
	}
	logger = logger.With().Any(constants.KEY_REQUEST_BODY, review).Logger()
	logger.Info().Msg("decoded request body")

	logger = logger.With().Str(constants.KEY_PROCESS, "getting userId from jwtToken").Logger()
	logger.Info().Msg("getting userId from jwtToken")
	userId, err := internal.UserIdFromJwtToken(c)
	if err != nil {
		err = fmt.Errorf("failed getting userId from jwtToken with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailed(c, w, http.StatusUnauthorized, err)
		return
	}
	logger = logger.With().Str(constants.KEY_USER_ID, userId.String()).Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "adding review").Logger()
	logger.Info().Msg("adding review")
	c = logger.WithContext(c)
	hotel, err := h.service.AddHotelReview(c, userId, id, review)
	if err != nil {
		err = fmt.Errorf("failed adding review with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailed(c, w, statusFromError(err), err)
		return
	}
	logger.Info().Msg("added review")

	inHttp.WriteSuccess(c, w, http.StatusCreated, service.REVIEW_MESSAGE, map[string]interface{}{"hotel": hotel})
}

func (h HotelController) FindHotelsNearby(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "HotelController FindHotelsNearby")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "HotelController FindHotelsNearby").
		Any(constants.KEY_PATH_VALUES, mux.Vars(r)).
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "parsing location").Logger()
	logger.Info().Msg("parsing location")
	nearby, err := nearbyFromPath(r)
	if err == nil {
		err = h.validate.StructCtx(c, nearby)
	}
	if err != nil {
		err = fmt.Errorf("failed parsing location with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailed(c, w, http.StatusBadRequest, err)
		return
	}
	logger.Info().Msg("parsed location")

	logger = logger.With().Str(constants.KEY_PROCESS, "finding nearby hotels").Logger()
	logger.Info().Msg("finding nearby hotels")
	c = logger.WithContext(c)
	hotels, err := h.service.FindHotelsNearby(c, nearby)
	if err != nil {
		err = fmt.Errorf("failed finding nearby hotels with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailed(c, w, statusFromError(err), err)
		return
	}
	logger.Info().Msg("found nearby hotels")

	inHttp.WriteSuccess(c, w, http.StatusOK, "found nearby hotels", map[string]interface{}{"hotels": hotels})
}

func (h HotelController) SearchHotels(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "HotelController SearchHotels")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "HotelController SearchHotels").
		Any(constants.KEY_PATH_VALUES, mux.Vars(r)).
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "parsing search").Logger()
	logger.Info().Msg("parsing search")
	search, err := searchFromPath(r)
	if err == nil {
		err = h.validate.StructCtx(c, search)
	}
	if err != nil {
		err = fmt.Errorf("failed parsing search with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailed(c, w, http.StatusBadRequest, err)
		return
	}
	logger.Info().Msg("parsed search")

	logger = logger.With().Str(constants.KEY_PROCESS, "searching hotels").Logger()
	logger.Info().Msg("searching hotels")
	c = logger.WithContext(c)
	hotels, err := h.service.SearchHotels(c, search)
	if err != nil {
		err = fmt.Errorf("failed searching hotels with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailed(c, w, statusFromError(err), err)
		return
	}
	logger.Info().Msg("searched hotels")

	inHttp.WriteSuccess(
		c,
		w,
		http.StatusOK,
		"searched hotels",
		map[string]interface{}{"hotels": hotels.Hotels, "pagination": hotels.Pagination},
	)
}
