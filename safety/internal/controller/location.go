package controller

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/Alturino/tourism/internal"
	"github.com/Alturino/tourism/internal/constants"
	inHttp "github.com/Alturino/tourism/internal/http"
	inOtel "github.com/Alturino/tourism/internal/otel"
	"github.com/Alturino/tourism/safety/internal/otel"
	"github.com/Alturino/tourism/safety/pkg/request"
)

type LocationController struct {
	service  SafetyService
	validate *validator.Validate
}

func AttachLocationController(protected *mux.Router, service SafetyService) {
	controller := LocationController{
		service:  service,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}

	router := protected.PathPrefix("/location").Subrouter()
	router.HandleFunc("/nearby-places", controller.NearbyPlaces).Methods(http.MethodGet)
	router.HandleFunc("/attractions", controller.Attractions).Methods(http.MethodGet)
}

func (t LocationController) NearbyPlaces(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "LocationController NearbyPlaces")
	defer span.End()

	query := r.URL.Query()
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "LocationController NearbyPlaces").
		Any(constants.KEY_QUERY, query).
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "parsing query").Logger()
	logger.Info().Msg("parsing query")
	param := request.NearbyPlaces{Type: query.Get("type")}
	if param.Type == "" {
		param.Type = request.DEFAULT_NEARBY_PLACE_TYPE
	}
	radius, err := request.ParseFloat(query.Get("radius"), request.DEFAULT_NEARBY_PLACES_RADIUS)
	param.Radius = radius
	if err == nil {
		err = t.validate.StructCtx(c, param)
	}
	if err != nil {
		err = fmt.Errorf("failed parsing query with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailed(c, w, http.StatusBadRequest, err)
		return
	}
	logger.Info().Msg("parsed query")

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

	logger = logger.With().Str(constants.KEY_PROCESS, "finding nearby places").Logger()
	logger.Info().Msg("finding nearby places")
	c = logger.WithContext(c)
	places, err := t.service.NearbyPlaces(c, userId, param)
	if err != nil {
		err = fmt.Errorf("failed finding nearby places with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailed(c, w, statusFromError(err), err)
		return
	}
	logger.Info().Msg("found nearby places")

	inHttp.WriteSuccess(c, w, http.StatusOK, "nearby places found", map[string]interface{}{
		"places":   places.Places,
		"location": places.Location,
	})
}

func (t LocationController) Attractions(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "LocationController Attractions")
	defer span.End()

	query := r.URL.Query()
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "LocationController Attractions").
		Any(constants.KEY_QUERY, query).
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "parsing query").Logger()
	logger.Info().Msg("parsing query")
	area, err := areaFromQuery(query, request.DEFAULT_ATTRACTIONS_RADIUS)
	if err == nil {
		err = t.validate.StructCtx(c, area)
	}
	if err != nil {
		err = fmt.Errorf("failed parsing query with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailed(c, w, http.StatusBadRequest, err)
		return
	}
	logger.Info().Msg("parsed query")

	logger = logger.With().Str(constants.KEY_PROCESS, "finding attractions").Logger()
	logger.Info().Msg("finding attractions")
	c = logger.WithContext(c)
	places, err := t.service.Attractions(c, area)
	if err != nil {
		err = fmt.Errorf("failed finding attractions with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailed(c, w, statusFromError(err), err)
		return
	}
	logger.Info().Msg("found attractions")

	inHttp.WriteSuccess(c, w, http.StatusOK, "attractions found", map[string]interface{}{
		"places":   places.Places,
		"location": places.Location,
	})
}
