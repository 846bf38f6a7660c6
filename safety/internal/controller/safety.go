package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/Alturino/tourism/internal"
	"github.com/Alturino/tourism/internal/constants"
	inErrors "github.com/Alturino/tourism/internal/errors"
	inHttp "github.com/Alturino/tourism/internal/http"
	inOtel "github.com/Alturino/tourism/internal/otel"
	"github.com/Alturino/tourism/safety/internal/otel"
	"github.com/Alturino/tourism/safety/internal/places"
	"github.com/Alturino/tourism/safety/internal/service"
	"github.com/Alturino/tourism/safety/pkg/evaluation"
	"github.com/Alturino/tourism/safety/pkg/request"
	"github.com/Alturino/tourism/safety/pkg/response"
)

type SafetyService interface {
	CheckLocation(c context.Context, userId uuid.UUID, area request.Area) (response.Check, error)
	SafeAlternatives(c context.Context, area request.Area) (response.SafeAlternatives, error)
	ReportUnsafe(c context.Context, userId uuid.UUID, param request.Report) (response.ReportedZone, error)
	UnsafeLocations(c context.Context, area request.OptionalArea) (response.UnsafeLocations, error)
	Zones(c context.Context) ([]response.Zone, error)
	EmergencyContacts(c context.Context, point request.Point) response.EmergencyContacts
	Statistics(c context.Context) (response.Statistics, error)
	NearbyPlaces(c context.Context, userId uuid.UUID, param request.NearbyPlaces) (response.Places, error)
	Attractions(c context.Context, area request.Area) (response.Places, error)
}

var _ SafetyService = (*service.SafetyService)(nil)

type SafetyController struct {
	service  SafetyService
	validate *validator.Validate
}

// AttachSafetyController registers emergency contacts on public and every
// other safety route on protected.
func AttachSafetyController(public *mux.Router, protected *mux.Router, service SafetyService) {
	controller := SafetyController{
		service:  service,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}

	public.HandleFunc("/safety/emergency-contacts/{latitude}/{longitude}", controller.EmergencyContacts).
		Methods(http.MethodGet)

	router := protected.PathPrefix("/safety").Subrouter()
	router.HandleFunc("/check/{latitude}/{longitude}", controller.CheckLocation).Methods(http.MethodGet)
	router.HandleFunc("/safe-alternatives/{latitude}/{longitude}", controller.SafeAlternatives).
		Methods(http.MethodGet)
	router.HandleFunc("/report", controller.ReportUnsafe).Methods(http.MethodPost)
	router.HandleFunc("/unsafe-locations", controller.UnsafeLocations).Methods(http.MethodGet)
	router.HandleFunc("/zones", controller.Zones).Methods(http.MethodGet)
	router.HandleFunc("/statistics", controller.Statistics).Methods(http.MethodGet)
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, inErrors.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, inErrors.ErrLocationUnavailable),
		errors.Is(err, evaluation.ErrInvalidReason),
		errors.Is(err, evaluation.ErrInvalidRiskLevel),
		errors.Is(err, evaluation.ErrInvalidZoneType):
		return http.StatusBadRequest
	case errors.Is(err, places.ErrUpstream):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func pointFromPath(r *http.Request) (request.Point, error) {
	pathValues := mux.Vars(r)
	latitude, err := request.ParseFloat(pathValues["latitude"], 0)
	if err != nil {
		return request.Point{}, fmt.Errorf("failed parsing latitude with error=%w", err)
	}
	longitude, err := request.ParseFloat(pathValues["longitude"], 0)
	if err != nil {
		return request.Point{}, fmt.Errorf("failed parsing longitude with error=%w", err)
	}
	return request.Point{Latitude: latitude, Longitude: longitude}, nil
}

func areaFromPath(r *http.Request, defaultRadius float64) (request.Area, error) {
	point, err := pointFromPath(r)
	if err != nil {
		return request.Area{}, err
	}
	radius, err := request.ParseFloat(r.URL.Query().Get("radius"), defaultRadius)
	if err != nil {
		return request.Area{}, fmt.Errorf("failed parsing radius with error=%w", err)
	}
	return request.Area{Point: point, Radius: radius}, nil
}

func areaFromQuery(query url.Values, defaultRadius float64) (request.Area, error) {
	latitude, err := request.ParseOptionalFloat(query.Get("latitude"))
	if err != nil {
		return request.Area{}, fmt.Errorf("failed parsing latitude with error=%w", err)
	}
	longitude, err := request.ParseOptionalFloat(query.Get("longitude"))
	if err != nil {
		return request.Area{}, fmt.Errorf("failed parsing longitude with error=%w", err)
	}
	if latitude == nil || longitude == nil {
		return request.Area{}, request.ErrMissingPoint
	}
	radius, err := request.ParseFloat(query.Get("radius"), defaultRadius)
	if err != nil {
		return request.Area{}, fmt.Errorf("failed parsing radius with error=%w", err)
	}
	return request.Area{
		Point:  request.Point{Latitude: *latitude, Longitude: *longitude},
		Radius: radius,
	}, nil
}

func (t SafetyController) CheckLocation(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "SafetyController CheckLocation")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "SafetyController CheckLocation").
		Any(constants.KEY_PATH_VALUES, mux.Vars(r)).
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "parsing area").Logger()
	logger.Info().Msg("parsing area")
	area, err := areaFromPath(r, request.DEFAULT_CHECK_RADIUS)
	if err == nil {
		err = t.validate.StructCtx(c, area)
	}
	if err != nil {
		err = fmt.Errorf("failed parsing area with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailed(c, w, http.StatusBadRequest, err)
		return
	}
	logger.Info().Msg("parsed area")

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

	logger = logger.With().Str(constants.KEY_PROCESS, "checking location").Logger()
	logger.Info().Msg("checking location")
	c = logger.WithContext(c)
	check, err := t.service.CheckLocation(c, userId, area)
	if err != nil {
		err = fmt.Errorf("failed checking location with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailed(c, w, statusFromError(err), err)
		return
	}
	logger.Info().Msg("checked location")

	inHttp.WriteSuccess(c, w, http.StatusOK, "location checked", map[string]interface{}{"safety": check})
}

func (t SafetyController) SafeAlternatives(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "SafetyController SafeAlternatives")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "SafetyController SafeAlternatives").
		Any(constants.KEY_PATH_VALUES, mux.Vars(r)).
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "parsing area").Logger()
	logger.Info().Msg("parsing area")
	area, err := areaFromPath(r, request.DEFAULT_SAFE_ALTERNATIVE_RADIUS)
	if err == nil {
		err = t.validate.StructCtx(c, area)
	}
	if err != nil {
		err = fmt.Errorf("failed parsing area with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailed(c, w, http.StatusBadRequest, err)
		return
	}
	logger.Info().Msg("parsed area")

	logger = logger.With().Str(constants.KEY_PROCESS, "finding safe alternatives").Logger()
	logger.Info().Msg("finding safe alternatives")
	c = logger.WithContext(c)
	alternatives, err := t.service.SafeAlternatives(c, area)
	if err != nil {
		err = fmt.Errorf("failed finding safe alternatives with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailed(c, w, statusFromError(err), err)
		return
	}
	logger.Info().Msg("found safe alternatives")

	inHttp.WriteSuccess(
		c,
		w,
		http.StatusOK,
		"safe alternatives found",
		map[string]interface{}{"alternatives": alternatives},
	)
}

func (t SafetyController) ReportUnsafe(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "SafetyController ReportUnsafe")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "SafetyController ReportUnsafe").
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "decoding requestbody").Logger()
	logger.Info().Msg("decoding requestbody")
	reqBody := request.Report{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailed(c, w, http.StatusBadRequest, err)
		return
	}
	logger = logger.With().Any(constants.KEY_REQUEST_BODY, reqBody).Logger()
	logger.Info().Msg("decoded request body")

	logger = logger.With().Str(constants.KEY_PROCESS, "validating requestbody").Logger()
	logger.Info().Msg("validating request body")
	if err := t.validate.StructCtx(c, reqBody); err != nil {
		err = fmt.Errorf("failed validating request body with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailed(c, w, http.StatusBadRequest, err)
		return
	}
	logger.Info().Msg("validated request body")

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

	logger = logger.With().Str(constants.KEY_PROCESS, "reporting unsafe location").Logger()
	logger.Info().Msg("reporting unsafe location")
	c = logger.WithContext(c)
	zone, err := t.service.ReportUnsafe(c, userId, reqBody)
	if err != nil {
		err = fmt.Errorf("failed reporting unsafe location with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailed(c, w, statusFromError(err), err)
		return
	}
	logger.Info().Msg("reported unsafe location")

	inHttp.WriteSuccess(c, w, http.StatusOK, service.REPORT_MESSAGE, map[string]interface{}{"safetyZone": zone})
}

func (t SafetyController) UnsafeLocations(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "SafetyController UnsafeLocations")
	defer span.End()

	query := r.URL.Query()
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "SafetyController UnsafeLocations").
		Any(constants.KEY_QUERY, query).
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "parsing query").Logger()
	logger.Info().Msg("parsing query")
	area := request.OptionalArea{}
	var err error
	area.Latitude, err = request.ParseOptionalFloat(query.Get("latitude"))
	if err == nil {
		area.Longitude, err = request.ParseOptionalFloat(query.Get("longitude"))
	}
	if err == nil {
		area.Radius, err = request.ParseFloat(query.Get("radius"), request.DEFAULT_UNSAFE_LOCATION_RADIUS)
	}
	if err == nil {
		err = area.Validate()
	}
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

	logger = logger.With().Str(constants.KEY_PROCESS, "finding unsafe locations").Logger()
	logger.Info().Msg("finding unsafe locations")
	c = logger.WithContext(c)
	locations, err := t.service.UnsafeLocations(c, area)
	if err != nil {
		err = fmt.Errorf("failed finding unsafe locations with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailed(c, w, statusFromError(err), err)
		return
	}
	logger.Info().Msg("found unsafe locations")

	inHttp.WriteSuccess(c, w, http.StatusOK, "unsafe locations found", map[string]interface{}{
		"unsafeLocations": locations.UnsafeLocations,
		"total":           locations.Total,
	})
}

func (t SafetyController) Zones(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "SafetyController Zones")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "SafetyController Zones").
		Str(constants.KEY_PROCESS, "finding zones").
		Logger()

	logger.Info().Msg("finding zones")
	c = logger.WithContext(c)
	zones, err := t.service.Zones(c)
	if err != nil {
		err = fmt.Errorf("failed finding zones with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailed(c, w, statusFromError(err), err)
		return
	}
	logger.Info().Msg("found zones")

	inHttp.WriteSuccess(c, w, http.StatusOK, "zones found", map[string]interface{}{"zones": zones})
}

func (t SafetyController) EmergencyContacts(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "SafetyController EmergencyContacts")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "SafetyController EmergencyContacts").
		Any(constants.KEY_PATH_VALUES, mux.Vars(r)).
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "parsing point").Logger()
	logger.Info().Msg("parsing point")
	point, err := pointFromPath(r)
	if err == nil {
		err = t.validate.StructCtx(c, point)
	}
	if err != nil {
		err = fmt.Errorf("failed parsing point with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailed(c, w, http.StatusBadRequest, err)
		return
	}
	logger.Info().Msg("parsed point")

	logger = logger.With().Str(constants.KEY_PROCESS, "finding emergency contacts").Logger()
	logger.Info().Msg("finding emergency contacts")
	c = logger.WithContext(c)
	contacts := t.service.EmergencyContacts(c, point)
	logger.Info().Msg("found emergency contacts")

	inHttp.WriteSuccess(
		c,
		w,
		http.StatusOK,
		"emergency contacts found",
		map[string]interface{}{"emergencyContacts": contacts},
	)
}

func (t SafetyController) Statistics(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "SafetyController Statistics")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "SafetyController Statistics").
		Str(constants.KEY_PROCESS, "computing statistics").
		Logger()

	logger.Info().Msg("computing statistics")
	c = logger.WithContext(c)
	stats, err := t.service.Statistics(c)
	if err != nil {
		err = fmt.Errorf("failed computing statistics with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailed(c, w, statusFromError(err), err)
		return
	}
	logger.Info().Msg("computed statistics")

	inHttp.WriteSuccess(c, w, http.StatusOK, "statistics computed", map[string]interface{}{"statistics": stats})
}
