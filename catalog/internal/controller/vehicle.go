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

type VehicleService interface {
	FindVehicles(c context.Context, filter request.VehicleFilter) (response.Vehicles, error)
	FindVehicleById(c context.Context, id uuid.UUID) (response.Vehicle, error)
	AddVehicleReview(c context.Context, userId uuid.UUID, vehicleId uuid.UUID, param request.Review) (response.Vehicle, error)
	FindVehiclesNearby(c context.Context, param request.Nearby) ([]response.Vehicle, error)
	SearchVehicles(c context.Context, param request.Search) (response.Vehicles, error)
	VehicleTypes(c context.Context) ([]string, error)
	VehicleBrands(c context.Context) ([]string, error)
}

var _ VehicleService = (*service.CatalogService)(nil)

type VehicleController struct {
	service  VehicleService
	validate *validator.Validate
}

func AttachVehicleController(public *mux.Router, protected *mux.Router, service VehicleService) {
	controller := VehicleController{
		service:  service,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}

	router := public.PathPrefix("/vehicles").Subrouter()
	router.HandleFunc("", controller.FindVehicles).Methods(http.MethodGet)
	router.HandleFunc("/nearby/{latitude}/{longitude}", controller.FindVehiclesNearby).Methods(http.MethodGet)
	router.HandleFunc("/search/{query}", controller.SearchVehicles).Methods(http.MethodGet)
	router.HandleFunc("/types/list", controller.VehicleTypes).Methods(http.MethodGet)
	router.HandleFunc("/brands/list", controller.VehicleBrands).Methods(http.MethodGet)
	router.HandleFunc("/{id}", controller.FindVehicleById).Methods(http.MethodGet)

	protected.HandleFunc("/vehicles/{id}/reviews", controller.AddVehicleReview).Methods(http.MethodPost)
}

func (v VehicleController) FindVehicles(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "VehicleController FindVehicles")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "VehicleController FindVehicles").
		Str(constants.KEY_QUERY, r.URL.RawQuery).
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "parsing filter").Logger()
	logger.Info().Msg("parsing filter")
	filter, err := request.ParseVehicleFilter(r.URL.Query())
	if err == nil {
		err = v.validate.StructCtx(c, filter)
	}
	if err != nil {
		err = fmt.Errorf("failed parsing filter with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailed(c, w, http.StatusBadRequest, err)
		return
	}
	logger.Info().Msg("parsed filter")

	logger = logger.With().Str(constants.KEY_PROCESS, "finding vehicles").Logger()
	logger.Info().Msg("finding vehicles")
	c = logger.WithContext(c)
	vehicles, err := v.service.FindVehicles(c, filter)
	if err != nil {
		err = fmt.Errorf("failed finding vehicles with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailed(c, w, statusFromError(err), err)
		return
	}
	logger.Info().Msg("found vehicles")

	inHttp.WriteSuccess(
		c,
		w,
		http.StatusOK,
		"found vehicles",
		map[string]interface{}{"vehicles": vehicles.Vehicles, "pagination": vehicles.Pagination},
	)
}

func (v VehicleController) FindVehicleById(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "VehicleController FindVehicleById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "VehicleController FindVehicleById").
		Any(constants.KEY_PATH_VALUES, mux.Vars(r)).
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "parsing vehicleId").Logger()
	logger.Info().Msg("parsing vehicleId")
	id, err := idFromPath(r)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailed(c, w, http.StatusBadRequest, err)
		return
	}
	logger = logger.With().Str(constants.KEY_VEHICLE_ID, id.String()).Logger()
	logger.Info().Msg("parsed vehicleId")

	logger = logger.With().Str(constants.KEY_PROCESS, "finding vehicle").Logger()
	logger.Info().Msg("finding vehicle")
	c = logger.WithContext(c)
	vehicle, err := v.service.FindVehicleById(c, id)
	if err != nil {
		err = fmt.Errorf("failed finding vehicle with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailed(c, w, statusFromError(err), err)
		return
	}
	logger.Info().Msg("found vehicle")

	inHttp.WriteSuccess(c, w, http.StatusOK, "found vehicle", map[string]interface{}{"vehicle": vehicle})
}

func (v VehicleController) AddVehicleReview(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "VehicleController AddVehicleReview")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "VehicleController AddVehicleReview").
		Any(constants.KEY_PATH_VALUES, mux.Vars(r)).
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "parsing vehicleId").Logger()
	logger.Info().Msg("parsing vehicleId")
	id, err := idFromPath(r)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailed(c, w, http.StatusBadRequest, err)
		return
	}
	logger = logger.With().Str(constants.KEY_VEHICLE_ID, id.String()).Logger()
	logger.Info().Msg("parsed vehicleId")

	logger = logger.With().Str(constants.KEY_PROCESS, "decoding requestbody").Logger()
	logger.Info().Msg("decoding requestbody")
	review, err := decodeReview(r, v.validate)
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
	vehicle, err := v.service.AddVehicleReview(c, userId, id, review)
	if err != nil {
		err = fmt.Errorf("failed adding review with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailed(c, w, statusFromError(err), err)
		return
	}
	logger.Info().Msg("added review")

	inHttp.WriteSuccess(c, w, http.StatusCreated, service.REVIEW_MESSAGE, map[string]interface{}{"vehicle": vehicle})
}

func (v VehicleController) FindVehiclesNearby(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "VehicleController FindVehiclesNearby")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "VehicleController FindVehiclesNearby").
		Any(constants.KEY_PATH_VALUES, mux.Vars(r)).
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "parsing location").Logger()
	logger.Info().Msg("parsing location")
	nearby, err := nearbyFromPath(r)
	if err == nil {
		err = v.validate.StructCtx(c, nearby)
	}
	if err != nil {
		err = fmt.Errorf("failed parsing location with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailed(c, w, http.StatusBadRequest, err)
		return
	}
	logger.Info().Msg("parsed location")

	logger = logger.With().Str(constants.KEY_PROCESS, "finding nearby vehicles").Logger()
	logger.Info().Msg("finding nearby vehicles")
	c = logger.WithContext(c)
	vehicles, err := v.service.FindVehiclesNearby(c, nearby)
	if err != nil {
		err = fmt.Errorf("failed finding nearby vehicles with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailed(c, w, statusFromError(err), err)
		return
	}
	logger.Info().Msg("found nearby vehicles")

	inHttp.WriteSuccess(c, w, http.StatusOK, "found nearby vehicles", map[string]interface{}{"vehicles": vehicles})
}

func (v VehicleController) SearchVehicles(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "VehicleController SearchVehicles")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "VehicleController SearchVehicles").
		Any(constants.KEY_PATH_VALUES, mux.Vars(r)).
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "parsing search").Logger()
	logger.Info().Msg("parsing search")
	search, err := searchFromPath(r)
	if err == nil {
		err = v.validate.StructCtx(c, search)
	}
	if err != nil {
		err = fmt.Errorf("failed parsing search with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailed(c, w, http.StatusBadRequest, err)
		return
	}
	logger.Info().Msg("parsed search")

	logger = logger.With().Str(constants.KEY_PROCESS, "searching vehicles").Logger()
	logger.Info().Msg("searching vehicles")
	c = logger.WithContext(c)
	vehicles, err := v.service.SearchVehicles(c, search)
	if err != nil {
		err = fmt.Errorf("failed searching vehicles with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailed(c, w, statusFromError(err), err)
		return
	}
	logger.Info().Msg("searched vehicles")

	inHttp.WriteSuccess(
		c,
		w,
		http.StatusOK,
		"searched vehicles",
		map[string]interface{}{"vehicles": vehicles.Vehicles, "pagination": vehicles.Pagination},
	)
}

func (v VehicleController) VehicleTypes(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "VehicleController VehicleTypes")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "VehicleController VehicleTypes").
		Str(constants.KEY_PROCESS, "finding vehicle types").
		Logger()

	logger.Info().Msg("finding vehicle types")
	c = logger.WithContext(c)
	types, err := v.service.VehicleTypes(c)
	if err != nil {
		err = fmt.Errorf("failed finding vehicle types with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailed(c, w, statusFromError(err), err)
		return
	}
	logger.Info().Msg("found vehicle types")

	inHttp.WriteSuccess(c, w, http.StatusOK, "found vehicle types", map[string]interface{}{"types": types})
}

func (v VehicleController) VehicleBrands(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "VehicleController VehicleBrands")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "VehicleController VehicleBrands").
		Str(constants.KEY_PROCESS, "finding vehicle brands").
		Logger()

	logger.Info().Msg("finding vehicle brands")
	c = logger.WithContext(c)
	brands, err := v.service.VehicleBrands(c)
	if err != nil {
		err = fmt.Errorf("failed finding vehicle brands with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailed(c, w, statusFromError(err), err)
		return
	}
	logger.Info().Msg("found vehicle brands")

	inHttp.WriteSuccess(c, w, http.StatusOK, "found vehicle brands", map[string]interface{}{"brands": brands})
}
