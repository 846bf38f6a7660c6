package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/Alturino/tourism/internal"
	"github.com/Alturino/tourism/internal/constants"
	inErrors "github.com/Alturino/tourism/internal/errors"
	inHttp "github.com/Alturino/tourism/internal/http"
	inOtel "github.com/Alturino/tourism/internal/otel"
	"github.com/Alturino/tourism/user/internal/otel"
	"github.com/Alturino/tourism/user/internal/service"
	"github.com/Alturino/tourism/user/pkg/request"
	"github.com/Alturino/tourism/user/pkg/response"
)

type UserService interface {
	Register(c context.Context, param request.Register) (response.Auth, error)
	Login(c context.Context, param request.Login) (response.Auth, error)
	Profile(c context.Context, userId uuid.UUID) (response.User, error)
	UpdateProfile(c context.Context, userId uuid.UUID, param request.Profile) (response.User, error)
	UpdateLocation(c context.Context, userId uuid.UUID, param request.Location) (response.User, error)
}

var _ UserService = (*service.UserService)(nil)

type UserController struct {
	service  UserService
	validate *validator.Validate
}

// AttachUserController registers register and login on public, the rest
// need a token.
func AttachUserController(public *mux.Router, protected *mux.Router, service UserService) {
	controller := UserController{
		service:  service,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}

	router := public.PathPrefix("/auth").Subrouter()
	router.HandleFunc("/register", controller.Register).Methods(http.MethodPost)
	router.HandleFunc("/login", controller.Login).Methods(http.MethodPost)

	protected.HandleFunc("/auth/profile", controller.Profile).Methods(http.MethodGet)
	protected.HandleFunc("/auth/profile", controller.UpdateProfile).Methods(http.MethodPut)
	protected.HandleFunc("/auth/location", controller.UpdateLocation).Methods(http.MethodPut)
	protected.HandleFunc("/location/update", controller.UpdateLocation).Methods(http.MethodPut)
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, inErrors.ErrUserAlreadyExists), errors.Is(err, inErrors.ErrInvalidCredentials):
		return http.StatusBadRequest
	case errors.Is(err, inErrors.ErrUserNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func decode(r *http.Request, validate *validator.Validate, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("failed decoding request body with error=%w", err)
	}
	if err := validate.StructCtx(r.Context(), v); err != nil {
		return fmt.Errorf("failed validating request body with error=%w", err)
	}
	return nil
}

func (u UserController) Register(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "UserController Register")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "UserController Register").
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "decoding requestbody").Logger()
	logger.Info().Msg("decoding requestbody")
	reqBody := request.Register{}
	if err := decode(r, u.validate, &reqBody); err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailed(c, w, http.StatusBadRequest, err)
		return
	}
	logger = logger.With().Object(constants.KEY_REQUEST_BODY, reqBody).Logger()
	logger.Info().Msg("decoded request body")

	logger = logger.With().Str(constants.KEY_PROCESS, "registering user").Logger()
	logger.Info().Msg("registering user")
	c = logger.WithContext(c)
	auth, err := u.service.Register(c, reqBody)
	if err != nil {
		err = fmt.Errorf("failed registering user with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailed(c, w, statusFromError(err), err)
		return
	}
	logger.Info().Msg("registered user")

	inHttp.WriteSuccess(
		c,
		w,
		http.StatusCreated,
		service.REGISTER_MESSAGE,
		map[string]interface{}{"token": auth.Token, "user": auth.User},
	)
}

func (u UserController) Login(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "UserController Login")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "UserController Login").
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "decoding requestbody").Logger()
	logger.Info().Msg("decoding requestbody")
	reqBody := request.Login{}
	if err := decode(r, u.validate, &reqBody); err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailed(c, w, http.StatusBadRequest, err)
		return
	}
	logger = logger.With().Object(constants.KEY_REQUEST_BODY, reqBody).Logger()
	logger.Info().Msg("decoded request body")

	logger = logger.With().Str(constants.KEY_PROCESS, "login").Logger()
	logger.Info().Msg("login")
	c = logger.WithContext(c)
	auth, err := u.service.Login(c, reqBody)
	if err != nil {
		err = fmt.Errorf("failed login with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		if errors.Is(err, inErrors.ErrInvalidCredentials) {
			err = inErrors.ErrInvalidCredentials
		}
		inHttp.WriteFailed(c, w, statusFromError(err), err)
		return
	}
	logger.Info().Msg("login success")

	inHttp.WriteSuccess(
		c,
		w,
		http.StatusOK,
		service.LOGIN_MESSAGE,
		map[string]interface{}{"token": auth.Token, "user": auth.User},
	)
}

func (u UserController) Profile(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "UserController Profile")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "UserController Profile").
		Logger()

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

	logger = logger.With().Str(constants.KEY_PROCESS, "finding profile").Logger()
	logger.Info().Msg("finding profile")
	c = logger.WithContext(c)
	user, err := u.service.Profile(c, userId)
	if err != nil {
		err = fmt.Errorf("failed finding profile with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailed(c, w, statusFromError(err), err)
		return
	}
	logger.Info().Msg("found profile")

	inHttp.WriteSuccess(c, w, http.StatusOK, "found profile", map[string]interface{}{"user": user})
}

func (u UserController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "UserController UpdateProfile")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "UserController UpdateProfile").
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "decoding requestbody").Logger()
	logger.Info().Msg("decoding requestbody")
	reqBody := request.Profile{}
	if err := decode(r, u.validate, &reqBody); err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailed(c, w, http.StatusBadRequest, err)
		return
	}
	logger = logger.With().Any(constants.KEY_REQUEST_BODY, reqBody).Logger()
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

	logger = logger.With().Str(constants.KEY_PROCESS, "updating profile").Logger()
	logger.Info().Msg("updating profile")
	c = logger.WithContext(c)
	user, err := u.service.UpdateProfile(c, userId, reqBody)
	if err != nil {
		err = fmt.Errorf("failed updating profile with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailed(c, w, statusFromError(err), err)
		return
	}
	logger.Info().Msg("updated profile")

	inHttp.WriteSuccess(c, w, http.StatusOK, service.PROFILE_MESSAGE, map[string]interface{}{"user": user})
}

func (u UserController) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "UserController UpdateLocation")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "UserController UpdateLocation").
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "decoding requestbody").Logger()
	logger.Info().Msg("decoding requestbody")
	reqBody := request.Location{}
	if err := decode(r, u.validate, &reqBody); err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailed(c, w, http.StatusBadRequest, err)
		return
	}
	logger = logger.With().Any(constants.KEY_REQUEST_BODY, reqBody).Logger()
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

	logger = logger.With().Str(constants.KEY_PROCESS, "updating location").Logger()
	logger.Info().Msg("updating location")
	c = logger.WithContext(c)
	user, err := u.service.UpdateLocation(c, userId, reqBody)
	if err != nil {
		err = fmt.Errorf("failed updating location with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteFailed(c, w, statusFromError(err), err)
		return
	}
	logger.Info().Msg("updated location")

	inHttp.WriteSuccess(c, w, http.StatusOK, service.LOCATION_MESSAGE, map[string]interface{}{"user": user})
}
