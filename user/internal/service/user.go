package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/Alturino/tourism/internal"
	"github.com/Alturino/tourism/internal/config"
	"github.com/Alturino/tourism/internal/constants"
	inErrors "github.com/Alturino/tourism/internal/errors"
	inOtel "github.com/Alturino/tourism/internal/otel"
	"github.com/Alturino/tourism/internal/repository"
	"github.com/Alturino/tourism/user/internal/otel"
	"github.com/Alturino/tourism/user/pkg/request"
	"github.com/Alturino/tourism/user/pkg/response"
)

const (
	REGISTER_MESSAGE = "User registered successfully"
	LOGIN_MESSAGE    = "Login successful"
	PROFILE_MESSAGE  = "Profile updated successfully"
	LOCATION_MESSAGE = "Location updated successfully"

	pgUniqueViolation = "23505"
)

type UserService struct {
	queries *repository.Queries
	config  config.Application
	now     func() time.Time
}

func NewUserService(queries *repository.Queries, config config.Application) *UserService {
	return &UserService{queries: queries, config: config, now: time.Now}
}

func (u *UserService) Register(c context.Context, param request.Register) (response.Auth, error) {
	c, span := otel.Tracer.Start(c, "UserService Register")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "UserService Register").
		Str(constants.KEY_EMAIL, param.Email).
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "checking email").Logger()
	logger.Info().Msg("checking email")
	count, err := u.queries.CountUsersByEmail(c, param.Email)
	if err != nil {
		err = fmt.Errorf("failed counting users by email with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Auth{}, err
	}
	if count > 0 {
		err = inErrors.ErrUserAlreadyExists
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Auth{}, err
	}
	logger.Info().Msg("checked email")

	logger = logger.With().Str(constants.KEY_PROCESS, "hashing password").Logger()
	logger.Info().Msg("hashing password")
	hashed, err := bcrypt.GenerateFromPassword([]byte(param.Password), bcrypt.DefaultCost)
	if err != nil {
		err = fmt.Errorf("failed hashing password with error=%w", errors.Join(err, inErrors.ErrFailedHashToken))
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Auth{}, err
	}
	logger.Info().Msg("hashed password")

	logger = logger.With().Str(constants.KEY_PROCESS, "inserting user").Logger()
	logger.Info().Msg("inserting user")
	user, err := u.queries.InsertUser(c, repository.InsertUserParams{
		Name:     param.Name,
		Email:    param.Email,
		Password: string(hashed),
		Phone:    optionalText(param.Phone),
	})
	pgErr := &pgconn.PgError{}
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		err = inErrors.ErrUserAlreadyExists
	}
	if err != nil {
		err = fmt.Errorf("failed inserting user with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Auth{}, err
	}
	logger = logger.With().Str(constants.KEY_USER_ID, user.ID.String()).Logger()
	logger.Info().Msg("inserted user")

	return u.authenticated(logger.WithContext(c), user)
}

func (u *UserService) Login(c context.Context, param request.Login) (response.Auth, error) {
	c, span := otel.Tracer.Start(c, "UserService Login")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "UserService Login").
		Str(constants.KEY_EMAIL, param.Email).
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "finding user").Logger()
	logger.Info().Msg("finding user by email")
	user, err := u.queries.FindUserByEmail(c, param.Email)
	if errors.Is(err, pgx.ErrNoRows) {
		err = inErrors.ErrInvalidCredentials
	}
	if err != nil {
		err = fmt.Errorf("failed finding user by email with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Auth{}, err
	}
	logger.Info().Msg("found user by email")

	logger = logger.With().Str(constants.KEY_PROCESS, "verifying password").Logger()
	logger.Info().Msg("verifying password")
	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(param.Password)); err != nil {
		err = fmt.Errorf("failed verifying password with error=%w", inErrors.ErrInvalidCredentials)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Auth{}, err
	}
	logger.Info().Msg("verified password")

	return u.authenticated(logger.WithContext(c), user)
}

func (u *UserService) authenticated(c context.Context, user repository.User) (response.Auth, error) {
	token, err := internal.NewToken(c, user.ID, u.config.SecretKey, u.now())
	if err != nil {
		return response.Auth{}, err
	}
	return response.Auth{Token: token, User: userResponse(user)}, nil
}

func (u *UserService) Profile(c context.Context, userId uuid.UUID) (response.User, error) {
	c, span := otel.Tracer.Start(c, "UserService Profile")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "UserService Profile").
		Str(constants.KEY_USER_ID, userId.String()).
		Str(constants.KEY_PROCESS, "finding user").
		Logger()

	logger.Info().Msg("finding user")
	user, err := u.queries.FindUserById(c, userId)
	if errors.Is(err, pgx.ErrNoRows) {
		err = inErrors.ErrUserNotFound
	}
	if err != nil {
		err = fmt.Errorf("failed finding user with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.User{}, err
	}
	logger.Info().Msg("found user")

	return userResponse(user), nil
}

func (u *UserService) UpdateProfile(c context.Context, userId uuid.UUID, param request.Profile) (response.User, error) {
	c, span := otel.Tracer.Start(c, "UserService UpdateProfile")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "UserService UpdateProfile").
		Str(constants.KEY_USER_ID, userId.String()).
		Str(constants.KEY_PROCESS, "updating profile").
		Logger()

	logger.Info().Msg("updating profile")
	user, err := u.queries.UpdateUserProfile(c, repository.UpdateUserProfileParams{
		ID:        userId,
		FirstName: optionalText(param.FirstName),
		LastName:  optionalText(param.LastName),
		Phone:     optionalText(param.Phone),
		Address:   optionalText(param.Address),
	})
	if errors.Is(err, pgx.ErrNoRows) {
		err = inErrors.ErrUserNotFound
	}
	if err != nil {
		err = fmt.Errorf("failed updating profile with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.User{}, err
	}
	logger.Info().Msg("updated profile")

	return userResponse(user), nil
}

func (u *UserService) UpdateLocation(c context.Context, userId uuid.UUID, param request.Location) (response.User, error) {
	c, span := otel.Tracer.Start(c, "UserService UpdateLocation")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "UserService UpdateLocation").
		Str(constants.KEY_USER_ID, userId.String()).
		Float64(constants.KEY_LATITUDE, *param.Latitude).
		Float64(constants.KEY_LONGITUDE, *param.Longitude).
		Str(constants.KEY_PROCESS, "updating location").
		Logger()

	logger.Info().Msg("updating location")
	user, err := u.queries.UpdateUserLocation(c, repository.UpdateUserLocationParams{
		ID:        userId,
		Latitude:  *param.Latitude,
		Longitude: *param.Longitude,
		Address:   optionalText(param.Address),
	})
	if errors.Is(err, pgx.ErrNoRows) {
		err = inErrors.ErrUserNotFound
	}
	if err != nil {
		err = fmt.Errorf("failed updating location with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.User{}, err
	}
	logger.Info().Msg("updated location")

	return userResponse(user), nil
}
