package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/tourism/internal"
	"github.com/Alturino/tourism/internal/config"
	inErrors "github.com/Alturino/tourism/internal/errors"
	"github.com/Alturino/tourism/internal/repository"
	"github.com/Alturino/tourism/internal/testutil"
	"github.com/Alturino/tourism/user/pkg/request"
)

const secret = "user-service-test-secret"

var travellerId = uuid.MustParse("6f1a2b3c-0000-4000-8000-000000000001")

func ptr[T any](v T) *T {
	return &v
}

func TestUserService(t *testing.T) {
	c := context.Background()
	pool := testutil.NewPostgres(t, c, testutil.SeedPath())
	svc := NewUserService(repository.New(pool), config.Application{SecretKey: secret})

	var registeredId uuid.UUID
	t.Run("register should hash password and issue token", func(t *testing.T) {
		auth, err := svc.Register(c, request.Register{
			Name:     "Meera Nair",
			Email:    "Meera@Example.com",
			Password: "secret1",
			Phone:    ptr("+91 98220 11111"),
		})
		require.NoError(t, err)
		registeredId = auth.User.ID

		assert.Equal(t, "meera@example.com", auth.User.Email)
		require.NotNil(t, auth.User.Phone)
		assert.Nil(t, auth.User.Location)
		assert.True(t, auth.User.IsSafe)

		token, err := internal.VerifyToken(c, auth.Token, secret)
		require.NoError(t, err)
		subject, err := token.Claims.GetSubject()
		require.NoError(t, err)
		assert.Equal(t, registeredId.String(), subject)
		expiresAt, err := token.Claims.GetExpirationTime()
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(internal.TokenLifetime), expiresAt.Time, time.Minute)
	})

	t.Run("register with taken email should fail", func(t *testing.T) {
		_, err := svc.Register(c, request.Register{Name: "Meera", Email: "MEERA@example.com", Password: "another"})
		assert.ErrorIs(t, err, inErrors.ErrUserAlreadyExists)
	})

	testCases := []struct {
		name        string
		login       request.Login
		expectedErr error
	}{
		{name: "login", login: request.Login{Email: "meera@example.com", Password: "secret1"}},
		{name: "login ignores email case", login: request.Login{Email: "MEERA@EXAMPLE.COM", Password: "secret1"}},
		{
			name:        "login with wrong password",
			login:       request.Login{Email: "meera@example.com", Password: "secret2"},
			expectedErr: inErrors.ErrInvalidCredentials,
		},
		{
			name:        "login with unknown email",
			login:       request.Login{Email: "nobody@example.com", Password: "secret1"},
			expectedErr: inErrors.ErrInvalidCredentials,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			auth, err := svc.Login(c, tc.login)
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				assert.Empty(t, auth.Token)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, registeredId, auth.User.ID)
			assert.NotEmpty(t, auth.Token)
		})
	}

	t.Run("profile of seeded traveller should include location", func(t *testing.T) {
		user, err := svc.Profile(c, travellerId)
		require.NoError(t, err)
		assert.Equal(t, "Asha Rao", user.Name)
		require.NotNil(t, user.Location)
		assert.Equal(t, 15.4909, user.Location.Latitude)
	})

	t.Run("profile of unknown user should fail", func(t *testing.T) {
		_, err := svc.Profile(c, uuid.New())
		assert.ErrorIs(t, err, inErrors.ErrUserNotFound)
	})

	t.Run("update profile should keep omitted fields", func(t *testing.T) {
		user, err := svc.UpdateProfile(c, registeredId, request.Profile{FirstName: ptr("Meera"), Address: ptr("Campal, Panaji")})
		require.NoError(t, err)
		require.NotNil(t, user.FirstName)
		assert.Equal(t, "Meera", *user.FirstName)
		assert.Nil(t, user.LastName)
		require.NotNil(t, user.Phone)
		assert.Equal(t, "+91 98220 11111", *user.Phone)
	})

	t.Run("update location should stamp time", func(t *testing.T) {
		user, err := svc.UpdateLocation(c, registeredId, request.Location{
			Latitude:  ptr(15.4986),
			Longitude: ptr(73.8296),
			Address:   ptr("Church Square"),
		})
		require.NoError(t, err)
		require.NotNil(t, user.Location)
		assert.Equal(t, 15.4986, user.Location.Latitude)
		require.NotNil(t, user.Location.Address)
		assert.Equal(t, "Church Square", *user.Location.Address)
		assert.NotNil(t, user.Location.UpdatedAt)
	})

	t.Run("update location of unknown user should fail", func(t *testing.T) {
		_, err := svc.UpdateLocation(c, uuid.New(), request.Location{Latitude: ptr(1.0), Longitude: ptr(1.0)})
		assert.ErrorIs(t, err, inErrors.ErrUserNotFound)
	})
}
