package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/tourism/internal"
	inHttp "github.com/Alturino/tourism/internal/http"
)

const testSecret = "middleware-secret"

func TestAuth(t *testing.T) {
	userId := uuid.New()
	token, err := internal.NewToken(context.Background(), userId, testSecret, time.Now())
	require.NoError(t, err)

	tests := []struct {
		name           string
		authorization  string
		expectedStatus int
	}{
		{name: "given missing header should return unauthorized", expectedStatus: http.StatusUnauthorized},
		{name: "given prefix only should return unauthorized", authorization: "Bearer ", expectedStatus: http.StatusUnauthorized},
		{name: "given invalid token should return unauthorized", authorization: "Bearer abc", expectedStatus: http.StatusUnauthorized},
		{name: "given valid token should call next handler", authorization: "Bearer " + token, expectedStatus: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var actualUserId uuid.UUID
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				actualUserId, _ = internal.UserIdFromJwtToken(r.Context())
				w.WriteHeader(http.StatusOK)
			})
			request := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
			if tt.authorization != "" {
				request.Header.Set(inHttp.KEY_HEADER_AUTHORIZATION, tt.authorization)
			}
			recorder := httptest.NewRecorder()

			Auth(testSecret)(next).ServeHTTP(recorder, request)

			assert.Equal(t, tt.expectedStatus, recorder.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, userId, actualUserId)
			}
		})
	}
}

func TestLoggingMasksSecretsAndKeepsBody(t *testing.T) {
	var logs bytes.Buffer
	logger := zerolog.New(&logs)
	body := `{"email":"a@b.c","password":"hunter22"}`

	var forwarded []byte
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		forwarded, _ = io.ReadAll(r.Body)
		zerolog.Ctx(r.Context()).Info().Msg("handled")
	})
	request := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString(body))
	request = request.WithContext(logger.WithContext(request.Context()))
	recorder := httptest.NewRecorder()

	Logging(next).ServeHTTP(recorder, request)

	assert.JSONEq(t, body, string(forwarded))
	assert.NotContains(t, logs.String(), "hunter22")
	assert.NotEmpty(t, recorder.Header().Get(inHttp.KEY_HEADER_REQUEST_ID))

	lines := bytes.Split(bytes.TrimSpace(logs.Bytes()), []byte("\n"))
	line := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &line))
	assert.Equal(t, "handled", line["message"])
}

func TestRecoverPanic(t *testing.T) {
	tests := []struct {
		name  string
		panic interface{}
	}{
		{name: "given panic with error should return internal server error", panic: assert.AnError},
		{name: "given panic with string should return internal server error", panic: "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				panic(tt.panic)
			})
			recorder := httptest.NewRecorder()

			RecoverPanic(next).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, http.StatusInternalServerError, recorder.Code)
		})
	}
}
