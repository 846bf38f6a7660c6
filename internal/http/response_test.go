package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJsonResponse(t *testing.T) {
	tests := []struct {
		name           string
		write          func(w http.ResponseWriter)
		expectedStatus int
		expectedBody   map[string]interface{}
	}{
		{
			name: "given failed response should write status code and message",
			write: func(w http.ResponseWriter) {
				WriteFailed(context.Background(), w, http.StatusBadRequest, errors.New("invalid date range"))
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody: map[string]interface{}{
				"status":     STATUS_FAILED,
				"statusCode": float64(http.StatusBadRequest),
				"message":    "invalid date range",
			},
		},
		{
			name: "given success response should write data",
			write: func(w http.ResponseWriter) {
				WriteSuccess(context.Background(), w, http.StatusCreated, "created", map[string]interface{}{"id": "1"})
			},
			expectedStatus: http.StatusCreated,
			expectedBody: map[string]interface{}{
				"status":     STATUS_SUCCESS,
				"statusCode": float64(http.StatusCreated),
				"message":    "created",
				"data":       map[string]interface{}{"id": "1"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()

			tt.write(recorder)

			assert.Equal(t, tt.expectedStatus, recorder.Code)
			assert.Equal(t, VALUE_HEADER_APPLICATION_JSON, recorder.Header().Get(KEY_HEADER_CONTENT_TYPE))
			actual := map[string]interface{}{}
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &actual))
			assert.Equal(t, tt.expectedBody, actual)
		})
	}
}
