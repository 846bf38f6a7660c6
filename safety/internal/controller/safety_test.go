package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/tourism/internal"
	inErrors "github.com/Alturino/tourism/internal/errors"
	"github.com/Alturino/tourism/safety/internal/places"
	"github.com/Alturino/tourism/safety/pkg/evaluation"
	"github.com/Alturino/tourism/safety/pkg/request"
	"github.com/Alturino/tourism/safety/pkg/response"
)

type fakeSafetyService struct {
	err          error
	lastUserId   uuid.UUID
	area         request.Area
	optionalArea request.OptionalArea
	point        request.Point
	report       request.Report
	nearby       request.NearbyPlaces
}

func (f *fakeSafetyService) CheckLocation(c context.Context, userId uuid.UUID, area request.Area) (response.Check, error) {
	f.lastUserId = userId
	f.area = area
	return response.Check{IsSafe: true, RiskLevel: evaluation.RiskLevelLow}, f.err
}

func (f *fakeSafetyService) SafeAlternatives(c context.Context, area request.Area) (response.SafeAlternatives, error) {
	f.area = area
	return response.SafeAlternatives{}, f.err
}

func (f *fakeSafetyService) ReportUnsafe(c context.Context, userId uuid.UUID, param request.Report) (response.ReportedZone, error) {
	f.lastUserId = userId
	f.report = param
	return response.ReportedZone{Name: param.Name}, f.err
}

func (f *fakeSafetyService) UnsafeLocations(c context.Context, area request.OptionalArea) (response.UnsafeLocations, error) {
	f.optionalArea = area
	return response.UnsafeLocations{UnsafeLocations: []response.UnsafeLocation{}}, f.err
}

func (f *fakeSafetyService) Zones(c context.Context) ([]response.Zone, error) {
	return []response.Zone{}, f.err
}

func (f *fakeSafetyService) EmergencyContacts(c context.Context, point request.Point) response.EmergencyContacts {
	f.point = point
	return response.EmergencyContacts{}
}

func (f *fakeSafetyService) Statistics(c context.Context) (response.Statistics, error) {
	return response.Statistics{TotalReports: 3}, f.err
}

func (f *fakeSafetyService) NearbyPlaces(c context.Context, userId uuid.UUID, param request.NearbyPlaces) (response.Places, error) {
	f.lastUserId = userId
	f.nearby = param
	return response.Places{Places: []response.Place{}}, f.err
}

func (f *fakeSafetyService) Attractions(c context.Context, area request.Area) (response.Places, error) {
	f.area = area
	return response.Places{Places: []response.Place{}}, f.err
}

// newRouter authenticates protected routes as userId and leaves public
// routes untouched.
func newRouter(svc SafetyService, userId uuid.UUID) *mux.Router {
	router := mux.NewRouter()
	protected := router.NewRoute().Subrouter()
	protected.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := &jwt.Token{Claims: jwt.RegisteredClaims{Subject: userId.String()}}
			next.ServeHTTP(w, r.WithContext(internal.AttachJwtToken(r.Context(), token)))
		})
	})
	AttachSafetyController(router, protected, svc)
	AttachLocationController(protected, svc)
	return router
}

func TestSafetyController(t *testing.T) {
	userId := uuid.New()
	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		serviceErr     error
		expectedStatus int
		assertService  func(t *testing.T, svc *fakeSafetyService)
	}{
		{
			name:           "check location with default radius",
			method:         http.MethodGet,
			path:           "/safety/check/15.4909/73.8278",
			expectedStatus: http.StatusOK,
			assertService: func(t *testing.T, svc *fakeSafetyService) {
				assert.Equal(t, userId, svc.lastUserId)
				assert.Equal(t, 15.4909, svc.area.Latitude)
				assert.Equal(t, request.DEFAULT_CHECK_RADIUS, svc.area.Radius)
			},
		},
		{
			name:           "check location with latitude out of range",
			method:         http.MethodGet,
			path:           "/safety/check/95/73.8278",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "check location with radius too large",
			method:         http.MethodGet,
			path:           "/safety/check/15.4909/73.8278?radius=60000",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "safe alternatives with custom radius",
			method:         http.MethodGet,
			path:           "/safety/safe-alternatives/15.4909/73.8278?radius=2500",
			expectedStatus: http.StatusOK,
			assertService: func(t *testing.T, svc *fakeSafetyService) {
				assert.Equal(t, 2500.0, svc.area.Radius)
			},
		},
		{
			name:   "report unsafe location",
			method: http.MethodPost,
			path:   "/safety/report",
			body: `{"latitude":15.5,"longitude":73.83,"name":"Dark alley","description":"No street lights at night",
				"riskLevel":"High","reasons":["Crime"]}`,
			expectedStatus: http.StatusOK,
			assertService: func(t *testing.T, svc *fakeSafetyService) {
				assert.Equal(t, userId, svc.lastUserId)
				assert.Equal(t, "Dark alley", svc.report.Name)
			},
		},
		{
			name:           "report with short description",
			method:         http.MethodPost,
			path:           "/safety/report",
			body:           `{"latitude":15.5,"longitude":73.83,"name":"Dark alley","description":"dark","riskLevel":"High","reasons":[]}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "report with unknown reason",
			method:         http.MethodPost,
			path:           "/safety/report",
			body:           `{"latitude":15.5,"longitude":73.83,"name":"Dark alley","description":"No street lights","riskLevel":"High","reasons":["Ghosts"]}`,
			serviceErr:     evaluation.ErrInvalidReason,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unsafe locations without point",
			method:         http.MethodGet,
			path:           "/safety/unsafe-locations",
			expectedStatus: http.StatusOK,
			assertService: func(t *testing.T, svc *fakeSafetyService) {
				assert.False(t, svc.optionalArea.HasPoint())
				assert.Equal(t, request.DEFAULT_UNSAFE_LOCATION_RADIUS, svc.optionalArea.Radius)
			},
		},
		{
			name:           "unsafe locations with only latitude",
			method:         http.MethodGet,
			path:           "/safety/unsafe-locations?latitude=15.49",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "zones",
			method:         http.MethodGet,
			path:           "/safety/zones",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "statistics failing",
			method:         http.MethodGet,
			path:           "/safety/statistics",
			serviceErr:     assert.AnError,
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:           "nearby places defaults type",
			method:         http.MethodGet,
			path:           "/location/nearby-places",
			expectedStatus: http.StatusOK,
			assertService: func(t *testing.T, svc *fakeSafetyService) {
				assert.Equal(t, request.DEFAULT_NEARBY_PLACE_TYPE, svc.nearby.Type)
				assert.Equal(t, request.DEFAULT_NEARBY_PLACES_RADIUS, svc.nearby.Radius)
			},
		},
		{
			name:           "nearby places without stored location",
			method:         http.MethodGet,
			path:           "/location/nearby-places?type=lodging",
			serviceErr:     inErrors.ErrLocationUnavailable,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "nearby places without api key",
			method:         http.MethodGet,
			path:           "/location/nearby-places",
			serviceErr:     places.ErrNotConfigured,
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:           "attractions",
			method:         http.MethodGet,
			path:           "/location/attractions?latitude=15.49&longitude=73.82",
			expectedStatus: http.StatusOK,
			assertService: func(t *testing.T, svc *fakeSafetyService) {
				assert.Equal(t, request.DEFAULT_ATTRACTIONS_RADIUS, svc.area.Radius)
			},
		},
		{
			name:           "attractions without longitude",
			method:         http.MethodGet,
			path:           "/location/attractions?latitude=15.49",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			svc := &fakeSafetyService{err: test.serviceErr}
			router := newRouter(svc, userId)

			req := httptest.NewRequest(test.method, test.path, strings.NewReader(test.body))
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)

			assert.Equal(t, test.expectedStatus, recorder.Code, recorder.Body.String())
			body := map[string]interface{}{}
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.EqualValues(t, test.expectedStatus, body["statusCode"])
			if test.assertService != nil {
				test.assertService(t, svc)
			}
		})
	}
}

func TestEmergencyContactsIsPublic(t *testing.T) {
	svc := &fakeSafetyService{}
	router := mux.NewRouter()
	protected := router.NewRoute().Subrouter()
	protected.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
	})
	AttachSafetyController(router, protected, svc)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/safety/emergency-contacts/15.4909/73.8278", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, 73.8278, svc.point.Longitude)

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/safety/zones", nil))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
