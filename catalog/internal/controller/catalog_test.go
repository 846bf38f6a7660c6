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

	"github.com/Alturino/tourism/catalog/pkg/request"
	"github.com/Alturino/tourism/catalog/pkg/response"
	"github.com/Alturino/tourism/internal"
	inErrors "github.com/Alturino/tourism/internal/errors"
)

type fakeCatalogService struct {
	err           error
	lastUserId    uuid.UUID
	lastId        uuid.UUID
	hotelFilter   request.HotelFilter
	vehicleFilter request.VehicleFilter
	nearby        request.Nearby
	search        request.Search
	review        request.Review
}

func (f *fakeCatalogService) FindHotels(c context.Context, filter request.HotelFilter) (response.Hotels, error) {
	f.hotelFilter = filter
	return response.Hotels{Hotels: []response.Hotel{}}, f.err
}

func (f *fakeCatalogService) FindHotelById(c context.Context, id uuid.UUID) (response.Hotel, error) {
	f.lastId = id
	return response.Hotel{ID: id}, f.err
}

func (f *fakeCatalogService) AddHotelReview(c context.Context, userId, hotelId uuid.UUID, param request.Review) (response.Hotel, error) {
	f.lastUserId = userId
	f.lastId = hotelId
	f.review = param
	return response.Hotel{ID: hotelId}, f.err
}

func (f *fakeCatalogService) FindHotelsNearby(c context.Context, param request.Nearby) ([]response.Hotel, error) {
	f.nearby = param
	return []response.Hotel{}, f.err
}

func (f *fakeCatalogService) SearchHotels(c context.Context, param request.Search) (response.Hotels, error) {
	f.search = param
	return response.Hotels{Hotels: []response.Hotel{}}, f.err
}

func (f *fakeCatalogService) FindVehicles(c context.Context, filter request.VehicleFilter) (response.Vehicles, error) {
	f.vehicleFilter = filter
	return response.Vehicles{Vehicles: []response.Vehicle{}}, f.err
}

func (f *fakeCatalogService) FindVehicleById(c context.Context, id uuid.UUID) (response.Vehicle, error) {
	f.lastId = id
	return response.Vehicle{ID: id}, f.err
}

func (f *fakeCatalogService) AddVehicleReview(c context.Context, userId, vehicleId uuid.UUID, param request.Review) (response.Vehicle, error) {
	f.lastUserId = userId
	f.lastId = vehicleId
	f.review = param
	return response.Vehicle{ID: vehicleId}, f.err
}

func (f *fakeCatalogService) FindVehiclesNearby(c context.Context, param request.Nearby) ([]response.Vehicle, error) {
	f.nearby = param
	return []response.Vehicle{}, f.err
}

func (f *fakeCatalogService) SearchVehicles(c context.Context, param request.Search) (response.Vehicles, error) {
	f.search = param
	return response.Vehicles{Vehicles: []response.Vehicle{}}, f.err
}

func (f *fakeCatalogService) VehicleTypes(c context.Context) ([]string, error) {
	return []string{"Car", "Scooter"}, f.err
}

func (f *fakeCatalogService) VehicleBrands(c context.Context) ([]string, error) {
	return []string{"Honda"}, f.err
}

func newRouter(svc *fakeCatalogService, userId uuid.UUID) *mux.Router {
	router := mux.NewRouter()
	protected := router.NewRoute().Subrouter()
	protected.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := &jwt.Token{Claims: jwt.RegisteredClaims{Subject: userId.String()}}
			next.ServeHTTP(w, r.WithContext(internal.AttachJwtToken(r.Context(), token)))
		})
	})
	AttachHotelController(router, protected, svc)
	AttachVehicleController(router, protected, svc)
	return router
}

func TestCatalogController(t *testing.T) {
	userId := uuid.New()
	itemId := uuid.New()
	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		serviceErr     error
		expectedStatus int
		assertService  func(t *testing.T, svc *fakeCatalogService)
	}{
		{
			name:           "find hotels with default pagination and radius",
			method:         http.MethodGet,
			path:           "/hotels",
			expectedStatus: http.StatusOK,
			assertService: func(t *testing.T, svc *fakeCatalogService) {
				assert.Equal(t, request.DEFAULT_PAGE, svc.hotelFilter.Page)
				assert.Equal(t, request.DEFAULT_LIMIT, svc.hotelFilter.Limit)
				assert.Equal(t, float64(request.DEFAULT_FILTER_RADIUS), svc.hotelFilter.Radius)
			},
		},
		{
			name:           "find hotels with filters",
			method:         http.MethodGet,
			path:           "/hotels?city=Panaji&amenities=wifi,%20pool&rating=4&page=2&limit=5",
			expectedStatus: http.StatusOK,
			assertService: func(t *testing.T, svc *fakeCatalogService) {
				assert.Equal(t, "Panaji", svc.hotelFilter.City)
				assert.Equal(t, []string{"wifi", "pool"}, svc.hotelFilter.Amenities)
				require.NotNil(t, svc.hotelFilter.Rating)
				assert.Equal(t, 4.0, *svc.hotelFilter.Rating)
				assert.Equal(t, 2, svc.hotelFilter.Page)
				assert.Equal(t, 5, svc.hotelFilter.Limit)
			},
		},
		{
			name:           "find hotels with rating out of range",
			method:         http.MethodGet,
			path:           "/hotels?rating=6",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "find hotels with only latitude",
			method:         http.MethodGet,
			path:           "/hotels?latitude=15.4",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "find hotels with limit over maximum",
			method:         http.MethodGet,
			path:           "/hotels?limit=500",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "find hotel by id",
			method:         http.MethodGet,
			path:           "/hotels/" + itemId.String(),
			expectedStatus: http.StatusOK,
			assertService: func(t *testing.T, svc *fakeCatalogService) {
				assert.Equal(t, itemId, svc.lastId)
			},
		},
		{
			name:           "find hotel with malformed id",
			method:         http.MethodGet,
			path:           "/hotels/not-a-uuid",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "find missing hotel",
			method:         http.MethodGet,
			path:           "/hotels/" + itemId.String(),
			serviceErr:     inErrors.ErrHotelNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "add hotel review",
			method:         http.MethodPost,
			path:           "/hotels/" + itemId.String() + "/reviews",
			body:           `{"rating":4,"comment":"Clean rooms and kind staff"}`,
			expectedStatus: http.StatusCreated,
			assertService: func(t *testing.T, svc *fakeCatalogService) {
				assert.Equal(t, userId, svc.lastUserId)
				assert.Equal(t, itemId, svc.lastId)
				assert.Equal(t, 4, svc.review.Rating)
			},
		},
		{
			name:           "add hotel review with short comment",
			method:         http.MethodPost,
			path:           "/hotels/" + itemId.String() + "/reviews",
			body:           `{"rating":4,"comment":"ok"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "add second hotel review",
			method:         http.MethodPost,
			path:           "/hotels/" + itemId.String() + "/reviews",
			body:           `{"rating":4,"comment":"Clean rooms and kind staff"}`,
			serviceErr:     inErrors.ErrReviewExists,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "nearby hotels with default radius",
			method:         http.MethodGet,
			path:           "/hotels/nearby/15.4909/73.8278",
			expectedStatus: http.StatusOK,
			assertService: func(t *testing.T, svc *fakeCatalogService) {
				assert.Equal(t, 15.4909, svc.nearby.Latitude)
				assert.Equal(t, float64(request.DEFAULT_NEARBY_RADIUS), svc.nearby.Radius)
			},
		},
		{
			name:           "nearby hotels with invalid longitude",
			method:         http.MethodGet,
			path:           "/hotels/nearby/15.4909/east",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "search hotels",
			method:         http.MethodGet,
			path:           "/hotels/search/beach?page=3",
			expectedStatus: http.StatusOK,
			assertService: func(t *testing.T, svc *fakeCatalogService) {
				assert.Equal(t, "beach", svc.search.Query)
				assert.Equal(t, 3, svc.search.Page)
			},
		},
		{
			name:           "find vehicles with filters",
			method:         http.MethodGet,
			path:           "/vehicles?type=SUV&brand=hyun&seats=5&minPrice=1000",
			expectedStatus: http.StatusOK,
			assertService: func(t *testing.T, svc *fakeCatalogService) {
				assert.Equal(t, "SUV", svc.vehicleFilter.Type)
				assert.Equal(t, "hyun", svc.vehicleFilter.Brand)
				require.NotNil(t, svc.vehicleFilter.Seats)
				assert.Equal(t, 5, *svc.vehicleFilter.Seats)
				require.NotNil(t, svc.vehicleFilter.MinPrice)
				assert.Equal(t, "1000", svc.vehicleFilter.MinPrice.String())
			},
		},
		{
			name:           "find vehicles with malformed price",
			method:         http.MethodGet,
			path:           "/vehicles?maxPrice=cheap",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "find missing vehicle",
			method:         http.MethodGet,
			path:           "/vehicles/" + itemId.String(),
			serviceErr:     inErrors.ErrVehicleNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "add vehicle review for unknown user",
			method:         http.MethodPost,
			path:           "/vehicles/" + itemId.String() + "/reviews",
			body:           `{"rating":5,"comment":"Great scooter for the coast"}`,
			serviceErr:     inErrors.ErrUserNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "vehicle types are not taken as id",
			method:         http.MethodGet,
			path:           "/vehicles/types/list",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "vehicle brands",
			method:         http.MethodGet,
			path:           "/vehicles/brands/list",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "search vehicles failing",
			method:         http.MethodGet,
			path:           "/vehicles/search/honda",
			serviceErr:     assert.AnError,
			expectedStatus: http.StatusInternalServerError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeCatalogService{err: tt.serviceErr}
			router := newRouter(svc, userId)

			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code, rec.Body.String())
			body := map[string]interface{}{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			if tt.assertService != nil {
				tt.assertService(t, svc)
			}
		})
	}
}

func TestVehicleTypesResponse(t *testing.T) {
	svc := &fakeCatalogService{}
	router := newRouter(svc, uuid.New())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/vehicles/types/list", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := struct {
		Data struct {
			Types []string `json:"types"`
		} `json:"data"`
	}{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"Car", "Scooter"}, body.Data.Types)
}
