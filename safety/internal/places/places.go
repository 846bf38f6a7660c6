// Package places is a client for a nearby search places api.
package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"

	"github.com/Alturino/tourism/internal/config"
	"github.com/Alturino/tourism/internal/constants"
	inOtel "github.com/Alturino/tourism/internal/otel"
	"github.com/Alturino/tourism/safety/internal/otel"
	"github.com/Alturino/tourism/safety/pkg/evaluation"
)

const (
	DEFAULT_BASE_URL = "https://maps.googleapis.com/maps/api/place"

	TYPE_POLICE             = "police"
	TYPE_HOSPITAL           = "hospital"
	TYPE_FIRE_STATION       = "fire_station"
	TYPE_LODGING            = "lodging"
	TYPE_TOURIST_ATTRACTION = "tourist_attraction"
	TYPE_RESTAURANT         = "restaurant"

	statusOk          = "OK"
	statusZeroResults = "ZERO_RESULTS"
)

var (
	ErrNotConfigured = errors.New("places api key not configured")
	ErrUpstream      = errors.New("places api request failed")
)

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Geometry struct {
	Location LatLng `json:"location"`
}

type Place struct {
	PlaceID          string          `json:"place_id"`
	Name             string          `json:"name"`
	Vicinity         string          `json:"vicinity"`
	Rating           *float64        `json:"rating,omitempty"`
	UserRatingsTotal *int            `json:"user_ratings_total,omitempty"`
	Types            []string        `json:"types"`
	Photos           []Photo         `json:"photos,omitempty"`
	Geometry         Geometry        `json:"geometry"`
	OpeningHours     json.RawMessage `json:"opening_hours,omitempty"`
	PriceLevel       *int            `json:"price_level,omitempty"`
}

type Photo struct {
	PhotoReference string `json:"photo_reference"`
	Height         int    `json:"height"`
	Width          int    `json:"width"`
}

func (p Place) Location() evaluation.Coordinates {
	return evaluation.Coordinates{Latitude: p.Geometry.Location.Lat, Longitude: p.Geometry.Location.Lng}
}

func (p Place) HasType(t string) bool {
	for _, pt := range p.Types {
		if pt == t {
			return true
		}
	}
	return false
}

type nearbySearchResponse struct {
	Results      []Place `json:"results"`
	Status       string  `json:"status"`
	ErrorMessage string  `json:"error_message"`
}

type Client struct {
	httpClient *http.Client
	baseUrl    string
	apiKey     string
}

func NewClient(cfg config.Places) *Client {
	baseUrl := strings.TrimRight(cfg.BaseUrl, "/")
	if baseUrl == "" {
		baseUrl = DEFAULT_BASE_URL
	}
	return &Client{
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   10 * time.Second,
		},
		baseUrl: baseUrl,
		apiKey:  cfg.ApiKey,
	}
}

func (cl *Client) Configured() bool {
	return cl != nil && cl.apiKey != ""
}

func (cl *Client) NearbySearch(
	c context.Context,
	point evaluation.Coordinates,
	radius float64,
	placeType string,
) ([]Place, error) {
	c, span := otel.Tracer.Start(c, "places Client NearbySearch")
	defer span.End()

	span.SetAttributes(attribute.String(constants.KEY_PLACE_TYPE, placeType))
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "places Client NearbySearch").
		Str(constants.KEY_PLACE_TYPE, placeType).
		Float64(constants.KEY_RADIUS, radius).
		Logger()

	if !cl.Configured() {
		return nil, ErrNotConfigured
	}

	query := url.Values{}
	query.Set("location", fmt.Sprintf("%s,%s",
		strconv.FormatFloat(point.Latitude, 'f', -1, 64),
		strconv.FormatFloat(point.Longitude, 'f', -1, 64),
	))
	query.Set("radius", strconv.FormatFloat(radius, 'f', -1, 64))
	query.Set("type", placeType)
	query.Set("key", cl.apiKey)

	logger = logger.With().Str(constants.KEY_PROCESS, "requesting nearby search").Logger()
	logger.Trace().Msg("requesting nearby search")
	req, err := http.NewRequestWithContext(c, http.MethodGet, cl.baseUrl+"/nearbysearch/json?"+query.Encode(), nil)
	if err != nil {
		err = fmt.Errorf("failed creating nearby search request with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	resp, err := cl.httpClient.Do(req)
	if err != nil {
		err = fmt.Errorf("failed requesting nearby search with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		err = fmt.Errorf("%w: status code=%d", ErrUpstream, resp.StatusCode)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}

	body := nearbySearchResponse{}
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		err = fmt.Errorf("failed decoding nearby search response with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	if body.Status != statusOk && body.Status != statusZeroResults {
		err = fmt.Errorf("%w: status=%s message=%s", ErrUpstream, body.Status, body.ErrorMessage)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	if body.Results == nil {
		body.Results = []Place{}
	}
	logger.Trace().Int("results", len(body.Results)).Msg("requested nearby search")

	return body.Results, nil
}

// SearchMany runs one nearby search per place type concurrently. Results are
// keyed by type; a failed type is logged and left empty.
func (cl *Client) SearchMany(
	c context.Context,
	point evaluation.Coordinates,
	radius float64,
	placeTypes ...string,
) map[string][]Place {
	results := make(map[string][]Place, len(placeTypes))
	mu := sync.Mutex{}
	wg := sync.WaitGroup{}
	for _, placeType := range placeTypes {
		wg.Add(1)
		go func(placeType string) {
			defer wg.Done()
			found, err := cl.NearbySearch(c, point, radius, placeType)
			if err != nil {
				zerolog.Ctx(c).Warn().Err(err).Str(constants.KEY_PLACE_TYPE, placeType).Msg(err.Error())
				found = []Place{}
			}
			mu.Lock()
			results[placeType] = found
			mu.Unlock()
		}(placeType)
	}
	wg.Wait()
	return results
}
