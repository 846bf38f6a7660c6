package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"

	"github.com/Alturino/tourism/internal/constants"
	inOtel "github.com/Alturino/tourism/internal/otel"
	"github.com/Alturino/tourism/internal/repository"
	"github.com/Alturino/tourism/safety/internal/metric"
	"github.com/Alturino/tourism/safety/internal/otel"
	"github.com/Alturino/tourism/safety/internal/places"
	"github.com/Alturino/tourism/safety/pkg/evaluation"
	"github.com/Alturino/tourism/safety/pkg/request"
	"github.com/Alturino/tourism/safety/pkg/response"
)

const (
	REPORT_MESSAGE       = "Unsafe location reported successfully"
	REPORTED_ZONE_RADIUS = 300
	MAX_SAFE_ZONES       = 10
	MAX_SAFE_PLACES      = 15
	MAX_UNSAFE_LOCATIONS = 50
	MAX_RECENT_REPORTS   = 5
	PLACE_LABEL_POLICE   = "police"
	PLACE_LABEL_HOSPITAL = "hospital"
	PLACE_LABEL_HOTEL    = "hotel"
)

type SafetyService struct {
	queries *repository.Queries
	places  *places.Client
}

func NewSafetyService(queries *repository.Queries, client *places.Client) *SafetyService {
	return &SafetyService{queries: queries, places: client}
}

func (svc *SafetyService) activeZonesAround(
	c context.Context,
	point evaluation.Coordinates,
	radius float64,
	zoneType pgtype.Text,
) ([]evaluation.Zone, error) {
	c, span := otel.Tracer.Start(c, "SafetyService activeZonesAround")
	defer span.End()

	box := evaluation.BoundingBox(point, radius)
	rows, err := svc.queries.FindActiveZonesInBox(c, repository.FindActiveZonesInBoxParams{
		MinLatitude:  box.MinLatitude,
		MaxLatitude:  box.MaxLatitude,
		MinLongitude: box.MinLongitude,
		MaxLongitude: box.MaxLongitude,
		Type:         zoneType,
	})
	if err != nil {
		err = fmt.Errorf("failed finding active zones with error=%w", err)
		inOtel.RecordError(err, span)
		return nil, err
	}
	return zonesFromRows(rows), nil
}

// CheckLocation assesses the zones around area and stores the verdict on
// the user.
func (svc *SafetyService) CheckLocation(
	c context.Context,
	userId uuid.UUID,
	area request.Area,
) (response.Check, error) {
	c, span := otel.Tracer.Start(c, "SafetyService CheckLocation")
	defer span.End()

	point := evaluation.Coordinates{Latitude: area.Latitude, Longitude: area.Longitude}
	span.SetAttributes(
		attribute.Float64(constants.KEY_LATITUDE, point.Latitude),
		attribute.Float64(constants.KEY_LONGITUDE, point.Longitude),
		attribute.Float64(constants.KEY_RADIUS, area.Radius),
	)
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "SafetyService CheckLocation").
		Str(constants.KEY_USER_ID, userId.String()).
		Float64(constants.KEY_LATITUDE, point.Latitude).
		Float64(constants.KEY_LONGITUDE, point.Longitude).
		Float64(constants.KEY_RADIUS, area.Radius).
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "finding active zones").Logger()
	logger.Info().Msg("finding active zones")
	zones, err := svc.activeZonesAround(c, point, area.Radius, pgtype.Text{})
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Check{}, err
	}
	logger.Info().Int(constants.KEY_ZONES_COUNT, len(zones)).Msg("found active zones")

	logger = logger.With().Str(constants.KEY_PROCESS, "assessing safety").Logger()
	logger.Trace().Msg("assessing safety")
	assessment := evaluation.AssessSafety(zones, point, area.Radius)
	logger.Info().
		Bool(constants.KEY_IS_SAFE, assessment.IsSafe).
		Str(constants.KEY_RISK_LEVEL, string(assessment.RiskLevel)).
		Msg("assessed safety")

	logger = logger.With().Str(constants.KEY_PROCESS, "updating user safety").Logger()
	logger.Info().Msg("updating user safety")
	_, err = svc.queries.UpdateUserSafety(c, repository.UpdateUserSafetyParams{
		ID:     userId,
		IsSafe: assessment.IsSafe,
	})
	if err != nil {
		err = fmt.Errorf("failed updating user safety with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Check{}, err
	}
	logger.Info().Msg("updated user safety")

	c = logger.WithContext(c)
	contacts := svc.EmergencyContacts(c, request.Point{Latitude: point.Latitude, Longitude: point.Longitude})
	metric.SafetyChecks.WithLabelValues(string(assessment.RiskLevel)).Inc()

	safetyZones := make([]response.ZoneSummary, 0, len(assessment.Zones))
	for _, zd := range assessment.Zones {
		safetyZones = append(safetyZones, response.ZoneSummary{
			ID:          zd.Zone.ID,
			Name:        zd.Zone.Name,
			Type:        string(zd.Zone.Type),
			RiskLevel:   string(zd.Zone.RiskLevel),
			Description: zd.Zone.Description,
			Distance:    zd.Distance,
		})
	}
	return response.Check{
		IsSafe:            assessment.IsSafe,
		RiskLevel:         assessment.RiskLevel,
		Warnings:          assessment.Warnings,
		SafetyZones:       safetyZones,
		EmergencyContacts: contacts,
		Location:          point,
	}, nil
}

// SafeAlternatives lists safe zones and places where help is available
// around area, nearest first.
func (svc *SafetyService) SafeAlternatives(c context.Context, area request.Area) (response.SafeAlternatives, error) {
	c, span := otel.Tracer.Start(c, "SafetyService SafeAlternatives")
	defer span.End()

	point := evaluation.Coordinates{Latitude: area.Latitude, Longitude: area.Longitude}
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "SafetyService SafeAlternatives").
		Float64(constants.KEY_LATITUDE, point.Latitude).
		Float64(constants.KEY_LONGITUDE, point.Longitude).
		Float64(constants.KEY_RADIUS, area.Radius).
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "finding safe zones").Logger()
	logger.Info().Msg("finding safe zones")
	zones, err := svc.activeZonesAround(
		c,
		point,
		area.Radius,
		repository.NullableText(string(evaluation.ZoneTypeSafe)),
	)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.SafeAlternatives{}, err
	}
	safeZones := []response.SafeZone{}
	for _, ranked := range evaluation.RankByDistance(zones, point) {
		if float64(ranked.Distance) > area.Radius || len(safeZones) == MAX_SAFE_ZONES {
			break
		}
		safeZones = append(safeZones, response.SafeZone{
			ID:          ranked.Item.ID,
			Name:        ranked.Item.Name,
			Description: ranked.Item.Description,
			Coordinates: ranked.Item.Coordinates,
			Distance:    ranked.Distance,
		})
	}
	logger.Info().Int(constants.KEY_ZONES_COUNT, len(safeZones)).Msg("found safe zones")

	res := response.SafeAlternatives{SafeZones: safeZones, SafePlaces: []response.SafePlace{}, Location: point}
	if !svc.places.Configured() {
		logger.Warn().Msg(places.ErrNotConfigured.Error())
		return res, nil
	}

	logger = logger.With().Str(constants.KEY_PROCESS, "searching safe places").Logger()
	logger.Info().Msg("searching safe places")
	c = logger.WithContext(c)
	found := svc.places.SearchMany(c, point, area.Radius, places.TYPE_POLICE, places.TYPE_HOSPITAL, places.TYPE_LODGING)
	labels := []struct {
		placeType string
		label     string
	}{
		{places.TYPE_POLICE, PLACE_LABEL_POLICE},
		{places.TYPE_HOSPITAL, PLACE_LABEL_HOSPITAL},
		{places.TYPE_LODGING, PLACE_LABEL_HOTEL},
	}
	candidates := []places.Place{}
	labelOf := map[string]string{}
	for _, l := range labels {
		for _, p := range found[l.placeType] {
			if _, seen := labelOf[p.PlaceID]; seen {
				continue
			}
			labelOf[p.PlaceID] = l.label
			candidates = append(candidates, p)
		}
	}
	for _, ranked := range evaluation.RankByDistance(candidates, point) {
		if len(res.SafePlaces) == MAX_SAFE_PLACES {
			break
		}
		res.SafePlaces = append(res.SafePlaces, response.SafePlace{
			ID:       ranked.Item.PlaceID,
			Name:     ranked.Item.Name,
			Address:  ranked.Item.Vicinity,
			Type:     labelOf[ranked.Item.PlaceID],
			Rating:   ranked.Item.Rating,
			Geometry: geometryOf(ranked.Item),
			Distance: ranked.Distance,
		})
	}
	logger.Info().Int(constants.KEY_PLACES_COUNT, len(res.SafePlaces)).Msg("searched safe places")
	return res, nil
}

// ReportUnsafe stores a dangerous zone reported by userId.
func (svc *SafetyService) ReportUnsafe(
	c context.Context,
	userId uuid.UUID,
	param request.Report,
) (response.ReportedZone, error) {
	c, span := otel.Tracer.Start(c, "SafetyService ReportUnsafe")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "SafetyService ReportUnsafe").
		Str(constants.KEY_USER_ID, userId.String()).
		Str(constants.KEY_RISK_LEVEL, param.RiskLevel).
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "parsing report").Logger()
	logger.Trace().Msg("parsing report")
	riskLevel, err := evaluation.ParseRiskLevel(param.RiskLevel)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.ReportedZone{}, err
	}
	reasons, err := evaluation.ParseReasons(param.Reasons)
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.ReportedZone{}, err
	}
	logger.Trace().Msg("parsed report")

	logger = logger.With().Str(constants.KEY_PROCESS, "inserting safety zone").Logger()
	logger.Info().Msg("inserting safety zone")
	row, err := svc.queries.InsertSafetyZone(c, repository.InsertSafetyZoneParams{
		Name:        param.Name,
		Type:        string(evaluation.ZoneTypeDangerous),
		Latitude:    *param.Latitude,
		Longitude:   *param.Longitude,
		Radius:      REPORTED_ZONE_RADIUS,
		Description: param.Description,
		RiskLevel:   string(riskLevel),
		Reasons:     reasonsOf(reasons),
		ReportedBy:  pgtype.UUID{Bytes: userId, Valid: true},
	})
	if err != nil {
		err = fmt.Errorf("failed inserting safety zone with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.ReportedZone{}, err
	}
	logger.Info().Str(constants.KEY_ZONE_ID, row.ID.String()).Msg("inserted safety zone")

	return response.ReportedZone{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		RiskLevel:   row.RiskLevel,
		Reasons:     nonNil(row.Reasons),
		Coordinates: evaluation.Coordinates{Latitude: row.Latitude, Longitude: row.Longitude},
		ReportedAt:  row.CreatedAt.Time,
	}, nil
}

// UnsafeLocations lists the newest user reported zones, within area when a
// point is given.
func (svc *SafetyService) UnsafeLocations(
	c context.Context,
	area request.OptionalArea,
) (response.UnsafeLocations, error) {
	c, span := otel.Tracer.Start(c, "SafetyService UnsafeLocations")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "SafetyService UnsafeLocations").
		Bool(constants.KEY_HAS_POINT, area.HasPoint()).
		Float64(constants.KEY_RADIUS, area.Radius).
		Logger()

	params := repository.FindReportedZonesParams{Radius: area.Radius, Limit: MAX_UNSAFE_LOCATIONS}
	if area.HasPoint() {
		params.Latitude = repository.NullableFloat8(area.Latitude)
		params.Longitude = repository.NullableFloat8(area.Longitude)
	}

	logger = logger.With().Str(constants.KEY_PROCESS, "finding reported zones").Logger()
	logger.Info().Msg("finding reported zones")
	rows, err := svc.queries.FindReportedZones(c, params)
	if err != nil {
		err = fmt.Errorf("failed finding reported zones with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.UnsafeLocations{}, err
	}
	logger.Info().Int(constants.KEY_ZONES_COUNT, len(rows)).Msg("found reported zones")

	locations := make([]response.UnsafeLocation, 0, len(rows))
	for _, row := range rows {
		location := response.UnsafeLocation{
			ID:          row.ID,
			Name:        row.Name,
			Description: row.Description,
			RiskLevel:   row.RiskLevel,
			Reasons:     nonNil(row.Reasons),
			Latitude:    row.Latitude,
			Longitude:   row.Longitude,
			Radius:      row.Radius,
			ReportedAt:  row.CreatedAt.Time,
			ReportedBy:  reporterOr(row, response.REPORTER_ANONYMOUS),
		}
		if location.Radius == 0 {
			location.Radius = REPORTED_ZONE_RADIUS
		}
		if area.HasPoint() {
			d := evaluation.DistanceMeters(*area.Latitude, *area.Longitude, row.Latitude, row.Longitude)
			location.Distance = &d
		}
		locations = append(locations, location)
	}
	return response.UnsafeLocations{UnsafeLocations: locations, Total: len(locations)}, nil
}

func (svc *SafetyService) Zones(c context.Context) ([]response.Zone, error) {
	c, span := otel.Tracer.Start(c, "SafetyService Zones")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "SafetyService Zones").
		Str(constants.KEY_PROCESS, "finding active zones").
		Logger()

	logger.Info().Msg("finding active zones")
	rows, err := svc.queries.FindActiveZones(c)
	if err != nil {
		err = fmt.Errorf("failed finding active zones with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Int(constants.KEY_ZONES_COUNT, len(rows)).Msg("found active zones")
	return zoneResponses(rows), nil
}

// EmergencyContacts finds the nearest police station, hospital and fire
// station. Any category that cannot be found is left nil.
func (svc *SafetyService) EmergencyContacts(c context.Context, point request.Point) response.EmergencyContacts {
	c, span := otel.Tracer.Start(c, "SafetyService EmergencyContacts")
	defer span.End()

	location := evaluation.Coordinates{Latitude: point.Latitude, Longitude: point.Longitude}
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "SafetyService EmergencyContacts").
		Float64(constants.KEY_LATITUDE, location.Latitude).
		Float64(constants.KEY_LONGITUDE, location.Longitude).
		Logger()

	if !svc.places.Configured() {
		logger.Warn().Msg(places.ErrNotConfigured.Error())
		return response.EmergencyContacts{}
	}

	logger = logger.With().Str(constants.KEY_PROCESS, "searching emergency services").Logger()
	logger.Info().Msg("searching emergency services")
	c = logger.WithContext(c)
	found := svc.places.SearchMany(
		c,
		location,
		request.DEFAULT_EMERGENCY_RADIUS,
		places.TYPE_POLICE,
		places.TYPE_HOSPITAL,
		places.TYPE_FIRE_STATION,
	)
	contacts := response.EmergencyContacts{
		Police:      contactOf(evaluation.Nearest(found[places.TYPE_POLICE], location)),
		Hospital:    contactOf(evaluation.Nearest(found[places.TYPE_HOSPITAL], location)),
		FireStation: contactOf(evaluation.Nearest(found[places.TYPE_FIRE_STATION], location)),
	}
	logger.Info().Msg("searched emergency services")
	return contacts
}

func (svc *SafetyService) Statistics(c context.Context) (response.Statistics, error) {
	c, span := otel.Tracer.Start(c, "SafetyService Statistics")
	defer span.End()

	logger := zerolog.Ctx(c).With().Str(constants.KEY_TAG, "SafetyService Statistics").Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "counting zones").Logger()
	logger.Info().Msg("counting zones")
	stats, err := svc.queries.GetZoneStatistics(c)
	if err != nil {
		err = fmt.Errorf("failed counting zones with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Statistics{}, err
	}
	logger.Info().Msg("counted zones")

	logger = logger.With().Str(constants.KEY_PROCESS, "finding recent zones").Logger()
	logger.Info().Msg("finding recent zones")
	recent, err := svc.queries.FindRecentZones(c, MAX_RECENT_REPORTS)
	if err != nil {
		err = fmt.Errorf("failed finding recent zones with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Statistics{}, err
	}
	logger.Info().Msg("found recent zones")

	return response.Statistics{
		TotalReports:    stats.TotalReports,
		ActiveReports:   stats.ActiveReports,
		HighRiskReports: stats.HighRiskReports,
		RecentReports:   zoneResponses(recent),
	}, nil
}
