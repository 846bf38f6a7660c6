package service

import (
	"slices"
	"strings"

	"github.com/Alturino/tourism/internal/repository"
	"github.com/Alturino/tourism/safety/internal/places"
	"github.com/Alturino/tourism/safety/pkg/evaluation"
	"github.com/Alturino/tourism/safety/pkg/response"
)

func zoneFromRow(row repository.SafetyZone) evaluation.Zone {
	reasons := make([]evaluation.Reason, 0, len(row.Reasons))
	for _, r := range row.Reasons {
		reasons = append(reasons, evaluation.Reason(r))
	}
	return evaluation.Zone{
		ID:          row.ID,
		Name:        row.Name,
		Type:        evaluation.ZoneType(row.Type),
		Coordinates: evaluation.Coordinates{Latitude: row.Latitude, Longitude: row.Longitude},
		Radius:      row.Radius,
		Description: row.Description,
		RiskLevel:   evaluation.RiskLevel(row.RiskLevel),
		Reasons:     reasons,
		IsActive:    row.IsActive,
		LastUpdated: row.LastUpdated.Time,
	}
}

func zonesFromRows(rows []repository.SafetyZone) []evaluation.Zone {
	zones := make([]evaluation.Zone, 0, len(rows))
	for _, row := range rows {
		zones = append(zones, zoneFromRow(row))
	}
	return zones
}

func reasonsOf(reasons []evaluation.Reason) []string {
	values := make([]string, 0, len(reasons))
	for _, r := range reasons {
		values = append(values, string(r))
	}
	return values
}

func reporterOr(row repository.SafetyZoneWithReporter, fallback string) string {
	if !row.ReporterName.Valid || strings.TrimSpace(row.ReporterName.String) == "" {
		return fallback
	}
	return row.ReporterName.String
}

func zoneResponse(row repository.SafetyZoneWithReporter) response.Zone {
	return response.Zone{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		Type:        row.Type,
		RiskLevel:   row.RiskLevel,
		Reasons:     nonNil(row.Reasons),
		Coordinates: evaluation.Coordinates{Latitude: row.Latitude, Longitude: row.Longitude},
		ReportedBy:  reporterOr(row, response.REPORTER_SYSTEM),
		CreatedAt:   row.CreatedAt.Time,
		LastUpdated: row.LastUpdated.Time,
		IsActive:    row.IsActive,
	}
}

func zoneResponses(rows []repository.SafetyZoneWithReporter) []response.Zone {
	zones := make([]response.Zone, 0, len(rows))
	for _, row := range rows {
		zones = append(zones, zoneResponse(row))
	}
	return zones
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func geometryOf(p places.Place) response.Geometry {
	return response.Geometry{
		Location: response.LatLng{Lat: p.Geometry.Location.Lat, Lng: p.Geometry.Location.Lng},
	}
}

func contactOf(ranked evaluation.Ranked[places.Place], found bool) *response.Contact {
	if !found {
		return nil
	}
	return &response.Contact{
		Name:     ranked.Item.Name,
		Address:  ranked.Item.Vicinity,
		Distance: ranked.Distance,
	}
}

// placeResponse keeps at most maxPhotos photos.
func placeResponse(p places.Place, maxPhotos int) response.Place {
	photos := make([]response.Photo, 0, min(len(p.Photos), maxPhotos))
	for _, photo := range p.Photos[:min(len(p.Photos), maxPhotos)] {
		photos = append(photos, response.Photo{
			PhotoReference: photo.PhotoReference,
			Height:         photo.Height,
			Width:          photo.Width,
		})
	}
	types := p.Types
	if types == nil {
		types = []string{}
	}
	return response.Place{
		ID:               p.PlaceID,
		Name:             p.Name,
		Address:          p.Vicinity,
		Rating:           p.Rating,
		UserRatingsTotal: p.UserRatingsTotal,
		Types:            slices.Clone(types),
		Photos:           photos,
		Geometry:         geometryOf(p),
		OpeningHours:     p.OpeningHours,
		PriceLevel:       p.PriceLevel,
	}
}

func ratingOf(p response.Place) float64 {
	if p.Rating == nil {
		return 0
	}
	return *p.Rating
}
