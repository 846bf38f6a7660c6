package evaluation

import (
	"cmp"
	"math"
	"slices"
)

const earthRadiusMeters = 6371000.0

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// DistanceMeters is the great-circle distance between two points, rounded
// to the nearest meter.
func DistanceMeters(lat1, lon1, lat2, lon2 float64) int64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	a = math.Min(1, a)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return int64(math.Round(earthRadiusMeters * c))
}

func Distance(from, to Coordinates) int64 {
	return DistanceMeters(from.Latitude, from.Longitude, to.Latitude, to.Longitude)
}

type Locatable interface {
	Location() Coordinates
}

type Ranked[T Locatable] struct {
	Item     T     `json:"item"`
	Distance int64 `json:"distance"`
}

// RankByDistance sorts candidates nearest first. Equal distances keep their
// input order.
func RankByDistance[T Locatable](candidates []T, point Coordinates) []Ranked[T] {
	ranked := make([]Ranked[T], 0, len(candidates))
	for _, c := range candidates {
		ranked = append(ranked, Ranked[T]{Item: c, Distance: Distance(point, c.Location())})
	}
	slices.SortStableFunc(ranked, func(a, b Ranked[T]) int {
		return cmp.Compare(a.Distance, b.Distance)
	})
	return ranked
}

// Nearest returns the closest candidate and false when there is none.
func Nearest[T Locatable](candidates []T, point Coordinates) (Ranked[T], bool) {
	ranked := RankByDistance(candidates, point)
	if len(ranked) == 0 {
		return Ranked[T]{}, false
	}
	return ranked[0], true
}

type Bounds struct {
	MinLatitude  float64 `json:"minLatitude"`
	MaxLatitude  float64 `json:"maxLatitude"`
	MinLongitude float64 `json:"minLongitude"`
	MaxLongitude float64 `json:"maxLongitude"`
}

// BoundingBox covers every point within radius meters of point. When the box
// crosses the antimeridian MinLongitude is greater than MaxLongitude.
func BoundingBox(point Coordinates, radius float64) Bounds {
	if radius < 0 {
		radius = 0
	}
	angular := radius / earthRadiusMeters
	dLat := angular * 180 / math.Pi

	b := Bounds{
		MinLatitude: math.Max(-90, point.Latitude-dLat),
		MaxLatitude: math.Min(90, point.Latitude+dLat),
	}
	if b.MinLatitude <= -90 || b.MaxLatitude >= 90 {
		b.MinLongitude, b.MaxLongitude = -180, 180
		return b
	}

	sinRatio := math.Sin(angular) / math.Cos(toRadians(point.Latitude))
	if sinRatio >= 1 {
		b.MinLongitude, b.MaxLongitude = -180, 180
		return b
	}
	dLon := math.Asin(sinRatio) * 180 / math.Pi
	b.MinLongitude = wrapLongitude(point.Longitude - dLon)
	b.MaxLongitude = wrapLongitude(point.Longitude + dLon)
	return b
}

func wrapLongitude(lon float64) float64 {
	for lon < -180 {
		lon += 360
	}
	for lon > 180 {
		lon -= 360
	}
	return lon
}

func (b Bounds) Contains(p Coordinates) bool {
	if p.Latitude < b.MinLatitude || p.Latitude > b.MaxLatitude {
		return false
	}
	if b.MinLongitude <= b.MaxLongitude {
		return p.Longitude >= b.MinLongitude && p.Longitude <= b.MaxLongitude
	}
	return p.Longitude >= b.MinLongitude || p.Longitude <= b.MaxLongitude
}
