package repository

import "fmt"

// distanceMeters renders a haversine expression in meters between the
// latitude/longitude columns of alias and the given placeholders.
func distanceMeters(alias, latParam, lonParam string) string {
	if alias != "" {
		alias += "."
	}
	return fmt.Sprintf(
		`(6371000 * 2 * asin(least(1, sqrt(power(sin(radians(%[1]slatitude - %[2]s::float8) / 2), 2) + cos(radians(%[2]s::float8)) * cos(radians(%[1]slatitude)) * power(sin(radians(%[1]slongitude - %[3]s::float8) / 2), 2)))))`,
		alias,
		latParam,
		lonParam,
	)
}

func withinRadius(alias, latParam, lonParam, radiusParam string) string {
	return fmt.Sprintf(
		`(%[1]s::float8 IS NULL OR %[2]s::float8 IS NULL OR %[3]s <= %[4]s::float8)`,
		latParam,
		lonParam,
		distanceMeters(alias, latParam, lonParam),
		radiusParam,
	)
}
