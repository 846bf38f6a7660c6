package evaluation

import (
	"cmp"
	"slices"
)

// FindZonesNear keeps active zones within radius meters of point, most
// severe first and nearest first within a severity.
func FindZonesNear(zones []Zone, point Coordinates, radius float64) []ZoneDistance {
	near := []ZoneDistance{}
	for _, z := range zones {
		if !z.IsActive {
			continue
		}
		d := Distance(point, z.Coordinates)
		if float64(d) > radius {
			continue
		}
		near = append(near, ZoneDistance{Zone: z, Distance: d})
	}
	slices.SortStableFunc(near, func(a, b ZoneDistance) int {
		if c := cmp.Compare(b.Zone.RiskLevel.Severity(), a.Zone.RiskLevel.Severity()); c != 0 {
			return c
		}
		return cmp.Compare(a.Distance, b.Distance)
	})
	return near
}

func AssessSafety(zones []Zone, point Coordinates, radius float64) Assessment {
	near := FindZonesNear(zones, point, radius)
	assessment := Assessment{
		IsSafe:    true,
		RiskLevel: RiskLevelLow,
		Warnings:  []Warning{},
		Zones:     near,
	}
	for _, zd := range near {
		if !zd.Zone.RiskLevel.IsHigh() {
			continue
		}
		if assessment.IsSafe {
			assessment.IsSafe = false
			assessment.RiskLevel = zd.Zone.RiskLevel
		}
		assessment.Warnings = append(assessment.Warnings, Warning{
			Name:        zd.Zone.Name,
			Description: zd.Zone.Description,
			RiskLevel:   zd.Zone.RiskLevel,
			Reasons:     zd.Zone.Reasons,
		})
	}
	return assessment
}
