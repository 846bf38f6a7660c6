// Package evaluation scores how safe a point is from the safety zones
// around it and ranks nearby places by distance.
package evaluation

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "Low"
	RiskLevelMedium   RiskLevel = "Medium"
	RiskLevelHigh     RiskLevel = "High"
	RiskLevelCritical RiskLevel = "Critical"
)

// Severity orders risk levels, Low being 1. Unknown levels rank 0.
func (r RiskLevel) Severity() int {
	switch r {
	case RiskLevelLow:
		return 1
	case RiskLevelMedium:
		return 2
	case RiskLevelHigh:
		return 3
	case RiskLevelCritical:
		return 4
	default:
		return 0
	}
}

func (r RiskLevel) IsHigh() bool {
	return r.Severity() >= RiskLevelHigh.Severity()
}

type ZoneType string

const (
	ZoneTypeSafe      ZoneType = "Safe"
	ZoneTypeDangerous ZoneType = "Dangerous"
	ZoneTypeWarning   ZoneType = "Warning"
)

type Reason string

const (
	ReasonCrime                Reason = "Crime"
	ReasonNaturalDisaster      Reason = "Natural Disaster"
	ReasonPoliticalUnrest      Reason = "Political Unrest"
	ReasonHealthEmergency      Reason = "Health Emergency"
	ReasonInfrastructureIssues Reason = "Infrastructure Issues"
	ReasonWeather              Reason = "Weather"
	ReasonOther                Reason = "Other"
)

var (
	ErrInvalidRiskLevel = errors.New("invalid risk level")
	ErrInvalidZoneType  = errors.New("invalid zone type")
	ErrInvalidReason    = errors.New("invalid reason")
)

func ParseRiskLevel(s string) (RiskLevel, error) {
	r := RiskLevel(s)
	if r.Severity() == 0 {
		return "", fmt.Errorf("%w: %q", ErrInvalidRiskLevel, s)
	}
	return r, nil
}

func ParseZoneType(s string) (ZoneType, error) {
	switch t := ZoneType(s); t {
	case ZoneTypeSafe, ZoneTypeDangerous, ZoneTypeWarning:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidZoneType, s)
	}
}

func ParseReasons(values []string) ([]Reason, error) {
	reasons := make([]Reason, 0, len(values))
	for _, v := range values {
		switch r := Reason(v); r {
		case ReasonCrime, ReasonNaturalDisaster, ReasonPoliticalUnrest, ReasonHealthEmergency,
			ReasonInfrastructureIssues, ReasonWeather, ReasonOther:
			reasons = append(reasons, r)
		default:
			return nil, fmt.Errorf("%w: %q", ErrInvalidReason, v)
		}
	}
	return reasons, nil
}

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (c Coordinates) Location() Coordinates {
	return c
}

type Zone struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Type        ZoneType    `json:"type"`
	Coordinates Coordinates `json:"coordinates"`
	Radius      int32       `json:"radius"`
	Description string      `json:"description"`
	RiskLevel   RiskLevel   `json:"riskLevel"`
	Reasons     []Reason    `json:"reasons"`
	IsActive    bool        `json:"isActive"`
	LastUpdated time.Time   `json:"lastUpdated"`
}

func (z Zone) Location() Coordinates {
	return z.Coordinates
}

type ZoneDistance struct {
	Zone     Zone  `json:"zone"`
	Distance int64 `json:"distance"`
}

type Warning struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	RiskLevel   RiskLevel `json:"riskLevel"`
	Reasons     []Reason  `json:"reasons"`
}

type Assessment struct {
	IsSafe    bool           `json:"isSafe"`
	RiskLevel RiskLevel      `json:"riskLevel"`
	Warnings  []Warning      `json:"warnings"`
	Zones     []ZoneDistance `json:"zones"`
}
