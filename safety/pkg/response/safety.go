package response

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/Alturino/tourism/safety/pkg/evaluation"
)

const (
	REPORTER_SYSTEM    = "System"
	REPORTER_ANONYMOUS = "Anonymous"
)

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Geometry struct {
	Location LatLng `json:"location"`
}

type ZoneSummary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	RiskLevel   string    `json:"riskLevel"`
	Description string    `json:"description"`
	Distance    int64     `json:"distance"`
}

type Contact struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	Distance int64  `json:"distance"`
}

type EmergencyContacts struct {
	Police      *Contact `json:"police"`
	Hospital    *Contact `json:"hospital"`
	FireStation *Contact `json:"fireStation"`
}

type Check struct {
	IsSafe            bool                   `json:"isSafe"`
	RiskLevel         evaluation.RiskLevel   `json:"riskLevel"`
	Warnings          []evaluation.Warning   `json:"warnings"`
	SafetyZones       []ZoneSummary          `json:"safetyZones"`
	EmergencyContacts EmergencyContacts      `json:"emergencyContacts"`
	Location          evaluation.Coordinates `json:"location"`
}

type SafeZone struct {
	ID          uuid.UUID              `json:"id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Coordinates evaluation.Coordinates `json:"coordinates"`
	Distance    int64                  `json:"distance"`
}

type SafePlace struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Address  string   `json:"address"`
	Type     string   `json:"type"`
	Rating   *float64 `json:"rating"`
	Geometry Geometry `json:"geometry"`
	Distance int64    `json:"distance"`
}

type SafeAlternatives struct {
	SafeZones  []SafeZone             `json:"safeZones"`
	SafePlaces []SafePlace            `json:"safePlaces"`
	Location   evaluation.Coordinates `json:"location"`
}

type ReportedZone struct {
	ID          uuid.UUID              `json:"id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	RiskLevel   string                 `json:"riskLevel"`
	Reasons     []string               `json:"reasons"`
	Coordinates evaluation.Coordinates `json:"coordinates"`
	ReportedAt  time.Time              `json:"reportedAt"`
}

type UnsafeLocation struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	RiskLevel   string    `json:"riskLevel"`
	Reasons     []string  `json:"reasons"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Radius      int32     `json:"radius"`
	ReportedAt  time.Time `json:"reportedAt"`
	ReportedBy  string    `json:"reportedBy"`
	Distance    *int64    `json:"distance"`
}

type UnsafeLocations struct {
	UnsafeLocations []UnsafeLocation `json:"unsafeLocations"`
	Total           int              `json:"total"`
}

type Zone struct {
	ID          uuid.UUID              `json:"id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Type        string                 `json:"type"`
	RiskLevel   string                 `json:"riskLevel"`
	Reasons     []string               `json:"reasons"`
	Coordinates evaluation.Coordinates `json:"coordinates"`
	ReportedBy  string                 `json:"reportedBy"`
	CreatedAt   time.Time              `json:"createdAt"`
	LastUpdated time.Time              `json:"lastUpdated"`
	IsActive    bool                   `json:"isActive"`
}

type Statistics struct {
	TotalReports    int64  `json:"totalReports"`
	ActiveReports   int64  `json:"activeReports"`
	HighRiskReports int64  `json:"highRiskReports"`
	RecentReports   []Zone `json:"recentReports"`
}

type Photo struct {
	PhotoReference string `json:"photo_reference"`
	Height         int    `json:"height"`
	Width          int    `json:"width"`
}

type Place struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Address          string          `json:"address"`
	Rating           *float64        `json:"rating"`
	UserRatingsTotal *int            `json:"userRatingsTotal"`
	Types            []string        `json:"types"`
	Photos           []Photo         `json:"photos"`
	Geometry         Geometry        `json:"geometry"`
	OpeningHours     json.RawMessage `json:"openingHours,omitempty"`
	PriceLevel       *int            `json:"priceLevel"`
	Category         string          `json:"category,omitempty"`
}

type Places struct {
	Places   []Place                `json:"places"`
	Location evaluation.Coordinates `json:"location"`
}
