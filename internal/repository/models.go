package repository

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type Cart struct {
	ID        uuid.UUID          `json:"id"`
	UserID    uuid.UUID          `json:"user_id"`
	Items     []byte             `json:"items"`
	Subtotal  pgtype.Numeric     `json:"subtotal"`
	Tax       pgtype.Numeric     `json:"tax"`
	Total     pgtype.Numeric     `json:"total"`
	Version   int64              `json:"version"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

type Hotel struct {
	ID          uuid.UUID          `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Street      string             `json:"street"`
	City        string             `json:"city"`
	State       string             `json:"state"`
	Country     string             `json:"country"`
	ZipCode     string             `json:"zip_code"`
	Latitude    float64            `json:"latitude"`
	Longitude   float64            `json:"longitude"`
	Rating      pgtype.Numeric     `json:"rating"`
	PriceMin    pgtype.Numeric     `json:"price_min"`
	PriceMax    pgtype.Numeric     `json:"price_max"`
	Currency    string             `json:"currency"`
	Amenities   []string           `json:"amenities"`
	Images      []string           `json:"images"`
	Phone       string             `json:"phone"`
	Email       string             `json:"email"`
	Website     string             `json:"website"`
	RoomTypes   []byte             `json:"room_types"`
	IsActive    bool               `json:"is_active"`
	CreatedAt   pgtype.Timestamptz `json:"created_at"`
	UpdatedAt   pgtype.Timestamptz `json:"updated_at"`
}

type Review struct {
	ID        uuid.UUID          `json:"id"`
	ItemID    uuid.UUID          `json:"item_id"`
	UserID    uuid.UUID          `json:"user_id"`
	UserName  string             `json:"user_name"`
	Rating    int16              `json:"rating"`
	Comment   string             `json:"comment"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
}

type SafetyZone struct {
	ID                uuid.UUID          `json:"id"`
	Name              string             `json:"name"`
	Type              string             `json:"type"`
	Latitude          float64            `json:"latitude"`
	Longitude         float64            `json:"longitude"`
	Radius            int32              `json:"radius"`
	Description       string             `json:"description"`
	RiskLevel         string             `json:"risk_level"`
	Reasons           []string           `json:"reasons"`
	EmergencyContacts []byte             `json:"emergency_contacts"`
	IsActive          bool               `json:"is_active"`
	Verified          bool               `json:"verified"`
	ReportedBy        pgtype.UUID        `json:"reported_by"`
	LastUpdated       pgtype.Timestamptz `json:"last_updated"`
	CreatedAt         pgtype.Timestamptz `json:"created_at"`
}

type User struct {
	ID                uuid.UUID          `json:"id"`
	Name              string             `json:"name"`
	Email             string             `json:"email"`
	Password          string             `json:"-"`
	Phone             pgtype.Text        `json:"phone"`
	FirstName         pgtype.Text        `json:"first_name"`
	LastName          pgtype.Text        `json:"last_name"`
	Address           pgtype.Text        `json:"address"`
	Latitude          pgtype.Float8      `json:"latitude"`
	Longitude         pgtype.Float8      `json:"longitude"`
	LocationAddress   pgtype.Text        `json:"location_address"`
	LocationUpdatedAt pgtype.Timestamptz `json:"location_updated_at"`
	IsSafe            bool               `json:"is_safe"`
	CreatedAt         pgtype.Timestamptz `json:"created_at"`
	UpdatedAt         pgtype.Timestamptz `json:"updated_at"`
}

type Vehicle struct {
	ID            uuid.UUID          `json:"id"`
	Name          string             `json:"name"`
	Type          string             `json:"type"`
	Brand         string             `json:"brand"`
	Model         string             `json:"model"`
	Year          int32              `json:"year"`
	Description   string             `json:"description"`
	PricePerDay   pgtype.Numeric     `json:"price_per_day"`
	PricePerHour  pgtype.Numeric     `json:"price_per_hour"`
	Currency      string             `json:"currency"`
	Address       string             `json:"address"`
	City          string             `json:"city"`
	State         string             `json:"state"`
	Latitude      float64            `json:"latitude"`
	Longitude     float64            `json:"longitude"`
	Features      []string           `json:"features"`
	Images        []string           `json:"images"`
	FuelType      string             `json:"fuel_type"`
	Transmission  string             `json:"transmission"`
	Seats         int32              `json:"seats"`
	Mileage       pgtype.Int4        `json:"mileage"`
	IsAvailable   bool               `json:"is_available"`
	OwnerID       pgtype.UUID        `json:"owner_id"`
	AverageRating pgtype.Numeric     `json:"average_rating"`
	CreatedAt     pgtype.Timestamptz `json:"created_at"`
	UpdatedAt     pgtype.Timestamptz `json:"updated_at"`
}
