package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const vehicleColumns = `id, name, type, brand, model, year, description, price_per_day, price_per_hour, currency,
address, city, state, latitude, longitude, features, images, fuel_type, transmission, seats, mileage,
is_available, owner_id, average_rating, created_at, updated_at`

func scanVehicle(row pgx.Row) (Vehicle, error) {
	var i Vehicle
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Type,
		&i.Brand,
		&i.Model,
		&i.Year,
		&i.Description,
		&i.PricePerDay,
		&i.PricePerHour,
		&i.Currency,
		&i.Address,
		&i.City,
		&i.State,
		&i.Latitude,
		&i.Longitude,
		&i.Features,
		&i.Images,
		&i.FuelType,
		&i.Transmission,
		&i.Seats,
		&i.Mileage,
		&i.IsAvailable,
		&i.OwnerID,
		&i.AverageRating,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

func collectVehicles(rows pgx.Rows) ([]Vehicle, error) {
	defer rows.Close()
	items := []Vehicle{}
	for rows.Next() {
		i, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

type VehicleFilter struct {
	Type         pgtype.Text    `json:"type"`
	MinPrice     pgtype.Numeric `json:"min_price"`
	MaxPrice     pgtype.Numeric `json:"max_price"`
	Brand        pgtype.Text    `json:"brand"`
	Transmission pgtype.Text    `json:"transmission"`
	FuelType     pgtype.Text    `json:"fuel_type"`
	MinSeats     pgtype.Int4    `json:"min_seats"`
	Latitude     pgtype.Float8  `json:"latitude"`
	Longitude    pgtype.Float8  `json:"longitude"`
	Radius       float64        `json:"radius"`
}

func (f VehicleFilter) args() []interface{} {
	return []interface{}{
		f.Type,
		f.MinPrice,
		f.MaxPrice,
		f.Brand,
		f.Transmission,
		f.FuelType,
		f.MinSeats,
		f.Latitude,
		f.Longitude,
		f.Radius,
	}
}

var vehicleFilterWhere = `is_available = true
  AND ($1::text IS NULL OR type = $1::text)
  AND ($2::numeric IS NULL OR price_per_day >= $2::numeric)
  AND ($3::numeric IS NULL OR price_per_day <= $3::numeric)
  AND ($4::text IS NULL OR brand ILIKE '%' || $4::text || '%')
  AND ($5::text IS NULL OR transmission = $5::text)
  AND ($6::text IS NULL OR fuel_type = $6::text)
  AND ($7::int4 IS NULL OR seats >= $7::int4)
  AND ` + withinRadius("", "$8", "$9", "$10")

var findVehicles = `-- name: FindVehicles :many
SELECT ` + vehicleColumns + `
FROM vehicles
WHERE ` + vehicleFilterWhere + `
ORDER BY average_rating DESC, price_per_day ASC, id
LIMIT $11 OFFSET $12`

func (q *Queries) FindVehicles(ctx context.Context, filter VehicleFilter, limit, offset int32) ([]Vehicle, error) {
	rows, err := q.db.Query(ctx, findVehicles, append(filter.args(), limit, offset)...)
	if err != nil {
		return nil, err
	}
	return collectVehicles(rows)
}

var countVehicles = `-- name: CountVehicles :one
SELECT count(*)
FROM vehicles
WHERE ` + vehicleFilterWhere

func (q *Queries) CountVehicles(ctx context.Context, filter VehicleFilter) (int64, error) {
	row := q.db.QueryRow(ctx, countVehicles, filter.args()...)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const findVehicleById = `-- name: FindVehicleById :one
SELECT ` + vehicleColumns + `
FROM vehicles
WHERE id = $1`

func (q *Queries) FindVehicleById(ctx context.Context, id uuid.UUID) (Vehicle, error) {
	row := q.db.QueryRow(ctx, findVehicleById, id)
	return scanVehicle(row)
}

var findVehiclesNearby = `-- name: FindVehiclesNearby :many
SELECT ` + vehicleColumns + `
FROM vehicles
WHERE is_available = true AND ` + distanceMeters("", "$1", "$2") + ` <= $3::float8
ORDER BY ` + distanceMeters("", "$1", "$2") + ` ASC
LIMIT $4`

func (q *Queries) FindVehiclesNearby(ctx context.Context, arg FindNearbyParams) ([]Vehicle, error) {
	rows, err := q.db.Query(ctx, findVehiclesNearby, arg.Latitude, arg.Longitude, arg.Radius, arg.Limit)
	if err != nil {
		return nil, err
	}
	return collectVehicles(rows)
}

const vehicleSearchWhere = `is_available = true
  AND (name ILIKE '%' || $1::text || '%'
    OR brand ILIKE '%' || $1::text || '%'
    OR model ILIKE '%' || $1::text || '%'
    OR city ILIKE '%' || $1::text || '%')`

const searchVehicles = `-- name: SearchVehicles :many
SELECT ` + vehicleColumns + `
FROM vehicles
WHERE ` + vehicleSearchWhere + `
ORDER BY average_rating DESC, id
LIMIT $2 OFFSET $3`

func (q *Queries) SearchVehicles(ctx context.Context, arg SearchParams) ([]Vehicle, error) {
	rows, err := q.db.Query(ctx, searchVehicles, arg.Query, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	return collectVehicles(rows)
}

const countSearchVehicles = `-- name: CountSearchVehicles :one
SELECT count(*)
FROM vehicles
WHERE ` + vehicleSearchWhere

func (q *Queries) CountSearchVehicles(ctx context.Context, query string) (int64, error) {
	row := q.db.QueryRow(ctx, countSearchVehicles, query)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const updateVehicleRating = `-- name: UpdateVehicleRating :one
UPDATE vehicles
SET average_rating = (SELECT avg(rating) FROM vehicle_reviews WHERE vehicle_id = $1),
    updated_at = now()
WHERE id = $1
RETURNING average_rating`

func (q *Queries) UpdateVehicleRating(ctx context.Context, vehicleID uuid.UUID) (pgtype.Numeric, error) {
	row := q.db.QueryRow(ctx, updateVehicleRating, vehicleID)
	var rating pgtype.Numeric
	err := row.Scan(&rating)
	return rating, err
}

func collectStrings(rows pgx.Rows) ([]string, error) {
	defer rows.Close()
	items := []string{}
	for rows.Next() {
		var i string
		if err := rows.Scan(&i); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const findVehicleTypes = `-- name: FindVehicleTypes :many
SELECT DISTINCT type
FROM vehicles
ORDER BY type`

func (q *Queries) FindVehicleTypes(ctx context.Context) ([]string, error) {
	rows, err := q.db.Query(ctx, findVehicleTypes)
	if err != nil {
		return nil, err
	}
	return collectStrings(rows)
}

const findVehicleBrands = `-- name: FindVehicleBrands :many
SELECT DISTINCT brand
FROM vehicles
ORDER BY brand`

func (q *Queries) FindVehicleBrands(ctx context.Context) ([]string, error) {
	rows, err := q.db.Query(ctx, findVehicleBrands)
	if err != nil {
		return nil, err
	}
	return collectStrings(rows)
}
