package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const hotelColumns = `id, name, description, street, city, state, country, zip_code, latitude, longitude,
rating, price_min, price_max, currency, amenities, images, phone, email, website, room_types, is_active,
created_at, updated_at`

func scanHotel(row pgx.Row) (Hotel, error) {
	var i Hotel
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Description,
		&i.Street,
		&i.City,
		&i.State,
		&i.Country,
		&i.ZipCode,
		&i.Latitude,
		&i.Longitude,
		&i.Rating,
		&i.PriceMin,
		&i.PriceMax,
		&i.Currency,
		&i.Amenities,
		&i.Images,
		&i.Phone,
		&i.Email,
		&i.Website,
		&i.RoomTypes,
		&i.IsActive,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

func collectHotels(rows pgx.Rows) ([]Hotel, error) {
	defer rows.Close()
	items := []Hotel{}
	for rows.Next() {
		i, err := scanHotel(rows)
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

type HotelFilter struct {
	MinPrice  pgtype.Numeric `json:"min_price"`
	MaxPrice  pgtype.Numeric `json:"max_price"`
	MinRating pgtype.Numeric `json:"min_rating"`
	Amenities []string       `json:"amenities"`
	City      pgtype.Text    `json:"city"`
	Latitude  pgtype.Float8  `json:"latitude"`
	Longitude pgtype.Float8  `json:"longitude"`
	Radius    float64        `json:"radius"`
}

func (f HotelFilter) args() []interface{} {
	return []interface{}{
		f.MinPrice,
		f.MaxPrice,
		f.MinRating,
		f.Amenities,
		f.City,
		f.Latitude,
		f.Longitude,
		f.Radius,
	}
}

var hotelFilterWhere = `is_active = true
  AND ($1::numeric IS NULL OR price_min >= $1::numeric)
  AND ($2::numeric IS NULL OR price_max <= $2::numeric)
  AND ($3::numeric IS NULL OR rating >= $3::numeric)
  AND ($4::text[] IS NULL OR cardinality($4::text[]) = 0 OR amenities && $4::text[])
  AND ($5::text IS NULL OR city ILIKE '%' || $5::text || '%')
  AND ` + withinRadius("", "$6", "$7", "$8")

var findHotels = `-- name: FindHotels :many
SELECT ` + hotelColumns + `
FROM hotels
WHERE ` + hotelFilterWhere + `
ORDER BY rating DESC, price_min ASC, id
LIMIT $9 OFFSET $10`

func (q *Queries) FindHotels(ctx context.Context, filter HotelFilter, limit, offset int32) ([]Hotel, error) {
	rows, err := q.db.Query(ctx, findHotels, append(filter.args(), limit, offset)...)
	if err != nil {
		return nil, err
	}
	return collectHotels(rows)
}

var countHotels = `-- name: CountHotels :one
SELECT count(*)
FROM hotels
WHERE ` + hotelFilterWhere

func (q *Queries) CountHotels(ctx context.Context, filter HotelFilter) (int64, error) {
	row := q.db.QueryRow(ctx, countHotels, filter.args()...)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const findHotelById = `-- name: FindHotelById :one
SELECT ` + hotelColumns + `
FROM hotels
WHERE id = $1`

func (q *Queries) FindHotelById(ctx context.Context, id uuid.UUID) (Hotel, error) {
	row := q.db.QueryRow(ctx, findHotelById, id)
	return scanHotel(row)
}

var findHotelsNearby = `-- name: FindHotelsNearby :many
SELECT ` + hotelColumns + `
FROM hotels
WHERE is_active = true AND ` + distanceMeters("", "$1", "$2") + ` <= $3::float8
ORDER BY ` + distanceMeters("", "$1", "$2") + ` ASC
LIMIT $4`

type FindNearbyParams struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Radius    float64 `json:"radius"`
	Limit     int32   `json:"limit"`
}

func (q *Queries) FindHotelsNearby(ctx context.Context, arg FindNearbyParams) ([]Hotel, error) {
	rows, err := q.db.Query(ctx, findHotelsNearby, arg.Latitude, arg.Longitude, arg.Radius, arg.Limit)
	if err != nil {
		return nil, err
	}
	return collectHotels(rows)
}

const hotelSearchWhere = `is_active = true
  AND (name ILIKE '%' || $1::text || '%'
    OR city ILIKE '%' || $1::text || '%'
    OR description ILIKE '%' || $1::text || '%')`

const searchHotels = `-- name: SearchHotels :many
SELECT ` + hotelColumns + `
FROM hotels
WHERE ` + hotelSearchWhere + `
ORDER BY rating DESC, id
LIMIT $2 OFFSET $3`

type SearchParams struct {
	Query  string `json:"query"`
	Limit  int32  `json:"limit"`
	Offset int32  `json:"offset"`
}

func (q *Queries) SearchHotels(ctx context.Context, arg SearchParams) ([]Hotel, error) {
	rows, err := q.db.Query(ctx, searchHotels, arg.Query, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	return collectHotels(rows)
}

const countSearchHotels = `-- name: CountSearchHotels :one
SELECT count(*)
FROM hotels
WHERE ` + hotelSearchWhere

func (q *Queries) CountSearchHotels(ctx context.Context, query string) (int64, error) {
	row := q.db.QueryRow(ctx, countSearchHotels, query)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const updateHotelRating = `-- name: UpdateHotelRating :one
UPDATE hotels
SET rating = (SELECT avg(rating) FROM hotel_reviews WHERE hotel_id = $1),
    updated_at = now()
WHERE id = $1
RETURNING rating`

func (q *Queries) UpdateHotelRating(ctx context.Context, hotelID uuid.UUID) (pgtype.Numeric, error) {
	row := q.db.QueryRow(ctx, updateHotelRating, hotelID)
	var rating pgtype.Numeric
	err := row.Scan(&rating)
	return rating, err
}
