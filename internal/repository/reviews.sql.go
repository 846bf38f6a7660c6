package repository

import (
	"context"

	"github.com/google/uuid"
)

func scanReviews(ctx context.Context, db DBTX, query string, itemID uuid.UUID) ([]Review, error) {
	rows, err := db.Query(ctx, query, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Review{}
	for rows.Next() {
		var i Review
		if err := rows.Scan(
			&i.ID,
			&i.ItemID,
			&i.UserID,
			&i.UserName,
			&i.Rating,
			&i.Comment,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

type InsertReviewParams struct {
	ItemID  uuid.UUID `json:"item_id"`
	UserID  uuid.UUID `json:"user_id"`
	Rating  int16     `json:"rating"`
	Comment string    `json:"comment"`
}

const insertHotelReview = `-- name: InsertHotelReview :one
INSERT INTO hotel_reviews (hotel_id, user_id, rating, comment)
VALUES ($1, $2, $3, $4)
RETURNING id, hotel_id, user_id, rating, comment, created_at`

func (q *Queries) InsertHotelReview(ctx context.Context, arg InsertReviewParams) (Review, error) {
	row := q.db.QueryRow(ctx, insertHotelReview, arg.ItemID, arg.UserID, arg.Rating, arg.Comment)
	var i Review
	err := row.Scan(&i.ID, &i.ItemID, &i.UserID, &i.Rating, &i.Comment, &i.CreatedAt)
	return i, err
}

const countHotelReviewsByUser = `-- name: CountHotelReviewsByUser :one
SELECT count(*)
FROM hotel_reviews
WHERE hotel_id = $1 AND user_id = $2`

func (q *Queries) CountHotelReviewsByUser(ctx context.Context, hotelID, userID uuid.UUID) (int64, error) {
	row := q.db.QueryRow(ctx, countHotelReviewsByUser, hotelID, userID)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const findHotelReviews = `-- name: FindHotelReviews :many
SELECT r.id, r.hotel_id, r.user_id, u.name, r.rating, r.comment, r.created_at
FROM hotel_reviews r
JOIN users u ON u.id = r.user_id
WHERE r.hotel_id = $1
ORDER BY r.created_at DESC`

func (q *Queries) FindHotelReviews(ctx context.Context, hotelID uuid.UUID) ([]Review, error) {
	return scanReviews(ctx, q.db, findHotelReviews, hotelID)
}

const insertVehicleReview = `-- name: InsertVehicleReview :one
INSERT INTO vehicle_reviews (vehicle_id, user_id, rating, comment)
VALUES ($1, $2, $3, $4)
RETURNING id, vehicle_id, user_id, rating, comment, created_at`

func (q *Queries) InsertVehicleReview(ctx context.Context, arg InsertReviewParams) (Review, error) {
	row := q.db.QueryRow(ctx, insertVehicleReview, arg.ItemID, arg.UserID, arg.Rating, arg.Comment)
	var i Review
	err := row.Scan(&i.ID, &i.ItemID, &i.UserID, &i.Rating, &i.Comment, &i.CreatedAt)
	return i, err
}

const countVehicleReviewsByUser = `-- name: CountVehicleReviewsByUser :one
SELECT count(*)
FROM vehicle_reviews
WHERE vehicle_id = $1 AND user_id = $2`

func (q *Queries) CountVehicleReviewsByUser(ctx context.Context, vehicleID, userID uuid.UUID) (int64, error) {
	row := q.db.QueryRow(ctx, countVehicleReviewsByUser, vehicleID, userID)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const findVehicleReviews = `-- name: FindVehicleReviews :many
SELECT r.id, r.vehicle_id, r.user_id, u.name, r.rating, r.comment, r.created_at
FROM vehicle_reviews r
JOIN users u ON u.id = r.user_id
WHERE r.vehicle_id = $1
ORDER BY r.created_at DESC`

func (q *Queries) FindVehicleReviews(ctx context.Context, vehicleID uuid.UUID) ([]Review, error) {
	return scanReviews(ctx, q.db, findVehicleReviews, vehicleID)
}
