package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const userColumns = `id, name, email, password, phone, first_name, last_name, address, latitude, longitude,
location_address, location_updated_at, is_safe, created_at, updated_at`

func scanUser(row pgx.Row) (User, error) {
	var i User
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Email,
		&i.Password,
		&i.Phone,
		&i.FirstName,
		&i.LastName,
		&i.Address,
		&i.Latitude,
		&i.Longitude,
		&i.LocationAddress,
		&i.LocationUpdatedAt,
		&i.IsSafe,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const insertUser = `-- name: InsertUser :one
INSERT INTO users (name, email, password, phone)
VALUES ($1, lower($2), $3, $4)
RETURNING ` + userColumns

type InsertUserParams struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"-"`
	Phone    pgtype.Text `json:"phone"`
}

func (q *Queries) InsertUser(ctx context.Context, arg InsertUserParams) (User, error) {
	row := q.db.QueryRow(ctx, insertUser, arg.Name, arg.Email, arg.Password, arg.Phone)
	return scanUser(row)
}

const findUserByEmail = `-- name: FindUserByEmail :one
SELECT ` + userColumns + `
FROM users
WHERE email = lower($1)`

func (q *Queries) FindUserByEmail(ctx context.Context, email string) (User, error) {
	row := q.db.QueryRow(ctx, findUserByEmail, email)
	return scanUser(row)
}

const findUserById = `-- name: FindUserById :one
SELECT ` + userColumns + `
FROM users
WHERE id = $1`

func (q *Queries) FindUserById(ctx context.Context, id uuid.UUID) (User, error) {
	row := q.db.QueryRow(ctx, findUserById, id)
	return scanUser(row)
}

const countUsersByEmail = `-- name: CountUsersByEmail :one
SELECT count(*)
FROM users
WHERE email = lower($1)`

func (q *Queries) CountUsersByEmail(ctx context.Context, email string) (int64, error) {
	row := q.db.QueryRow(ctx, countUsersByEmail, email)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const updateUserProfile = `-- name: UpdateUserProfile :one
UPDATE users
SET first_name = COALESCE($2, first_name),
    last_name = COALESCE($3, last_name),
    phone = COALESCE($4, phone),
    address = COALESCE($5, address),
    updated_at = now()
WHERE id = $1
RETURNING ` + userColumns

type UpdateUserProfileParams struct {
	ID        uuid.UUID   `json:"id"`
	FirstName pgtype.Text `json:"first_name"`
	LastName  pgtype.Text `json:"last_name"`
	Phone     pgtype.Text `json:"phone"`
	Address   pgtype.Text `json:"address"`
}

func (q *Queries) UpdateUserProfile(ctx context.Context, arg UpdateUserProfileParams) (User, error) {
	row := q.db.QueryRow(ctx, updateUserProfile,
		arg.ID,
		arg.FirstName,
		arg.LastName,
		arg.Phone,
		arg.Address,
	)
	return scanUser(row)
}

const updateUserLocation = `-- name: UpdateUserLocation :one
UPDATE users
SET latitude = $2,
    longitude = $3,
    location_address = $4,
    location_updated_at = now(),
    updated_at = now()
WHERE id = $1
RETURNING ` + userColumns

type UpdateUserLocationParams struct {
	ID        uuid.UUID   `json:"id"`
	Latitude  float64     `json:"latitude"`
	Longitude float64     `json:"longitude"`
	Address   pgtype.Text `json:"address"`
}

func (q *Queries) UpdateUserLocation(ctx context.Context, arg UpdateUserLocationParams) (User, error) {
	row := q.db.QueryRow(ctx, updateUserLocation, arg.ID, arg.Latitude, arg.Longitude, arg.Address)
	return scanUser(row)
}

const updateUserSafety = `-- name: UpdateUserSafety :execrows
UPDATE users
SET is_safe = $2,
    updated_at = now()
WHERE id = $1`

type UpdateUserSafetyParams struct {
	ID     uuid.UUID `json:"id"`
	IsSafe bool      `json:"is_safe"`
}

func (q *Queries) UpdateUserSafety(ctx context.Context, arg UpdateUserSafetyParams) (int64, error) {
	result, err := q.db.Exec(ctx, updateUserSafety, arg.ID, arg.IsSafe)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
