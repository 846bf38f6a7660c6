package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const cartColumns = `id, user_id, items, subtotal, tax, total, version, created_at, updated_at`

func scanCart(row pgx.Row) (Cart, error) {
	var i Cart
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.Items,
		&i.Subtotal,
		&i.Tax,
		&i.Total,
		&i.Version,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const findCartByUserId = `-- name: FindCartByUserId :one
SELECT ` + cartColumns + `
FROM carts
WHERE user_id = $1`

func (q *Queries) FindCartByUserId(ctx context.Context, userID uuid.UUID) (Cart, error) {
	row := q.db.QueryRow(ctx, findCartByUserId, userID)
	return scanCart(row)
}

const findCartByUserIdForUpdate = `-- name: FindCartByUserIdForUpdate :one
SELECT ` + cartColumns + `
FROM carts
WHERE user_id = $1
FOR UPDATE`

func (q *Queries) FindCartByUserIdForUpdate(ctx context.Context, userID uuid.UUID) (Cart, error) {
	row := q.db.QueryRow(ctx, findCartByUserIdForUpdate, userID)
	return scanCart(row)
}

const insertCart = `-- name: InsertCart :one
INSERT INTO carts (user_id)
VALUES ($1)
ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
RETURNING ` + cartColumns

func (q *Queries) InsertCart(ctx context.Context, userID uuid.UUID) (Cart, error) {
	row := q.db.QueryRow(ctx, insertCart, userID)
	return scanCart(row)
}

const updateCart = `-- name: UpdateCart :one
UPDATE carts
SET items = $2,
    subtotal = $3,
    tax = $4,
    total = $5,
    version = version + 1,
    updated_at = now()
WHERE id = $1 AND version = $6
RETURNING ` + cartColumns

type UpdateCartParams struct {
	ID       uuid.UUID      `json:"id"`
	Items    []byte         `json:"items"`
	Subtotal pgtype.Numeric `json:"subtotal"`
	Tax      pgtype.Numeric `json:"tax"`
	Total    pgtype.Numeric `json:"total"`
	Version  int64          `json:"version"`
}

func (q *Queries) UpdateCart(ctx context.Context, arg UpdateCartParams) (Cart, error) {
	row := q.db.QueryRow(ctx, updateCart,
		arg.ID,
		arg.Items,
		arg.Subtotal,
		arg.Tax,
		arg.Total,
		arg.Version,
	)
	return scanCart(row)
}
