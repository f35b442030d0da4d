package readstore

import (
	"context"

	"github.com/abdulsamad100/books-cave-api/internal/infra"
	"github.com/abdulsamad100/books-cave-api/internal/infra/db"
	"github.com/abdulsamad100/books-cave-api/internal/usecase/queries"

	"github.com/google/uuid"
)

// Lines come back in insertion order so the checkout snapshot and the cart
// page agree on ordering.
const findCartLinesByUserQuery = `
SELECT id, product_id, product_name, product_price_cents, quantity, photo_url, created_at
FROM cart_lines
WHERE created_for = $1
ORDER BY created_at ASC, id ASC
`

// Checkout reads under row locks so a concurrent release cannot slip between
// the snapshot and the purchase commit.
const lockCartLinesByUserQuery = `
SELECT id, product_id, product_name, product_price_cents, quantity, photo_url, created_at
FROM cart_lines
WHERE created_for = $1
ORDER BY created_at ASC, id ASC
FOR UPDATE
`

const countCartLinesByUserQuery = `
SELECT count(*) FROM cart_lines WHERE created_for = $1
`

type CartReadStore struct {
	db db.DBTX
}

func NewCartReadStore(dbtx db.DBTX) *CartReadStore {
	return &CartReadStore{db: dbtx}
}

func (r *CartReadStore) FindByUser(ctx context.Context, userID uuid.UUID) ([]*queries.CartLineView, error) {
	return r.queryLines(ctx, findCartLinesByUserQuery, userID)
}

// LockByUser takes FOR UPDATE locks on the returned rows. Only meaningful
// when the backing DBTX is a transaction.
func (r *CartReadStore) LockByUser(ctx context.Context, userID uuid.UUID) ([]*queries.CartLineView, error) {
	return r.queryLines(ctx, lockCartLinesByUserQuery, userID)
}

func (r *CartReadStore) queryLines(ctx context.Context, query string, userID uuid.UUID) ([]*queries.CartLineView, error) {
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find cart lines", err)
	}
	defer rows.Close()

	result := make([]*queries.CartLineView, 0)
	for rows.Next() {
		var view queries.CartLineView
		err := rows.Scan(
			&view.ID, &view.ProductID, &view.ProductName,
			&view.UnitPrice, &view.Quantity, &view.PhotoURL, &view.CreatedAt,
		)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan cart line row", err)
		}
		result = append(result, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read cart line rows", err)
	}

	return result, nil
}

func (r *CartReadStore) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, countCartLinesByUserQuery, userID).Scan(&count); err != nil {
		return 0, infra.WrapRepoErr("failed to count cart lines", err)
	}

	return count, nil
}
