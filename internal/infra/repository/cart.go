package repository

import (
	"context"

	"github.com/abdulsamad100/books-cave-api/internal/domain/cart"
	"github.com/abdulsamad100/books-cave-api/internal/infra"
	"github.com/abdulsamad100/books-cave-api/internal/infra/db"
	"github.com/abdulsamad100/books-cave-api/internal/pkg/pgconv"

	"github.com/google/uuid"
)

const createCartLineQuery = `
INSERT INTO cart_lines (id, created_for, buyer_name, product_id, product_name, product_price_cents, quantity, photo_url, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id
`

const deleteOwnedCartLineQuery = `
DELETE FROM cart_lines
WHERE id = $1 AND created_for = $2
RETURNING product_id
`

const deleteCartLinesByIDsQuery = `
DELETE FROM cart_lines
WHERE created_for = $1 AND id = ANY($2)
`

type CartLineRepository struct {
	db db.DBTX
}

func NewCartLineRepository(dbtx db.DBTX) *CartLineRepository {
	return &CartLineRepository{db: dbtx}
}

func (r *CartLineRepository) Create(ctx context.Context, tx db.DBTX, line *cart.Line) (uuid.UUID, error) {
	var resultID uuid.UUID
	err := tx.QueryRow(ctx, createCartLineQuery,
		line.ID(), line.CreatedFor(), line.BuyerName(),
		line.ProductID(), line.ProductName(), line.ProductPrice().Cents(),
		line.Quantity(), line.PhotoURL(), line.CreatedAt(),
	).Scan(&resultID)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create cart line", err)
	}

	return resultID, nil
}

func (r *CartLineRepository) DeleteOwned(ctx context.Context, tx db.DBTX, lineID, userID uuid.UUID) (uuid.UUID, error) {
	var productID uuid.UUID
	err := tx.QueryRow(ctx, deleteOwnedCartLineQuery, lineID, userID).Scan(&productID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return uuid.Nil, infra.WrapRepoErr("cart line not found", err, infra.KindNotFound)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to delete cart line", err)
	}

	return productID, nil
}

func (r *CartLineRepository) DeleteByIDs(ctx context.Context, tx db.DBTX, userID uuid.UUID, lineIDs []uuid.UUID) error {
	// Fewer rows than IDs is not an error: a retried checkout deletes
	// whatever lines the earlier attempt left behind.
	_, err := tx.Exec(ctx, deleteCartLinesByIDsQuery, userID, lineIDs)
	if err != nil {
		return infra.WrapRepoErr("failed to delete cart lines", err)
	}

	return nil
}
