package repository

import (
	"context"
	"encoding/json"

	"github.com/abdulsamad100/books-cave-api/internal/domain/purchase"
	"github.com/abdulsamad100/books-cave-api/internal/infra"
	"github.com/abdulsamad100/books-cave-api/internal/infra/db"
	"github.com/abdulsamad100/books-cave-api/internal/pkg/pgconv"

	"github.com/google/uuid"
)

const createPurchaseQuery = `
INSERT INTO purchases (id, buyer_id, buyer_name, cart_key, items, total_cents, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id
`

// purchaseItemRow is the jsonb shape stored per item.
type purchaseItemRow struct {
	LineID         uuid.UUID `json:"line_id"`
	ProductID      uuid.UUID `json:"product_id"`
	ProductName    string    `json:"product_name"`
	UnitPriceCents int64     `json:"unit_price_cents"`
	Quantity       int       `json:"quantity"`
	PhotoURL       string    `json:"photo_url"`
}

type PurchaseRepository struct {
	db db.DBTX
}

func NewPurchaseRepository(dbtx db.DBTX) *PurchaseRepository {
	return &PurchaseRepository{db: dbtx}
}

func (r *PurchaseRepository) Create(ctx context.Context, tx db.DBTX, p *purchase.Purchase) (uuid.UUID, error) {
	items := make([]purchaseItemRow, len(p.Items()))
	for i, item := range p.Items() {
		items[i] = purchaseItemRow{
			LineID:         item.LineID,
			ProductID:      item.ProductID,
			ProductName:    item.ProductName,
			UnitPriceCents: item.UnitPrice.Cents(),
			Quantity:       item.Quantity,
			PhotoURL:       item.PhotoURL,
		}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to encode purchase items", err)
	}

	var resultID uuid.UUID
	err = tx.QueryRow(ctx, createPurchaseQuery,
		p.ID(), p.BuyerID(), p.BuyerName(), p.CartKey(),
		payload, p.Total().Cents(), p.CreatedAt(),
	).Scan(&resultID)
	if err != nil {
		if pgconv.IsUniqueViolation(err) {
			return uuid.Nil, infra.WrapRepoErr("purchase already recorded for this cart", err, infra.KindDuplicateKey)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to create purchase", err)
	}

	return resultID, nil
}
