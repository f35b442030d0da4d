package readstore

import (
	"context"
	"encoding/json"

	"github.com/abdulsamad100/books-cave-api/internal/infra"
	"github.com/abdulsamad100/books-cave-api/internal/infra/db"
	"github.com/abdulsamad100/books-cave-api/internal/pkg/pgconv"
	"github.com/abdulsamad100/books-cave-api/internal/usecase/queries"

	"github.com/google/uuid"
)

const findPurchasesByBuyerQuery = `
SELECT id, buyer_name, cart_key, items, total_cents, created_at
FROM purchases
WHERE buyer_id = $1
ORDER BY created_at DESC, id DESC
`

const findPurchaseByCartKeyQuery = `
SELECT id, buyer_name, cart_key, items, total_cents, created_at
FROM purchases
WHERE buyer_id = $1 AND cart_key = $2
`

type purchaseItemRow struct {
	LineID         uuid.UUID `json:"line_id"`
	ProductID      uuid.UUID `json:"product_id"`
	ProductName    string    `json:"product_name"`
	UnitPriceCents int64     `json:"unit_price_cents"`
	Quantity       int       `json:"quantity"`
	PhotoURL       string    `json:"photo_url"`
}

type PurchaseReadStore struct {
	db db.DBTX
}

func NewPurchaseReadStore(dbtx db.DBTX) *PurchaseReadStore {
	return &PurchaseReadStore{db: dbtx}
}

func (r *PurchaseReadStore) FindByBuyer(ctx context.Context, buyerID uuid.UUID) ([]*queries.PurchaseView, error) {
	rows, err := r.db.Query(ctx, findPurchasesByBuyerQuery, buyerID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find purchases", err)
	}
	defer rows.Close()

	result := make([]*queries.PurchaseView, 0)
	for rows.Next() {
		view, _, err := scanPurchase(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read purchase rows", err)
	}

	return result, nil
}

// FindByCartKey also reports the cart line IDs recorded in the purchase so
// a retried checkout can clear any lines the first attempt left behind.
func (r *PurchaseReadStore) FindByCartKey(ctx context.Context, buyerID uuid.UUID, cartKey string) (*queries.PurchaseView, []uuid.UUID, error) {
	row := r.db.QueryRow(ctx, findPurchaseByCartKeyQuery, buyerID, cartKey)
	view, lineIDs, err := scanPurchase(row.Scan)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil, infra.WrapRepoErr("purchase not found", err, infra.KindNotFound)
		}
		return nil, nil, err
	}

	return view, lineIDs, nil
}

func scanPurchase(scan func(dest ...any) error) (*queries.PurchaseView, []uuid.UUID, error) {
	var (
		view    queries.PurchaseView
		cartKey string
		payload []byte
	)
	err := scan(&view.ID, &view.BuyerName, &cartKey, &payload, &view.Total, &view.CreatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil, err
		}
		return nil, nil, infra.WrapRepoErr("failed to scan purchase row", err)
	}

	var items []purchaseItemRow
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, nil, infra.WrapRepoErr("failed to decode purchase items", err)
	}

	view.Items = make([]queries.PurchaseItemView, len(items))
	lineIDs := make([]uuid.UUID, len(items))
	for i, item := range items {
		view.Items[i] = queries.PurchaseItemView{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPriceCents,
			Quantity:    item.Quantity,
			PhotoURL:    item.PhotoURL,
		}
		lineIDs[i] = item.LineID
	}

	return &view, lineIDs, nil
}
