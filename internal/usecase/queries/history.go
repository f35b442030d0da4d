package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type PurchaseItemView struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	UnitPrice   int64     `json:"unit_price_cents"`
	Quantity    int       `json:"quantity"`
	PhotoURL    string    `json:"photo_url"`
}

type PurchaseView struct {
	ID        uuid.UUID          `json:"id"`
	BuyerName string             `json:"buyer_name"`
	Items     []PurchaseItemView `json:"items"`
	Total     int64              `json:"total_cents"`
	CreatedAt time.Time          `json:"created_at"`
}

type HistoryQueries interface {
	ListByBuyer(ctx context.Context, buyerID uuid.UUID) ([]*PurchaseView, error)
}

type PurchaseViewRepo interface {
	FindByBuyer(ctx context.Context, buyerID uuid.UUID) ([]*PurchaseView, error)
}

type historyQueriesImpl struct {
	repo PurchaseViewRepo
}

func NewHistoryQueries(repo PurchaseViewRepo) HistoryQueries {
	return &historyQueriesImpl{repo: repo}
}

func (q *historyQueriesImpl) ListByBuyer(ctx context.Context, buyerID uuid.UUID) ([]*PurchaseView, error) {
	return q.repo.FindByBuyer(ctx, buyerID)
}
