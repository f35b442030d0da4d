package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type CartLineView struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	UnitPrice   int64     `json:"unit_price_cents"`
	Quantity    int       `json:"quantity"`
	PhotoURL    string    `json:"photo_url"`
	CreatedAt   time.Time `json:"created_at"`
}

type CartSummary struct {
	Lines      []*CartLineView `json:"lines"`
	TotalCents int64           `json:"total_cents"`
}

type CartQueries interface {
	ListByUser(ctx context.Context, userID uuid.UUID) (*CartSummary, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
}

type CartViewRepo interface {
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*CartLineView, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
}

type cartQueriesImpl struct {
	repo CartViewRepo
}

func NewCartQueries(repo CartViewRepo) CartQueries {
	return &cartQueriesImpl{repo: repo}
}

func (q *cartQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID) (*CartSummary, error) {
	lines, err := q.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, line := range lines {
		total += line.UnitPrice * int64(line.Quantity)
	}

	return &CartSummary{Lines: lines, TotalCents: total}, nil
}

func (q *cartQueriesImpl) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	return q.repo.CountByUser(ctx, userID)
}
