package response

import (
	"github.com/abdulsamad100/books-cave-api/internal/usecase/queries"
)

type CartLineResponse struct {
	ID             string `json:"id"`
	ProductID      string `json:"product_id"`
	ProductName    string `json:"product_name"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	Quantity       int    `json:"quantity"`
	PhotoURL       string `json:"photo_url"`
	CreatedAt      int64  `json:"created_at"`
}

type CartResponse struct {
	Lines      []*CartLineResponse `json:"lines"`
	TotalCents int64               `json:"total_cents"`
}

func FromCartSummary(s *queries.CartSummary) *CartResponse {
	lines := make([]*CartLineResponse, len(s.Lines))
	for i, l := range s.Lines {
		lines[i] = &CartLineResponse{
			ID:             l.ID.String(),
			ProductID:      l.ProductID.String(),
			ProductName:    l.ProductName,
			UnitPriceCents: l.UnitPrice,
			Quantity:       l.Quantity,
			PhotoURL:       l.PhotoURL,
			CreatedAt:      l.CreatedAt.Unix(),
		}
	}
	return &CartResponse{Lines: lines, TotalCents: s.TotalCents}
}

type CartCountResponse struct {
	Count int `json:"count"`
}

type CheckoutResponse struct {
	PurchaseID string `json:"purchase_id"`
	TotalCents int64  `json:"total_cents"`
	Replayed   bool   `json:"replayed"`
}
