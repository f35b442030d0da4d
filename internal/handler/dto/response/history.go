package response

import (
	"github.com/abdulsamad100/books-cave-api/internal/usecase/queries"
)

type PurchaseItemResponse struct {
	ProductID      string `json:"product_id"`
	ProductName    string `json:"product_name"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	Quantity       int    `json:"quantity"`
	PhotoURL       string `json:"photo_url"`
}

type PurchaseResponse struct {
	ID         string                  `json:"id"`
	BuyerName  string                  `json:"buyer_name"`
	Items      []*PurchaseItemResponse `json:"items"`
	TotalCents int64                   `json:"total_cents"`
	CreatedAt  int64                   `json:"created_at"`
}

func FromPurchaseList(views []*queries.PurchaseView) []*PurchaseResponse {
	res := make([]*PurchaseResponse, len(views))
	for i, v := range views {
		items := make([]*PurchaseItemResponse, len(v.Items))
		for j, it := range v.Items {
			items[j] = &PurchaseItemResponse{
				ProductID:      it.ProductID.String(),
				ProductName:    it.ProductName,
				UnitPriceCents: it.UnitPrice,
				Quantity:       it.Quantity,
				PhotoURL:       it.PhotoURL,
			}
		}
		res[i] = &PurchaseResponse{
			ID:         v.ID.String(),
			BuyerName:  v.BuyerName,
			Items:      items,
			TotalCents: v.Total,
			CreatedAt:  v.CreatedAt.Unix(),
		}
	}
	return res
}
