//go:build unit || e2e

package builder

import (
	"time"

	dombook "github.com/abdulsamad100/books-cave-api/internal/domain/book"
	dompurchase "github.com/abdulsamad100/books-cave-api/internal/domain/purchase"

	"github.com/google/uuid"
)

type PurchaseBuilder struct {
	BuyerID   uuid.UUID
	BuyerName string
	Items     []dompurchase.Item
	PaidCents int64
	CreatedAt time.Time
}

func NewPurchaseBuilder() *PurchaseBuilder {
	price, _ := dombook.NewMoney(35000)
	return &PurchaseBuilder{
		BuyerID:   uuid.New(),
		BuyerName: "Test Buyer",
		Items: []dompurchase.Item{
			{
				LineID:      uuid.New(),
				ProductID:   uuid.New(),
				ProductName: "The Go Programming Language",
				UnitPrice:   price,
				Quantity:    1,
				PhotoURL:    "https://cdn.example.com/covers/gopl.jpg",
			},
		},
		PaidCents: 35000,
		CreatedAt: time.Now(),
	}
}

func (b *PurchaseBuilder) With(mutate func(*PurchaseBuilder)) *PurchaseBuilder {
	mutate(b)
	return b
}

func (b *PurchaseBuilder) BuildDomain() (*dompurchase.Purchase, error) {
	paid, err := dombook.NewMoney(b.PaidCents)
	if err != nil {
		return nil, err
	}
	return dompurchase.NewPurchase(b.BuyerID, b.BuyerName, b.Items, paid, b.CreatedAt)
}

func (b *PurchaseBuilder) WithBuyerID(buyerID uuid.UUID) *PurchaseBuilder {
	b.BuyerID = buyerID
	return b
}

func (b *PurchaseBuilder) WithItems(items []dompurchase.Item) *PurchaseBuilder {
	b.Items = items
	return b
}

func (b *PurchaseBuilder) WithPaidCents(cents int64) *PurchaseBuilder {
	b.PaidCents = cents
	return b
}

func (b *PurchaseBuilder) AddItem(unitPriceCents int64, name string) *PurchaseBuilder {
	price, _ := dombook.NewMoney(unitPriceCents)
	b.Items = append(b.Items, dompurchase.Item{
		LineID:      uuid.New(),
		ProductID:   uuid.New(),
		ProductName: name,
		UnitPrice:   price,
		Quantity:    1,
		PhotoURL:    "https://cdn.example.com/covers/default.jpg",
	})
	return b
}
