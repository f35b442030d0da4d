//go:build unit || e2e

package builder

import (
	"time"

	dombook "github.com/abdulsamad100/books-cave-api/internal/domain/book"
	domcart "github.com/abdulsamad100/books-cave-api/internal/domain/cart"

	"github.com/google/uuid"
)

type CartLineBuilder struct {
	CreatedFor  uuid.UUID
	BuyerName   string
	ProductID   uuid.UUID
	ProductName string
	PriceCents  int64
	PhotoURL    string
	CreatedAt   time.Time
}

func NewCartLineBuilder() *CartLineBuilder {
	return &CartLineBuilder{
		CreatedFor:  uuid.New(),
		BuyerName:   "Test Buyer",
		ProductID:   uuid.New(),
		ProductName: "The Go Programming Language",
		PriceCents:  35000,
		PhotoURL:    "https://cdn.example.com/covers/gopl.jpg",
		CreatedAt:   time.Now(),
	}
}

func (b *CartLineBuilder) With(mutate func(*CartLineBuilder)) *CartLineBuilder {
	mutate(b)
	return b
}

func (b *CartLineBuilder) BuildDomain() (*domcart.Line, error) {
	price, err := dombook.NewMoney(b.PriceCents)
	if err != nil {
		return nil, err
	}
	return domcart.NewLine(b.CreatedFor, b.BuyerName, b.ProductID, b.ProductName, price, b.PhotoURL, b.CreatedAt)
}

func (b *CartLineBuilder) WithCreatedFor(userID uuid.UUID) *CartLineBuilder {
	b.CreatedFor = userID
	return b
}

func (b *CartLineBuilder) WithProductID(productID uuid.UUID) *CartLineBuilder {
	b.ProductID = productID
	return b
}

func (b *CartLineBuilder) WithProductName(name string) *CartLineBuilder {
	b.ProductName = name
	return b
}

func (b *CartLineBuilder) WithPriceCents(cents int64) *CartLineBuilder {
	b.PriceCents = cents
	return b
}
