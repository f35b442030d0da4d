// Package cart models one reserved unit of a book for one user. A line's
// existence corresponds 1:1 with one unit of stock having been decremented
// from the referenced book and not yet returned.
package cart

import (
	"errors"
	"strings"
	"time"

	"github.com/abdulsamad100/books-cave-api/internal/domain/book"

	"github.com/google/uuid"
)

var (
	ErrMissingOwner   = errors.New("cart line must belong to a user")
	ErrMissingProduct = errors.New("cart line must reference a product")
	ErrEmptyName      = errors.New("cart line must carry the product name")
)

// Each add-to-cart action reserves exactly one unit; lines for the same
// product are kept separate rather than merged into a quantity counter.
const UnitQuantity = 1

type Line struct {
	id           uuid.UUID
	createdFor   uuid.UUID
	buyerName    string
	productID    uuid.UUID
	productName  string
	productPrice book.Money
	quantity     int
	photoURL     string
	createdAt    time.Time
}

// NewLine denormalizes the book's name, price and photo at reservation
// instant; checkout totals use this snapshot, never a live re-read.
func NewLine(
	createdFor uuid.UUID,
	buyerName string,
	productID uuid.UUID,
	productName string,
	productPrice book.Money,
	photoURL string,
	now time.Time,
) (*Line, error) {
	if createdFor == uuid.Nil {
		return nil, ErrMissingOwner
	}
	if productID == uuid.Nil {
		return nil, ErrMissingProduct
	}
	if strings.TrimSpace(productName) == "" {
		return nil, ErrEmptyName
	}

	return &Line{
		id:           uuid.New(),
		createdFor:   createdFor,
		buyerName:    buyerName,
		productID:    productID,
		productName:  productName,
		productPrice: productPrice,
		quantity:     UnitQuantity,
		photoURL:     photoURL,
		createdAt:    now,
	}, nil
}

func ReconstructLine(
	id, createdFor uuid.UUID,
	buyerName string,
	productID uuid.UUID,
	productName string,
	productPrice book.Money,
	quantity int,
	photoURL string,
	createdAt time.Time,
) *Line {
	return &Line{
		id:           id,
		createdFor:   createdFor,
		buyerName:    buyerName,
		productID:    productID,
		productName:  productName,
		productPrice: productPrice,
		quantity:     quantity,
		photoURL:     photoURL,
		createdAt:    createdAt,
	}
}

func (l *Line) Subtotal() book.Money {
	return l.productPrice.MulQuantity(l.quantity)
}

func (l *Line) ID() uuid.UUID           { return l.id }
func (l *Line) CreatedFor() uuid.UUID   { return l.createdFor }
func (l *Line) BuyerName() string       { return l.buyerName }
func (l *Line) ProductID() uuid.UUID    { return l.productID }
func (l *Line) ProductName() string     { return l.productName }
func (l *Line) ProductPrice() book.Money { return l.productPrice }
func (l *Line) Quantity() int           { return l.quantity }
func (l *Line) PhotoURL() string        { return l.photoURL }
func (l *Line) CreatedAt() time.Time    { return l.createdAt }
