// Package purchase models a completed checkout. A purchase is an append-only
// history record; once written it is never updated or deleted.
package purchase

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/abdulsamad100/books-cave-api/internal/domain/book"
	"github.com/abdulsamad100/books-cave-api/internal/domain/cart"

	"github.com/google/uuid"
)

var (
	ErrEmptyCart      = errors.New("cannot purchase an empty cart")
	ErrAmountMismatch = errors.New("paid amount does not equal cart total")
	ErrMissingBuyer   = errors.New("purchase must belong to a user")
)

// Item is the immutable per-line record embedded in a purchase. It carries
// the snapshot taken at reservation time, not the live book row.
type Item struct {
	LineID      uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	UnitPrice   book.Money
	Quantity    int
	PhotoURL    string
}

func ItemFromLine(l *cart.Line) Item {
	return Item{
		LineID:      l.ID(),
		ProductID:   l.ProductID(),
		ProductName: l.ProductName(),
		UnitPrice:   l.ProductPrice(),
		Quantity:    l.Quantity(),
		PhotoURL:    l.PhotoURL(),
	}
}

func (i Item) Subtotal() book.Money {
	return i.UnitPrice.MulQuantity(i.Quantity)
}

// CartKey derives a deterministic identity for a checkout attempt from the
// set of cart line IDs it covers. The same set of lines always yields the
// same key regardless of order, which lets a retried checkout collide with
// the row the first attempt already wrote.
func CartKey(lineIDs []uuid.UUID) string {
	ids := make([]string, len(lineIDs))
	for i, id := range lineIDs {
		ids[i] = id.String()
	}
	sort.Strings(ids)

	sum := sha256.Sum256([]byte(strings.Join(ids, ",")))
	return hex.EncodeToString(sum[:])
}

type Purchase struct {
	id        uuid.UUID
	buyerID   uuid.UUID
	buyerName string
	cartKey   string
	items     []Item
	total     book.Money
	createdAt time.Time
}

// NewPurchase validates the checkout contract: the cart must be non-empty
// and the entered amount must equal the snapshot total exactly. No
// tolerance, no rounding.
func NewPurchase(
	buyerID uuid.UUID,
	buyerName string,
	items []Item,
	paid book.Money,
	now time.Time,
) (*Purchase, error) {
	if buyerID == uuid.Nil {
		return nil, ErrMissingBuyer
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	var total book.Money
	lineIDs := make([]uuid.UUID, len(items))
	for i, item := range items {
		total = total.Add(item.Subtotal())
		lineIDs[i] = item.LineID
	}
	if !paid.Equals(total) {
		return nil, ErrAmountMismatch
	}

	return &Purchase{
		id:        uuid.New(),
		buyerID:   buyerID,
		buyerName: buyerName,
		cartKey:   CartKey(lineIDs),
		items:     items,
		total:     total,
		createdAt: now,
	}, nil
}

func ReconstructPurchase(
	id, buyerID uuid.UUID,
	buyerName, cartKey string,
	items []Item,
	total book.Money,
	createdAt time.Time,
) *Purchase {
	return &Purchase{
		id:        id,
		buyerID:   buyerID,
		buyerName: buyerName,
		cartKey:   cartKey,
		items:     items,
		total:     total,
		createdAt: createdAt,
	}
}

func (p *Purchase) LineIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(p.items))
	for i, item := range p.items {
		ids[i] = item.LineID
	}
	return ids
}

func (p *Purchase) ID() uuid.UUID        { return p.id }
func (p *Purchase) BuyerID() uuid.UUID   { return p.buyerID }
func (p *Purchase) BuyerName() string    { return p.buyerName }
func (p *Purchase) CartKey() string      { return p.cartKey }
func (p *Purchase) Items() []Item        { return p.items }
func (p *Purchase) Total() book.Money    { return p.total }
func (p *Purchase) CreatedAt() time.Time { return p.createdAt }
