package shared

import (
	"time"

	"github.com/google/uuid"
)

// Minimal snapshots for command read operations

type BookSnapshot struct {
	ID         uuid.UUID
	Title      string
	Author     string
	Category   string
	PriceCents int64
	Stock      int
	PhotoURL   string
	CreatedBy  uuid.UUID
}

type CartLineSnapshot struct {
	ID             uuid.UUID
	ProductID      uuid.UUID
	ProductName    string
	UnitPriceCents int64
	Quantity       int
	PhotoURL       string
	CreatedAt      time.Time
}

type PurchaseSnapshot struct {
	ID         uuid.UUID
	CartKey    string
	TotalCents int64
	LineIDs    []uuid.UUID
	CreatedAt  time.Time
}

type UserSnapshot struct {
	ID           uuid.UUID
	Email        string
	DisplayName  string
	Role         string
	PasswordHash string
	IsActive     bool
}
