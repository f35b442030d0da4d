package request

import (
	"github.com/google/uuid"
)

type AddToCartRequest struct {
	BookID uuid.UUID `json:"book_id" binding:"required"`
}

type CheckoutRequest struct {
	Amount string `json:"amount" binding:"required"`
}
