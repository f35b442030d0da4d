package commands

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/abdulsamad100/books-cave-api/internal/domain/book"
	"github.com/abdulsamad100/books-cave-api/internal/domain/purchase"
	"github.com/abdulsamad100/books-cave-api/internal/infra"
	"github.com/abdulsamad100/books-cave-api/internal/pkg/clock"
	"github.com/abdulsamad100/books-cave-api/internal/pkg/errs"
	"github.com/abdulsamad100/books-cave-api/internal/usecase/queries"
	"github.com/abdulsamad100/books-cave-api/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrEmptyCart      = errs.New("cart is empty")
	ErrInvalidAmount  = errs.New("invalid amount")
	ErrAmountMismatch = errs.New("amount mismatch")
	ErrCartNotCleared = errs.New("purchase recorded but cart not cleared")
)

type CheckoutResult struct {
	PurchaseID uuid.UUID
	TotalCents int64
	IsReplayed bool
}

type CheckoutCommands interface {
	Checkout(ctx context.Context, userID uuid.UUID, enteredAmount string) (*CheckoutResult, error)
}

type checkoutUseCaseImpl struct {
	uow       shared.UnitOfWork
	readStore queries.UserReadStore
	clock     clock.Clock
}

func NewCheckoutUseCase(uow shared.UnitOfWork, readStore queries.UserReadStore, clk clock.Clock) CheckoutCommands {
	return &checkoutUseCaseImpl{uow: uow, readStore: readStore, clock: clk}
}

// Checkout writes the purchase record first and clears the cart in a second
// transaction. A failure between the two leaves the history intact and the
// cart dirty, never the other way around; the leftover lines are cleaned up
// when the same cart is submitted again.
func (uc *checkoutUseCaseImpl) Checkout(ctx context.Context, userID uuid.UUID, enteredAmount string) (*CheckoutResult, error) {
	paid, err := book.ParseMoney(enteredAmount)
	if err != nil {
		return nil, ErrInvalidAmount
	}

	buyer, err := uc.readStore.FindByID(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, errs.Mark(err, ErrStorageFailed)
	}

	result := &CheckoutResult{}
	var lineIDs []uuid.UUID
	var cartKey string

	// The lines are read and locked inside the purchase transaction, so the
	// entered amount is checked against the cart as it exists at commit time
	// and a racing release waits for the locks instead of slipping between
	// the snapshot and the purchase.
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		lines, derr := tx.Reads().LockCartLinesByUser(ctx, userID)
		if derr != nil {
			return derr
		}
		if len(lines) == 0 {
			return ErrEmptyCart
		}

		entity, derr := uc.buildPurchase(userID, buyer.DisplayName, lines, paid)
		if derr != nil {
			return derr
		}

		result.PurchaseID = entity.ID()
		result.TotalCents = entity.Total().Cents()
		lineIDs = entity.LineIDs()
		cartKey = entity.CartKey()

		if _, derr := tx.Purchases().Create(ctx, tx.DB(), entity); derr != nil {
			return derr
		}
		return uc.createNotificationJob(ctx, tx, entity)
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyCart), errors.Is(err, ErrAmountMismatch):
			return nil, err
		case infra.IsKind(err, infra.KindDuplicateKey):
			// The same cart was already checked out. Replay the recorded
			// purchase instead of charging twice.
			snap, rerr := uc.uow.CommandReads().PurchaseByCartKey(ctx, userID, cartKey)
			if rerr != nil {
				return nil, errs.Mark(rerr, ErrStorageFailed)
			}
			result.PurchaseID = snap.ID
			result.TotalCents = snap.TotalCents
			result.IsReplayed = true
			lineIDs = snap.LineIDs
		default:
			return nil, errs.Mark(err, ErrStorageFailed)
		}
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.CartLines().DeleteByIDs(ctx, tx.DB(), userID, lineIDs)
	})
	if err != nil {
		return nil, errs.Mark(err, ErrCartNotCleared)
	}

	return result, nil
}

func (uc *checkoutUseCaseImpl) buildPurchase(userID uuid.UUID, buyerName string, lines []*shared.CartLineSnapshot, paid book.Money) (*purchase.Purchase, error) {
	items := make([]purchase.Item, len(lines))
	for i, line := range lines {
		unitPrice, err := book.NewMoney(line.UnitPriceCents)
		if err != nil {
			return nil, err
		}
		items[i] = purchase.Item{
			LineID:      line.ID,
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			UnitPrice:   unitPrice,
			Quantity:    line.Quantity,
			PhotoURL:    line.PhotoURL,
		}
	}

	entity, err := purchase.NewPurchase(userID, buyerName, items, paid, uc.clock.Now())
	if err != nil {
		switch {
		case errors.Is(err, purchase.ErrEmptyCart):
			return nil, ErrEmptyCart
		case errors.Is(err, purchase.ErrAmountMismatch):
			return nil, ErrAmountMismatch
		default:
			return nil, err
		}
	}

	return entity, nil
}

func (uc *checkoutUseCaseImpl) createNotificationJob(ctx context.Context, tx shared.Tx, entity *purchase.Purchase) error {
	payload, err := json.Marshal(map[string]any{
		"purchase_id": entity.ID(),
		"buyer_id":    entity.BuyerID(),
		"total_cents": entity.Total().Cents(),
		"type":        "purchase_completed",
	})
	if err != nil {
		return err
	}

	return tx.Notifications().CreateJob(ctx, tx.DB(), "email", "purchase_completed", payload, uc.clock.Now())
}
