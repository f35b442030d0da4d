package commands

import (
	"context"

	"github.com/abdulsamad100/books-cave-api/internal/domain/book"
	"github.com/abdulsamad100/books-cave-api/internal/domain/cart"
	"github.com/abdulsamad100/books-cave-api/internal/infra"
	"github.com/abdulsamad100/books-cave-api/internal/pkg/clock"
	"github.com/abdulsamad100/books-cave-api/internal/pkg/errs"
	"github.com/abdulsamad100/books-cave-api/internal/usecase/queries"
	"github.com/abdulsamad100/books-cave-api/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrOutOfStock   = errs.New("book out of stock")
	ErrLineNotFound = errs.New("cart line not found")
)

type AddToCartResult struct {
	LineID uuid.UUID
}

type CartCommands interface {
	AddToCart(ctx context.Context, bookID, userID uuid.UUID) (*AddToCartResult, error)
	RemoveFromCart(ctx context.Context, lineID, userID uuid.UUID) error
}

type cartUseCaseImpl struct {
	uow       shared.UnitOfWork
	readStore queries.UserReadStore
	clock     clock.Clock
}

func NewCartUseCase(uow shared.UnitOfWork, readStore queries.UserReadStore, clk clock.Clock) CartCommands {
	return &cartUseCaseImpl{uow: uow, readStore: readStore, clock: clk}
}

// AddToCart takes one unit of stock and records the reservation as a cart
// line in the same transaction, so either both happen or neither does.
func (uc *cartUseCaseImpl) AddToCart(ctx context.Context, bookID, userID uuid.UUID) (*AddToCartResult, error) {
	buyer, err := uc.readStore.FindByID(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, errs.Mark(err, ErrStorageFailed)
	}

	var createdID uuid.UUID
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if derr := tx.Books().DecrementStock(ctx, tx.DB(), bookID); derr != nil {
			switch {
			case infra.IsKind(derr, infra.KindNotFound):
				return ErrBookNotFound
			case infra.IsKind(derr, infra.KindCheckViolated):
				return ErrOutOfStock
			default:
				return errs.Mark(derr, ErrStorageFailed)
			}
		}

		snap, derr := tx.Reads().BookByID(ctx, bookID)
		if derr != nil {
			return errs.Mark(derr, ErrStorageFailed)
		}

		price, derr := book.NewMoney(snap.PriceCents)
		if derr != nil {
			return derr
		}
		line, derr := cart.NewLine(userID, buyer.DisplayName, snap.ID, snap.Title, price, snap.PhotoURL, uc.clock.Now())
		if derr != nil {
			return derr
		}

		id, derr := tx.CartLines().Create(ctx, tx.DB(), line)
		if derr != nil {
			return errs.Mark(derr, ErrStorageFailed)
		}
		createdID = id
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &AddToCartResult{LineID: createdID}, nil
}

// RemoveFromCart deletes the line and returns its unit to stock in one
// transaction. Removing and re-adding a book leaves stock exactly where it
// started.
func (uc *cartUseCaseImpl) RemoveFromCart(ctx context.Context, lineID, userID uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		productID, derr := tx.CartLines().DeleteOwned(ctx, tx.DB(), lineID, userID)
		if derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return ErrLineNotFound
			}
			return errs.Mark(derr, ErrStorageFailed)
		}

		if derr = tx.Books().IncrementStock(ctx, tx.DB(), productID); derr != nil {
			return errs.Mark(derr, ErrStorageFailed)
		}
		return nil
	})
}
