package commands

import (
	"context"
	"errors"

	"github.com/abdulsamad100/books-cave-api/internal/domain/book"
	"github.com/abdulsamad100/books-cave-api/internal/infra"
	"github.com/abdulsamad100/books-cave-api/internal/pkg/clock"
	"github.com/abdulsamad100/books-cave-api/internal/pkg/errs"
	"github.com/abdulsamad100/books-cave-api/internal/usecase/queries"
	"github.com/abdulsamad100/books-cave-api/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrBookNotFound  = errs.New("book not found")
	ErrBookNotOwned  = errs.New("book not owned by user")
	ErrInvalidPrice  = errs.New("invalid price")
	ErrStorageFailed = errs.New("storage operation failed")
)

type CreateBookRequest struct {
	Title    string
	Author   string
	Category string
	Details  string
	Price    string
	Stock    int
	PhotoURL string
}

type UpdateBookRequest struct {
	Title    string
	Author   string
	Category string
	Details  string
	Price    string
	Stock    int
	PhotoURL string
}

type CreateBookResult struct {
	BookID uuid.UUID
}

type BookCommands interface {
	CreateBook(ctx context.Context, req CreateBookRequest, userID uuid.UUID) (*CreateBookResult, error)
	UpdateBook(ctx context.Context, bookID uuid.UUID, req UpdateBookRequest, actorID uuid.UUID, actorRole string) error
	DeleteBook(ctx context.Context, bookID uuid.UUID, actorID uuid.UUID, actorRole string) error
}

type bookUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewBookUseCase(uow shared.UnitOfWork, clk clock.Clock) BookCommands {
	return &bookUseCaseImpl{uow: uow, clock: clk}
}

func (uc *bookUseCaseImpl) CreateBook(ctx context.Context, req CreateBookRequest, userID uuid.UUID) (*CreateBookResult, error) {
	entity, err := uc.buildBook(req.Title, req.Author, req.Category, req.Details, req.Price, req.Stock, req.PhotoURL, userID)
	if err != nil {
		return nil, err
	}

	var createdID uuid.UUID
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		id, derr := tx.Books().Create(ctx, tx.DB(), entity)
		if derr != nil {
			return errs.Mark(derr, ErrStorageFailed)
		}
		createdID = id
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &CreateBookResult{BookID: createdID}, nil
}

func (uc *bookUseCaseImpl) UpdateBook(ctx context.Context, bookID uuid.UUID, req UpdateBookRequest, actorID uuid.UUID, actorRole string) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, derr := tx.Reads().BookByID(ctx, bookID)
		if derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return ErrBookNotFound
			}
			return errs.Mark(derr, ErrStorageFailed)
		}
		if actorRole != queries.RoleAdmin && snap.CreatedBy != actorID {
			return ErrBookNotOwned
		}

		entity, derr := uc.buildBook(req.Title, req.Author, req.Category, req.Details, req.Price, req.Stock, req.PhotoURL, snap.CreatedBy)
		if derr != nil {
			return derr
		}

		if derr = tx.Books().Update(ctx, tx.DB(), bookID, entity); derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return ErrBookNotFound
			}
			return errs.Mark(derr, ErrStorageFailed)
		}
		return nil
	})
}

func (uc *bookUseCaseImpl) DeleteBook(ctx context.Context, bookID uuid.UUID, actorID uuid.UUID, actorRole string) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, derr := tx.Reads().BookByID(ctx, bookID)
		if derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return ErrBookNotFound
			}
			return errs.Mark(derr, ErrStorageFailed)
		}
		if actorRole != queries.RoleAdmin && snap.CreatedBy != actorID {
			return ErrBookNotOwned
		}

		// Open cart lines keep their snapshot of the listing; they release
		// back into nothing if the book is gone, which is intentional.
		if derr = tx.Books().Delete(ctx, tx.DB(), bookID); derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return ErrBookNotFound
			}
			return errs.Mark(derr, ErrStorageFailed)
		}
		return nil
	})
}

func (uc *bookUseCaseImpl) buildBook(title, author, category, details, price string, stock int, photoURL string, createdBy uuid.UUID) (*book.Book, error) {
	priceVal, err := book.ParseMoney(price)
	if err != nil {
		if errors.Is(err, book.ErrInvalidAmount) {
			return nil, ErrInvalidPrice
		}
		return nil, err
	}
	stockVal, err := book.NewStock(stock)
	if err != nil {
		return nil, err
	}

	return book.NewBook(title, author, category, details, priceVal, stockVal, photoURL, createdBy, uc.clock.Now())
}
