package repository

import (
	"context"

	"github.com/abdulsamad100/books-cave-api/internal/domain/book"
	"github.com/abdulsamad100/books-cave-api/internal/infra"
	"github.com/abdulsamad100/books-cave-api/internal/infra/db"
	"github.com/abdulsamad100/books-cave-api/internal/pkg/pgconv"

	"github.com/google/uuid"
)

const createBookQuery = `
INSERT INTO books (id, title, author, category, details, price_cents, stock, photo_url, created_by, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING id
`

const updateBookQuery = `
UPDATE books
SET title = $2, author = $3, category = $4, details = $5,
    price_cents = $6, stock = $7, photo_url = $8, updated_at = $9
WHERE id = $1
`

const deleteBookQuery = `DELETE FROM books WHERE id = $1`

// The stock guard lives in the statement itself so two concurrent buyers
// can never both take the last unit.
const decrementStockQuery = `
UPDATE books
SET stock = stock - 1, updated_at = now()
WHERE id = $1 AND stock > 0
`

const incrementStockQuery = `
UPDATE books
SET stock = stock + 1, updated_at = now()
WHERE id = $1
`

const bookExistsQuery = `SELECT 1 FROM books WHERE id = $1`

type BookRepository struct {
	db db.DBTX
}

func NewBookRepository(dbtx db.DBTX) *BookRepository {
	return &BookRepository{db: dbtx}
}

func (r *BookRepository) Create(ctx context.Context, tx db.DBTX, b *book.Book) (uuid.UUID, error) {
	var resultID uuid.UUID
	err := tx.QueryRow(ctx, createBookQuery,
		b.ID(), b.Title(), b.Author(), b.Category(), b.Details(),
		b.Price().Cents(), b.Stock().Count(), b.PhotoURL(), b.CreatedBy(),
		b.CreatedAt(), b.UpdatedAt(),
	).Scan(&resultID)
	if err != nil {
		if pgconv.IsForeignKeyViolation(err) {
			return uuid.Nil, infra.WrapRepoErr("book owner does not exist", err, infra.KindForeignKeyViolated)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to create book", err)
	}

	return resultID, nil
}

func (r *BookRepository) Update(ctx context.Context, tx db.DBTX, bookID uuid.UUID, b *book.Book) error {
	tag, err := tx.Exec(ctx, updateBookQuery,
		bookID, b.Title(), b.Author(), b.Category(), b.Details(),
		b.Price().Cents(), b.Stock().Count(), b.PhotoURL(), b.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update book", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("book not found", nil, infra.KindNotFound)
	}

	return nil
}

func (r *BookRepository) Delete(ctx context.Context, tx db.DBTX, bookID uuid.UUID) error {
	tag, err := tx.Exec(ctx, deleteBookQuery, bookID)
	if err != nil {
		return infra.WrapRepoErr("failed to delete book", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("book not found", nil, infra.KindNotFound)
	}

	return nil
}

func (r *BookRepository) DecrementStock(ctx context.Context, tx db.DBTX, bookID uuid.UUID) error {
	tag, err := tx.Exec(ctx, decrementStockQuery, bookID)
	if err != nil {
		return infra.WrapRepoErr("failed to decrement stock", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	// No row matched: either the book is gone or it is sold out.
	var one int
	err = tx.QueryRow(ctx, bookExistsQuery, bookID).Scan(&one)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return infra.WrapRepoErr("book not found", err, infra.KindNotFound)
		}
		return infra.WrapRepoErr("failed to check book existence", err)
	}

	return infra.WrapRepoErr("book out of stock", nil, infra.KindCheckViolated)
}

func (r *BookRepository) IncrementStock(ctx context.Context, tx db.DBTX, bookID uuid.UUID) error {
	// A zero-row update is fine here: the listing may have been deleted
	// while the unit was reserved, and the stock has nowhere to return to.
	_, err := tx.Exec(ctx, incrementStockQuery, bookID)
	if err != nil {
		return infra.WrapRepoErr("failed to increment stock", err)
	}

	return nil
}
