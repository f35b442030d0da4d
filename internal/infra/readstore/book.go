package readstore

import (
	"context"

	"github.com/abdulsamad100/books-cave-api/internal/infra"
	"github.com/abdulsamad100/books-cave-api/internal/infra/db"
	"github.com/abdulsamad100/books-cave-api/internal/pkg/pgconv"
	"github.com/abdulsamad100/books-cave-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const findBookByIDQuery = `
SELECT id, title, author, category, details, price_cents, stock, photo_url, created_by, created_at, updated_at
FROM books
WHERE id = $1
`

const searchBooksQuery = `
SELECT id, title, author, category, price_cents, stock, photo_url, created_at
FROM books
WHERE ($1 = '' OR title ILIKE '%' || $1 || '%' OR author ILIKE '%' || $1 || '%')
  AND ($2 = '' OR category = $2)
ORDER BY created_at DESC, id DESC
`

const findBooksByCreatorQuery = `
SELECT id, title, author, category, price_cents, stock, photo_url, created_at
FROM books
WHERE created_by = $1
ORDER BY created_at DESC, id DESC
`

type BookReadStore struct {
	db db.DBTX
}

func NewBookReadStore(dbtx db.DBTX) *BookReadStore {
	return &BookReadStore{db: dbtx}
}

func (r *BookReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookView, error) {
	var view queries.BookView
	err := r.db.QueryRow(ctx, findBookByIDQuery, id).Scan(
		&view.ID, &view.Title, &view.Author, &view.Category, &view.Details,
		&view.Price, &view.Stock, &view.PhotoURL, &view.CreatedBy,
		&view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("book not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find book by ID", err)
	}

	return &view, nil
}

func (r *BookReadStore) Search(ctx context.Context, search queries.BookSearch) ([]*queries.BookListItem, error) {
	rows, err := r.db.Query(ctx, searchBooksQuery, search.Keyword, search.Category)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to search books", err)
	}
	defer rows.Close()

	return scanBookListItems(rows)
}

func (r *BookReadStore) FindByCreator(ctx context.Context, creatorID uuid.UUID) ([]*queries.BookListItem, error) {
	rows, err := r.db.Query(ctx, findBooksByCreatorQuery, creatorID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find books by creator", err)
	}
	defer rows.Close()

	return scanBookListItems(rows)
}

func scanBookListItems(rows pgx.Rows) ([]*queries.BookListItem, error) {
	result := make([]*queries.BookListItem, 0)
	for rows.Next() {
		var item queries.BookListItem
		err := rows.Scan(
			&item.ID, &item.Title, &item.Author, &item.Category,
			&item.Price, &item.Stock, &item.PhotoURL, &item.CreatedAt,
		)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan book row", err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read book rows", err)
	}

	return result, nil
}
