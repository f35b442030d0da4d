package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type BookView struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Category  string    `json:"category"`
	Details   string    `json:"details"`
	Price     int64     `json:"price_cents"`
	Stock     int       `json:"stock"`
	PhotoURL  string    `json:"photo_url"`
	CreatedBy uuid.UUID `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type BookListItem struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Category  string    `json:"category"`
	Price     int64     `json:"price_cents"`
	Stock     int       `json:"stock"`
	PhotoURL  string    `json:"photo_url"`
	CreatedAt time.Time `json:"created_at"`
}

// BookSearch narrows the catalog listing; zero values mean no filter.
type BookSearch struct {
	Keyword  string
	Category string
}

type BookQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*BookView, error)
	List(ctx context.Context, search BookSearch) ([]*BookListItem, error)
	ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]*BookListItem, error)
}

type BookViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookView, error)
	Search(ctx context.Context, search BookSearch) ([]*BookListItem, error)
	FindByCreator(ctx context.Context, creatorID uuid.UUID) ([]*BookListItem, error)
}

type bookQueriesImpl struct {
	repo BookViewRepo
}

func NewBookQueries(repo BookViewRepo) BookQueries {
	return &bookQueriesImpl{repo: repo}
}

func (q *bookQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*BookView, error) {
	return q.repo.FindByID(ctx, id)
}

func (q *bookQueriesImpl) List(ctx context.Context, search BookSearch) ([]*BookListItem, error) {
	return q.repo.Search(ctx, search)
}

func (q *bookQueriesImpl) ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]*BookListItem, error) {
	return q.repo.FindByCreator(ctx, creatorID)
}
