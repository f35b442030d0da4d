package response

import (
	"github.com/abdulsamad100/books-cave-api/internal/usecase/queries"
)

type BookResponse struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Author     string `json:"author"`
	Category   string `json:"category"`
	Details    string `json:"details"`
	PriceCents int64  `json:"price_cents"`
	Stock      int    `json:"stock"`
	PhotoURL   string `json:"photo_url"`
	CreatedBy  string `json:"created_by"`
	CreatedAt  int64  `json:"created_at"`
	UpdatedAt  int64  `json:"updated_at"`
}

func FromBookView(v *queries.BookView) *BookResponse {
	return &BookResponse{
		ID:         v.ID.String(),
		Title:      v.Title,
		Author:     v.Author,
		Category:   v.Category,
		Details:    v.Details,
		PriceCents: v.Price,
		Stock:      v.Stock,
		PhotoURL:   v.PhotoURL,
		CreatedBy:  v.CreatedBy.String(),
		CreatedAt:  v.CreatedAt.Unix(),
		UpdatedAt:  v.UpdatedAt.Unix(),
	}
}

type BookListItemResponse struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Author     string `json:"author"`
	Category   string `json:"category"`
	PriceCents int64  `json:"price_cents"`
	Stock      int    `json:"stock"`
	PhotoURL   string `json:"photo_url"`
	CreatedAt  int64  `json:"created_at"`
}

func FromBookList(items []*queries.BookListItem) []*BookListItemResponse {
	res := make([]*BookListItemResponse, len(items))
	for i, it := range items {
		res[i] = &BookListItemResponse{
			ID:         it.ID.String(),
			Title:      it.Title,
			Author:     it.Author,
			Category:   it.Category,
			PriceCents: it.Price,
			Stock:      it.Stock,
			PhotoURL:   it.PhotoURL,
			CreatedAt:  it.CreatedAt.Unix(),
		}
	}
	return res
}
