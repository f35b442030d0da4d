//go:build unit || e2e

package builder

import (
	"time"

	dombook "github.com/abdulsamad100/books-cave-api/internal/domain/book"

	"github.com/google/uuid"
)

type BookBuilder struct {
	Title      string
	Author     string
	Category   string
	Details    string
	PriceCents int64
	Stock      int
	PhotoURL   string
	CreatedBy  uuid.UUID
	CreatedAt  time.Time
}

func NewBookBuilder() *BookBuilder {
	return &BookBuilder{
		Title:      "The Go Programming Language",
		Author:     "Alan Donovan",
		Category:   "Programming",
		Details:    "The authoritative resource for writing clear, idiomatic code.",
		PriceCents: 35000,
		Stock:      3,
		PhotoURL:   "https://cdn.example.com/covers/gopl.jpg",
		CreatedBy:  uuid.New(),
		CreatedAt:  time.Now(),
	}
}

func (b *BookBuilder) With(mutate func(*BookBuilder)) *BookBuilder {
	mutate(b)
	return b
}

func (b *BookBuilder) BuildDomain() (*dombook.Book, error) {
	price, err := dombook.NewMoney(b.PriceCents)
	if err != nil {
		return nil, err
	}
	stock, err := dombook.NewStock(b.Stock)
	if err != nil {
		return nil, err
	}
	return dombook.NewBook(b.Title, b.Author, b.Category, b.Details, price, stock, b.PhotoURL, b.CreatedBy, b.CreatedAt)
}

func (b *BookBuilder) WithTitle(title string) *BookBuilder {
	b.Title = title
	return b
}

func (b *BookBuilder) WithAuthor(author string) *BookBuilder {
	b.Author = author
	return b
}

func (b *BookBuilder) WithCategory(category string) *BookBuilder {
	b.Category = category
	return b
}

func (b *BookBuilder) WithDetails(details string) *BookBuilder {
	b.Details = details
	return b
}

func (b *BookBuilder) WithPriceCents(cents int64) *BookBuilder {
	b.PriceCents = cents
	return b
}

func (b *BookBuilder) WithStock(stock int) *BookBuilder {
	b.Stock = stock
	return b
}

func (b *BookBuilder) WithPhotoURL(url string) *BookBuilder {
	b.PhotoURL = url
	return b
}

func (b *BookBuilder) WithCreatedBy(userID uuid.UUID) *BookBuilder {
	b.CreatedBy = userID
	return b
}

func (b *BookBuilder) AsSoldOut() *BookBuilder {
	b.Stock = 0
	return b
}
