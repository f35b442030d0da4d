package book

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Book struct {
	id        uuid.UUID
	title     string
	author    string
	category  string
	details   string
	price     Money
	stock     Stock
	photoURL  string
	createdBy uuid.UUID
	createdAt time.Time
	updatedAt time.Time
}

func NewBook(
	title, author, category, details string,
	price Money,
	stock Stock,
	photoURL string,
	createdBy uuid.UUID,
	now time.Time,
) (*Book, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if len(title) > MaxTitleLength {
		return nil, ErrTitleTooLong
	}
	author = strings.TrimSpace(author)
	if author == "" {
		return nil, ErrEmptyAuthor
	}
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, ErrEmptyCategory
	}
	if len(details) > MaxDetailsLength {
		return nil, ErrDetailsTooLong
	}
	if err := validatePhotoURL(photoURL); err != nil {
		return nil, err
	}

	return &Book{
		id:        uuid.New(),
		title:     title,
		author:    author,
		category:  category,
		details:   details,
		price:     price,
		stock:     stock,
		photoURL:  photoURL,
		createdBy: createdBy,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructBook(
	id uuid.UUID,
	title, author, category, details string,
	price Money,
	stock Stock,
	photoURL string,
	createdBy uuid.UUID,
	createdAt, updatedAt time.Time,
) *Book {
	return &Book{
		id:        id,
		title:     title,
		author:    author,
		category:  category,
		details:   details,
		price:     price,
		stock:     stock,
		photoURL:  photoURL,
		createdBy: createdBy,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func validatePhotoURL(photoURL string) error {
	if photoURL == "" {
		return ErrEmptyPhotoURL
	}
	if !strings.HasPrefix(photoURL, "http://") && !strings.HasPrefix(photoURL, "https://") {
		return ErrInvalidPhotoURL
	}
	return nil
}

func (b *Book) IsOwnedBy(userID uuid.UUID) bool {
	return b.createdBy == userID
}

func (b *Book) ID() uuid.UUID        { return b.id }
func (b *Book) Title() string        { return b.title }
func (b *Book) Author() string       { return b.author }
func (b *Book) Category() string     { return b.category }
func (b *Book) Details() string      { return b.details }
func (b *Book) Price() Money         { return b.price }
func (b *Book) Stock() Stock         { return b.stock }
func (b *Book) PhotoURL() string     { return b.photoURL }
func (b *Book) CreatedBy() uuid.UUID { return b.createdBy }
func (b *Book) CreatedAt() time.Time { return b.createdAt }
func (b *Book) UpdatedAt() time.Time { return b.updatedAt }
