//go:build unit

package book_test

import (
	"strings"
	"testing"

	"github.com/abdulsamad100/books-cave-api/internal/domain/book"
	"github.com/abdulsamad100/books-cave-api/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.BookBuilder)
	errIs  error
}

func TestBook(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewBookBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, "The Go Programming Language", actual.Title())
		assert.Equal(t, int64(35000), actual.Price().Cents())
		assert.Equal(t, 3, actual.Stock().Count())
		assert.Equal(t, actual.CreatedAt(), actual.UpdatedAt())
	})

	t.Run("title validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "empty title",
				mutate: func(b *builder.BookBuilder) { b.WithTitle("") },
				errIs:  book.ErrEmptyTitle,
			},
			{
				name:   "whitespace only title",
				mutate: func(b *builder.BookBuilder) { b.WithTitle("   ") },
				errIs:  book.ErrEmptyTitle,
			},
			{
				name:   "maximum length title",
				mutate: func(b *builder.BookBuilder) { b.WithTitle(strings.Repeat("a", book.MaxTitleLength)) },
			},
			{
				name:   "title exceeds maximum length",
				mutate: func(b *builder.BookBuilder) { b.WithTitle(strings.Repeat("a", book.MaxTitleLength+1)) },
				errIs:  book.ErrTitleTooLong,
			},
		})
	})

	t.Run("author and category validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "empty author",
				mutate: func(b *builder.BookBuilder) { b.WithAuthor(" ") },
				errIs:  book.ErrEmptyAuthor,
			},
			{
				name:   "empty category",
				mutate: func(b *builder.BookBuilder) { b.WithCategory("") },
				errIs:  book.ErrEmptyCategory,
			},
			{
				name: "details exceed maximum length",
				mutate: func(b *builder.BookBuilder) {
					b.WithDetails(strings.Repeat("a", book.MaxDetailsLength+1))
				},
				errIs: book.ErrDetailsTooLong,
			},
			{
				name:   "empty details are allowed",
				mutate: func(b *builder.BookBuilder) { b.WithDetails("") },
			},
		})
	})

	t.Run("photo url validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "empty photo url",
				mutate: func(b *builder.BookBuilder) { b.WithPhotoURL("") },
				errIs:  book.ErrEmptyPhotoURL,
			},
			{
				name:   "relative photo url",
				mutate: func(b *builder.BookBuilder) { b.WithPhotoURL("covers/gopl.jpg") },
				errIs:  book.ErrInvalidPhotoURL,
			},
			{
				name:   "plain http url",
				mutate: func(b *builder.BookBuilder) { b.WithPhotoURL("http://cdn.example.com/x.jpg") },
			},
		})
	})

	t.Run("price and stock validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "negative price",
				mutate: func(b *builder.BookBuilder) { b.WithPriceCents(-100) },
				errIs:  book.ErrNegativePrice,
			},
			{
				name:   "negative stock",
				mutate: func(b *builder.BookBuilder) { b.WithStock(-1) },
				errIs:  book.ErrNegativeStock,
			},
			{
				name:   "zero stock is a valid listing",
				mutate: func(b *builder.BookBuilder) { b.AsSoldOut() },
			},
			{
				name:   "free book",
				mutate: func(b *builder.BookBuilder) { b.WithPriceCents(0) },
			},
		})
	})

	t.Run("ownership", func(t *testing.T) {
		ownerID := uuid.New()
		actual, err := builder.NewBookBuilder().WithCreatedBy(ownerID).BuildDomain()
		require.NoError(t, err)

		assert.True(t, actual.IsOwnedBy(ownerID))
		assert.False(t, actual.IsOwnedBy(uuid.New()))
	})
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewBookBuilder().With(c.mutate).BuildDomain()

			if c.errIs == nil {
				require.NotNil(t, actual)
				require.NoError(t, err)
			} else {
				require.Nil(t, actual)
				require.Error(t, err)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}
