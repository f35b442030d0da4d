//go:build unit

package cart_test

import (
	"testing"

	"github.com/abdulsamad100/books-cave-api/internal/domain/cart"
	"github.com/abdulsamad100/books-cave-api/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLine(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewCartLineBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, cart.UnitQuantity, actual.Quantity())
		assert.Equal(t, int64(35000), actual.Subtotal().Cents())
	})

	t.Run("validation", func(t *testing.T) {
		cases := []struct {
			name   string
			mutate func(*builder.CartLineBuilder)
			errIs  error
		}{
			{
				name:   "missing owner",
				mutate: func(b *builder.CartLineBuilder) { b.WithCreatedFor(uuid.Nil) },
				errIs:  cart.ErrMissingOwner,
			},
			{
				name:   "missing product",
				mutate: func(b *builder.CartLineBuilder) { b.WithProductID(uuid.Nil) },
				errIs:  cart.ErrMissingProduct,
			},
			{
				name:   "blank product name",
				mutate: func(b *builder.CartLineBuilder) { b.WithProductName("  ") },
				errIs:  cart.ErrEmptyName,
			},
		}
		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				_, err := builder.NewCartLineBuilder().With(c.mutate).BuildDomain()
				require.ErrorIs(t, err, c.errIs)
			})
		}
	})

	t.Run("two lines for the same product stay distinct", func(t *testing.T) {
		productID := uuid.New()
		l1, err1 := builder.NewCartLineBuilder().WithProductID(productID).BuildDomain()
		l2, err2 := builder.NewCartLineBuilder().WithProductID(productID).BuildDomain()
		require.NoError(t, err1)
		require.NoError(t, err2)

		assert.NotEqual(t, l1.ID(), l2.ID())
	})
}
