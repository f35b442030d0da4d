//go:build unit

package book_test

import (
	"testing"

	"github.com/abdulsamad100/books-cave-api/internal/domain/book"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMoney(t *testing.T) {
	t.Run("accepted inputs", func(t *testing.T) {
		cases := []struct {
			name      string
			input     string
			wantCents int64
		}{
			{"whole units", "350", 35000},
			{"single fraction digit", "350.5", 35050},
			{"two fraction digits", "350.50", 35050},
			{"zero", "0", 0},
			{"surrounding whitespace", " 100 ", 10000},
			{"cents only", "0.99", 99},
		}
		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				m, err := book.ParseMoney(c.input)
				require.NoError(t, err)
				assert.Equal(t, c.wantCents, m.Cents())
			})
		}
	})

	t.Run("rejected inputs", func(t *testing.T) {
		cases := []struct {
			name  string
			input string
		}{
			{"empty", ""},
			{"whitespace only", "   "},
			{"negative", "-100"},
			{"explicit plus", "+100"},
			{"not a number", "abc"},
			{"trailing dot", "100."},
			{"leading dot", ".50"},
			{"three fraction digits", "100.505"},
			{"two dots", "1.2.3"},
			{"embedded space", "1 00"},
			{"whole part too large for cents", "92233720368547758"},
			{"far beyond the int64 range", "99999999999999999999"},
		}
		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				_, err := book.ParseMoney(c.input)
				require.ErrorIs(t, err, book.ErrInvalidAmount)
			})
		}
	})
}

func TestMoney(t *testing.T) {
	t.Run("rejects negative cents", func(t *testing.T) {
		_, err := book.NewMoney(-1)
		require.ErrorIs(t, err, book.ErrNegativePrice)
	})

	t.Run("add and multiply", func(t *testing.T) {
		a, err := book.NewMoney(150)
		require.NoError(t, err)
		b, err := book.NewMoney(250)
		require.NoError(t, err)

		assert.Equal(t, int64(400), a.Add(b).Cents())
		assert.Equal(t, int64(450), a.MulQuantity(3).Cents())
	})

	t.Run("equality is exact", func(t *testing.T) {
		a, _ := book.NewMoney(10000)
		b, _ := book.NewMoney(10000)
		c, _ := book.NewMoney(10001)

		assert.True(t, a.Equals(b))
		assert.False(t, a.Equals(c))
	})

	t.Run("zero value is zero money", func(t *testing.T) {
		var m book.Money
		assert.True(t, m.IsZero())
		assert.Equal(t, int64(0), m.Cents())
	})
}

func TestStock(t *testing.T) {
	cases := []struct {
		name  string
		count int
		errIs error
	}{
		{"zero stock", 0, nil},
		{"positive stock", 5, nil},
		{"maximum stock", book.MaxStock, nil},
		{"negative stock", -1, book.ErrNegativeStock},
		{"above maximum", book.MaxStock + 1, book.ErrStockOutOfBounds},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s, err := book.NewStock(c.count)
			if c.errIs == nil {
				require.NoError(t, err)
				assert.Equal(t, c.count, s.Count())
				assert.Equal(t, c.count > 0, s.IsAvailable())
			} else {
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}
