package book

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

var (
	ErrNegativePrice    = errors.New("price cannot be negative")
	ErrInvalidAmount    = errors.New("invalid decimal amount")
	ErrNegativeStock    = errors.New("stock cannot be negative")
	ErrEmptyTitle       = errors.New("title must not be empty")
	ErrTitleTooLong     = errors.New("title too long")
	ErrEmptyAuthor      = errors.New("author must not be empty")
	ErrEmptyCategory    = errors.New("category must not be empty")
	ErrDetailsTooLong   = errors.New("details too long")
	ErrInvalidPhotoURL  = errors.New("photo url must be absolute http(s)")
	ErrEmptyPhotoURL    = errors.New("photo url must not be empty")
	ErrStockOutOfBounds = errors.New("stock exceeds maximum")
)

const (
	MaxTitleLength   = 200
	MaxDetailsLength = 2000
	MaxStock         = 1_000_000
)

type Money struct {
	cents int64
}

func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, ErrNegativePrice
	}
	return Money{cents: cents}, nil
}

// ParseMoney parses a user-entered decimal string ("350", "350.5", "350.50")
// into cents. At most two fraction digits are accepted; anything else fails.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		return Money{}, ErrInvalidAmount
	}

	whole, frac, hasFrac := strings.Cut(s, ".")
	if whole == "" {
		return Money{}, ErrInvalidAmount
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	// The cents value must fit int64 even with a full fraction part.
	if units > (math.MaxInt64-99)/100 {
		return Money{}, ErrInvalidAmount
	}

	cents := units * 100
	if hasFrac {
		if frac == "" || len(frac) > 2 {
			return Money{}, ErrInvalidAmount
		}
		fracVal, err := strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return Money{}, ErrInvalidAmount
		}
		if len(frac) == 1 {
			fracVal *= 10
		}
		cents += fracVal
	}

	return NewMoney(cents)
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

func (m Money) MulQuantity(qty int) Money {
	return Money{cents: m.cents * int64(qty)}
}

func (m Money) Equals(other Money) bool {
	return m.cents == other.cents
}

func (m Money) IsZero() bool {
	return m.cents == 0
}

type Stock struct {
	count int
}

func NewStock(count int) (Stock, error) {
	if count < 0 {
		return Stock{}, ErrNegativeStock
	}
	if count > MaxStock {
		return Stock{}, ErrStockOutOfBounds
	}
	return Stock{count: count}, nil
}

func (s Stock) Count() int {
	return s.count
}

func (s Stock) IsAvailable() bool {
	return s.count > 0
}
