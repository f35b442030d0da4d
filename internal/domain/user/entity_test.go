//go:build unit

package user_test

import (
	"strings"
	"testing"

	"github.com/abdulsamad100/books-cave-api/internal/domain/user"
	"github.com/abdulsamad100/books-cave-api/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewUserBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, "buyer@example.com", actual.Email().Value())
		assert.Equal(t, user.RoleCustomer, actual.Role())
		assert.True(t, actual.IsActive())
	})

	t.Run("validation", func(t *testing.T) {
		cases := []struct {
			name   string
			mutate func(*builder.UserBuilder)
			errIs  error
		}{
			{
				name:   "malformed email",
				mutate: func(b *builder.UserBuilder) { b.WithEmail("not-an-email") },
				errIs:  user.ErrInvalidEmail,
			},
			{
				name:   "blank display name",
				mutate: func(b *builder.UserBuilder) { b.WithDisplayName("   ") },
				errIs:  user.ErrEmptyDisplayName,
			},
			{
				name:   "display name too long",
				mutate: func(b *builder.UserBuilder) { b.WithDisplayName(strings.Repeat("a", user.MaxDisplayNameLength+1)) },
				errIs:  user.ErrDisplayNameTooLong,
			},
		}
		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				_, err := builder.NewUserBuilder().With(c.mutate).BuildDomain()
				require.ErrorIs(t, err, c.errIs)
			})
		}
	})
}

func TestNewCredentials(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		creds, err := builder.NewUserBuilder().BuildCredentials()
		require.NoError(t, err)

		assert.Equal(t, "buyer@example.com", creds.Email().Value())
		assert.Equal(t, "password123", creds.Password().Value())
	})

	t.Run("short password is rejected", func(t *testing.T) {
		_, err := builder.NewUserBuilder().WithPassword("short").BuildCredentials()
		require.ErrorIs(t, err, user.ErrPasswordTooWeak)
	})
}
