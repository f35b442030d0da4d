//go:build unit || e2e

package builder

import (
	"time"

	domuser "github.com/abdulsamad100/books-cave-api/internal/domain/user"
)

type UserBuilder struct {
	Email       string
	Password    string
	DisplayName string
	Role        domuser.Role
	CreatedAt   time.Time
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		Email:       "buyer@example.com",
		Password:    "password123",
		DisplayName: "Test Buyer",
		Role:        domuser.RoleCustomer,
		CreatedAt:   time.Now(),
	}
}

func (b *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	mutate(b)
	return b
}

func (b *UserBuilder) BuildDomain() (*domuser.User, error) {
	email, err := domuser.NewEmail(b.Email)
	if err != nil {
		return nil, err
	}
	name, err := domuser.NewDisplayName(b.DisplayName)
	if err != nil {
		return nil, err
	}
	return domuser.NewUser(email, name, b.CreatedAt), nil
}

func (b *UserBuilder) BuildCredentials() (domuser.Credentials, error) {
	return domuser.NewCredentials(b.Email, b.Password)
}

func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.Email = email
	return b
}

func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.Password = password
	return b
}

func (b *UserBuilder) WithDisplayName(name string) *UserBuilder {
	b.DisplayName = name
	return b
}

func (b *UserBuilder) AsAdmin() *UserBuilder {
	b.Role = domuser.RoleAdmin
	return b
}
