package user

import (
	"time"

	"github.com/google/uuid"
)

type Credentials struct {
	email    Email
	password Password
}

func NewCredentials(email, password string) (Credentials, error) {
	e, err := NewEmail(email)
	if err != nil {
		return Credentials{}, err
	}
	p, err := NewPassword(password)
	if err != nil {
		return Credentials{}, err
	}
	return Credentials{email: e, password: p}, nil
}

func (c Credentials) Email() Email       { return c.email }
func (c Credentials) Password() Password { return c.password }

type User struct {
	id          uuid.UUID
	email       Email
	displayName DisplayName
	role        Role
	isActive    bool
	createdAt   time.Time
}

func NewUser(email Email, displayName DisplayName, now time.Time) *User {
	return &User{
		id:          uuid.New(),
		email:       email,
		displayName: displayName,
		role:        RoleCustomer,
		isActive:    true,
		createdAt:   now,
	}
}

func (u *User) ID() uuid.UUID            { return u.id }
func (u *User) Email() Email             { return u.email }
func (u *User) DisplayName() DisplayName { return u.displayName }
func (u *User) Role() Role               { return u.role }
func (u *User) IsActive() bool           { return u.isActive }
func (u *User) CreatedAt() time.Time     { return u.createdAt }
