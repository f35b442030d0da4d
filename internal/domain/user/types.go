package user

import "errors"

var ErrUnknownRole = errors.New("unknown role")

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

func NewRole(s string) (Role, error) {
	switch Role(s) {
	case RoleCustomer, RoleAdmin:
		return Role(s), nil
	default:
		return "", ErrUnknownRole
	}
}

func (r Role) String() string {
	return string(r)
}
