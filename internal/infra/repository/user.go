package repository

import (
	"context"

	"github.com/abdulsamad100/books-cave-api/internal/domain/user"
	"github.com/abdulsamad100/books-cave-api/internal/infra"
	"github.com/abdulsamad100/books-cave-api/internal/infra/db"
	"github.com/abdulsamad100/books-cave-api/internal/pkg/pgconv"

	"github.com/google/uuid"
)

const createUserQuery = `
INSERT INTO users (id, email, password_hash, display_name, role, is_active, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id
`

const updateLastLoginQuery = `
UPDATE users SET last_login_at = now() WHERE id = $1
`

type UserRepository struct {
	db db.DBTX
}

func NewUserRepository(dbtx db.DBTX) *UserRepository {
	return &UserRepository{db: dbtx}
}

func (r *UserRepository) Create(ctx context.Context, tx db.DBTX, u *user.User, passwordHash string) (uuid.UUID, error) {
	var resultID uuid.UUID
	err := tx.QueryRow(ctx, createUserQuery,
		u.ID(), u.Email().Value(), passwordHash, u.DisplayName().String(),
		string(u.Role()), u.IsActive(), u.CreatedAt(),
	).Scan(&resultID)
	if err != nil {
		if pgconv.IsUniqueViolation(err) {
			return uuid.Nil, infra.WrapRepoErr("email already registered", err, infra.KindDuplicateKey)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to create user", err)
	}

	return resultID, nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, tx db.DBTX, userID uuid.UUID) error {
	_, err := tx.Exec(ctx, updateLastLoginQuery, userID)
	if err != nil {
		return infra.WrapRepoErr("failed to update last login", err)
	}

	return nil
}
