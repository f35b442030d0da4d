package readstore

import (
	"context"

	"github.com/abdulsamad100/books-cave-api/internal/infra"
	"github.com/abdulsamad100/books-cave-api/internal/infra/db"
	"github.com/abdulsamad100/books-cave-api/internal/pkg/pgconv"
	"github.com/abdulsamad100/books-cave-api/internal/usecase/queries"

	"github.com/google/uuid"
)

const findUserByIDQuery = `
SELECT id, email, display_name, role, is_active, created_at
FROM users
WHERE id = $1
`

const findUserByEmailQuery = `
SELECT id, email, display_name, role, is_active, created_at, password_hash
FROM users
WHERE email = $1
`

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(dbtx db.DBTX) *UserReadStore {
	return &UserReadStore{db: dbtx}
}

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	var view queries.AuthorizedUserView
	err := r.db.QueryRow(ctx, findUserByIDQuery, id).Scan(
		&view.ID, &view.Email, &view.DisplayName, &view.Role, &view.IsActive, &view.CreatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}

	return &view, nil
}

func (r *UserReadStore) FindByEmail(ctx context.Context, email string) (*queries.AuthorizedUserView, string, error) {
	var (
		view         queries.AuthorizedUserView
		passwordHash string
	)
	err := r.db.QueryRow(ctx, findUserByEmailQuery, email).Scan(
		&view.ID, &view.Email, &view.DisplayName, &view.Role, &view.IsActive, &view.CreatedAt, &passwordHash,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, "", infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, "", infra.WrapRepoErr("failed to find user by email", err)
	}

	return &view, passwordHash, nil
}
