package response

import (
	"github.com/abdulsamad100/books-cave-api/internal/usecase/queries"
)

type RegisterResponse struct {
	ID string `json:"id"`
}

type LoginResponse struct {
	UserID string `json:"user_id"`
}

type CurrentUserResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
	CreatedAt   int64  `json:"created_at"`
}

func FromAuthorizedUser(v *queries.AuthorizedUserView) *CurrentUserResponse {
	return &CurrentUserResponse{
		ID:          v.ID.String(),
		Email:       v.Email,
		DisplayName: v.DisplayName,
		Role:        v.Role,
		CreatedAt:   v.CreatedAt.Unix(),
	}
}
