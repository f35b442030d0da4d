package request

import (
	"github.com/abdulsamad100/books-cave-api/internal/usecase/commands"
)

type CreateBookRequest struct {
	Title    string `json:"title" binding:"required,max=200"`
	Author   string `json:"author" binding:"required"`
	Category string `json:"category" binding:"required"`
	Details  string `json:"details" binding:"max=2000"`
	Price    string `json:"price" binding:"required"`
	Stock    int    `json:"stock" binding:"min=0"`
	PhotoURL string `json:"photo_url" binding:"required,url"`
}

func (r *CreateBookRequest) ToCommand() commands.CreateBookRequest {
	return commands.CreateBookRequest{
		Title:    r.Title,
		Author:   r.Author,
		Category: r.Category,
		Details:  r.Details,
		Price:    r.Price,
		Stock:    r.Stock,
		PhotoURL: r.PhotoURL,
	}
}

type UpdateBookRequest struct {
	Title    string `json:"title" binding:"required,max=200"`
	Author   string `json:"author" binding:"required"`
	Category string `json:"category" binding:"required"`
	Details  string `json:"details" binding:"max=2000"`
	Price    string `json:"price" binding:"required"`
	Stock    int    `json:"stock" binding:"min=0"`
	PhotoURL string `json:"photo_url" binding:"required,url"`
}

func (r *UpdateBookRequest) ToCommand() commands.UpdateBookRequest {
	return commands.UpdateBookRequest{
		Title:    r.Title,
		Author:   r.Author,
		Category: r.Category,
		Details:  r.Details,
		Price:    r.Price,
		Stock:    r.Stock,
		PhotoURL: r.PhotoURL,
	}
}
