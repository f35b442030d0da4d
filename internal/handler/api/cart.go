package api

import (
	"errors"
	"net/http"

	reqdto "github.com/abdulsamad100/books-cave-api/internal/handler/dto/request"
	resdto "github.com/abdulsamad100/books-cave-api/internal/handler/dto/response"
	"github.com/abdulsamad100/books-cave-api/internal/handler/httperr"
	"github.com/abdulsamad100/books-cave-api/internal/handler/middleware"
	"github.com/abdulsamad100/books-cave-api/internal/usecase/commands"
	"github.com/abdulsamad100/books-cave-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CartHandler struct {
	cartCommands commands.CartCommands
	cartQueries  queries.CartQueries
}

func NewCartHandler(cartCommands commands.CartCommands, cartQueries queries.CartQueries) *CartHandler {
	return &CartHandler{
		cartCommands: cartCommands,
		cartQueries:  cartQueries,
	}
}

// @Summary Add book to cart
// @Description Reserve one unit of a book and add it as a cart line
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.AddToCartRequest true "Cart request"
// @Success 201 {object} map[string]string
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /cart [post]
func (h *CartHandler) AddToCart(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user context"), "User not authenticated", nil)
		return
	}

	var req reqdto.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := h.cartCommands.AddToCart(c.Request.Context(), req.BookID, userID)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrBookNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Book not found", nil)
		case errors.Is(err, commands.ErrOutOfStock):
			httperr.AbortWithError(c, http.StatusConflict, err, "Book is out of stock", nil)
		case errors.Is(err, commands.ErrUserNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "User not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": result.LineID.String()})
}

// @Summary Remove cart line
// @Description Remove a cart line and release its unit back into stock
// @Tags cart
// @Security BearerAuth
// @Param id path string true "Cart line ID"
// @Success 204 "No Content"
// @Failure 404 {object} httperr.Response
// @Router /cart/{id} [delete]
func (h *CartHandler) RemoveLine(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user context"), "User not authenticated", nil)
		return
	}

	lineID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid cart line ID format", nil)
		return
	}

	if err := h.cartCommands.RemoveFromCart(c.Request.Context(), lineID, userID); err != nil {
		switch {
		case errors.Is(err, commands.ErrLineNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Cart line not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Get cart
// @Description List the current user's cart lines with the running total
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.CartResponse
// @Router /cart [get]
func (h *CartHandler) GetCart(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user context"), "User not authenticated", nil)
		return
	}

	summary, err := h.cartQueries.ListByUser(c.Request.Context(), userID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromCartSummary(summary))
}

// @Summary Get cart count
// @Description Count the current user's cart lines
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.CartCountResponse
// @Router /cart/count [get]
func (h *CartHandler) GetCartCount(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user context"), "User not authenticated", nil)
		return
	}

	count, err := h.cartQueries.CountByUser(c.Request.Context(), userID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.CartCountResponse{Count: count})
}
