package api

import (
	"errors"
	"net/http"

	reqdto "github.com/abdulsamad100/books-cave-api/internal/handler/dto/request"
	resdto "github.com/abdulsamad100/books-cave-api/internal/handler/dto/response"
	"github.com/abdulsamad100/books-cave-api/internal/handler/httperr"
	"github.com/abdulsamad100/books-cave-api/internal/handler/middleware"
	"github.com/abdulsamad100/books-cave-api/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type CheckoutHandler struct {
	checkoutCommands commands.CheckoutCommands
}

func NewCheckoutHandler(checkoutCommands commands.CheckoutCommands) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutCommands: checkoutCommands,
	}
}

// @Summary Checkout cart
// @Description Convert the current cart into a purchase after amount confirmation
// @Tags checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CheckoutRequest true "Checkout request"
// @Success 200 {object} resdto.CheckoutResponse
// @Failure 422 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /checkout [post]
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user context"), "User not authenticated", nil)
		return
	}

	var req reqdto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := h.checkoutCommands.Checkout(c.Request.Context(), userID, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrEmptyCart):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Cart is empty", nil)
		case errors.Is(err, commands.ErrInvalidAmount):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Invalid amount", nil)
		case errors.Is(err, commands.ErrAmountMismatch):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Entered amount does not match cart total", nil)
		case errors.Is(err, commands.ErrUserNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "User not found", nil)
		case errors.Is(err, commands.ErrCartNotCleared):
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Purchase recorded but cart cleanup failed", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.CheckoutResponse{
		PurchaseID: result.PurchaseID.String(),
		TotalCents: result.TotalCents,
		Replayed:   result.IsReplayed,
	})
}
