package api

import (
	"errors"
	"net/http"

	resdto "github.com/abdulsamad100/books-cave-api/internal/handler/dto/response"
	"github.com/abdulsamad100/books-cave-api/internal/handler/httperr"
	"github.com/abdulsamad100/books-cave-api/internal/handler/middleware"
	"github.com/abdulsamad100/books-cave-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type HistoryHandler struct {
	historyQueries queries.HistoryQueries
}

func NewHistoryHandler(historyQueries queries.HistoryQueries) *HistoryHandler {
	return &HistoryHandler{
		historyQueries: historyQueries,
	}
}

// @Summary Purchase history
// @Description List the current user's purchases, newest first
// @Tags history
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.PurchaseResponse
// @Failure 401 {object} httperr.Response
// @Router /history [get]
func (h *HistoryHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user context"), "User not authenticated", nil)
		return
	}

	views, err := h.historyQueries.ListByBuyer(c.Request.Context(), userID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromPurchaseList(views))
}
