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

type BookHandler struct {
	bookCommands commands.BookCommands
	bookQueries  queries.BookQueries
}

func NewBookHandler(bookCommands commands.BookCommands, bookQueries queries.BookQueries) *BookHandler {
	return &BookHandler{
		bookCommands: bookCommands,
		bookQueries:  bookQueries,
	}
}

// @Summary List books
// @Description List catalog books with optional keyword and category filters
// @Tags books
// @Produce json
// @Param q query string false "Keyword matched against title and author"
// @Param category query string false "Category filter"
// @Success 200 {array} resdto.BookListItemResponse
// @Router /books [get]
func (h *BookHandler) List(c *gin.Context) {
	search := queries.BookSearch{
		Keyword:  c.Query("q"),
		Category: c.Query("category"),
	}

	items, err := h.bookQueries.List(c.Request.Context(), search)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookList(items))
}

// @Summary Get book
// @Description Get a single book by ID
// @Tags books
// @Produce json
// @Param id path string true "Book ID"
// @Success 200 {object} resdto.BookResponse
// @Failure 404 {object} httperr.Response
// @Router /books/{id} [get]
func (h *BookHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid book ID format", nil)
		return
	}

	view, err := h.bookQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithError(c, http.StatusNotFound, err, "Book not found", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookView(view))
}

// @Summary List own books
// @Description List books created by the current user
// @Tags books
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.BookListItemResponse
// @Failure 401 {object} httperr.Response
// @Router /books/mine [get]
func (h *BookHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user context"), "User not authenticated", nil)
		return
	}

	items, err := h.bookQueries.ListByCreator(c.Request.Context(), userID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookList(items))
}

// @Summary Create book
// @Description Add a new book listing
// @Tags books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBookRequest true "Book request"
// @Success 201 {object} map[string]string
// @Failure 400 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /books [post]
func (h *BookHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user context"), "User not authenticated", nil)
		return
	}

	var req reqdto.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := h.bookCommands.CreateBook(c.Request.Context(), req.ToCommand(), userID)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidPrice):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Invalid price", nil)
		case errors.Is(err, commands.ErrStorageFailed):
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		default:
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Invalid book data", nil)
		}
		return
	}

	c.Header("Location", "/api/books/"+result.BookID.String())
	c.JSON(http.StatusCreated, gin.H{"id": result.BookID.String()})
}

// @Summary Update book
// @Description Update a book listing owned by the current user
// @Tags books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Book ID"
// @Param request body reqdto.UpdateBookRequest true "Book request"
// @Success 204 "No Content"
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /books/{id} [put]
func (h *BookHandler) Update(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user context"), "User not authenticated", nil)
		return
	}
	role, _ := middleware.GetUserRole(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid book ID format", nil)
		return
	}

	var req reqdto.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	err = h.bookCommands.UpdateBook(c.Request.Context(), id, req.ToCommand(), userID, role.String())
	if err != nil {
		h.abortBookWriteError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Delete book
// @Description Remove a book listing owned by the current user
// @Tags books
// @Security BearerAuth
// @Param id path string true "Book ID"
// @Success 204 "No Content"
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /books/{id} [delete]
func (h *BookHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user context"), "User not authenticated", nil)
		return
	}
	role, _ := middleware.GetUserRole(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid book ID format", nil)
		return
	}

	if err := h.bookCommands.DeleteBook(c.Request.Context(), id, userID, role.String()); err != nil {
		h.abortBookWriteError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *BookHandler) abortBookWriteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrBookNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Book not found", nil)
	case errors.Is(err, commands.ErrBookNotOwned):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Book not owned by user", nil)
	case errors.Is(err, commands.ErrInvalidPrice):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Invalid price", nil)
	case errors.Is(err, commands.ErrStorageFailed):
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	default:
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Invalid book data", nil)
	}
}
