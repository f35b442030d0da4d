//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/abdulsamad100/books-cave-api/internal/domain/user"
	"github.com/abdulsamad100/books-cave-api/internal/handler/api"
	reqdto "github.com/abdulsamad100/books-cave-api/internal/handler/dto/request"
	resdto "github.com/abdulsamad100/books-cave-api/internal/handler/dto/response"
	"github.com/abdulsamad100/books-cave-api/internal/usecase/commands"
	"github.com/abdulsamad100/books-cave-api/internal/usecase/queries"
	"github.com/abdulsamad100/books-cave-api/tests/common/httptest"
	"github.com/abdulsamad100/books-cave-api/tests/common/testutil"
	commandsmock "github.com/abdulsamad100/books-cave-api/tests/mock/commands"
	queriesmock "github.com/abdulsamad100/books-cave-api/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookCommands
	mockQueries  *queriesmock.MockBookQueries
	handler      *api.BookHandler
	userID       uuid.UUID
}

func (s *BookHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookQueries(s.mockCtrl)
	s.handler = api.NewBookHandler(s.mockCommands, s.mockQueries)
	s.userID = uuid.New()

	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("user_id", s.userID)
		c.Set("user_role", user.RoleCustomer)
		c.Next()
	}

	s.router.GET("/books", s.handler.List)
	s.router.GET("/books/:id", s.handler.Get)
	s.router.GET("/books/mine", authMiddleware, s.handler.ListMine)
	s.router.POST("/books", authMiddleware, s.handler.Create)
	s.router.PUT("/books/:id", authMiddleware, s.handler.Update)
	s.router.DELETE("/books/:id", authMiddleware, s.handler.Delete)
}

func (s *BookHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookHandlerTestSuite))
}

func validCreateBookRequest() reqdto.CreateBookRequest {
	return reqdto.CreateBookRequest{
		Title:    "The Go Programming Language",
		Author:   "Alan Donovan",
		Category: "software",
		Details:  "The reference",
		Price:    "350",
		Stock:    3,
		PhotoURL: "https://example.com/cover.jpg",
	}
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *BookHandlerTestSuite) TestCreate() {
	url := "/books"
	reqBody := validCreateBookRequest()

	s.Run("success: returns 201 Created with Location header", func() {
		bookID := uuid.New()
		s.mockCommands.EXPECT().CreateBook(gomock.Any(), gomock.Any(), s.userID).
			Return(&commands.CreateBookResult{BookID: bookID}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var body map[string]string
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(bookID.String(), body["id"])
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Location": "/api/books/" + bookID.String()})
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{"missing title", testutil.Field("title", nil)},
			{"title too long", testutil.Field("title", strings.Repeat("a", 201))},
			{"missing author", testutil.Field("author", nil)},
			{"missing price", testutil.Field("price", nil)},
			{"negative stock", testutil.Field("stock", -1)},
			{"photo_url not a URL", testutil.Field("photo_url", "not-a-url")},
		}

		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})

	s.Run("error: 422 Unprocessable Entity on a bad price string", func() {
		s.mockCommands.EXPECT().CreateBook(gomock.Any(), gomock.Any(), s.userID).
			Return(nil, commands.ErrInvalidPrice).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Invalid price")
	})

	s.Run("error: 401 Unauthorized without token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}

// ================================================================================
// TestUpdate / TestDelete
// ================================================================================

func (s *BookHandlerTestSuite) TestUpdate() {
	bookID := uuid.New()
	url := "/books/" + bookID.String()
	reqBody := reqdto.UpdateBookRequest(validCreateBookRequest())

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().UpdateBook(gomock.Any(), bookID, gomock.Any(), s.userID, user.RoleCustomer.String()).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 404 Not Found for a missing book", func() {
		s.mockCommands.EXPECT().UpdateBook(gomock.Any(), bookID, gomock.Any(), s.userID, gomock.Any()).
			Return(commands.ErrBookNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Book not found")
	})

	s.Run("error: 403 Forbidden when the actor does not own the listing", func() {
		s.mockCommands.EXPECT().UpdateBook(gomock.Any(), bookID, gomock.Any(), s.userID, gomock.Any()).
			Return(commands.ErrBookNotOwned).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "not owned")
	})
}

func (s *BookHandlerTestSuite) TestDelete() {
	bookID := uuid.New()
	url := "/books/" + bookID.String()

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().DeleteBook(gomock.Any(), bookID, s.userID, user.RoleCustomer.String()).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 403 Forbidden for a foreign listing", func() {
		s.mockCommands.EXPECT().DeleteBook(gomock.Any(), bookID, s.userID, gomock.Any()).
			Return(commands.ErrBookNotOwned).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "not owned")
	})
}

// ================================================================================
// TestList / TestGet
// ================================================================================

func (s *BookHandlerTestSuite) TestList() {
	s.Run("success: query params become search filters", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), queries.BookSearch{Keyword: "go", Category: "software"}).
			Return([]*queries.BookListItem{}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/books?q=go&category=software", nil, "")

		var body []*resdto.BookListItemResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Empty(body)
	})

	s.Run("success: mine endpoint lists only own books", func() {
		items := []*queries.BookListItem{
			{
				ID:        uuid.New(),
				Title:     "Mine",
				Author:    "Me",
				Category:  "software",
				Price:     10000,
				Stock:     2,
				PhotoURL:  "https://example.com/cover.jpg",
				CreatedAt: time.Now(),
			},
		}
		s.mockQueries.EXPECT().ListByCreator(gomock.Any(), s.userID).
			Return(items, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/books/mine", nil, "bearer-token")

		var body []*resdto.BookListItemResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body, 1)
		s.Equal("Mine", body[0].Title)
	})
}

func (s *BookHandlerTestSuite) TestGet() {
	bookID := uuid.New()

	s.Run("success: returns the full book view", func() {
		view := &queries.BookView{
			ID:        bookID,
			Title:     "The Go Programming Language",
			Author:    "Alan Donovan",
			Category:  "software",
			Details:   "The reference",
			Price:     35000,
			Stock:     3,
			PhotoURL:  "https://example.com/cover.jpg",
			CreatedBy: s.userID,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		s.mockQueries.EXPECT().GetByID(gomock.Any(), bookID).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/books/"+bookID.String(), nil, "")

		var body resdto.BookResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(bookID.String(), body.ID)
		s.Equal(int64(35000), body.PriceCents)
	})

	s.Run("error: 404 Not Found for an unknown ID", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), bookID).
			Return(nil, errors.New("book not found")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/books/"+bookID.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Book not found")
	})
}
