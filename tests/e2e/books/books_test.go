//go:build e2e

package books_test

import (
	"net/http"
	"testing"

	"github.com/abdulsamad100/books-cave-api/internal/handler/dto/request"
	"github.com/abdulsamad100/books-cave-api/internal/handler/dto/response"
	"github.com/abdulsamad100/books-cave-api/tests/common/authtest"
	"github.com/abdulsamad100/books-cave-api/tests/common/dbtest"
	"github.com/abdulsamad100/books-cave-api/tests/common/httptest"
	"github.com/abdulsamad100/books-cave-api/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const booksURL = "/api/books"

type BooksSuite struct {
	e2e.SharedSuite
}

func TestBooksSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(BooksSuite))
}

func createBookRequest(title string) request.CreateBookRequest {
	return request.CreateBookRequest{
		Title:    title,
		Author:   "Robert C. Martin",
		Category: "software",
		Details:  "A book about keeping things tidy",
		Price:    "350",
		Stock:    3,
		PhotoURL: "https://example.com/cover.jpg",
	}
}

func (s *BooksSuite) TestCreateBook() {
	s.Run("Normal case: Listing is created and retrievable", func() {
		t := s.T()

		token := authtest.CreateAndLogin(t, s.DB, s.Router, "seller@example.com", "Seller", "customer")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, booksURL, createBookRequest("Clean Code"), token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created map[string]string
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
		id := created["id"]
		require.NotEmpty(t, id)

		gw := httptest.PerformRequest(t, s.Router, http.MethodGet, booksURL+"/"+id, nil, "")
		require.Equal(t, http.StatusOK, gw.Code)

		var book response.BookResponse
		require.NoError(t, httptest.DecodeResponseBody(t, gw.Body, &book))

		expected := &response.BookResponse{
			Title:      "Clean Code",
			Author:     "Robert C. Martin",
			Category:   "software",
			Details:    "A book about keeping things tidy",
			PriceCents: 35000,
			Stock:      3,
			PhotoURL:   "https://example.com/cover.jpg",
		}
		opts := []cmp.Option{
			cmpopts.IgnoreFields(response.BookResponse{}, "ID", "CreatedBy", "CreatedAt", "UpdatedAt"),
		}
		if diff := cmp.Diff(expected, &book, opts...); diff != "" {
			t.Errorf("Book response mismatch (-want +got):\n%s", diff)
		}
	})

	s.Run("Error case: Bad price string is rejected", func() {
		t := s.T()

		token := authtest.CreateAndLogin(t, s.DB, s.Router, "seller@example.com", "Seller", "customer")

		req := createBookRequest("Free Book")
		req.Price = "-10"
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, booksURL, req, token)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	s.Run("Auth test - Unauthorized when not logged in", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, booksURL, createBookRequest("Nope"), "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func (s *BooksSuite) TestUpdateAndDeleteBook() {
	s.Run("Normal case: Owner can update their listing", func() {
		t := s.T()

		sellerID := dbtest.CreateTestUser(t, s.DB, "seller@example.com", "Seller", "customer")
		bookID := dbtest.CreateTestBook(t, s.DB, "Old Title", 10000, 2, sellerID)
		token := authtest.LoginUser(t, s.Router, "seller@example.com", "password123")

		update := request.UpdateBookRequest{
			Title:    "New Title",
			Author:   "Updated Author",
			Category: "software",
			Details:  "Revised edition",
			Price:    "120.50",
			Stock:    5,
			PhotoURL: "https://example.com/new.jpg",
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodPut, booksURL+"/"+bookID.String(), update, token)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		gw := httptest.PerformRequest(t, s.Router, http.MethodGet, booksURL+"/"+bookID.String(), nil, "")
		require.Equal(t, http.StatusOK, gw.Code)
		var book response.BookResponse
		require.NoError(t, httptest.DecodeResponseBody(t, gw.Body, &book))
		require.Equal(t, "New Title", book.Title)
		require.Equal(t, int64(12050), book.PriceCents)
		require.Equal(t, 5, book.Stock)
	})

	s.Run("Error case: Non-owner cannot modify the listing", func() {
		t := s.T()

		sellerID := dbtest.CreateTestUser(t, s.DB, "seller@example.com", "Seller", "customer")
		bookID := dbtest.CreateTestBook(t, s.DB, "Not Yours", 10000, 2, sellerID)
		otherToken := authtest.CreateAndLogin(t, s.DB, s.Router, "other@example.com", "Other", "customer")

		update := request.UpdateBookRequest{
			Title:    "Hijacked",
			Author:   "Somebody Else",
			Category: "software",
			Details:  "Should never land",
			Price:    "350",
			Stock:    3,
			PhotoURL: "https://example.com/cover.jpg",
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodPut, booksURL+"/"+bookID.String(), update, otherToken)
		require.Equal(t, http.StatusForbidden, w.Code)

		dw := httptest.PerformRequest(t, s.Router, http.MethodDelete, booksURL+"/"+bookID.String(), nil, otherToken)
		require.Equal(t, http.StatusForbidden, dw.Code)
	})

	s.Run("Normal case: Admin can delete any listing", func() {
		t := s.T()

		sellerID := dbtest.CreateTestUser(t, s.DB, "seller@example.com", "Seller", "customer")
		bookID := dbtest.CreateTestBook(t, s.DB, "Removable", 10000, 2, sellerID)
		adminToken := authtest.CreateAndLogin(t, s.DB, s.Router, "admin@example.com", "Admin", "admin")

		w := httptest.PerformRequest(t, s.Router, http.MethodDelete, booksURL+"/"+bookID.String(), nil, adminToken)
		require.Equal(t, http.StatusNoContent, w.Code)

		gw := httptest.PerformRequest(t, s.Router, http.MethodGet, booksURL+"/"+bookID.String(), nil, "")
		require.Equal(t, http.StatusNotFound, gw.Code)
	})
}

func (s *BooksSuite) TestSearchBooks() {
	s.Run("Normal case: Keyword and category filters narrow the list", func() {
		t := s.T()

		sellerID := dbtest.CreateTestUser(t, s.DB, "seller@example.com", "Seller", "customer")
		dbtest.CreateTestBook(t, s.DB, "The Go Programming Language", 10000, 2, sellerID)
		dbtest.CreateTestBook(t, s.DB, "The Rust Programming Language", 10000, 2, sellerID)
		dbtest.CreateTestBook(t, s.DB, "Cooking for Gophers", 10000, 2, sellerID)

		cases := []struct {
			query    string
			expected int
		}{
			{"", 3},
			{"?q=Programming", 2},
			{"?q=go", 2}, // matches title and the cooking pun, ILIKE is case-insensitive
			{"?category=fiction", 3},
			{"?category=nonexistent", 0},
		}

		for _, tc := range cases {
			w := httptest.PerformRequest(t, s.Router, http.MethodGet, booksURL+tc.query, nil, "")
			require.Equal(t, http.StatusOK, w.Code)
			var items []*response.BookListItemResponse
			require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &items))
			require.Len(t, items, tc.expected, "query %q", tc.query)
		}
	})

	s.Run("Normal case: Own listings endpoint filters by creator", func() {
		t := s.T()

		sellerID := dbtest.CreateTestUser(t, s.DB, "seller@example.com", "Seller", "customer")
		otherID := dbtest.CreateTestUser(t, s.DB, "other@example.com", "Other", "customer")
		dbtest.CreateTestBook(t, s.DB, "Mine", 10000, 2, sellerID)
		dbtest.CreateTestBook(t, s.DB, "Theirs", 10000, 2, otherID)

		token := authtest.LoginUser(t, s.Router, "seller@example.com", "password123")
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, booksURL+"/mine", nil, token)
		require.Equal(t, http.StatusOK, w.Code)

		var items []*response.BookListItemResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &items))
		require.Len(t, items, 1)
		require.Equal(t, "Mine", items[0].Title)
	})
}
