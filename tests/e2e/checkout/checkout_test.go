//go:build e2e

package checkout_test

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/abdulsamad100/books-cave-api/internal/handler/dto/request"
	"github.com/abdulsamad100/books-cave-api/internal/handler/dto/response"
	"github.com/abdulsamad100/books-cave-api/tests/common/authtest"
	"github.com/abdulsamad100/books-cave-api/tests/common/dbtest"
	"github.com/abdulsamad100/books-cave-api/tests/common/httptest"
	"github.com/abdulsamad100/books-cave-api/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	cartURL     = "/api/cart"
	checkoutURL = "/api/checkout"
	historyURL  = "/api/history"
)

type CheckoutSuite struct {
	e2e.SharedSuite
}

func TestCheckoutSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(CheckoutSuite))
}

func (s *CheckoutSuite) addToCart(t *testing.T, token string, bookID uuid.UUID) string {
	t.Helper()

	w := httptest.PerformRequest(t, s.Router, http.MethodPost, cartURL,
		request.AddToCartRequest{BookID: bookID}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created map[string]string
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
	require.NotEmpty(t, created["id"])
	return created["id"]
}

// =============================================================================
// TestAddToCart - Stock reservation API tests
// =============================================================================

func (s *CheckoutSuite) TestAddToCart() {
	s.Run("Normal case: Adding a book reserves one unit of stock", func() {
		t := s.T()

		seller := dbtest.CreateTestUser(t, s.DB, "seller@example.com", "Seller", "admin")
		bookID := dbtest.CreateTestBook(t, s.DB, "Clean Architecture", 10000, 3, seller)
		token := authtest.CreateAndLogin(t, s.DB, s.Router, "buyer@example.com", "Buyer", "customer")

		s.addToCart(t, token, bookID)

		require.Equal(t, 2, dbtest.GetBookStock(t, s.DB, bookID))
		require.Equal(t, 1, dbtest.CountCartLines(t, s.DB, userIDByEmail(t, s.DB, "buyer@example.com")))
	})

	s.Run("Error case: Reserving the last unit twice returns conflict", func() {
		t := s.T()

		seller := dbtest.CreateTestUser(t, s.DB, "seller@example.com", "Seller", "admin")
		bookID := dbtest.CreateTestBook(t, s.DB, "Last Copy", 10000, 1, seller)
		token := authtest.CreateAndLogin(t, s.DB, s.Router, "buyer@example.com", "Buyer", "customer")

		s.addToCart(t, token, bookID)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, cartURL,
			request.AddToCartRequest{BookID: bookID}, token)
		require.Equal(t, http.StatusConflict, w.Code, "Out of stock should be a conflict")
		require.Equal(t, 0, dbtest.GetBookStock(t, s.DB, bookID))
	})

	s.Run("Normal case: Concurrent reservations never exceed the stock", func() {
		t := s.T()

		const stock = 3
		const attempts = 10

		seller := dbtest.CreateTestUser(t, s.DB, "seller@example.com", "Seller", "admin")
		bookID := dbtest.CreateTestBook(t, s.DB, "Hot Item", 10000, stock, seller)
		token := authtest.CreateAndLogin(t, s.DB, s.Router, "buyer@example.com", "Buyer", "customer")

		codes := make(chan int, attempts)
		var wg sync.WaitGroup
		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				w := httptest.PerformRequest(t, s.Router, http.MethodPost, cartURL,
					request.AddToCartRequest{BookID: bookID}, token)
				codes <- w.Code
			}()
		}
		wg.Wait()
		close(codes)

		var created, conflicted int
		for code := range codes {
			switch code {
			case http.StatusCreated:
				created++
			case http.StatusConflict:
				conflicted++
			default:
				t.Errorf("unexpected status %d", code)
			}
		}

		require.Equal(t, stock, created, "Successes must match the available stock exactly")
		require.Equal(t, attempts-stock, conflicted)
		require.Equal(t, 0, dbtest.GetBookStock(t, s.DB, bookID))
		require.Equal(t, stock, dbtest.CountCartLines(t, s.DB, userIDByEmail(t, s.DB, "buyer@example.com")))
	})

	s.Run("Error case: Unknown book returns not found", func() {
		t := s.T()

		token := authtest.CreateAndLogin(t, s.DB, s.Router, "buyer@example.com", "Buyer", "customer")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, cartURL,
			request.AddToCartRequest{BookID: uuid.New()}, token)
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

// =============================================================================
// TestRemoveFromCart - Stock release API tests
// =============================================================================

func (s *CheckoutSuite) TestRemoveFromCart() {
	s.Run("Normal case: Removing a line returns its unit to stock", func() {
		t := s.T()

		seller := dbtest.CreateTestUser(t, s.DB, "seller@example.com", "Seller", "admin")
		bookID := dbtest.CreateTestBook(t, s.DB, "Returnable", 10000, 1, seller)
		token := authtest.CreateAndLogin(t, s.DB, s.Router, "buyer@example.com", "Buyer", "customer")

		lineID := s.addToCart(t, token, bookID)
		require.Equal(t, 0, dbtest.GetBookStock(t, s.DB, bookID))

		w := httptest.PerformRequest(t, s.Router, http.MethodDelete, cartURL+"/"+lineID, nil, token)
		require.Equal(t, http.StatusNoContent, w.Code)
		require.Equal(t, 1, dbtest.GetBookStock(t, s.DB, bookID))

		// The released unit can be reserved again
		s.addToCart(t, token, bookID)
		require.Equal(t, 0, dbtest.GetBookStock(t, s.DB, bookID))
	})

	s.Run("Error case: Removing another user's line returns not found", func() {
		t := s.T()

		seller := dbtest.CreateTestUser(t, s.DB, "seller@example.com", "Seller", "admin")
		bookID := dbtest.CreateTestBook(t, s.DB, "Private Cart", 10000, 2, seller)
		ownerToken := authtest.CreateAndLogin(t, s.DB, s.Router, "owner@example.com", "Owner", "customer")
		otherToken := authtest.CreateAndLogin(t, s.DB, s.Router, "other@example.com", "Other", "customer")

		lineID := s.addToCart(t, ownerToken, bookID)

		w := httptest.PerformRequest(t, s.Router, http.MethodDelete, cartURL+"/"+lineID, nil, otherToken)
		require.Equal(t, http.StatusNotFound, w.Code)
		require.Equal(t, 1, dbtest.GetBookStock(t, s.DB, bookID), "Stock must not change for a foreign line")
	})
}

// =============================================================================
// TestCheckout - Checkout API tests
// =============================================================================

func (s *CheckoutSuite) TestCheckout() {
	s.Run("Normal case: Reserve, release, reserve again, then checkout", func() {
		t := s.T()

		seller := dbtest.CreateTestUser(t, s.DB, "seller@example.com", "Seller", "admin")
		bookID := dbtest.CreateTestBook(t, s.DB, "The Single Copy", 10000, 1, seller)
		token := authtest.CreateAndLogin(t, s.DB, s.Router, "buyer@example.com", "Buyer", "customer")
		buyerID := userIDByEmail(t, s.DB, "buyer@example.com")

		firstLine := s.addToCart(t, token, bookID)
		w := httptest.PerformRequest(t, s.Router, http.MethodDelete, cartURL+"/"+firstLine, nil, token)
		require.Equal(t, http.StatusNoContent, w.Code)
		s.addToCart(t, token, bookID)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, checkoutURL,
			request.CheckoutRequest{Amount: "100"}, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var res response.CheckoutResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &res))
		require.NotEmpty(t, res.PurchaseID)
		require.Equal(t, int64(10000), res.TotalCents)
		require.False(t, res.Replayed)

		require.Equal(t, 0, dbtest.GetBookStock(t, s.DB, bookID), "Checkout must not return stock")
		require.Equal(t, 0, dbtest.CountCartLines(t, s.DB, buyerID))
		require.Equal(t, 1, dbtest.CountPurchases(t, s.DB, buyerID))
		require.Equal(t, 1, dbtest.CountNotificationJobs(t, s.DB, "purchase_completed"))

		// Purchase shows up in history
		hw := httptest.PerformRequest(t, s.Router, http.MethodGet, historyURL, nil, token)
		require.Equal(t, http.StatusOK, hw.Code)
		var history []*response.PurchaseResponse
		require.NoError(t, httptest.DecodeResponseBody(t, hw.Body, &history))
		require.Len(t, history, 1)
		require.Equal(t, res.PurchaseID, history[0].ID)
		require.Equal(t, "Buyer", history[0].BuyerName)
		require.Len(t, history[0].Items, 1)
		require.Equal(t, "The Single Copy", history[0].Items[0].ProductName)
	})

	s.Run("Error case: Amount mismatch leaves the cart untouched", func() {
		t := s.T()

		seller := dbtest.CreateTestUser(t, s.DB, "seller@example.com", "Seller", "admin")
		bookID := dbtest.CreateTestBook(t, s.DB, "Exact Change Only", 10000, 1, seller)
		token := authtest.CreateAndLogin(t, s.DB, s.Router, "buyer@example.com", "Buyer", "customer")
		buyerID := userIDByEmail(t, s.DB, "buyer@example.com")

		s.addToCart(t, token, bookID)

		for _, amount := range []string{"99.99", "100.01", "0"} {
			w := httptest.PerformRequest(t, s.Router, http.MethodPost, checkoutURL,
				request.CheckoutRequest{Amount: amount}, token)
			require.Equal(t, http.StatusUnprocessableEntity, w.Code, "amount %s must be rejected", amount)
		}

		require.Equal(t, 1, dbtest.CountCartLines(t, s.DB, buyerID))
		require.Equal(t, 0, dbtest.CountPurchases(t, s.DB, buyerID))
	})

	s.Run("Error case: Malformed amount is rejected", func() {
		t := s.T()

		seller := dbtest.CreateTestUser(t, s.DB, "seller@example.com", "Seller", "admin")
		bookID := dbtest.CreateTestBook(t, s.DB, "Numbers Only", 10000, 1, seller)
		token := authtest.CreateAndLogin(t, s.DB, s.Router, "buyer@example.com", "Buyer", "customer")

		s.addToCart(t, token, bookID)

		for _, amount := range []string{"abc", "-100", "100.005", ""} {
			w := httptest.PerformRequest(t, s.Router, http.MethodPost, checkoutURL,
				request.CheckoutRequest{Amount: amount}, token)
			require.Contains(t, []int{http.StatusUnprocessableEntity, http.StatusBadRequest}, w.Code,
				"amount %q must be rejected", amount)
		}
	})

	s.Run("Error case: Empty cart cannot be checked out", func() {
		t := s.T()

		token := authtest.CreateAndLogin(t, s.DB, s.Router, "buyer@example.com", "Buyer", "customer")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, checkoutURL,
			request.CheckoutRequest{Amount: "100"}, token)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	s.Run("Normal case: Retried checkout replays the recorded purchase", func() {
		t := s.T()

		seller := dbtest.CreateTestUser(t, s.DB, "seller@example.com", "Seller", "admin")
		bookID := dbtest.CreateTestBook(t, s.DB, "Replayed", 10000, 1, seller)
		token := authtest.CreateAndLogin(t, s.DB, s.Router, "buyer@example.com", "Buyer", "customer")
		buyerID := userIDByEmail(t, s.DB, "buyer@example.com")

		lineID := s.addToCart(t, token, bookID)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, checkoutURL,
			request.CheckoutRequest{Amount: "100"}, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var first response.CheckoutResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &first))

		// Simulate a retry after the purchase committed but the cart cleanup
		// was lost: put the very same line back and check out again.
		dbtest.InsertCartLine(t, s.DB, uuid.MustParse(lineID), buyerID, "Buyer", bookID, "Replayed", 10000)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, checkoutURL,
			request.CheckoutRequest{Amount: "100"}, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var second response.CheckoutResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &second))
		require.True(t, second.Replayed)
		require.Equal(t, first.PurchaseID, second.PurchaseID, "Retry must land on the same purchase")
		require.Equal(t, 1, dbtest.CountPurchases(t, s.DB, buyerID), "No second purchase row")
		require.Equal(t, 0, dbtest.CountCartLines(t, s.DB, buyerID), "Leftover lines are cleared on replay")
	})

	s.Run("Auth test - Unauthorized when not logged in", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, checkoutURL,
			request.CheckoutRequest{Amount: "100"}, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

// =============================================================================
// TestGetCart - Cart listing API tests
// =============================================================================

func (s *CheckoutSuite) TestGetCart() {
	s.Run("Normal case: Cart lists lines with running total", func() {
		t := s.T()

		seller := dbtest.CreateTestUser(t, s.DB, "seller@example.com", "Seller", "admin")
		book1 := dbtest.CreateTestBook(t, s.DB, "First", 10000, 1, seller)
		book2 := dbtest.CreateTestBook(t, s.DB, "Second", 25050, 1, seller)
		token := authtest.CreateAndLogin(t, s.DB, s.Router, "buyer@example.com", "Buyer", "customer")

		s.addToCart(t, token, book1)
		s.addToCart(t, token, book2)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, cartURL, nil, token)
		require.Equal(t, http.StatusOK, w.Code)

		var cart response.CartResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &cart))
		require.Len(t, cart.Lines, 2)
		require.Equal(t, int64(35050), cart.TotalCents)

		cw := httptest.PerformRequest(t, s.Router, http.MethodGet, cartURL+"/count", nil, token)
		require.Equal(t, http.StatusOK, cw.Code)
		var count response.CartCountResponse
		require.NoError(t, httptest.DecodeResponseBody(t, cw.Body, &count))
		require.Equal(t, 2, count.Count)
	})
}

func userIDByEmail(t *testing.T, db dbtest.DBLike, email string) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := db.QueryRow(context.Background(), "SELECT id FROM users WHERE email = $1", email).Scan(&id)
	require.NoError(t, err)
	return id
}
