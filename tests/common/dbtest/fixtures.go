//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// bcrypt hash of "password123"
const testPasswordHash = "$2a$12$uhAjVE9f92IGYv3E25pJNetg.27lVt0p7jmLWjqjmhOg92ldPS0A."

func CreateTestUser(t *testing.T, db DBLike, email, displayName, role string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx, `INSERT INTO users (id, email, password_hash, display_name, role, is_active)
		VALUES ($1, $2, $3, $4, $5, true) ON CONFLICT (email) DO NOTHING`,
		userID, email, testPasswordHash, displayName, role)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID)
	}

	return userID
}

func CreateTestBook(t *testing.T, db DBLike, title string, priceCents int64, stock int, createdBy uuid.UUID) uuid.UUID {
	t.Helper()

	bookID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx, `INSERT INTO books (id, title, author, category, details, price_cents, stock, photo_url, created_by)
		VALUES ($1, $2, 'Test Author', 'fiction', 'A book used in tests', $3, $4, 'https://example.com/cover.jpg', $5)`,
		bookID, title, priceCents, stock, createdBy)
	require.NoError(t, err)

	return bookID
}

func InsertCartLine(t *testing.T, db DBLike, lineID, userID uuid.UUID, buyerName string, productID uuid.UUID, productName string, priceCents int64) {
	t.Helper()

	_, err := db.Exec(context.Background(), `INSERT INTO cart_lines
		(id, created_for, buyer_name, product_id, product_name, product_price_cents, quantity, photo_url)
		VALUES ($1, $2, $3, $4, $5, $6, 1, 'https://example.com/cover.jpg')`,
		lineID, userID, buyerName, productID, productName, priceCents)
	require.NoError(t, err)
}

func GetBookStock(t *testing.T, db DBLike, bookID uuid.UUID) int {
	t.Helper()

	var stock int
	err := db.QueryRow(context.Background(), "SELECT stock FROM books WHERE id = $1", bookID).Scan(&stock)
	require.NoError(t, err)
	return stock
}

func CountCartLines(t *testing.T, db DBLike, userID uuid.UUID) int {
	t.Helper()

	var count int
	err := db.QueryRow(context.Background(), "SELECT count(*) FROM cart_lines WHERE created_for = $1", userID).Scan(&count)
	require.NoError(t, err)
	return count
}

func CountPurchases(t *testing.T, db DBLike, userID uuid.UUID) int {
	t.Helper()

	var count int
	err := db.QueryRow(context.Background(), "SELECT count(*) FROM purchases WHERE buyer_id = $1", userID).Scan(&count)
	require.NoError(t, err)
	return count
}

func CountNotificationJobs(t *testing.T, db DBLike, topic string) int {
	t.Helper()

	var count int
	err := db.QueryRow(context.Background(), "SELECT count(*) FROM notification_jobs WHERE topic = $1", topic).Scan(&count)
	require.NoError(t, err)
	return count
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables between subtests
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return nil
}
