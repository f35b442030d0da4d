package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"github.com/abdulsamad100/books-cave-api/internal/infra/db"
	"github.com/abdulsamad100/books-cave-api/internal/infra/readstore"
	"github.com/abdulsamad100/books-cave-api/internal/infra/repository"
	"github.com/abdulsamad100/books-cave-api/internal/pkg/errs"
	"github.com/abdulsamad100/books-cave-api/internal/usecase/queries"
	"github.com/abdulsamad100/books-cave-api/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type PostgresUoW struct {
	pool *pgxpool.Pool
}

func NewPostgresUoW(pool *pgxpool.Pool) shared.UnitOfWork {
	return &PostgresUoW{
		pool: pool,
	}
}

// ReadCommitted prevents dirty reads while allowing concurrent writes
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

// Read-only transaction for consistent multi-table snapshots
func (u *PostgresUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return u.runReadOnlyTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly}, fn)
}

func (u *PostgresUoW) WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, u.pool)
}

func (u *PostgresUoW) CommandReads() shared.CommandReads {
	return &commandReads{dbtx: u.pool}
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runInTxWithOptions(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	const maxRetries = 3
	base := 100 * time.Millisecond

	for attempt := 0; attempt <= maxRetries; attempt++ {
		pgxTx, err := u.pool.BeginTx(ctx, options)
		if err != nil {
			return errs.Mark(err, errTransactionBegin)
		}

		tx := &pgTx{
			dbtx: pgxTx,
		}

		err = fn(ctx, tx)
		if err == nil {
			if err = pgxTx.Commit(ctx); err == nil {
				return nil
			}
			err = errs.Mark(err, errTransactionCommit)
		}

		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
			}
		}

		if !shouldRetry(err, attempt, maxRetries) {
			if attempt == maxRetries {
				slog.Error("transaction failed after max retries",
					"attempts", attempt+1,
					"error", err.Error())
				return errs.Mark(err, errMaxRetriesExceeded)
			}
			return err
		}

		waitTime := calculateBackoff(attempt, base)

		slog.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return errMaxRetriesExceeded
}

func (u *PostgresUoW) runReadOnlyTx(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, options)
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}

	defer func() {
		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("failed to rollback read-only transaction", "error", rollbackErr.Error())
			}
		}
	}()

	if err := fn(ctx, pgxTx); err != nil {
		return err
	}

	return pgxTx.Commit(ctx)
}

func shouldRetry(err error, attempt, maxRetries int) bool {
	return isRetryableError(err) && attempt < maxRetries
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	return int64(uval) % n
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}

type pgTx struct {
	dbtx db.DBTX

	// Lazy-initialized repositories
	bookRepo         shared.BookRepository
	cartLineRepo     shared.CartLineRepository
	purchaseRepo     shared.PurchaseRepository
	userRepo         shared.UserRepository
	notificationRepo shared.NotificationRepository
	commandReads     shared.CommandReads
}

func (t *pgTx) DB() db.DBTX {
	return t.dbtx
}

func (t *pgTx) Books() shared.BookRepository {
	if t.bookRepo == nil {
		t.bookRepo = repository.NewBookRepository(t.dbtx)
	}
	return t.bookRepo
}

func (t *pgTx) CartLines() shared.CartLineRepository {
	if t.cartLineRepo == nil {
		t.cartLineRepo = repository.NewCartLineRepository(t.dbtx)
	}
	return t.cartLineRepo
}

func (t *pgTx) Purchases() shared.PurchaseRepository {
	if t.purchaseRepo == nil {
		t.purchaseRepo = repository.NewPurchaseRepository(t.dbtx)
	}
	return t.purchaseRepo
}

func (t *pgTx) Users() shared.UserRepository {
	if t.userRepo == nil {
		t.userRepo = repository.NewUserRepository(t.dbtx)
	}
	return t.userRepo
}

func (t *pgTx) Notifications() shared.NotificationRepository {
	if t.notificationRepo == nil {
		t.notificationRepo = repository.NewNotificationRepository(t.dbtx)
	}
	return t.notificationRepo
}

func (t *pgTx) Reads() shared.CommandReads {
	if t.commandReads == nil {
		t.commandReads = &commandReads{dbtx: t.dbtx}
	}
	return t.commandReads
}

type commandReads struct {
	dbtx db.DBTX

	// Lazy-initialized readstores
	bookStore     *readstore.BookReadStore
	cartStore     *readstore.CartReadStore
	purchaseStore *readstore.PurchaseReadStore
	userStore     *readstore.UserReadStore
}

func (r *commandReads) BookByID(ctx context.Context, id uuid.UUID) (*shared.BookSnapshot, error) {
	if r.bookStore == nil {
		r.bookStore = readstore.NewBookReadStore(r.dbtx)
	}

	view, err := r.bookStore.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	snapshot := &shared.BookSnapshot{
		ID:         view.ID,
		Title:      view.Title,
		Author:     view.Author,
		Category:   view.Category,
		PriceCents: view.Price,
		Stock:      view.Stock,
		PhotoURL:   view.PhotoURL,
		CreatedBy:  view.CreatedBy,
	}
	return snapshot, nil
}

func (r *commandReads) CartLinesByUser(ctx context.Context, userID uuid.UUID) ([]*shared.CartLineSnapshot, error) {
	views, err := r.carts().FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return cartLineSnapshots(views), nil
}

func (r *commandReads) LockCartLinesByUser(ctx context.Context, userID uuid.UUID) ([]*shared.CartLineSnapshot, error) {
	views, err := r.carts().LockByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return cartLineSnapshots(views), nil
}

func (r *commandReads) carts() *readstore.CartReadStore {
	if r.cartStore == nil {
		r.cartStore = readstore.NewCartReadStore(r.dbtx)
	}
	return r.cartStore
}

func cartLineSnapshots(views []*queries.CartLineView) []*shared.CartLineSnapshot {
	snapshots := make([]*shared.CartLineSnapshot, len(views))
	for i, view := range views {
		snapshots[i] = &shared.CartLineSnapshot{
			ID:             view.ID,
			ProductID:      view.ProductID,
			ProductName:    view.ProductName,
			UnitPriceCents: view.UnitPrice,
			Quantity:       view.Quantity,
			PhotoURL:       view.PhotoURL,
			CreatedAt:      view.CreatedAt,
		}
	}
	return snapshots
}

func (r *commandReads) PurchaseByCartKey(ctx context.Context, userID uuid.UUID, cartKey string) (*shared.PurchaseSnapshot, error) {
	if r.purchaseStore == nil {
		r.purchaseStore = readstore.NewPurchaseReadStore(r.dbtx)
	}

	view, lineIDs, err := r.purchaseStore.FindByCartKey(ctx, userID, cartKey)
	if err != nil {
		return nil, err
	}

	snapshot := &shared.PurchaseSnapshot{
		ID:         view.ID,
		CartKey:    cartKey,
		TotalCents: view.Total,
		LineIDs:    lineIDs,
		CreatedAt:  view.CreatedAt,
	}
	return snapshot, nil
}

func (r *commandReads) UserByEmail(ctx context.Context, email string) (*shared.UserSnapshot, error) {
	if r.userStore == nil {
		r.userStore = readstore.NewUserReadStore(r.dbtx)
	}

	view, passwordHash, err := r.userStore.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	snapshot := &shared.UserSnapshot{
		ID:           view.ID,
		Email:        view.Email,
		DisplayName:  view.DisplayName,
		Role:         view.Role,
		PasswordHash: passwordHash,
		IsActive:     view.IsActive,
	}
	return snapshot, nil
}
