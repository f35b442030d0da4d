//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/abdulsamad100/books-cave-api/internal/domain/cart"
	"github.com/abdulsamad100/books-cave-api/internal/domain/purchase"
	"github.com/abdulsamad100/books-cave-api/internal/infra"
	"github.com/abdulsamad100/books-cave-api/internal/infra/db"
	"github.com/abdulsamad100/books-cave-api/internal/pkg/clock"
	"github.com/abdulsamad100/books-cave-api/internal/usecase/commands"
	"github.com/abdulsamad100/books-cave-api/internal/usecase/queries"
	"github.com/abdulsamad100/books-cave-api/internal/usecase/shared"
	queriesmock "github.com/abdulsamad100/books-cave-api/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

var errUnexpectedCall = errors.New("unexpected call")

// Reads bound to the purchase transaction. Lines must be taken from here
// under row locks, never from the pool-level reads.
type fakeTxReads struct {
	lines     []*shared.CartLineSnapshot
	lockCalls int
}

func (r *fakeTxReads) BookByID(context.Context, uuid.UUID) (*shared.BookSnapshot, error) {
	return nil, errUnexpectedCall
}

func (r *fakeTxReads) CartLinesByUser(context.Context, uuid.UUID) ([]*shared.CartLineSnapshot, error) {
	return nil, errUnexpectedCall
}

func (r *fakeTxReads) LockCartLinesByUser(context.Context, uuid.UUID) ([]*shared.CartLineSnapshot, error) {
	r.lockCalls++
	return r.lines, nil
}

func (r *fakeTxReads) PurchaseByCartKey(context.Context, uuid.UUID, string) (*shared.PurchaseSnapshot, error) {
	return nil, errUnexpectedCall
}

func (r *fakeTxReads) UserByEmail(context.Context, string) (*shared.UserSnapshot, error) {
	return nil, errUnexpectedCall
}

// Pool-level reads outside any transaction. Only the replay lookup is
// expected here.
type fakePoolReads struct {
	snapshot   *shared.PurchaseSnapshot
	gotCartKey string
}

func (r *fakePoolReads) BookByID(context.Context, uuid.UUID) (*shared.BookSnapshot, error) {
	return nil, errUnexpectedCall
}

func (r *fakePoolReads) CartLinesByUser(context.Context, uuid.UUID) ([]*shared.CartLineSnapshot, error) {
	return nil, errUnexpectedCall
}

func (r *fakePoolReads) LockCartLinesByUser(context.Context, uuid.UUID) ([]*shared.CartLineSnapshot, error) {
	return nil, errUnexpectedCall
}

func (r *fakePoolReads) PurchaseByCartKey(_ context.Context, _ uuid.UUID, cartKey string) (*shared.PurchaseSnapshot, error) {
	r.gotCartKey = cartKey
	if r.snapshot == nil {
		return nil, errUnexpectedCall
	}
	return r.snapshot, nil
}

func (r *fakePoolReads) UserByEmail(context.Context, string) (*shared.UserSnapshot, error) {
	return nil, errUnexpectedCall
}

type fakePurchaseRepo struct {
	created   []*purchase.Purchase
	createErr error
}

func (p *fakePurchaseRepo) Create(_ context.Context, _ db.DBTX, entity *purchase.Purchase) (uuid.UUID, error) {
	if p.createErr != nil {
		return uuid.Nil, p.createErr
	}
	p.created = append(p.created, entity)
	return entity.ID(), nil
}

type fakeCartLineRepo struct {
	deleted   [][]uuid.UUID
	deleteErr error
}

func (c *fakeCartLineRepo) Create(context.Context, db.DBTX, *cart.Line) (uuid.UUID, error) {
	return uuid.Nil, errUnexpectedCall
}

func (c *fakeCartLineRepo) DeleteOwned(context.Context, db.DBTX, uuid.UUID, uuid.UUID) (uuid.UUID, error) {
	return uuid.Nil, errUnexpectedCall
}

func (c *fakeCartLineRepo) DeleteByIDs(_ context.Context, _ db.DBTX, _ uuid.UUID, lineIDs []uuid.UUID) error {
	if c.deleteErr != nil {
		return c.deleteErr
	}
	c.deleted = append(c.deleted, lineIDs)
	return nil
}

type fakeNotificationRepo struct {
	topics []string
}

func (n *fakeNotificationRepo) CreateJob(_ context.Context, _ db.DBTX, _, topic string, _ []byte, _ time.Time) error {
	n.topics = append(n.topics, topic)
	return nil
}

type fakeTx struct {
	reads         *fakeTxReads
	purchases     *fakePurchaseRepo
	cartLines     *fakeCartLineRepo
	notifications *fakeNotificationRepo
}

func (t *fakeTx) Books() shared.BookRepository                 { return nil }
func (t *fakeTx) CartLines() shared.CartLineRepository         { return t.cartLines }
func (t *fakeTx) Purchases() shared.PurchaseRepository         { return t.purchases }
func (t *fakeTx) Users() shared.UserRepository                 { return nil }
func (t *fakeTx) Notifications() shared.NotificationRepository { return t.notifications }
func (t *fakeTx) Reads() shared.CommandReads                   { return t.reads }
func (t *fakeTx) DB() db.DBTX                                  { return nil }

type fakeUoW struct {
	tx   *fakeTx
	pool *fakePoolReads
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, u.tx)
}

func (u *fakeUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *fakeUoW) WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *fakeUoW) CommandReads() shared.CommandReads { return u.pool }

type CheckoutUseCaseSuite struct {
	suite.Suite
	mockCtrl  *gomock.Controller
	readStore *queriesmock.MockUserReadStore
	uow       *fakeUoW
	uc        commands.CheckoutCommands
	userID    uuid.UUID
	lineIDs   []uuid.UUID
}

func TestCheckoutUseCaseSuite(t *testing.T) {
	suite.Run(t, new(CheckoutUseCaseSuite))
}

func (s *CheckoutUseCaseSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.readStore = queriesmock.NewMockUserReadStore(s.mockCtrl)
	s.userID = uuid.New()
	s.lineIDs = []uuid.UUID{uuid.New(), uuid.New()}

	lines := []*shared.CartLineSnapshot{
		{
			ID:             s.lineIDs[0],
			ProductID:      uuid.New(),
			ProductName:    "Clean Architecture",
			UnitPriceCents: 10000,
			Quantity:       1,
			CreatedAt:      time.Now(),
		},
		{
			ID:             s.lineIDs[1],
			ProductID:      uuid.New(),
			ProductName:    "The Pragmatic Programmer",
			UnitPriceCents: 25050,
			Quantity:       1,
			CreatedAt:      time.Now(),
		},
	}

	s.uow = &fakeUoW{
		tx: &fakeTx{
			reads:         &fakeTxReads{lines: lines},
			purchases:     &fakePurchaseRepo{},
			cartLines:     &fakeCartLineRepo{},
			notifications: &fakeNotificationRepo{},
		},
		pool: &fakePoolReads{},
	}

	clk := clock.NewMockClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	s.uc = commands.NewCheckoutUseCase(s.uow, s.readStore, clk)
}

func (s *CheckoutUseCaseSuite) expectBuyer() {
	s.readStore.EXPECT().FindByID(gomock.Any(), s.userID).
		Return(&queries.AuthorizedUserView{
			ID:          s.userID,
			Email:       "buyer@example.com",
			DisplayName: "Buyer",
			Role:        queries.RoleCustomer,
			IsActive:    true,
		}, nil)
}

func (s *CheckoutUseCaseSuite) TestChargesLinesReadInsideTransaction() {
	s.expectBuyer()

	result, err := s.uc.Checkout(context.Background(), s.userID, "350.50")
	require.NoError(s.T(), err)

	s.Equal(int64(35050), result.TotalCents)
	s.False(result.IsReplayed)
	s.Equal(1, s.uow.tx.reads.lockCalls, "Lines come from the locked in-transaction read")
	s.Len(s.uow.tx.purchases.created, 1)
	s.Equal([]string{"purchase_completed"}, s.uow.tx.notifications.topics)
	s.Equal([][]uuid.UUID{s.lineIDs}, s.uow.tx.cartLines.deleted)
}

func (s *CheckoutUseCaseSuite) TestAmountMismatchAbortsBeforePurchase() {
	s.expectBuyer()

	_, err := s.uc.Checkout(context.Background(), s.userID, "350.49")
	require.ErrorIs(s.T(), err, commands.ErrAmountMismatch)

	s.Empty(s.uow.tx.purchases.created)
	s.Empty(s.uow.tx.cartLines.deleted)
}

func (s *CheckoutUseCaseSuite) TestEmptyCartIsRejected() {
	s.expectBuyer()
	s.uow.tx.reads.lines = nil

	_, err := s.uc.Checkout(context.Background(), s.userID, "350.50")
	require.ErrorIs(s.T(), err, commands.ErrEmptyCart)
}

func (s *CheckoutUseCaseSuite) TestDuplicateCartKeyReplaysRecordedPurchase() {
	s.expectBuyer()

	recordedID := uuid.New()
	leftover := []uuid.UUID{s.lineIDs[0]}
	s.uow.tx.purchases.createErr = infra.WrapRepoErr(
		"purchase already recorded", errors.New("duplicate key value"), infra.KindDuplicateKey)
	s.uow.pool.snapshot = &shared.PurchaseSnapshot{
		ID:         recordedID,
		TotalCents: 35050,
		LineIDs:    leftover,
	}

	result, err := s.uc.Checkout(context.Background(), s.userID, "350.50")
	require.NoError(s.T(), err)

	s.True(result.IsReplayed)
	s.Equal(recordedID, result.PurchaseID)
	s.Equal(int64(35050), result.TotalCents)
	s.Equal(purchase.CartKey(s.lineIDs), s.uow.pool.gotCartKey)
	s.Equal([][]uuid.UUID{leftover}, s.uow.tx.cartLines.deleted,
		"Replay clears the lines the recorded purchase charged for")
}

func (s *CheckoutUseCaseSuite) TestFailedCleanupKeepsPurchase() {
	s.expectBuyer()
	s.uow.tx.cartLines.deleteErr = errors.New("connection reset")

	_, err := s.uc.Checkout(context.Background(), s.userID, "350.50")
	require.ErrorIs(s.T(), err, commands.ErrCartNotCleared)

	s.Len(s.uow.tx.purchases.created, 1, "The purchase record outlives the failed cleanup")
}

func (s *CheckoutUseCaseSuite) TestMissingBuyerIsNotFound() {
	s.readStore.EXPECT().FindByID(gomock.Any(), s.userID).
		Return(nil, infra.WrapRepoErr("user not found", errors.New("no rows"), infra.KindNotFound))

	_, err := s.uc.Checkout(context.Background(), s.userID, "350.50")
	require.ErrorIs(s.T(), err, commands.ErrUserNotFound)
}
