package shared

import (
	"context"
	"time"

	"github.com/abdulsamad100/books-cave-api/internal/domain/book"
	"github.com/abdulsamad100/books-cave-api/internal/domain/cart"
	"github.com/abdulsamad100/books-cave-api/internal/domain/purchase"
	"github.com/abdulsamad100/books-cave-api/internal/domain/user"
	"github.com/abdulsamad100/books-cave-api/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Books() BookRepository
	CartLines() CartLineRepository
	Purchases() PurchaseRepository
	Users() UserRepository
	Notifications() NotificationRepository
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	BookByID(ctx context.Context, id uuid.UUID) (*BookSnapshot, error)
	CartLinesByUser(ctx context.Context, userID uuid.UUID) ([]*CartLineSnapshot, error)
	// LockCartLinesByUser reads the lines under row locks; use inside a
	// transaction when the lines must not change before it commits.
	LockCartLinesByUser(ctx context.Context, userID uuid.UUID) ([]*CartLineSnapshot, error)
	PurchaseByCartKey(ctx context.Context, userID uuid.UUID, cartKey string) (*PurchaseSnapshot, error)
	UserByEmail(ctx context.Context, email string) (*UserSnapshot, error)
}

type BookRepository interface {
	Create(ctx context.Context, tx db.DBTX, b *book.Book) (uuid.UUID, error)
	Update(ctx context.Context, tx db.DBTX, bookID uuid.UUID, b *book.Book) error
	Delete(ctx context.Context, tx db.DBTX, bookID uuid.UUID) error
	// DecrementStock takes one unit only when stock remains; a sold-out row
	// is reported as KindCheckViolated, a missing row as KindNotFound.
	DecrementStock(ctx context.Context, tx db.DBTX, bookID uuid.UUID) error
	// IncrementStock returns one unit; a missing row is not an error since
	// the listing may have been removed while the unit sat in a cart.
	IncrementStock(ctx context.Context, tx db.DBTX, bookID uuid.UUID) error
}

type CartLineRepository interface {
	Create(ctx context.Context, tx db.DBTX, line *cart.Line) (uuid.UUID, error)
	// DeleteOwned removes the line only when it belongs to userID and
	// reports the product it referenced.
	DeleteOwned(ctx context.Context, tx db.DBTX, lineID, userID uuid.UUID) (uuid.UUID, error)
	DeleteByIDs(ctx context.Context, tx db.DBTX, userID uuid.UUID, lineIDs []uuid.UUID) error
}

type PurchaseRepository interface {
	Create(ctx context.Context, tx db.DBTX, p *purchase.Purchase) (uuid.UUID, error)
}

type UserRepository interface {
	Create(ctx context.Context, tx db.DBTX, u *user.User, passwordHash string) (uuid.UUID, error)
	UpdateLastLogin(ctx context.Context, tx db.DBTX, userID uuid.UUID) error
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, tx db.DBTX, kind, topic string, payload []byte, runAt time.Time) error
}
