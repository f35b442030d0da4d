package components

import (
	"github.com/abdulsamad100/books-cave-api/internal/infra/db"
	"github.com/abdulsamad100/books-cave-api/internal/infra/readstore"
	"github.com/abdulsamad100/books-cave-api/internal/infra/uow"
	"github.com/abdulsamad100/books-cave-api/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		// UnitOfWork owns its write repositories, the pool-backed read
		// stores below serve the query side outside transactions.
		uow.NewPostgresUoW,
		fx.Annotate(
			readstore.NewBookReadStore,
			fx.As(new(queries.BookViewRepo)),
		),
		fx.Annotate(
			readstore.NewCartReadStore,
			fx.As(new(queries.CartViewRepo)),
		),
		fx.Annotate(
			readstore.NewPurchaseReadStore,
			fx.As(new(queries.PurchaseViewRepo)),
		),
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(queries.UserReadStore)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
