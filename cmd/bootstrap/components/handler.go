package components

import (
	"github.com/abdulsamad100/books-cave-api/internal/handler"
	"github.com/abdulsamad100/books-cave-api/internal/handler/api"
	"github.com/abdulsamad100/books-cave-api/internal/handler/middleware"
	"github.com/abdulsamad100/books-cave-api/internal/pkg/config"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		NewCookieConfig,
		api.NewAuthHandler,
		api.NewBookHandler,
		api.NewCartHandler,
		api.NewCheckoutHandler,
		api.NewHistoryHandler,
		NewHandlers,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)

func NewCookieConfig(cfg config.Config) config.CookieConfig {
	return cfg.Cookie
}

func NewHandlers(
	auth *api.AuthHandler,
	book *api.BookHandler,
	cart *api.CartHandler,
	checkout *api.CheckoutHandler,
	history *api.HistoryHandler,
) handler.Handlers {
	return handler.Handlers{
		Auth:     auth,
		Book:     book,
		Cart:     cart,
		Checkout: checkout,
		History:  history,
	}
}
