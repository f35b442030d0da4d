package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/abdulsamad100/books-cave-api/internal/handler/api"
	"github.com/abdulsamad100/books-cave-api/internal/handler/middleware"
	"github.com/abdulsamad100/books-cave-api/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Auth     *api.AuthHandler
	Book     *api.BookHandler
	Cart     *api.CartHandler
	Checkout *api.CheckoutHandler
	History  *api.HistoryHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, handlers Handlers, authMiddleware *middleware.AuthMiddleware, cacheClient *redis.Client) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, cfg, handlers, authMiddleware, cacheClient)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, cfg config.Config, handlers Handlers, authMiddleware *middleware.AuthMiddleware, cacheClient *redis.Client) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	listCache := middleware.NewResponseCache(cfg.Redis, cacheClient)

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/register", Handler: handlers.Auth.Register},
				{Method: http.MethodPost, Path: "/login", Handler: handlers.Auth.Login},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: handlers.Auth.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: handlers.Auth.Me},
			})
		}

		books := apiGroup.Group("/books")
		{
			// The cache middleware wraps the writer, so it has to sit in
			// gin's own chain rather than go through chainHandlers.
			booksCached := books.Group("")
			booksCached.Use(listCache)
			addRoutes(booksCached, []route{
				{Method: http.MethodGet, Path: "", Handler: handlers.Book.List},
			})

			addRoutes(books, []route{
				{Method: http.MethodGet, Path: "/:id", Handler: handlers.Book.Get},
			})

			booksAuth := books.Group("")
			booksAuth.Use(authMiddleware.RequireAuth())
			addRoutes(booksAuth, []route{
				{Method: http.MethodGet, Path: "/mine", Handler: handlers.Book.ListMine},
				{Method: http.MethodPost, Path: "", Handler: handlers.Book.Create},
				{Method: http.MethodPut, Path: "/:id", Handler: handlers.Book.Update},
				{Method: http.MethodDelete, Path: "/:id", Handler: handlers.Book.Delete},
			})
		}

		cart := apiGroup.Group("/cart")
		cart.Use(authMiddleware.RequireAuth())
		{
			addRoutes(cart, []route{
				{Method: http.MethodPost, Path: "", Handler: handlers.Cart.AddToCart},
				{Method: http.MethodGet, Path: "", Handler: handlers.Cart.GetCart},
				{Method: http.MethodGet, Path: "/count", Handler: handlers.Cart.GetCartCount},
				{Method: http.MethodDelete, Path: "/:id", Handler: handlers.Cart.RemoveLine},
			})
		}

		checkout := apiGroup.Group("/checkout")
		checkout.Use(authMiddleware.RequireAuth())
		{
			addRoutes(checkout, []route{
				{Method: http.MethodPost, Path: "", Handler: handlers.Checkout.Checkout},
			})
		}

		history := apiGroup.Group("/history")
		history.Use(authMiddleware.RequireAuth())
		{
			addRoutes(history, []route{
				{Method: http.MethodGet, Path: "", Handler: handlers.History.List},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
