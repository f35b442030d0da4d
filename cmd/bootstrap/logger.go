package bootstrap

import (
	"log/slog"

	"github.com/abdulsamad100/books-cave-api/internal/handler/middleware"
	"github.com/abdulsamad100/books-cave-api/internal/pkg/config"

	"go.uber.org/fx"
)

var LoggerModule = fx.Module("logger",
	fx.Provide(
		NewLogger,
	),
)

// NewLogger hands out the same slog instance the request logger installs as
// the process default, so lifecycle and request logs share one configuration.
func NewLogger(cfg config.Config) *slog.Logger {
	return middleware.NewLogger(cfg.Log).GetSlogLogger()
}
