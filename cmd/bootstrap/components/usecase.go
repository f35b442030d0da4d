package components

import (
	"github.com/abdulsamad100/books-cave-api/internal/pkg/clock"
	"github.com/abdulsamad100/books-cave-api/internal/usecase"
	"github.com/abdulsamad100/books-cave-api/internal/usecase/commands"
	"github.com/abdulsamad100/books-cave-api/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewBookUseCase,
		commands.NewCartUseCase,
		commands.NewCheckoutUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewUserQueries,
		queries.NewBookQueries,
		queries.NewCartQueries,
		queries.NewHistoryQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
