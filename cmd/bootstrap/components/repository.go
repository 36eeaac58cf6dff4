package components

import (
	"offers-service/internal/infra/repository"
	"offers-service/internal/usecase/commands"
	"offers-service/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewDBTX,
		// One repository serves both the write-side and read-side ports
		fx.Annotate(
			repository.NewOfferRepository,
			fx.As(new(commands.OfferStore)),
			fx.As(new(queries.OfferReadStore)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) repository.DBTX {
	return pool
}
