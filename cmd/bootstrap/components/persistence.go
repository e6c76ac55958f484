package components

import (
	"cardshop/internal/infra/readstore"
	sqlc "cardshop/internal/infra/sqlc/generated"
	"cardshop/internal/infra/uow"
	"cardshop/internal/usecase/queries"
	"cardshop/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	repositoryModule,
)

var baseOption = fx.Provide(
	NewSQLQueries,
	NewDBTX,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		// Inventory
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.InventoryReadQueries)),
		),
		fx.Annotate(
			readstore.NewInventoryReadStore,
			fx.As(new(queries.InventoryReadStore)),
		),
		// Reservation
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.ReservationReadQueries)),
		),
		fx.Annotate(
			readstore.NewReservationReadStore,
			fx.As(new(queries.ReservationReadStore)),
		),
		// Order
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.OrderReadQueries)),
		),
		fx.Annotate(
			readstore.NewOrderReadStore,
			fx.As(new(queries.OrderReadStore)),
		),
	),
)

// Write repositories are created per transaction inside the unit of work.
var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(shared.UnitOfWork)),
		),
	),
)

func NewSQLQueries(_ *pgxpool.Pool) *sqlc.Queries {
	return sqlc.New()
}

func NewDBTX(pool *pgxpool.Pool) sqlc.DBTX {
	return pool
}
