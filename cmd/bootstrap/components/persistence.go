package components

import (
	"voucher-engine/internal/infra/db"
	"voucher-engine/internal/infra/readstore"
	"voucher-engine/internal/infra/uow"
	"voucher-engine/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		uow.NewPostgresUoW,
		fx.Annotate(
			readstore.NewVoucherReadStore,
			fx.As(new(queries.VoucherViewRepo)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
