package components

import (
	"voucher-engine/internal/pkg/clock"
	"voucher-engine/internal/usecase/commands"
	"voucher-engine/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,
		commands.NewVoucherCommands,
		queries.NewVoucherQueries,
	),
)
