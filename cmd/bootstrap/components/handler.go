package components

import (
	"offers-service/internal/handler"
	"offers-service/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewOfferHandler,
	),
	fx.Invoke(handler.NewRouter),
)
