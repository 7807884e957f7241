package order

import (
	"github.com/rfernando-oulu/eComSync/internal/order/repository"
	"github.com/rfernando-oulu/eComSync/internal/order/service"
	"go.uber.org/fx"
)

var Module = fx.Module("order.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
