package product

import (
	"github.com/rfernando-oulu/eComSync/internal/product/repository"
	"github.com/rfernando-oulu/eComSync/internal/product/service"
	"go.uber.org/fx"
)

var Module = fx.Module("product.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
