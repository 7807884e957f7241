package manufacturer

import (
	"github.com/rfernando-oulu/eComSync/internal/manufacturer/repository"
	"github.com/rfernando-oulu/eComSync/internal/manufacturer/service"
	"go.uber.org/fx"
)

var Module = fx.Module("manufacturer.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
