package option

import (
	"github.com/rfernando-oulu/eComSync/internal/option/repository"
	"github.com/rfernando-oulu/eComSync/internal/option/service"
	"go.uber.org/fx"
)

var Module = fx.Module("option.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
