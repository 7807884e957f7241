package apikey

import (
	"github.com/rfernando-oulu/eComSync/internal/apikey/repository"
	"github.com/rfernando-oulu/eComSync/internal/apikey/service"
	"go.uber.org/fx"
)

var Module = fx.Module("apikey.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
