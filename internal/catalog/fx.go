package catalog

import (
	"github.com/handyheartslabs/handyhearts/internal/catalog/repository"
	"github.com/handyheartslabs/handyhearts/internal/catalog/service"
	"go.uber.org/fx"
)

var Module = fx.Module("catalog.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
