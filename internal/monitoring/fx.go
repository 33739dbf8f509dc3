package monitoring

import (
	"github.com/handyheartslabs/handyhearts/internal/monitoring/repository"
	"github.com/handyheartslabs/handyhearts/internal/monitoring/service"
	"go.uber.org/fx"
)

var Module = fx.Module("monitoring.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
