package inquiry

import (
	"github.com/handyheartslabs/handyhearts/internal/inquiry/repository"
	"github.com/handyheartslabs/handyhearts/internal/inquiry/service"
	"go.uber.org/fx"
)

var Module = fx.Module("inquiry.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
