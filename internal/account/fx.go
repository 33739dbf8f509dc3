package account

import (
	"github.com/handyheartslabs/handyhearts/internal/account/repository"
	"github.com/handyheartslabs/handyhearts/internal/account/service"
	"go.uber.org/fx"
)

var Module = fx.Module("account.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
