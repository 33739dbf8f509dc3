package booking

import (
	"github.com/handyheartslabs/handyhearts/internal/booking/repository"
	"github.com/handyheartslabs/handyhearts/internal/booking/service"
	"go.uber.org/fx"
)

var Module = fx.Module("booking.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
