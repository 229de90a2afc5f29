package services

import (
	"github.com/ghuser/stocktrack/pkg/app"
	"github.com/ghuser/stocktrack/pkg/cache"
	"github.com/ghuser/stocktrack/services/inventory/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Items     *ItemService
	Locations *LocationService
}

// New wires all inventory application services with infrastructure from the
// Application container.
func New(a *app.Application) *Services {
	itemRepo := postgres.NewItemRepository(a.Db, a.EventBus)
	locationRepo := postgres.NewLocationRepository(a.Db)
	itemCache := cache.NewItemCache(a.Redis)
	return &Services{
		Items:     NewItemService(itemRepo, locationRepo, itemCache),
		Locations: NewLocationService(locationRepo, a.Images, a.Logger),
	}
}
