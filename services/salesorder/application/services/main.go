package services

import (
	"github.com/ghuser/stocktrack/pkg/app"
	"github.com/ghuser/stocktrack/pkg/config"
	"github.com/ghuser/stocktrack/services/salesorder/infrastructure/upstream"
)

// Services is the application-layer service container for this bounded context.
type Services struct {
	Orders *OrderService
}

// New wires the sales-order services with the upstream client built from config.
func New(a *app.Application, cfg *config.Config) *Services {
	client := upstream.NewClient(cfg.SalesOrderAuthURL, cfg.SalesOrderAPIURL, cfg.SalesOrderAppID)
	return &Services{
		Orders: NewOrderService(client),
	}
}
