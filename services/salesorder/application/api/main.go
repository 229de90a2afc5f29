package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/stocktrack/pkg/app"
	"github.com/ghuser/stocktrack/pkg/auth"
	"github.com/ghuser/stocktrack/pkg/config"
	"github.com/ghuser/stocktrack/services/salesorder/application/handlers"
	appsvcs "github.com/ghuser/stocktrack/services/salesorder/application/services"
)

// SalesOrderRoutes registers auth and sales-order endpoints on the provided
// chi router.
func SalesOrderRoutes(r chi.Router, a *app.Application, cfg *config.Config) {
	svcs := appsvcs.New(a, cfg)
	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", handlers.NewPostLoginHandler(svcs, a.SessionStore, a.Logger).Execute)
		r.Post("/logout", handlers.NewPostLogoutHandler(a.SessionStore, a.Logger).Execute)
	})
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireSession(a.SessionStore, a.Logger))
		r.Get("/sales-orders", handlers.NewGetOrdersHandler(svcs).Execute)
	})
}
