package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/stocktrack/pkg/app"
	"github.com/ghuser/stocktrack/services/inventory/application/handlers"
	appsvcs "github.com/ghuser/stocktrack/services/inventory/application/services"
)

// InventoryRoutes registers item and location endpoints on the provided chi router.
func InventoryRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	r.Group(func(r chi.Router) {
		r.Route("/items", func(r chi.Router) {
			r.Get("/", handlers.NewGetItemsHandler(svcs).Execute)
			r.Post("/", handlers.NewPostItemHandler(svcs).Execute)
			r.Get("/{id}", handlers.NewGetItemHandler(svcs).Execute)
			r.Put("/{id}", handlers.NewPutItemHandler(svcs).Execute)
			r.Delete("/{id}", handlers.NewDeleteItemHandler(svcs).Execute)
		})
		r.Route("/locations", func(r chi.Router) {
			r.Get("/", handlers.NewGetLocationsHandler(svcs).Execute)
			r.Post("/", handlers.NewPostLocationHandler(svcs).Execute)
			r.Get("/{id}", handlers.NewGetLocationHandler(svcs).Execute)
			r.Put("/{id}", handlers.NewPutLocationHandler(svcs).Execute)
			r.Delete("/{id}", handlers.NewDeleteLocationHandler(svcs).Execute)
		})
	})
}
