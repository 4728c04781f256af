package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/restomenu/restomenu/internal/handlers"
	"github.com/restomenu/restomenu/internal/middleware"
)

func Setup(
	app *fiber.App,
	store *session.Store,
	restaurantHandler *handlers.RestaurantHandler,
	menuHandler *handlers.MenuHandler,
	apiHandler *handlers.APIHandler,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
) {
	app.Get("/health", healthHandler.Check)

	// Login flow
	app.Get("/login/", authHandler.ShowLogin)
	app.Post("/gconnect", authHandler.Connect)
	app.Get("/gdisconnect", authHandler.Disconnect)

	// JSON API (read-only, unauthenticated)
	app.Get("/JSON/", apiHandler.Restaurants)
	app.Get("/restaurants/JSON/", apiHandler.Restaurants)
	app.Get("/restaurants/:id/JSON/", apiHandler.Restaurant)
	app.Get("/restaurants/:id/menu/JSON/", apiHandler.Menu)
	app.Get("/restaurants/:id/menu/:item_id/JSON/", apiHandler.MenuItem)

	// Restaurants
	requireLogin := middleware.RequireLogin(store)
	app.Get("/", restaurantHandler.List)
	app.Get("/restaurants/", restaurantHandler.List)
	app.Get("/restaurants/new/", requireLogin, restaurantHandler.NewForm)
	app.Post("/restaurants/new/", requireLogin, restaurantHandler.Create)
	app.Get("/restaurants/:id/edit/", requireLogin, restaurantHandler.EditForm)
	app.Post("/restaurants/:id/edit/", requireLogin, restaurantHandler.Edit)
	app.Get("/restaurants/:id/delete/", requireLogin, restaurantHandler.DeleteForm)
	app.Post("/restaurants/:id/delete/", requireLogin, restaurantHandler.Delete)

	// Menu items (nested under their restaurant)
	app.Get("/restaurants/:id/", menuHandler.List)
	app.Get("/restaurants/:id/menu/", menuHandler.List)
	app.Get("/restaurants/:id/menu/new/", requireLogin, menuHandler.NewForm)
	app.Post("/restaurants/:id/menu/new/", requireLogin, menuHandler.Create)
	app.Get("/restaurants/:id/menu/:item_id/edit/", requireLogin, menuHandler.EditForm)
	app.Post("/restaurants/:id/menu/:item_id/edit/", requireLogin, menuHandler.Edit)
	app.Get("/restaurants/:id/menu/:item_id/delete/", requireLogin, menuHandler.DeleteForm)
	app.Post("/restaurants/:id/menu/:item_id/delete/", requireLogin, menuHandler.Delete)
}
