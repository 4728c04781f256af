package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/restomenu/restomenu/internal/dto"
	"github.com/restomenu/restomenu/internal/services"
)

// APIHandler serves the read-only JSON projections. No authentication:
// the API exposes the same data as the public HTML views.
type APIHandler struct {
	restaurants *services.RestaurantService
	menu        *services.MenuService
}

func NewAPIHandler(restaurants *services.RestaurantService, menu *services.MenuService) *APIHandler {
	return &APIHandler{restaurants: restaurants, menu: menu}
}

func (h *APIHandler) Restaurants(c *fiber.Ctx) error {
	restaurants, err := h.restaurants.List()
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"Restaurant": dto.NewRestaurantListJSON(restaurants),
	})
}

// Restaurant returns a single-element array, keeping the list shape.
func (h *APIHandler) Restaurant(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	restaurant, err := h.restaurants.Get(id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(fiber.Map{
		"Restaurant": []dto.RestaurantJSON{dto.NewRestaurantJSON(*restaurant)},
	})
}

func (h *APIHandler) Menu(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	items, err := h.menu.ListByRestaurant(id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"MenuItem": dto.NewMenuItemListJSON(items),
	})
}

func (h *APIHandler) MenuItem(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	itemID, err := paramID(c, "item_id")
	if err != nil {
		return err
	}
	item, err := h.menu.Get(id, itemID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(fiber.Map{
		"MenuItem": []dto.MenuItemJSON{dto.NewMenuItemJSON(*item)},
	})
}
