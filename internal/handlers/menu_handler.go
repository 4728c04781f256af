package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/restomenu/restomenu/internal/dto"
	"github.com/restomenu/restomenu/internal/middleware"
	"github.com/restomenu/restomenu/internal/models"
	"github.com/restomenu/restomenu/internal/services"
)

type MenuHandler struct {
	restaurants *services.RestaurantService
	menu        *services.MenuService
	store       *session.Store
}

func NewMenuHandler(restaurants *services.RestaurantService, menu *services.MenuService, store *session.Store) *MenuHandler {
	return &MenuHandler{restaurants: restaurants, menu: menu, store: store}
}

// List renders a restaurant's menu, public or interactive by auth state.
func (h *MenuHandler) List(c *fiber.Ctx) error {
	restaurantID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	restaurant, err := h.restaurants.Get(restaurantID)
	if err != nil {
		return httpError(err)
	}
	items, err := h.menu.ListByRestaurant(restaurantID)
	if err != nil {
		return err
	}

	sess, err := h.store.Get(c)
	if err != nil {
		return err
	}
	flash := middleware.TakeFlash(sess)
	if flash != "" {
		if err := sess.Save(); err != nil {
			return err
		}
	}

	userID, loggedIn := middleware.UserID(sess)
	view := "menu_public"
	if loggedIn {
		view = "menu"
	}
	return c.Render(view, fiber.Map{
		"Restaurant": restaurant,
		"Items":      items,
		"Flash":      flash,
		"UserID":     userID,
	})
}

func (h *MenuHandler) NewForm(c *fiber.Ctx) error {
	restaurantID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	restaurant, err := h.restaurants.Get(restaurantID)
	if err != nil {
		return httpError(err)
	}
	return c.Render("menuitem_new", fiber.Map{
		"Restaurant": restaurant,
	})
}

// Create inserts a menu item under the restaurant, recording the session
// identity as creator.
func (h *MenuHandler) Create(c *fiber.Ctx) error {
	restaurantID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	restaurant, err := h.restaurants.Get(restaurantID)
	if err != nil {
		return httpError(err)
	}

	sess, err := h.store.Get(c)
	if err != nil {
		return err
	}
	userID, ok := middleware.UserID(sess)
	if !ok {
		return c.Redirect("/login/", fiber.StatusFound)
	}

	form := dto.MenuItemForm{
		Name:        c.FormValue("name"),
		Course:      c.FormValue("course"),
		Description: c.FormValue("description"),
		Price:       c.FormValue("price"),
	}
	if _, err := h.menu.Create(restaurant.ID, userID, form); err != nil {
		return err
	}

	middleware.SetFlash(sess, "new item created!")
	if err := sess.Save(); err != nil {
		return err
	}
	return c.Redirect(menuPath(restaurant.ID), fiber.StatusFound)
}

func (h *MenuHandler) EditForm(c *fiber.Ctx) error {
	restaurant, item, _, allowed, err := h.loadOwned(c, "You are not allowed to edit this menu item")
	if err != nil || !allowed {
		return err
	}
	return c.Render("menuitem_edit", fiber.Map{
		"Restaurant": restaurant,
		"Item":       item,
	})
}

// Edit applies a partial update: empty submitted fields are ignored, not
// cleared.
func (h *MenuHandler) Edit(c *fiber.Ctx) error {
	restaurant, item, sess, allowed, err := h.loadOwned(c, "You are not allowed to edit this menu item")
	if err != nil || !allowed {
		return err
	}

	patch := dto.MenuItemPatch{
		Name:        c.FormValue("name"),
		Course:      c.FormValue("course"),
		Description: c.FormValue("description"),
		Price:       c.FormValue("price"),
	}
	if err := h.menu.Update(item, patch); err != nil {
		return err
	}

	middleware.SetFlash(sess, "item updated!")
	if err := sess.Save(); err != nil {
		return err
	}
	return c.Redirect(menuPath(restaurant.ID), fiber.StatusFound)
}

func (h *MenuHandler) DeleteForm(c *fiber.Ctx) error {
	restaurant, item, _, allowed, err := h.loadOwned(c, "You are not allowed to delete this menu item")
	if err != nil || !allowed {
		return err
	}
	return c.Render("menuitem_delete", fiber.Map{
		"Restaurant": restaurant,
		"Item":       item,
	})
}

func (h *MenuHandler) Delete(c *fiber.Ctx) error {
	restaurant, item, sess, allowed, err := h.loadOwned(c, "You are not allowed to delete this menu item")
	if err != nil || !allowed {
		return err
	}

	if err := h.menu.Delete(item); err != nil {
		return err
	}

	middleware.SetFlash(sess, "item deleted!")
	if err := sess.Save(); err != nil {
		return err
	}
	return c.Redirect(menuPath(restaurant.ID), fiber.StatusFound)
}

// loadOwned fetches the restaurant and the target item, then authorizes
// against the restaurant's owner. The item's own user_id is never
// consulted: menu items belong to whoever owns the restaurant. On
// mismatch the notice is flashed and the request redirects to the menu
// view with allowed=false and a nil error.
func (h *MenuHandler) loadOwned(c *fiber.Ctx, notice string) (*models.Restaurant, *models.MenuItem, *session.Session, bool, error) {
	restaurantID, err := paramID(c, "id")
	if err != nil {
		return nil, nil, nil, false, err
	}
	itemID, err := paramID(c, "item_id")
	if err != nil {
		return nil, nil, nil, false, err
	}

	restaurant, err := h.restaurants.Get(restaurantID)
	if err != nil {
		return nil, nil, nil, false, httpError(err)
	}
	item, err := h.menu.Get(restaurantID, itemID)
	if err != nil {
		return nil, nil, nil, false, httpError(err)
	}

	sess, err := h.store.Get(c)
	if err != nil {
		return nil, nil, nil, false, err
	}
	userID, ok := middleware.UserID(sess)
	if !ok {
		return nil, nil, nil, false, c.Redirect("/login/", fiber.StatusFound)
	}

	if restaurant.UserID != userID {
		middleware.SetFlash(sess, notice)
		if err := sess.Save(); err != nil {
			return nil, nil, nil, false, err
		}
		return nil, nil, nil, false, c.Redirect(menuPath(restaurant.ID), fiber.StatusFound)
	}

	return restaurant, item, sess, true, nil
}

func menuPath(restaurantID uint) string {
	return fmt.Sprintf("/restaurants/%d/menu/", restaurantID)
}
