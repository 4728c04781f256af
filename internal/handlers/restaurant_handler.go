package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/restomenu/restomenu/internal/dto"
	"github.com/restomenu/restomenu/internal/middleware"
	"github.com/restomenu/restomenu/internal/models"
	"github.com/restomenu/restomenu/internal/services"
)

type RestaurantHandler struct {
	restaurants *services.RestaurantService
	store       *session.Store
}

func NewRestaurantHandler(restaurants *services.RestaurantService, store *session.Store) *RestaurantHandler {
	return &RestaurantHandler{restaurants: restaurants, store: store}
}

// List renders all restaurants. The template varies by authentication
// state: the public view has no mutation affordances. Presentation only,
// not an authorization boundary.
func (h *RestaurantHandler) List(c *fiber.Ctx) error {
	restaurants, err := h.restaurants.List()
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
	view := "restaurants_public"
	if loggedIn {
		view = "restaurants"
	}
	return c.Render(view, fiber.Map{
		"Restaurants": restaurants,
		"Flash":       flash,
		"UserID":      userID,
	})
}

// NewForm renders an empty create form.
func (h *RestaurantHandler) NewForm(c *fiber.Ctx) error {
	return c.Render("restaurant_new", fiber.Map{})
}

// Create inserts a restaurant owned by the session identity.
func (h *RestaurantHandler) Create(c *fiber.Ctx) error {
	sess, err := h.store.Get(c)
	if err != nil {
		return err
	}
	userID, ok := middleware.UserID(sess)
	if !ok {
		return c.Redirect("/login/", fiber.StatusFound)
	}

	if _, err := h.restaurants.Create(c.FormValue("name"), userID); err != nil {
		return err
	}

	middleware.SetFlash(sess, "new restaurant created!")
	if err := sess.Save(); err != nil {
		return err
	}
	return c.Redirect("/restaurants/", fiber.StatusFound)
}

func (h *RestaurantHandler) EditForm(c *fiber.Ctx) error {
	restaurant, _, allowed, err := h.loadOwned(c, "You are not allowed to edit this restaurant")
	if err != nil || !allowed {
		return err
	}
	return c.Render("restaurant_edit", fiber.Map{
		"Restaurant": restaurant,
	})
}

// Edit applies a partial update: an empty submitted name leaves the
// stored name unchanged.
func (h *RestaurantHandler) Edit(c *fiber.Ctx) error {
	restaurant, sess, allowed, err := h.loadOwned(c, "You are not allowed to edit this restaurant")
	if err != nil || !allowed {
		return err
	}

	patch := dto.RestaurantPatch{Name: c.FormValue("name")}
	if err := h.restaurants.Update(restaurant, patch); err != nil {
		return err
	}

	middleware.SetFlash(sess, "restaurant updated!")
	if err := sess.Save(); err != nil {
		return err
	}
	return c.Redirect("/restaurants/", fiber.StatusFound)
}

func (h *RestaurantHandler) DeleteForm(c *fiber.Ctx) error {
	restaurant, _, allowed, err := h.loadOwned(c, "You are not allowed to delete this restaurant")
	if err != nil || !allowed {
		return err
	}
	return c.Render("restaurant_delete", fiber.Map{
		"Restaurant": restaurant,
	})
}

func (h *RestaurantHandler) Delete(c *fiber.Ctx) error {
	restaurant, sess, allowed, err := h.loadOwned(c, "You are not allowed to delete this restaurant")
	if err != nil || !allowed {
		return err
	}

	if err := h.restaurants.Delete(restaurant); err != nil {
		return err
	}

	middleware.SetFlash(sess, "restaurant deleted!")
	if err := sess.Save(); err != nil {
		return err
	}
	return c.Redirect("/restaurants/", fiber.StatusFound)
}

// loadOwned fetches the target restaurant and runs the ownership check.
// On mismatch it flashes the notice, redirects to the list view and
// returns allowed=false with a nil error: the response is already
// written.
func (h *RestaurantHandler) loadOwned(c *fiber.Ctx, notice string) (*models.Restaurant, *session.Session, bool, error) {
	id, err := paramID(c, "id")
	if err != nil {
		return nil, nil, false, err
	}

	restaurant, err := h.restaurants.Get(id)
	if err != nil {
		return nil, nil, false, httpError(err)
	}

	sess, err := h.store.Get(c)
	if err != nil {
		return nil, nil, false, err
	}
	userID, ok := middleware.UserID(sess)
	if !ok {
		return nil, nil, false, c.Redirect("/login/", fiber.StatusFound)
	}

	if restaurant.UserID != userID {
		middleware.SetFlash(sess, notice)
		if err := sess.Save(); err != nil {
			return nil, nil, false, err
		}
		return nil, nil, false, c.Redirect("/restaurants/", fiber.StatusFound)
	}

	return restaurant, sess, true, nil
}
