package dto

import "github.com/restomenu/restomenu/internal/models"

// RestaurantJSON is the public API projection of a restaurant.
type RestaurantJSON struct {
	Name   string `json:"name"`
	ID     uint   `json:"id"`
	UserID uint   `json:"user_id"`
}

// MenuItemJSON is the public API projection of a menu item.
type MenuItemJSON struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ID          uint   `json:"id"`
	Price       string `json:"price"`
	Course      string `json:"course"`
	UserID      uint   `json:"user_id"`
}

func NewRestaurantJSON(r models.Restaurant) RestaurantJSON {
	return RestaurantJSON{
		Name:   r.Name,
		ID:     r.ID,
		UserID: r.UserID,
	}
}

func NewRestaurantListJSON(restaurants []models.Restaurant) []RestaurantJSON {
	out := make([]RestaurantJSON, 0, len(restaurants))
	for _, r := range restaurants {
		out = append(out, NewRestaurantJSON(r))
	}
	return out
}

func NewMenuItemJSON(m models.MenuItem) MenuItemJSON {
	return MenuItemJSON{
		Name:        m.Name,
		Description: m.Description,
		ID:          m.ID,
		Price:       m.Price,
		Course:      m.Course,
		UserID:      m.UserID,
	}
}

func NewMenuItemListJSON(items []models.MenuItem) []MenuItemJSON {
	out := make([]MenuItemJSON, 0, len(items))
	for _, m := range items {
		out = append(out, NewMenuItemJSON(m))
	}
	return out
}

// RestaurantPatch is a partial update: an empty field means "leave
// unchanged", never "clear".
type RestaurantPatch struct {
	Name string
}

// MenuItemPatch is a partial update with the same ignore-empty semantics.
type MenuItemPatch struct {
	Name        string
	Course      string
	Description string
	Price       string
}

// MenuItemForm carries the submitted fields for a new menu item.
type MenuItemForm struct {
	Name        string
	Course      string
	Description string
	Price       string
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
