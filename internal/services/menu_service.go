package services

import (
	"errors"
	"fmt"

	"github.com/restomenu/restomenu/internal/dto"
	"github.com/restomenu/restomenu/internal/models"
	"gorm.io/gorm"
)

type MenuService struct {
	db *gorm.DB
}

func NewMenuService(db *gorm.DB) *MenuService {
	return &MenuService{db: db}
}

func (s *MenuService) ListByRestaurant(restaurantID uint) ([]models.MenuItem, error) {
	var items []models.MenuItem
	if err := s.db.Where("restaurant_id = ?", restaurantID).Order("id").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list menu items for restaurant %d: %w", restaurantID, err)
	}
	return items, nil
}

// Get looks up a menu item by its composite key so an item id from a
// different restaurant's menu never resolves.
func (s *MenuService) Get(restaurantID, itemID uint) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := s.db.Where("restaurant_id = ? AND id = ?", restaurantID, itemID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load menu item %d/%d: %w", restaurantID, itemID, err)
	}
	return &item, nil
}

func (s *MenuService) Create(restaurantID, userID uint, form dto.MenuItemForm) (*models.MenuItem, error) {
	item := models.MenuItem{
		Name:         form.Name,
		Course:       form.Course,
		Description:  form.Description,
		Price:        form.Price,
		RestaurantID: restaurantID,
		UserID:       userID,
	}
	if err := s.db.Create(&item).Error; err != nil {
		return nil, fmt.Errorf("failed to create menu item: %w", err)
	}
	return &item, nil
}

// Update applies a partial update: empty patch fields leave the stored
// value unchanged.
func (s *MenuService) Update(item *models.MenuItem, patch dto.MenuItemPatch) error {
	if patch.Name != "" {
		item.Name = patch.Name
	}
	if patch.Course != "" {
		item.Course = patch.Course
	}
	if patch.Description != "" {
		item.Description = patch.Description
	}
	if patch.Price != "" {
		item.Price = patch.Price
	}
	if err := s.db.Save(item).Error; err != nil {
		return fmt.Errorf("failed to update menu item %d: %w", item.ID, err)
	}
	return nil
}

func (s *MenuService) Delete(item *models.MenuItem) error {
	if err := s.db.Delete(item).Error; err != nil {
		return fmt.Errorf("failed to delete menu item %d: %w", item.ID, err)
	}
	return nil
}
