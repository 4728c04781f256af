package services

import (
	"errors"
	"fmt"

	"github.com/restomenu/restomenu/internal/dto"
	"github.com/restomenu/restomenu/internal/models"
	"gorm.io/gorm"
)

type RestaurantService struct {
	db *gorm.DB
}

func NewRestaurantService(db *gorm.DB) *RestaurantService {
	return &RestaurantService{db: db}
}

func (s *RestaurantService) List() ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	if err := s.db.Order("id").Find(&restaurants).Error; err != nil {
		return nil, fmt.Errorf("failed to list restaurants: %w", err)
	}
	return restaurants, nil
}

func (s *RestaurantService) Get(id uint) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := s.db.First(&restaurant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load restaurant %d: %w", id, err)
	}
	return &restaurant, nil
}

func (s *RestaurantService) Create(name string, ownerID uint) (*models.Restaurant, error) {
	restaurant := models.Restaurant{
		Name:   name,
		UserID: ownerID,
	}
	if err := s.db.Create(&restaurant).Error; err != nil {
		return nil, fmt.Errorf("failed to create restaurant: %w", err)
	}
	return &restaurant, nil
}

// Update applies a partial update: empty patch fields leave the stored
// value unchanged.
func (s *RestaurantService) Update(restaurant *models.Restaurant, patch dto.RestaurantPatch) error {
	if patch.Name != "" {
		restaurant.Name = patch.Name
	}
	if err := s.db.Save(restaurant).Error; err != nil {
		return fmt.Errorf("failed to update restaurant %d: %w", restaurant.ID, err)
	}
	return nil
}

// Delete removes a restaurant and its menu items in one transaction.
// Every menu item route is nested under a restaurant id, so orphaned
// items would be unreachable.
func (s *RestaurantService) Delete(restaurant *models.Restaurant) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("restaurant_id = ?", restaurant.ID).Delete(&models.MenuItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete menu items for restaurant %d: %w", restaurant.ID, err)
		}
		if err := tx.Delete(restaurant).Error; err != nil {
			return fmt.Errorf("failed to delete restaurant %d: %w", restaurant.ID, err)
		}
		return nil
	})
}
