package models

import "time"

// Restaurant is owned by exactly one user, set at creation and never
// reassigned. All mutations are authorized against UserID.
type Restaurant struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Name   string `gorm:"size:80;not null" json:"name"`
	UserID uint   `gorm:"not null;index" json:"user_id"`

	User      User       `gorm:"foreignKey:UserID" json:"-"`
	MenuItems []MenuItem `gorm:"foreignKey:RestaurantID" json:"-"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// MenuItem belongs to a restaurant. UserID records who created the item,
// but authorization for edit/delete always derives from the parent
// restaurant's owner; the field exists for the JSON projection only.
type MenuItem struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"size:80;not null" json:"name"`
	Course       string `gorm:"size:250" json:"course"`
	Description  string `gorm:"size:250" json:"description"`
	Price        string `gorm:"size:8" json:"price"`
	RestaurantID uint   `gorm:"not null;index" json:"restaurant_id"`
	UserID       uint   `gorm:"not null" json:"user_id"`

	Restaurant Restaurant `gorm:"foreignKey:RestaurantID" json:"-"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
