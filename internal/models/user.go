package models

import (
	"time"

	"gorm.io/datatypes"
)

// User is an identity record created on first federated login. The
// application never updates or deletes users; email is the federation
// lookup key.
type User struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"size:250;not null" json:"name"`
	Email   string `gorm:"size:250;not null;uniqueIndex" json:"email"`
	Picture string `gorm:"size:250" json:"picture"`

	// Raw userinfo payload from the identity provider, kept as delivered.
	Profile datatypes.JSON `json:"-"`

	CreatedAt time.Time `json:"created_at"`
}
