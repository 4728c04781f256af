package services

import (
	"errors"
	"fmt"

	"github.com/restomenu/restomenu/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) Get(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load user %d: %w", id, err)
	}
	return &user, nil
}

// GetByEmail distinguishes "no such user" from driver failures so the
// caller can decide to create the user on first login.
func (s *UserService) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up user by email: %w", err)
	}
	return &user, nil
}

// Create inserts a new user from a federated profile. The raw provider
// payload is stored alongside the extracted fields.
func (s *UserService) Create(name, email, picture string, profile []byte) (*models.User, error) {
	user := models.User{
		Name:    name,
		Email:   email,
		Picture: picture,
	}
	if len(profile) > 0 {
		user.Profile = datatypes.JSON(profile)
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

// FindOrCreate resolves a local user for a federated identity. Exactly one
// user exists per email; repeated logins resolve to the same record.
func (s *UserService) FindOrCreate(name, email, picture string, profile []byte) (*models.User, error) {
	user, err := s.GetByEmail(email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	return s.Create(name, email, picture, profile)
}
