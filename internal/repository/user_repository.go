package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"wellnesshub/internal/model"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *model.User) error {
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("create user failed: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByUsername(username string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query user by username failed: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) GetByID(id uint) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query user by id failed: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) UpdateTheme(id uint, theme string) error {
	return r.updateColumn(id, "theme", theme)
}

func (r *UserRepository) UpdateLanguage(id uint, language string) error {
	return r.updateColumn(id, "language", language)
}

func (r *UserRepository) UpdateNotificationsEnabled(id uint, enabled bool) error {
	return r.updateColumn(id, "notifications_enabled", enabled)
}

func (r *UserRepository) UpdateIncognito(id uint, incognito bool) error {
	return r.updateColumn(id, "incognito", incognito)
}

func (r *UserRepository) updateColumn(id uint, column string, value interface{}) error {
	if err := r.db.Model(&model.User{}).Where("id = ?", id).Update(column, value).Error; err != nil {
		return fmt.Errorf("update user %s failed: %w", column, err)
	}
	return nil
}
