package repository

import "github.com/smartjanseva/janseva-api/internal/domain/entity"

// UserRepository persists citizen accounts.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id uint) (*entity.User, error)
	GetByPhone(phone string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
	UpdateProfile(userID uint, updates map[string]interface{}) error

	// UpdatePassword hashes and stores a new password, bypassing the BeforeSave
	// hook so the value is never double-hashed.
	UpdatePassword(userID uint, newPassword string) error
}
