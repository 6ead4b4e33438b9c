package entity

import (
	"log"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Account roles.
const (
	RoleCitizen = "citizen"
	RoleAdmin   = "admin"
)

// User is a citizen account on the portal. Either Phone or Email identifies the
// account; kiosk users typically register with a phone number.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	FullName string `gorm:"size:100;not null" json:"full_name"`
	Phone    string `gorm:"size:20;uniqueIndex" json:"phone"`
	Email    string `gorm:"size:100;index" json:"email"`
	Password string `gorm:"size:100;not null" json:"-"`
	Address  string `gorm:"size:255;not null;default:''" json:"address"`
	Role     string `gorm:"size:20;not null;default:'citizen'" json:"-"` // citizen, admin

	// BridgeLoginPending is set when OTP verification provisions the code as a
	// temporary password. The next successful login rotates the password and
	// clears the flag, making the credential one-time.
	BridgeLoginPending bool `gorm:"not null;default:false" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// BeforeSave hashes the password unless it already is a bcrypt hash.
func (u *User) BeforeSave(tx *gorm.DB) error {
	if len(u.Password) > 0 && !strings.HasPrefix(u.Password, "$2a$") &&
		!strings.HasPrefix(u.Password, "$2b$") && !strings.HasPrefix(u.Password, "$2y$") {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("[User.BeforeSave] Failed to hash password for user phone=%s: %v", u.Phone, err)
			return err
		}
		u.Password = string(hashedPassword)
	}
	return nil
}

// CheckPassword reports whether the given plaintext matches the stored hash.
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// IsAdmin reports whether the account has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
