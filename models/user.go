package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the local account record backing the auth provider.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Email     string    `gorm:"unique;not null"`
	Password  string    `gorm:"not null"`
	Name      string    `gorm:"not null"`
	Role      string    `gorm:"type:varchar(50);default:'user'"`
	Address   string    `gorm:"size:255"`
	Phone     string    `gorm:"size:32"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// RefreshToken model stores issued refresh tokens for rotation and revocation
type RefreshToken struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	TokenID   string    `gorm:"unique;not null"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Revoked   bool      `gorm:"default:false"`
	ExpiresAt time.Time `gorm:"not null;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// Migrate function for auto migration
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&User{}, &RefreshToken{}, &WishlistItem{})
}

// SessionUser is the user view held in the auth store and persisted with the
// session snapshot. It never carries the password hash.
type SessionUser struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Role    string `json:"role,omitempty"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// SessionUserFrom maps an account record to its session view.
func SessionUserFrom(u *User) *SessionUser {
	return &SessionUser{
		ID:      u.ID.String(),
		Email:   u.Email,
		Name:    u.Name,
		Role:    u.Role,
		Address: u.Address,
		Phone:   u.Phone,
	}
}

// SessionSnapshot is the persisted auth entry: user, token and the derived
// flag only. No password or refresh secrets are persisted here.
type SessionSnapshot struct {
	User            *SessionUser `json:"user"`
	Token           string       `json:"token"`
	IsAuthenticated bool         `json:"is_authenticated"`
}

// ProfileUpdate carries partial profile fields; empty fields are left as-is.
type ProfileUpdate struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}
