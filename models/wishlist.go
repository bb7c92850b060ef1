package models

import (
	"time"

	"github.com/google/uuid"
)

// WishlistItem is a product a logged-in user has saved for later. Unlike the
// cart it is account-scoped and survives logout.
type WishlistItem struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_wishlist_user_product,unique" json:"user_id"`
	ProductID string    `gorm:"type:varchar(64);not null;index:idx_wishlist_user_product,unique" json:"product_id"`
	Name      string    `gorm:"size:255" json:"name"`
	Price     float64   `json:"price"`
	Image     string    `gorm:"size:512" json:"image,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// AddWishlistRequest is the payload for POST /wishlist.
type AddWishlistRequest struct {
	ProductID string  `json:"product_id" binding:"required"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
}
