package models

import "time"

// VariantOptions selects a specific color/size combination of a product.
// Unset fields participate in the variant key as empty segments, so callers
// should pass a consistent options object for products without variants.
type VariantOptions struct {
	Color string `json:"color"`
	Size  string `json:"size"`
}

// VariantKey builds the composite identity of a cart line item. Two entries
// with the same product but different color or size are distinct line items.
func VariantKey(productID, color, size string) string {
	return productID + "|" + color + "|" + size
}

// ProductRef carries the product attributes captured into the cart at the
// moment of the first add. Price is not re-fetched on repeated adds.
type ProductRef struct {
	ID    string  `json:"id" binding:"required"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
}

type CartItem struct {
	ID        string  `json:"id"` // composite variant key
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image,omitempty"`
	Color     string  `json:"color,omitempty"`
	Size      string  `json:"size,omitempty"`
	Quantity  int     `json:"quantity"`
}

// LineTotal returns price * quantity for display.
func (i CartItem) LineTotal() float64 {
	return i.Price * float64(i.Quantity)
}

// Cart is the persisted snapshot of a session's cart. Items keep insertion
// order for display.
type Cart struct {
	SessionID string     `json:"session_id"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartSyncItem is the shape the backend cart-sync endpoint accepts when
// reconciling a guest cart with a server-side cart after login.
type CartSyncItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Color     string `json:"color,omitempty"`
	Size      string `json:"size,omitempty"`
}

// SyncItems converts cart items to the backend sync payload.
func SyncItems(items []CartItem) []CartSyncItem {
	out := make([]CartSyncItem, 0, len(items))
	for _, it := range items {
		out = append(out, CartSyncItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Color:     it.Color,
			Size:      it.Size,
		})
	}
	return out
}

// AddItemRequest is the payload for POST /cart/add.
type AddItemRequest struct {
	Product ProductRef     `json:"product" binding:"required"`
	Options VariantOptions `json:"options"`
}

// UpdateQuantityRequest is the payload for PUT /cart/quantity.
type UpdateQuantityRequest struct {
	ID       string `json:"id" binding:"required"`
	Quantity int    `json:"quantity"`
}

// CheckoutEvent is published when a checkout is initiated.
type CheckoutEvent struct {
	Event     string     `json:"event"` // "checkout.requested"
	SessionID string     `json:"session_id"`
	UserID    string     `json:"user_id"`
	Items     []CartItem `json:"items"`
	Timestamp time.Time  `json:"timestamp"`
}
