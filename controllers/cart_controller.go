package controllers

import (
	"net/http"

	"storefront/middleware"
	"storefront/models"
	"storefront/services"

	"github.com/gin-gonic/gin"
)

// CartController exposes the session cart store over HTTP. Cart mutations
// never fail in the domain sense; persistence is handled inside the store.
type CartController struct {
	sessions *services.SessionManager
}

func NewCartController(sessions *services.SessionManager) *CartController {
	return &CartController{sessions: sessions}
}

// GetCart returns the current cart for the session
func (cc *CartController) GetCart(c *gin.Context) {
	cart := cc.sessions.Cart(c.Request.Context(), middleware.SessionID(c))

	c.JSON(http.StatusOK, gin.H{
		"items":    cart.Items(),
		"subtotal": cart.Subtotal(),
	})
}

// AddItem adds a product variant to the cart, merging duplicates
func (cc *CartController) AddItem(c *gin.Context) {
	var req models.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	cart := cc.sessions.Cart(c.Request.Context(), middleware.SessionID(c))
	cart.AddItem(req.Product, req.Options)

	c.JSON(http.StatusOK, gin.H{"items": cart.Items(), "subtotal": cart.Subtotal()})
}

// RemoveItem removes a line item by its variant key; removing an unknown
// key is a no-op
func (cc *CartController) RemoveItem(c *gin.Context) {
	id := c.Param("id")

	cart := cc.sessions.Cart(c.Request.Context(), middleware.SessionID(c))
	cart.RemoveItem(id)

	c.JSON(http.StatusOK, gin.H{"items": cart.Items(), "subtotal": cart.Subtotal()})
}

// UpdateQuantity replaces a line item quantity unconditionally
func (cc *CartController) UpdateQuantity(c *gin.Context) {
	var req models.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	cart := cc.sessions.Cart(c.Request.Context(), middleware.SessionID(c))
	cart.UpdateQuantity(req.ID, req.Quantity)

	c.JSON(http.StatusOK, gin.H{"items": cart.Items(), "subtotal": cart.Subtotal()})
}

// ClearCart removes all items from the cart
func (cc *CartController) ClearCart(c *gin.Context) {
	cart := cc.sessions.Cart(c.Request.Context(), middleware.SessionID(c))
	cart.Clear()

	c.JSON(http.StatusOK, gin.H{"message": "cart cleared"})
}
