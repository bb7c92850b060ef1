package controllers

import (
	"net/http"

	"storefront/middleware"
	"storefront/models"
	"storefront/services"

	"github.com/gin-gonic/gin"
)

type WishlistController struct {
	wishlist services.WishlistService
}

func NewWishlistController(wishlist services.WishlistService) *WishlistController {
	return &WishlistController{wishlist: wishlist}
}

// List returns the user's saved products
func (wc *WishlistController) List(c *gin.Context) {
	items, svcErr := wc.wishlist.List(c.Request.Context(), c.GetString(middleware.UserIDKey))
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Add saves a product; re-adding is idempotent
func (wc *WishlistController) Add(c *gin.Context) {
	var req models.AddWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	item, svcErr := wc.wishlist.Add(c.Request.Context(), c.GetString(middleware.UserIDKey), &req)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"item": item})
}

// Remove deletes a saved product
func (wc *WishlistController) Remove(c *gin.Context) {
	svcErr := wc.wishlist.Remove(c.Request.Context(), c.GetString(middleware.UserIDKey), c.Param("product_id"))
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "removed"})
}
