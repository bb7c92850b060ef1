package controllers

import (
	"net/http"

	"storefront/clients"
	"storefront/common/logger"
	"storefront/middleware"
	"storefront/models"
	"storefront/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type OrderController struct {
	checkout services.CheckoutService
	backend  *clients.BackendClient
}

func NewOrderController(checkout services.CheckoutService, backend *clients.BackendClient) *OrderController {
	return &OrderController{checkout: checkout, backend: backend}
}

// Checkout turns the session cart into a backend order and clears the cart
func (oc *OrderController) Checkout(c *gin.Context) {
	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	order, svcErr := oc.checkout.Checkout(c.Request.Context(), middleware.SessionID(c), &req)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"order": order})
}

// ListOrders proxies the user's order history
func (oc *OrderController) ListOrders(c *gin.Context) {
	orders, err := oc.backend.ListOrders(c.Request.Context(), c.GetString(middleware.TokenKey))
	if err != nil {
		logger.Log.Error("Failed to list orders", zap.Error(err))
		c.Error(upstreamError(err, "failed to load orders"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GetOrder proxies a single order detail
func (oc *OrderController) GetOrder(c *gin.Context) {
	order, err := oc.backend.GetOrder(c.Request.Context(), c.GetString(middleware.TokenKey), c.Param("id"))
	if err != nil {
		c.Error(upstreamError(err, "failed to load order"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}
