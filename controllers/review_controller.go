package controllers

import (
	"net/http"

	"storefront/clients"
	"storefront/middleware"
	"storefront/models"

	"github.com/gin-gonic/gin"
)

// ReviewController proxies product reviews to the backend.
type ReviewController struct {
	backend *clients.BackendClient
}

func NewReviewController(backend *clients.BackendClient) *ReviewController {
	return &ReviewController{backend: backend}
}

// ListReviews returns the reviews for a product
func (rc *ReviewController) ListReviews(c *gin.Context) {
	reviews, err := rc.backend.ListReviews(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(upstreamError(err, "failed to load reviews"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

// CreateReview submits a review on behalf of the authenticated user
func (rc *ReviewController) CreateReview(c *gin.Context) {
	var req models.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	review, err := rc.backend.CreateReview(c.Request.Context(), c.GetString(middleware.TokenKey), c.Param("id"), &req)
	if err != nil {
		c.Error(upstreamError(err, "failed to submit review"))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"review": review})
}
