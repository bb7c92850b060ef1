package controllers

import (
	"net/http"
	"net/url"

	"storefront/clients"
	"storefront/common/errors"
	"storefront/common/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProductController renders catalog pages straight from the backend; the
// storefront stores no catalog data.
type ProductController struct {
	backend *clients.BackendClient
}

func NewProductController(backend *clients.BackendClient) *ProductController {
	return &ProductController{backend: backend}
}

// ListProducts proxies the catalog listing with pagination and filters
func (pc *ProductController) ListProducts(c *gin.Context) {
	query := url.Values{}
	for _, key := range []string{"page", "limit", "category", "search", "sort"} {
		if v := c.Query(key); v != "" {
			query.Set(key, v)
		}
	}

	list, err := pc.backend.ListProducts(c.Request.Context(), query)
	if err != nil {
		logger.Log.Error("Failed to list products", zap.Error(err))
		c.Error(upstreamError(err, "failed to load products"))
		return
	}

	c.JSON(http.StatusOK, list)
}

// GetProduct returns a single product detail page
func (pc *ProductController) GetProduct(c *gin.Context) {
	product, err := pc.backend.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		if ue, ok := err.(*clients.UpstreamError); ok && ue.Status == http.StatusNotFound {
			c.Error(errors.New(http.StatusNotFound, "product not found", err))
			return
		}
		logger.Log.Error("Failed to get product", zap.String("id", c.Param("id")), zap.Error(err))
		c.Error(upstreamError(err, "failed to load product"))
		return
	}

	c.JSON(http.StatusOK, product)
}

// SearchProducts runs a full-text catalog search
func (pc *ProductController) SearchProducts(c *gin.Context) {
	term := c.Query("q")
	if term == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing search term"})
		return
	}

	limit := 20
	products, err := pc.backend.SearchProducts(c.Request.Context(), term, limit)
	if err != nil {
		logger.Log.Error("Product search failed", zap.String("term", term), zap.Error(err))
		c.Error(upstreamError(err, "search failed"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

// upstreamError maps a backend client failure to an application error.
// Upstream 4xx statuses pass through; everything else is a bad gateway.
func upstreamError(err error, message string) *errors.Error {
	if ue, ok := err.(*clients.UpstreamError); ok && ue.Status >= 400 && ue.Status < 500 {
		return errors.New(ue.Status, message, err)
	}
	return errors.New(errors.ErrUpstream.Code, message, err)
}
