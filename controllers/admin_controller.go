package controllers

import (
	"net/http"
	"strings"

	"storefront/clients"
	"storefront/common/errors"
	"storefront/common/logger"
	"storefront/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminController is a thin passthrough for the admin back-office screens:
// user, product and order management all live in the backend; this layer
// only enforces the admin role and forwards the request with the caller's
// bearer token.
type AdminController struct {
	backend *clients.BackendClient
}

func NewAdminController(backend *clients.BackendClient) *AdminController {
	return &AdminController{backend: backend}
}

// Proxy forwards /admin/* to the backend's admin API verbatim.
func (ac *AdminController) Proxy(c *gin.Context) {
	path := "/admin/" + strings.TrimPrefix(c.Param("path"), "/")

	headers := http.Header{}
	if ct := c.GetHeader("Content-Type"); ct != "" {
		headers.Set("Content-Type", ct)
	}
	headers.Set("Authorization", "Bearer "+c.GetString(middleware.TokenKey))

	resp, err := ac.backend.Do(c.Request.Context(), c.Request.Method, path, c.Request.URL.Query(), headers, c.Request.Body)
	if err != nil {
		logger.Log.Error("Admin proxy failed", zap.String("path", path), zap.Error(err))
		c.Error(errors.New(http.StatusBadGateway, "backend unavailable", err))
		return
	}

	if err := clients.CopyResponse(c.Writer, resp); err != nil {
		logger.Log.Warn("Failed to copy admin response", zap.Error(err))
	}
}
