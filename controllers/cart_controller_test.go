package controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"storefront/common/logger"
	"storefront/controllers"
	"storefront/middleware"
	"storefront/models"
	"storefront/repository"
	"storefront/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newCartRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger.Initialize("development")

	state := repository.NewMemoryStateStore()
	sessions := services.NewSessionManager(
		repository.NewCartRepository(state, time.Hour),
		repository.NewSessionRepository(state, time.Hour),
		nil, nil, logger.Log,
	)

	r := gin.New()
	r.Use(middleware.Session())
	cc := controllers.NewCartController(sessions)
	r.GET("/cart", cc.GetCart)
	r.POST("/cart/add", cc.AddItem)
	r.PUT("/cart/quantity", cc.UpdateQuantity)
	return r
}

func cartJSON(t *testing.T, router *gin.Engine, method, path, sid, body string) (*httptest.ResponseRecorder, []models.CartItem) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Session-ID", sid)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp struct {
		Items []models.CartItem `json:"items"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp.Items
}

func TestUpdateQuantity_ZeroAcceptedEndToEnd(t *testing.T) {
	router := newCartRouter()
	sid := "sess-1"

	w, items := cartJSON(t, router, http.MethodPost, "/cart/add", sid,
		`{"product":{"id":"p1","name":"Shirt","price":10}}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, items, 1)

	// no minimum is enforced anywhere between the request body and the store
	w, items = cartJSON(t, router, http.MethodPut, "/cart/quantity", sid,
		`{"id":"p1||","quantity":0}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, items, 1)
	assert.Equal(t, 0, items[0].Quantity)
}
