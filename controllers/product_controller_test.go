package controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/clients"
	"storefront/common/errors"
	"storefront/common/logger"
	"storefront/controllers"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newCatalogRouter(backendURL string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger.Initialize("development")

	r := gin.New()
	r.Use(errors.ErrorMiddleware())
	pc := controllers.NewProductController(clients.NewBackendClient(backendURL, time.Second))
	r.GET("/products", pc.ListProducts)
	r.GET("/products/:id", pc.GetProduct)
	return r
}

func TestListProducts_UpstreamFailureIsBadGateway(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer backend.Close()

	w := httptest.NewRecorder()
	newCatalogRouter(backend.URL).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products", nil))

	assert.Equal(t, http.StatusBadGateway, w.Code)

	var body errors.Error
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, http.StatusBadGateway, body.Code)
	assert.Equal(t, "failed to load products", body.Message)
}

func TestGetProduct_NotFoundPassesThrough(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "no such product", http.StatusNotFound)
	}))
	defer backend.Close()

	w := httptest.NewRecorder()
	newCatalogRouter(backend.URL).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products/p1", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)

	var body errors.Error
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "product not found", body.Message)
}

func TestListProducts_Success(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"products":[{"id":"p1","name":"Shirt","price":10}],"total":1,"page":1,"limit":20}`))
	}))
	defer backend.Close()

	w := httptest.NewRecorder()
	newCatalogRouter(backend.URL).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"p1"`)
}
