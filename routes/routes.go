package routes

import (
	"net/http"

	"storefront/controllers"
	"storefront/middleware"
	"storefront/services"

	"github.com/gin-gonic/gin"
)

// Register wires all HTTP routes onto the engine. Cart routes work for
// anonymous sessions; orders, wishlist and reviews require a valid access
// token; admin requires the admin role on top.
func Register(
	r *gin.Engine,
	tokens *services.TokenService,
	authLimiter gin.HandlerFunc,
	auth *controllers.AuthController,
	cart *controllers.CartController,
	products *controllers.ProductController,
	orders *controllers.OrderController,
	wishlist *controllers.WishlistController,
	reviews *controllers.ReviewController,
	admin *controllers.AdminController,
) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	authGroup := r.Group("/auth")
	authGroup.Use(authLimiter)
	{
		authGroup.POST("/register", auth.Register)
		authGroup.POST("/login", auth.Login)
		authGroup.POST("/refresh", auth.Refresh)
		authGroup.POST("/logout", auth.Logout)
	}

	profile := r.Group("/profile")
	profile.Use(middleware.RequireAuth(tokens))
	{
		profile.GET("", auth.GetProfile)
		profile.PUT("", auth.UpdateProfile)
	}

	cartGroup := r.Group("/cart")
	{
		cartGroup.GET("", cart.GetCart)
		cartGroup.POST("/add", cart.AddItem)
		cartGroup.PUT("/quantity", cart.UpdateQuantity)
		cartGroup.DELETE("/remove/:id", cart.RemoveItem)
		cartGroup.DELETE("/clear", cart.ClearCart)
	}

	r.GET("/products", products.ListProducts)
	r.GET("/products/search", products.SearchProducts)
	r.GET("/products/:id", products.GetProduct)
	r.GET("/products/:id/reviews", reviews.ListReviews)

	authed := r.Group("/")
	authed.Use(middleware.RequireAuth(tokens))
	{
		authed.POST("/checkout", orders.Checkout)
		authed.GET("/orders", orders.ListOrders)
		authed.GET("/orders/:id", orders.GetOrder)

		authed.GET("/wishlist", wishlist.List)
		authed.POST("/wishlist", wishlist.Add)
		authed.DELETE("/wishlist/:product_id", wishlist.Remove)

		authed.POST("/products/:id/reviews", reviews.CreateReview)
	}

	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.RequireAuth(tokens), middleware.RequireRole("admin"))
	{
		adminGroup.Any("/*path", admin.Proxy)
	}
}
