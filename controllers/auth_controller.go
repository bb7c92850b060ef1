package controllers

import (
	"net/http"

	"storefront/middleware"
	"storefront/models"
	"storefront/services"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	sessions *services.SessionManager
	provider services.AuthProvider
}

func NewAuthController(sessions *services.SessionManager, provider services.AuthProvider) *AuthController {
	return &AuthController{sessions: sessions, provider: provider}
}

// Login handles user authentication and session start
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	user, pair, svcErr := ac.sessions.Login(c.Request.Context(), middleware.SessionID(c), req.Email, req.Password)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":          user,
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	})
}

// Register creates a new account and logs the session in
func (ac *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	user, pair, svcErr := ac.sessions.Signup(c.Request.Context(), middleware.SessionID(c), req.Name, req.Email, req.Password)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":          user,
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	})
}

// Logout tears down the session; the cart is cleared as part of it
func (ac *AuthController) Logout(c *gin.Context) {
	ac.sessions.Logout(c.Request.Context(), middleware.SessionID(c))
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Refresh rotates a refresh token into a new token pair
func (ac *AuthController) Refresh(c *gin.Context) {
	var req models.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	pair, err := ac.provider.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	})
}

// GetProfile returns the session's current user
func (ac *AuthController) GetProfile(c *gin.Context) {
	auth := ac.sessions.Auth(c.Request.Context(), middleware.SessionID(c))
	if !auth.IsAuthenticated() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": auth.User()})
}

// UpdateProfile merges partial profile fields into the current user
func (ac *AuthController) UpdateProfile(c *gin.Context) {
	var req models.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	user, svcErr := ac.sessions.UpdateProfile(c.Request.Context(), middleware.SessionID(c), req)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
