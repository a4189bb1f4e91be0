package api

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/virtualfridge/backend/internal/middleware"
	"github.com/virtualfridge/backend/internal/service"
)

// AuthHandler handles login, logout and password changes.
type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// RegisterRoutes registers the public auth routes.
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)
	}
}

// RegisterProtectedRoutes registers the auth routes requiring a
// session.
func (h *AuthHandler) RegisterProtectedRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/change-password", h.ChangePassword)
	}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login checks the credentials and issues the session token, both in
// the response body and as a cookie for browser clients.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Bitte alle Felder ausfüllen"})
		return
	}

	// Login forms tend to submit padded values; compare the trimmed
	// credentials.
	req.Username = strings.TrimSpace(req.Username)
	req.Password = strings.TrimSpace(req.Password)

	token, err := h.auth.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "Falscher Login"})
			return
		}
		log.Printf("login failed for %s: %v", req.Username, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Login fehlgeschlagen"})
		return
	}

	c.SetCookie(middleware.SessionCookie, token, 86400, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"success": true, "token": token})
}

// Logout clears the session cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangePassword changes the current user's password.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Ungültige Anfrage"})
		return
	}

	if req.CurrentPassword == "" || req.NewPassword == "" {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Bitte alle Felder ausfüllen"})
		return
	}

	username := c.GetString("username")
	err := h.auth.ChangePassword(username, req.CurrentPassword, req.NewPassword)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Passwort erfolgreich geändert"})
	case errors.Is(err, service.ErrWrongPassword):
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Aktuelles Passwort ist falsch"})
	case errors.Is(err, service.ErrPasswordTooShort):
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Neues Passwort muss mindestens 3 Zeichen lang sein"})
	default:
		log.Printf("password change failed for %s: %v", username, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Passwortänderung fehlgeschlagen"})
	}
}
