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

// UserHandler handles the admin user-management routes.
type UserHandler struct {
	auth *service.AuthService
}

func NewUserHandler(auth *service.AuthService) *UserHandler {
	return &UserHandler{auth: auth}
}

// RegisterRoutes registers the user-management routes. All of them are
// gated on the admin role.
func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	users.Use(middleware.AdminMiddleware())
	{
		users.GET("", h.List)
		users.POST("", h.Add)
		users.DELETE("/:username", h.Delete)
	}
}

type AddUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Add inserts or overwrites an account.
func (h *UserHandler) Add(c *gin.Context) {
	var req AddUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Ungültige Anfrage"})
		return
	}

	err := h.auth.AddUser(strings.TrimSpace(req.Username), strings.TrimSpace(req.Password))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"success": true})
	case errors.Is(err, service.ErrEmptyFields):
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Benutzername und Passwort dürfen nicht leer sein"})
	default:
		log.Printf("failed to add user %s: %v", req.Username, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Benutzer konnte nicht gespeichert werden"})
	}
}

// Delete removes an account. The reserved admin account is never
// removed.
func (h *UserHandler) Delete(c *gin.Context) {
	username := c.Param("username")
	err := h.auth.DeleteUser(username)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"success": true})
	case errors.Is(err, service.ErrReservedUser):
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Der Admin-Account kann nicht gelöscht werden"})
	case errors.Is(err, service.ErrUnknownUser):
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Benutzer nicht gefunden"})
	default:
		log.Printf("failed to delete user %s: %v", username, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Benutzer konnte nicht gelöscht werden"})
	}
}

// List returns all usernames for the admin view.
func (h *UserHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "users": h.auth.ListUsernames()})
}
