package api

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/virtualfridge/backend/internal/service"
)

// ProductHandler handles the fridge inventory routes.
type ProductHandler struct {
	inventory *service.InventoryService
}

func NewProductHandler(inventory *service.InventoryService) *ProductHandler {
	return &ProductHandler{inventory: inventory}
}

// RegisterRoutes registers the product routes.
func (h *ProductHandler) RegisterRoutes(router *gin.RouterGroup) {
	products := router.Group("/products")
	{
		products.GET("", h.List)
		products.POST("", h.Add)
		products.PUT("/:id", h.Edit)
		products.DELETE("/:id", h.Delete)
	}
}

type AddProductRequest struct {
	Barcode    string `json:"barcode"`
	ManualName string `json:"manual_name"`
	Ablauf     string `json:"ablauf"`
}

// Add stores a new product for the current user.
func (h *ProductHandler) Add(c *gin.Context) {
	var req AddProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Ungültige Anfrage"})
		return
	}

	username := c.GetString("username")
	product, err := h.inventory.Add(
		c.Request.Context(),
		username,
		strings.TrimSpace(req.ManualName),
		strings.TrimSpace(req.Barcode),
		strings.TrimSpace(req.Ablauf),
	)
	if err != nil {
		log.Printf("failed to add product for %s: %v", username, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Produkt konnte nicht gespeichert werden"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "product": product})
}

type EditProductRequest struct {
	Name string `json:"name"`
}

// Edit renames a product. Unknown ids are silently ignored.
func (h *ProductHandler) Edit(c *gin.Context) {
	var req EditProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Ungültige Anfrage"})
		return
	}

	username := c.GetString("username")
	if err := h.inventory.Edit(username, c.Param("id"), strings.TrimSpace(req.Name)); err != nil {
		log.Printf("failed to edit product for %s: %v", username, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Produkt konnte nicht gespeichert werden"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Delete removes a product. Unknown ids are silently ignored.
func (h *ProductHandler) Delete(c *gin.Context) {
	username := c.GetString("username")
	if err := h.inventory.Delete(username, c.Param("id")); err != nil {
		log.Printf("failed to delete product for %s: %v", username, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Produkt konnte nicht gelöscht werden"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// List returns the current user's products, optionally filtered by the
// "suche" query parameter.
func (h *ProductHandler) List(c *gin.Context) {
	username := c.GetString("username")
	products := h.inventory.List(username, c.Query("suche"))
	c.JSON(http.StatusOK, gin.H{"success": true, "products": products})
}
