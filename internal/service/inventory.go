package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/virtualfridge/backend/internal/models"
	"github.com/virtualfridge/backend/internal/store"
)

// InventoryService manages the per-user product lists.
type InventoryService struct {
	store   *store.Store
	barcode *BarcodeService
}

func NewInventoryService(st *store.Store, barcode *BarcodeService) *InventoryService {
	return &InventoryService{
		store:   st,
		barcode: barcode,
	}
}

// Add stores a new product for the user. A manual name wins over
// barcode resolution; an unresolvable barcode yields a placeholder
// name embedding the raw code. The expiry string is stored verbatim.
func (s *InventoryService) Add(ctx context.Context, username, manualName, barcode, ablauf string) (models.Product, error) {
	var name string
	switch {
	case manualName != "":
		name = manualName
	case barcode != "":
		resolved, ok := s.barcode.Lookup(ctx, barcode)
		if ok {
			name = resolved
		} else {
			name = fmt.Sprintf("Unbekanntes Produkt (%s)", barcode)
		}
	default:
		name = "Unbekanntes Produkt"
	}

	product := models.Product{
		ID:     uuid.New().String(),
		Name:   name,
		Ablauf: ablauf,
	}

	products := s.store.LoadProducts()
	products[username] = append(products[username], product)
	if err := s.store.SaveProducts(products); err != nil {
		return models.Product{}, err
	}
	return product, nil
}

// Edit renames a product by id. An unknown id or empty name is a
// silent no-op.
func (s *InventoryService) Edit(username, id, newName string) error {
	if newName == "" {
		return nil
	}
	products := s.store.LoadProducts()
	for i, p := range products[username] {
		if p.ID == id {
			products[username][i].Name = newName
			return s.store.SaveProducts(products)
		}
	}
	return nil
}

// Delete removes a product by id. Unknown ids are silently ignored.
func (s *InventoryService) Delete(username, id string) error {
	products := s.store.LoadProducts()
	list := products[username]
	for i, p := range list {
		if p.ID == id {
			products[username] = append(list[:i], list[i+1:]...)
			return s.store.SaveProducts(products)
		}
	}
	return nil
}

// List returns the user's products, optionally filtered by a
// case-insensitive substring match on the name. The filter is
// read-only and never persisted.
func (s *InventoryService) List(username, search string) []models.Product {
	products := s.store.LoadProducts()
	list := products[username]
	if list == nil {
		list = []models.Product{}
	}
	if search == "" {
		return list
	}

	search = strings.ToLower(search)
	filtered := []models.Product{}
	for _, p := range list {
		if strings.Contains(strings.ToLower(p.Name), search) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
