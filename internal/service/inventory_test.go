package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/virtualfridge/backend/internal/store"
)

// newTestInventory wires an inventory service against a resolver
// backed by the given catalog handler.
func newTestInventory(t *testing.T, st *store.Store, catalog http.HandlerFunc) *InventoryService {
	t.Helper()
	if catalog == nil {
		catalog = func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}
	}
	srv := httptest.NewServer(catalog)
	t.Cleanup(srv.Close)
	return NewInventoryService(st, newTestBarcodeService(srv.URL))
}

func TestInventoryService_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("should prefer the manual name over the barcode", func(t *testing.T) {
		st := newTestStore(t)
		svc := newTestInventory(t, st, func(w http.ResponseWriter, r *http.Request) {
			t.Error("resolver must not be called when a manual name is given")
		})

		product, err := svc.Add(ctx, "anna", "Milk", "1234567890", "")

		require.NoError(t, err)
		assert.Equal(t, "Milk", product.Name)
		assert.Equal(t, "", product.Ablauf)
		assert.NotEmpty(t, product.ID)

		stored := st.LoadProducts()["anna"]
		require.Len(t, stored, 1)
		assert.Equal(t, product, stored[0])
	})

	t.Run("should use the resolved name for a known barcode", func(t *testing.T) {
		st := newTestStore(t)
		svc := newTestInventory(t, st, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"product":{"product_name":"Ritter Sport Nugat"}}`))
		})

		product, err := svc.Add(ctx, "anna", "", "4000417025005", "2026-12-01")

		require.NoError(t, err)
		assert.Equal(t, "Ritter Sport Nugat", product.Name)
		assert.Equal(t, "2026-12-01", product.Ablauf)
	})

	t.Run("should embed the barcode in the placeholder when unresolved", func(t *testing.T) {
		st := newTestStore(t)
		svc := newTestInventory(t, st, nil)

		product, err := svc.Add(ctx, "anna", "", "0000000000", "")

		require.NoError(t, err)
		assert.Equal(t, "Unbekanntes Produkt (0000000000)", product.Name)
	})

	t.Run("should fall back to the generic placeholder without any name", func(t *testing.T) {
		st := newTestStore(t)
		svc := newTestInventory(t, st, nil)

		product, err := svc.Add(ctx, "anna", "", "", "")

		require.NoError(t, err)
		assert.Equal(t, "Unbekanntes Produkt", product.Name)
	})

	t.Run("should store the expiry string verbatim", func(t *testing.T) {
		st := newTestStore(t)
		svc := newTestInventory(t, st, nil)

		product, err := svc.Add(ctx, "anna", "Joghurt", "", "irgendwann nächste Woche")

		require.NoError(t, err)
		assert.Equal(t, "irgendwann nächste Woche", product.Ablauf)
	})

	t.Run("should append and keep list order", func(t *testing.T) {
		st := newTestStore(t)
		svc := newTestInventory(t, st, nil)

		_, err := svc.Add(ctx, "anna", "Milch", "", "")
		require.NoError(t, err)
		_, err = svc.Add(ctx, "anna", "Brot", "", "")
		require.NoError(t, err)

		stored := st.LoadProducts()["anna"]
		require.Len(t, stored, 2)
		assert.Equal(t, "Milch", stored[0].Name)
		assert.Equal(t, "Brot", stored[1].Name)
	})
}

func TestInventoryService_Edit(t *testing.T) {
	ctx := context.Background()

	t.Run("should rename by id and persist", func(t *testing.T) {
		st := newTestStore(t)
		svc := newTestInventory(t, st, nil)
		product, err := svc.Add(ctx, "anna", "Milch", "", "")
		require.NoError(t, err)

		require.NoError(t, svc.Edit("anna", product.ID, "Hafermilch"))

		assert.Equal(t, "Hafermilch", st.LoadProducts()["anna"][0].Name)
	})

	t.Run("should ignore an unknown id", func(t *testing.T) {
		st := newTestStore(t)
		svc := newTestInventory(t, st, nil)
		_, err := svc.Add(ctx, "anna", "Milch", "", "")
		require.NoError(t, err)

		require.NoError(t, svc.Edit("anna", "missing", "Hafermilch"))

		assert.Equal(t, "Milch", st.LoadProducts()["anna"][0].Name)
	})

	t.Run("should ignore an empty name", func(t *testing.T) {
		st := newTestStore(t)
		svc := newTestInventory(t, st, nil)
		product, err := svc.Add(ctx, "anna", "Milch", "", "")
		require.NoError(t, err)

		require.NoError(t, svc.Edit("anna", product.ID, ""))

		assert.Equal(t, "Milch", st.LoadProducts()["anna"][0].Name)
	})
}

func TestInventoryService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("should remove by id and persist", func(t *testing.T) {
		st := newTestStore(t)
		svc := newTestInventory(t, st, nil)
		milch, err := svc.Add(ctx, "anna", "Milch", "", "")
		require.NoError(t, err)
		_, err = svc.Add(ctx, "anna", "Brot", "", "")
		require.NoError(t, err)

		require.NoError(t, svc.Delete("anna", milch.ID))

		stored := st.LoadProducts()["anna"]
		require.Len(t, stored, 1)
		assert.Equal(t, "Brot", stored[0].Name)
	})

	t.Run("should ignore an unknown id", func(t *testing.T) {
		st := newTestStore(t)
		svc := newTestInventory(t, st, nil)
		_, err := svc.Add(ctx, "anna", "Milch", "", "")
		require.NoError(t, err)

		require.NoError(t, svc.Delete("anna", "missing"))

		assert.Len(t, st.LoadProducts()["anna"], 1)
	})
}

func TestInventoryService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("should filter case-insensitively without persisting", func(t *testing.T) {
		st := newTestStore(t)
		svc := newTestInventory(t, st, nil)
		_, err := svc.Add(ctx, "anna", "Vollmilch", "", "")
		require.NoError(t, err)
		_, err = svc.Add(ctx, "anna", "Brot", "", "")
		require.NoError(t, err)

		filtered := svc.List("anna", "MILCH")

		require.Len(t, filtered, 1)
		assert.Equal(t, "Vollmilch", filtered[0].Name)
		assert.Len(t, st.LoadProducts()["anna"], 2)
	})

	t.Run("should return everything without a search term", func(t *testing.T) {
		st := newTestStore(t)
		svc := newTestInventory(t, st, nil)
		_, err := svc.Add(ctx, "anna", "Milch", "", "")
		require.NoError(t, err)

		assert.Len(t, svc.List("anna", ""), 1)
	})

	t.Run("should return an empty list for an unknown user", func(t *testing.T) {
		svc := newTestInventory(t, newTestStore(t), nil)

		list := svc.List("niemand", "")

		assert.NotNil(t, list)
		assert.Empty(t, list)
	})
}
