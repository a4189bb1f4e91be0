package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/virtualfridge/backend/config"
	"github.com/virtualfridge/backend/internal/api"
	"github.com/virtualfridge/backend/internal/router"
	"github.com/virtualfridge/backend/internal/service"
	"github.com/virtualfridge/backend/internal/store"
)

// testEnv bundles the wired router with the backing store so tests can
// inspect persisted state directly.
type testEnv struct {
	Router *gin.Engine
	Store  *store.Store
	Auth   *service.AuthService
}

// setupTestRouter wires the full application against a temp data dir.
// The barcode catalog is served by catalog (404 for everything when
// nil); the Gemini key is left unset so generation yields the
// instructional variant without network traffic.
func setupTestRouter(t *testing.T, catalog http.HandlerFunc) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	if catalog == nil {
		catalog = func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}
	}
	catalogSrv := httptest.NewServer(catalog)
	t.Cleanup(catalogSrv.Close)

	cfg := &config.Config{
		DataDir:              t.TempDir(),
		JWTSecret:            "test-secret",
		OpenFoodFactsBaseURL: catalogSrv.URL,
	}

	st, err := store.New(cfg.DataDir)
	require.NoError(t, err)

	authService := service.NewAuthService(st, cfg.JWTSecret)
	inventoryService := service.NewInventoryService(st, service.NewBarcodeService(cfg))
	recipeService := service.NewRecipeService(st, service.NewLLMService(cfg))

	r := router.SetupRouter(
		api.NewAuthHandler(authService),
		api.NewProductHandler(inventoryService),
		api.NewUserHandler(authService),
		api.NewRecipeHandler(recipeService),
		authService,
	)

	return &testEnv{Router: r, Store: st, Auth: authService}
}

// request performs a JSON request through the router and decodes the
// response body into a generic map.
func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.Router.ServeHTTP(w, req)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w.Code, resp
}

// login authenticates and returns the session token.
func (e *testEnv) login(t *testing.T, username, password string) string {
	t.Helper()
	code, resp := e.request(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, true, resp["success"], "login failed: %v", resp["message"])
	token, _ := resp["token"].(string)
	require.NotEmpty(t, token)
	return token
}
