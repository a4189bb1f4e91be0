package api_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/virtualfridge/backend/internal/models"
)

func seedHistory(t *testing.T, env *testEnv, username string, entries ...models.RecipeHistoryEntry) {
	t.Helper()
	require.NoError(t, env.Store.SaveRecipes(map[string][]models.RecipeHistoryEntry{
		username: entries,
	}))
}

func TestGenerateRecipe(t *testing.T) {
	t.Run("should fail with an explanation when the fridge is empty", func(t *testing.T) {
		env := setupTestRouter(t, nil)
		token := env.login(t, "admin", "admin")

		code, resp := env.request(t, http.MethodGet, "/api/v1/recipes/generate", token, nil)

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, false, resp["success"])
		assert.Equal(t, "Du hast noch keine Produkte in deinem Kühlschrank! Füge erst einige Produkte hinzu.", resp["message"])
	})

	t.Run("should store the generated recipe in the history", func(t *testing.T) {
		// Without an API key the instructional variant is produced,
		// which counts as a successful generation.
		env := setupTestRouter(t, nil)
		token := env.login(t, "admin", "admin")
		env.request(t, http.MethodPost, "/api/v1/products", token, map[string]string{"manual_name": "Tomaten"})

		code, resp := env.request(t, http.MethodGet, "/api/v1/recipes/generate", token, nil)

		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, true, resp["success"])
		assert.NotEmpty(t, resp["recipe_id"])
		recipe := resp["recipe"].(map[string]interface{})
		assert.NotEmpty(t, recipe["title"])

		stored := env.Store.LoadRecipes()["admin"]
		require.Len(t, stored, 1)
		assert.Equal(t, resp["recipe_id"], stored[0].ID)
	})
}

func TestRecipeHistory(t *testing.T) {
	t.Run("should prune expired entries on fetch", func(t *testing.T) {
		env := setupTestRouter(t, nil)
		token := env.login(t, "admin", "admin")

		fresh := models.RecipeHistoryEntry{
			ID:        "fresh",
			CreatedAt: time.Now().Add(-time.Hour).Format(time.RFC3339Nano),
		}
		expired := models.RecipeHistoryEntry{
			ID:        "expired",
			CreatedAt: time.Now().Add(-10 * 24 * time.Hour).Format(time.RFC3339Nano),
		}
		favorite := models.RecipeHistoryEntry{
			ID:         "favorite",
			CreatedAt:  time.Now().Add(-10 * 24 * time.Hour).Format(time.RFC3339Nano),
			IsFavorite: true,
		}
		seedHistory(t, env, "admin", fresh, expired, favorite)

		code, resp := env.request(t, http.MethodGet, "/api/v1/recipes/history", token, nil)

		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, true, resp["success"])
		recipes := resp["recipes"].([]interface{})
		require.Len(t, recipes, 2)
		assert.Equal(t, "fresh", recipes[0].(map[string]interface{})["id"])
		assert.Equal(t, "favorite", recipes[1].(map[string]interface{})["id"])

		assert.Len(t, env.Store.LoadRecipes()["admin"], 2)
	})
}

func TestToggleFavorite(t *testing.T) {
	t.Run("should flip a known entry", func(t *testing.T) {
		env := setupTestRouter(t, nil)
		token := env.login(t, "admin", "admin")
		seedHistory(t, env, "admin", models.RecipeHistoryEntry{
			ID:        "r1",
			CreatedAt: time.Now().Format(time.RFC3339Nano),
		})

		code, resp := env.request(t, http.MethodPost, "/api/v1/recipes/toggle-favorite", token, map[string]string{"recipe_id": "r1"})

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, true, resp["success"])
		assert.Equal(t, true, resp["is_favorite"])
		assert.True(t, env.Store.LoadRecipes()["admin"][0].IsFavorite)
	})

	t.Run("should fail on an unknown id without mutating", func(t *testing.T) {
		env := setupTestRouter(t, nil)
		token := env.login(t, "admin", "admin")
		seedHistory(t, env, "admin", models.RecipeHistoryEntry{
			ID:        "r1",
			CreatedAt: time.Now().Format(time.RFC3339Nano),
		})

		code, resp := env.request(t, http.MethodPost, "/api/v1/recipes/toggle-favorite", token, map[string]string{"recipe_id": "missing"})

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, false, resp["success"])
		assert.Equal(t, "Rezept nicht gefunden", resp["message"])
		assert.False(t, env.Store.LoadRecipes()["admin"][0].IsFavorite)
	})

	t.Run("should fail on a missing id field", func(t *testing.T) {
		env := setupTestRouter(t, nil)
		token := env.login(t, "admin", "admin")

		code, resp := env.request(t, http.MethodPost, "/api/v1/recipes/toggle-favorite", token, map[string]string{})

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, false, resp["success"])
		assert.Equal(t, "Rezept ID fehlt", resp["message"])
	})
}
