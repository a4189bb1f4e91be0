package service

import (
	"context"
	"errors"
	"time"

	"github.com/virtualfridge/backend/internal/models"
	"github.com/virtualfridge/backend/internal/store"
)

var (
	ErrNoProducts       = errors.New("no products in the fridge")
	ErrGenerationFailed = errors.New("recipe generation failed")
	ErrRecipeNotFound   = errors.New("recipe not found")
)

// retentionAge is how long an unfavorited history entry survives.
const retentionAge = 7

// RecipeService orchestrates recipe generation and the per-user
// history with its retention policy.
type RecipeService struct {
	store *store.Store
	llm   *LLMService
	now   func() time.Time
}

func NewRecipeService(st *store.Store, llm *LLMService) *RecipeService {
	return &RecipeService{
		store: st,
		llm:   llm,
		now:   time.Now,
	}
}

// Generate produces a recipe from the user's inventory, prepends it to
// the history and persists it. The user must have at least one
// product.
func (s *RecipeService) Generate(ctx context.Context, username string) (*models.RecipeHistoryEntry, error) {
	products := s.store.LoadProducts()
	if len(products[username]) == 0 {
		return nil, ErrNoProducts
	}

	recipe := s.llm.Generate(ctx, products[username])
	if recipe == nil {
		return nil, ErrGenerationFailed
	}

	now := s.now()
	entry := models.RecipeHistoryEntry{
		ID:         now.Format(time.RFC3339Nano),
		CreatedAt:  now.Format(time.RFC3339Nano),
		IsFavorite: false,
		Recipe:     *recipe,
	}

	recipes := s.store.LoadRecipes()
	recipes[username] = append([]models.RecipeHistoryEntry{entry}, recipes[username]...)
	if err := s.store.SaveRecipes(recipes); err != nil {
		return nil, err
	}
	return &entry, nil
}

// History returns the user's recipe history with the retention policy
// applied and persisted. Surviving order is preserved (newest first).
func (s *RecipeService) History(username string) ([]models.RecipeHistoryEntry, error) {
	recipes := s.store.LoadRecipes()
	kept := s.applyRetention(recipes[username])
	recipes[username] = kept
	if err := s.store.SaveRecipes(recipes); err != nil {
		return nil, err
	}
	return kept, nil
}

// ToggleFavorite flips the favorite flag of the entry with the given
// id and returns the new state.
func (s *RecipeService) ToggleFavorite(username, recipeID string) (bool, error) {
	recipes := s.store.LoadRecipes()
	for i, entry := range recipes[username] {
		if entry.ID == recipeID {
			recipes[username][i].IsFavorite = !entry.IsFavorite
			if err := s.store.SaveRecipes(recipes); err != nil {
				return false, err
			}
			return recipes[username][i].IsFavorite, nil
		}
	}
	return false, ErrRecipeNotFound
}

// applyRetention keeps an entry if it is favorited or younger than
// retentionAge whole days. Entries with an unparsable timestamp count
// as fresh.
func (s *RecipeService) applyRetention(entries []models.RecipeHistoryEntry) []models.RecipeHistoryEntry {
	now := s.now()
	kept := []models.RecipeHistoryEntry{}
	for _, entry := range entries {
		created, err := time.Parse(time.RFC3339Nano, entry.CreatedAt)
		if err != nil {
			created = now
		}
		ageDays := int(now.Sub(created).Hours() / 24)
		if entry.IsFavorite || ageDays < retentionAge {
			kept = append(kept, entry)
		}
	}
	return kept
}
