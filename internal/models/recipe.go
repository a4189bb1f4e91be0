package models

// Recipe is a generated recipe suggestion. Time and servings are kept
// as strings because the generator returns phrases like "ca. 20
// Minuten" and "2 Personen".
type Recipe struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Ingredients []string `json:"ingredients"`
	Steps       []string `json:"steps"`
	Time        string   `json:"time"`
	Servings    string   `json:"servings"`
}

// RecipeHistoryEntry wraps a generated recipe with the metadata the
// history view needs. ID and CreatedAt are RFC 3339 Nano timestamps;
// the ID doubles as the favorite-toggle handle.
type RecipeHistoryEntry struct {
	ID         string `json:"id"`
	CreatedAt  string `json:"created_at"`
	IsFavorite bool   `json:"is_favorite"`
	Recipe     Recipe `json:"recipe"`
}
