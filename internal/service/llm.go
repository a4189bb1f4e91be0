package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/virtualfridge/backend/config"
	"github.com/virtualfridge/backend/internal/models"
)

// apiKeyPlaceholder is the template value an unconfigured deployment
// may still carry; it is treated the same as a missing key.
const apiKeyPlaceholder = "HIER_DEINEN_API_KEY_EINTRAGEN"

// geminiModel is the generative model used for recipe suggestions.
const geminiModel = "gemini-2.5-flash"

// LLMService generates recipe suggestions from a user's inventory via
// the Gemini API. Every failure mode degrades to a renderable recipe;
// Generate never returns an error.
type LLMService struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewLLMService creates a new LLMService instance. A missing or
// placeholder API key is allowed; generation then yields an
// instructional recipe explaining the configuration steps.
func NewLLMService(cfg *config.Config) *LLMService {
	return &LLMService{
		apiKey:  cfg.GeminiAPIKey,
		baseURL: cfg.GeminiBaseURL,
		// The upstream has no SLA; the timeout keeps a hung call from
		// pinning the handler forever.
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

// geminiRequest is the generateContent request payload.
type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

// Generate builds a recipe suggestion from the given products. An
// empty inventory yields nil without touching the external service.
func (s *LLMService) Generate(ctx context.Context, products []models.Product) *models.Recipe {
	if len(products) == 0 {
		return nil
	}

	names := make([]string, len(products))
	for i, p := range products {
		names[i] = p.Name
	}

	if s.apiKey == "" || s.apiKey == apiKeyPlaceholder {
		return missingKeyRecipe(names)
	}

	text, err := s.generateContent(ctx, s.buildPrompt(products))
	if err != nil {
		log.Printf("recipe generation failed: %v", err)
		return errorRecipe(names, err)
	}

	var recipe models.Recipe
	if err := json.Unmarshal([]byte(stripCodeFences(text)), &recipe); err != nil {
		log.Printf("failed to parse recipe JSON: %v", err)
		log.Printf("response text: %s", text)
		return genericRecipe(names)
	}

	return &recipe
}

// buildPrompt renders the instruction for the model: list the
// available ingredients, demand flavor-compatible subsets preferring
// items near expiry, and pin the reply to a pure-JSON recipe shape.
func (s *LLMService) buildPrompt(products []models.Product) string {
	lines := make([]string, len(products))
	for i, p := range products {
		if p.Ablauf != "" {
			lines[i] = fmt.Sprintf("%s (haltbar bis %s)", p.Name, p.Ablauf)
		} else {
			lines[i] = p.Name
		}
	}

	return fmt.Sprintf(`Du bist ein kreativer Koch. Erstelle ein realistisches, kochbares Rezept mit folgenden Zutaten aus dem Kühlschrank:

%s

WICHTIG:
- Das Rezept MUSS zu den vorhandenen Zutaten passen (z.B. kein Salat mit Burger Buns)
- Verwende NUR Zutaten, die geschmacklich gut zusammenpassen, und lasse alle anderen weg
- Bevorzuge Zutaten, die bald ablaufen
- Nutze herkömmliche Gerichte und versuche nicht, alles auf einmal zu verwenden
- Es sollen keine verrückten Kombinationen sein
- Falls die Zutaten nicht für ein vollständiges Gericht reichen, schlage ein einfaches Gericht vor

Antworte im folgenden JSON-Format (ohne Markdown, nur pures JSON):
{
  "title": "Rezeptname",
  "description": "Kurze appetitliche Beschreibung (1-2 Sätze)",
  "ingredients": ["Zutat 1", "Zutat 2", "Zutat 3"],
  "steps": ["Schritt 1", "Schritt 2", "Schritt 3"],
  "time": "ca. 20 Minuten",
  "servings": "2 Personen"
}`, strings.Join(lines, ", "))
}

// generateContent sends one prompt to the Gemini generateContent
// endpoint and returns the reply text.
func (s *LLMService) generateContent(ctx context.Context, prompt string) (string, error) {
	reqBody := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt}}},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", s.baseURL, geminiModel)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}

	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from API")
	}

	return strings.TrimSpace(result.Candidates[0].Content.Parts[0].Text), nil
}

// stripCodeFences removes enclosing ``` markers, which some replies
// carry despite the prompt asking for pure JSON.
func stripCodeFences(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	if idx := strings.Index(text, "\n"); idx >= 0 {
		text = text[idx+1:]
	} else {
		text = text[3:]
	}
	text = strings.TrimSpace(text)
	if strings.HasSuffix(text, "```") {
		text = strings.TrimSpace(text[:len(text)-3])
	}
	return text
}

// missingKeyRecipe is the first-class output for an unconfigured API
// key: the steps tell the operator how to set one up.
func missingKeyRecipe(names []string) *models.Recipe {
	return &models.Recipe{
		Title:       "⚠️ API Key fehlt",
		Description: "Um KI-generierte Rezepte zu erhalten, muss die Umgebungsvariable GEMINI_API_KEY gesetzt werden.",
		Ingredients: names,
		Steps: []string{
			"1. Besuche https://aistudio.google.com/app/apikey",
			"2. Erstelle einen kostenlosen API Key",
			"3. Setze die Umgebungsvariable GEMINI_API_KEY (oder GEMINI_API_KEY_FILE)",
			"4. Starte den Server neu",
		},
		Time:     "N/A",
		Servings: "N/A",
	}
}

// genericRecipe is the fallback when the reply cannot be parsed.
func genericRecipe(names []string) *models.Recipe {
	return &models.Recipe{
		Title:       "Kreatives Kühlschrank-Gericht",
		Description: "Ein improvisiertes Gericht mit deinen Zutaten",
		Ingredients: names,
		Steps: []string{
			"Die Zutaten waschen und vorbereiten",
			"Kombiniere die Zutaten kreativ",
			"Mit Gewürzen abschmecken",
			"Servieren und genießen",
		},
		Time:     "ca. 25 Minuten",
		Servings: "2 Personen",
	}
}

// errorRecipe carries an upstream failure as a renderable recipe.
func errorRecipe(names []string, err error) *models.Recipe {
	return &models.Recipe{
		Title:       "⚠️ Fehler bei der Generierung",
		Description: fmt.Sprintf("Fehler: %v", err),
		Ingredients: names,
		Steps:       []string{"Bitte versuche es erneut"},
		Time:        "N/A",
		Servings:    "N/A",
	}
}
