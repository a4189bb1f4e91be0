package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/virtualfridge/backend/config"
)

// barcodeCacheTTL bounds how long a resolved product name is served
// from the cache before the catalog is asked again.
const barcodeCacheTTL = 24 * time.Hour

// BarcodeService resolves barcodes to product names via the Open Food
// Facts catalog. Resolution is best effort: every failure mode maps to
// "not found" and the caller picks a placeholder name.
type BarcodeService struct {
	baseURL string
	client  *http.Client
	redis   *redis.Client
}

// NewBarcodeService creates a BarcodeService. When cfg.RedisHost is
// set, successful lookups are kept in a Redis lookaside cache; without
// Redis every lookup goes to the catalog.
func NewBarcodeService(cfg *config.Config) *BarcodeService {
	var redisClient *redis.Client
	if cfg.RedisHost != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	}

	return &BarcodeService{
		baseURL: cfg.OpenFoodFactsBaseURL,
		client:  &http.Client{Timeout: 5 * time.Second},
		redis:   redisClient,
	}
}

// Lookup returns the product name for a barcode, or ok=false when the
// catalog does not know it or cannot be reached.
func (s *BarcodeService) Lookup(ctx context.Context, barcode string) (string, bool) {
	if barcode == "" {
		return "", false
	}

	if name, ok := s.cached(ctx, barcode); ok {
		return name, true
	}

	url := fmt.Sprintf("%s/api/v0/product/%s.json", s.baseURL, barcode)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", false
	}

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("barcode lookup failed for %s: %v", barcode, err)
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", false
	}

	var result struct {
		Product struct {
			ProductName string `json:"product_name"`
		} `json:"product"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Printf("barcode lookup returned undecodable body for %s: %v", barcode, err)
		return "", false
	}

	name := strings.TrimSpace(result.Product.ProductName)
	if name == "" {
		return "", false
	}

	s.cache(ctx, barcode, name)
	return name, true
}

func (s *BarcodeService) cached(ctx context.Context, barcode string) (string, bool) {
	if s.redis == nil {
		return "", false
	}
	name, err := s.redis.Get(ctx, "barcode:"+barcode).Result()
	if err != nil || name == "" {
		return "", false
	}
	return name, true
}

func (s *BarcodeService) cache(ctx context.Context, barcode, name string) {
	if s.redis == nil {
		return
	}
	// Cache failures only cost us a repeat lookup.
	if err := s.redis.Set(ctx, "barcode:"+barcode, name, barcodeCacheTTL).Err(); err != nil {
		log.Printf("failed to cache barcode %s: %v", barcode, err)
	}
}
