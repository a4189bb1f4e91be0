package store

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"golang.org/x/crypto/bcrypt"

	"github.com/virtualfridge/backend/internal/models"
)

// Dataset file names. Existing data directories keep working across
// upgrades.
const (
	productsFile = "produkte.json"
	usersFile    = "users.json"
	recipesFile  = "rezepte.json"
)

// Store persists the three username-keyed datasets as whole-file JSON
// snapshots. Every save fully overwrites the dataset; a load of an
// absent or undecodable file degrades to empty state.
type Store struct {
	dataDir string
}

// New creates a Store rooted at dataDir, creating the directory if
// needed.
func New(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Store{dataDir: dataDir}, nil
}

// load reads one dataset file into out. The file is decoded into a
// fresh value first so a decode failure cannot leak partially
// populated state; absent and undecodable files both leave out
// untouched, corruption is logged but not distinguished from "no data
// yet".
func load[T any](s *Store, file string, out *T) {
	data, err := os.ReadFile(filepath.Join(s.dataDir, file))
	if err != nil {
		return
	}
	var decoded T
	if err := json.Unmarshal(data, &decoded); err != nil {
		log.Printf("ignoring undecodable %s: %v", file, err)
		return
	}
	*out = decoded
}

// save writes one dataset atomically: marshal, write to a temp file in
// the same directory, rename over the target.
func (s *Store) save(file string, in interface{}) error {
	data, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", file, err)
	}

	tmp, err := os.CreateTemp(s.dataDir, file+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", file, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write %s: %w", file, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close %s: %w", file, err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dataDir, file)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace %s: %w", file, err)
	}
	return nil
}

// LoadProducts returns the username -> product-list mapping.
func (s *Store) LoadProducts() map[string][]models.Product {
	products := make(map[string][]models.Product)
	load(s, productsFile, &products)
	if products == nil {
		products = make(map[string][]models.Product)
	}
	return products
}

// SaveProducts overwrites the product dataset.
func (s *Store) SaveProducts(products map[string][]models.Product) error {
	return s.save(productsFile, products)
}

// LoadUsers returns the username -> account mapping. An absent or
// empty dataset is seeded with the default admin/admin account.
func (s *Store) LoadUsers() map[string]models.User {
	users := make(map[string]models.User)
	load(s, usersFile, &users)
	if len(users) == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("failed to seed admin account: %v", err)
			return users
		}
		users = map[string]models.User{
			models.AdminUsername: {PasswordHash: string(hash), Role: models.RoleAdmin},
		}
	}
	return users
}

// SaveUsers overwrites the user dataset.
func (s *Store) SaveUsers(users map[string]models.User) error {
	return s.save(usersFile, users)
}

// LoadRecipes returns the username -> recipe-history mapping.
func (s *Store) LoadRecipes() map[string][]models.RecipeHistoryEntry {
	recipes := make(map[string][]models.RecipeHistoryEntry)
	load(s, recipesFile, &recipes)
	if recipes == nil {
		recipes = make(map[string][]models.RecipeHistoryEntry)
	}
	return recipes
}

// SaveRecipes overwrites the recipe-history dataset.
func (s *Store) SaveRecipes(recipes map[string][]models.RecipeHistoryEntry) error {
	return s.save(recipesFile, recipes)
}
