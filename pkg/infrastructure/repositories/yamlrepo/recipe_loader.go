// Package yamlrepo loads manually curated recipes from a human-editable
// YAML file and serves them as a CustomRecipeRepository. The file can be
// hot-reloaded, either explicitly or through the fsnotify Watcher.
package yamlrepo

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Arielore/EVE-Industry/pkg/domain/entities"
	"github.com/Arielore/EVE-Industry/pkg/domain/repositories"
	"github.com/Arielore/EVE-Industry/pkg/infrastructure/repositories/memory"
)

// recipeFile is the YAML document shape:
//
//	recipes:
//	  - name: Light Missile Launcher I
//	    recipe_type: module
//	    base_item: ""
//	    me_level: 10
//	    te_level: 20
//	    materials:
//	      - name: Tritanium
//	        quantity: 1210
type recipeFile struct {
	Recipes []recipeYAML `yaml:"recipes"`
}

type recipeYAML struct {
	Name       string         `yaml:"name"`
	RecipeType string         `yaml:"recipe_type"`
	BaseItem   string         `yaml:"base_item"`
	MELevel    int            `yaml:"me_level"`
	TELevel    int            `yaml:"te_level"`
	Materials  []materialYAML `yaml:"materials"`
}

type materialYAML struct {
	Name     string `yaml:"name"`
	Quantity string `yaml:"quantity"`
}

// LoadRecipes parses a recipes YAML file into validated custom recipes.
// Material order in the file is the expansion order.
func LoadRecipes(path string) ([]entities.Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open recipes file %s: %w", path, err)
	}

	var doc recipeFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse recipes YAML: %w", err)
	}

	var recipes []entities.Recipe
	for i, ry := range doc.Recipes {
		recipe, err := parseRecipe(ry)
		if err != nil {
			return nil, fmt.Errorf("recipes entry %d: %w", i+1, err)
		}
		recipes = append(recipes, recipe)
	}

	return recipes, nil
}

func parseRecipe(ry recipeYAML) (entities.Recipe, error) {
	recipe := entities.Recipe{
		Name:       entities.TypeName(ry.Name),
		Source:     entities.SourceCustom,
		RecipeType: ry.RecipeType,
		BaseItem:   entities.TypeName(ry.BaseItem),
		MELevel:    ry.MELevel,
		TELevel:    ry.TELevel,
	}

	for _, my := range ry.Materials {
		qty, err := decimal.NewFromString(my.Quantity)
		if err != nil {
			return entities.Recipe{}, fmt.Errorf("invalid quantity %q for material %s: %w",
				my.Quantity, my.Name, err)
		}
		line, err := entities.NewMaterialLine(entities.TypeName(my.Name), qty)
		if err != nil {
			return entities.Recipe{}, err
		}
		recipe.Materials = append(recipe.Materials, *line)
	}

	if err := recipe.Validate(); err != nil {
		return entities.Recipe{}, err
	}
	return recipe, nil
}

// Repository serves recipes from a YAML file. Reload swaps the backing
// store atomically, so lookups during a reload see either the old or the
// new file, never a mix.
type Repository struct {
	path   string
	logger *zap.Logger

	mu    sync.RWMutex
	store *memory.CustomRecipeRepository
}

// Verify interface compliance
var _ repositories.CustomRecipeRepository = (*Repository)(nil)

// NewRepository loads the recipes file and returns a repository over it
func NewRepository(path string, logger *zap.Logger) (*Repository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Repository{path: path, logger: logger}
	if err := r.Reload(); err != nil {
		return nil, err
	}
	return r, nil
}

// Reload re-reads the recipes file. On parse failure the previous store is
// kept and the error returned.
func (r *Repository) Reload() error {
	recipes, err := LoadRecipes(r.path)
	if err != nil {
		return err
	}

	store := memory.NewCustomRecipeRepository()
	store.Load(recipes)

	r.mu.Lock()
	r.store = store
	r.mu.Unlock()

	r.logger.Info("custom recipes loaded",
		zap.String("path", r.path),
		zap.Int("count", store.Len()))
	return nil
}

// FindCustomRecipe returns the custom recipe for name, or nil if none exists
func (r *Repository) FindCustomRecipe(ctx context.Context, name entities.TypeName) (*entities.Recipe, error) {
	r.mu.RLock()
	store := r.store
	r.mu.RUnlock()
	return store.FindCustomRecipe(ctx, name)
}
