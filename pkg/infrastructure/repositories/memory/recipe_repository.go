// Package memory provides in-memory recipe repositories. They back tests as
// fixture doubles and serve as the runtime store once the YAML and SDE
// loaders have filled them.
package memory

import (
	"context"

	"github.com/Arielore/EVE-Industry/pkg/domain/entities"
	"github.com/Arielore/EVE-Industry/pkg/domain/repositories"
)

// CustomRecipeRepository holds manually curated recipes keyed by item name
type CustomRecipeRepository struct {
	recipes map[entities.TypeName]entities.Recipe
}

// NewCustomRecipeRepository creates an empty custom recipe repository
func NewCustomRecipeRepository() *CustomRecipeRepository {
	return &CustomRecipeRepository{
		recipes: make(map[entities.TypeName]entities.Recipe),
	}
}

// Verify interface compliance
var _ repositories.CustomRecipeRepository = (*CustomRecipeRepository)(nil)

// Add stores a recipe, replacing any existing recipe for the same name
func (r *CustomRecipeRepository) Add(recipe entities.Recipe) {
	recipe.Source = entities.SourceCustom
	r.recipes[recipe.Name] = recipe
}

// Load stores a batch of recipes
func (r *CustomRecipeRepository) Load(recipes []entities.Recipe) {
	for _, recipe := range recipes {
		r.Add(recipe)
	}
}

// Len returns the number of stored recipes
func (r *CustomRecipeRepository) Len() int {
	return len(r.recipes)
}

// FindCustomRecipe returns the recipe for name, or nil if none exists.
// Callers receive a copy; the stored recipe is never aliased.
func (r *CustomRecipeRepository) FindCustomRecipe(_ context.Context, name entities.TypeName) (*entities.Recipe, error) {
	recipe, ok := r.recipes[name]
	if !ok {
		return nil, nil
	}
	return &recipe, nil
}

// CatalogRepository holds manufacturing recipes keyed by the item produced
type CatalogRepository struct {
	recipes map[entities.TypeName]entities.Recipe
}

// NewCatalogRepository creates an empty catalog repository
func NewCatalogRepository() *CatalogRepository {
	return &CatalogRepository{
		recipes: make(map[entities.TypeName]entities.Recipe),
	}
}

// Verify interface compliance
var _ repositories.CatalogRepository = (*CatalogRepository)(nil)

// Add stores a recipe under the product it yields. Recipes with no
// materials are dropped: an empty-but-present recipe must never surface.
func (r *CatalogRepository) Add(recipe entities.Recipe) {
	if len(recipe.Materials) == 0 {
		return
	}
	recipe.Source = entities.SourceCatalog
	r.recipes[recipe.Name] = recipe
}

// Load stores a batch of recipes
func (r *CatalogRepository) Load(recipes []entities.Recipe) {
	for _, recipe := range recipes {
		r.Add(recipe)
	}
}

// Len returns the number of stored recipes
func (r *CatalogRepository) Len() int {
	return len(r.recipes)
}

// All returns every stored recipe, for bulk export into other stores
func (r *CatalogRepository) All() []entities.Recipe {
	out := make([]entities.Recipe, 0, len(r.recipes))
	for _, recipe := range r.recipes {
		out = append(out, recipe)
	}
	return out
}

// FindCatalogRecipe returns the manufacturing recipe producing name, or nil
// if none exists
func (r *CatalogRepository) FindCatalogRecipe(_ context.Context, name entities.TypeName) (*entities.Recipe, error) {
	recipe, ok := r.recipes[name]
	if !ok {
		return nil, nil
	}
	return &recipe, nil
}
