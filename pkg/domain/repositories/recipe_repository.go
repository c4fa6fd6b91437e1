package repositories

import (
	"context"

	"github.com/Arielore/EVE-Industry/pkg/domain/entities"
)

// CustomRecipeRepository provides access to manually curated recipes, keyed
// by exact item name. At most one custom recipe exists per name.
//
// FindCustomRecipe returns (nil, nil) when no recipe exists. A non-nil error
// is a store fault; callers in the core recover it as "not found".
type CustomRecipeRepository interface {
	FindCustomRecipe(ctx context.Context, name entities.TypeName) (*entities.Recipe, error)
}

// CatalogRepository provides access to manufacturing recipes derived from
// the SDE reference dataset, resolved by the item the recipe produces.
//
// FindCatalogRecipe returns (nil, nil) when no manufacturing recipe produces
// the item, including when the reference rows are malformed and yield zero
// valid materials. Errors follow the same recover-as-not-found contract as
// FindCustomRecipe.
type CatalogRepository interface {
	FindCatalogRecipe(ctx context.Context, name entities.TypeName) (*entities.Recipe, error)
}
