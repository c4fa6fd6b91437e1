package memory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Arielore/EVE-Industry/pkg/domain/entities"
)

func sampleRecipe(name entities.TypeName) entities.Recipe {
	return entities.Recipe{
		Name: name,
		Materials: []entities.MaterialLine{
			{Name: "Tritanium", QtyPer: decimal.NewFromInt(100)},
		},
	}
}

func TestCustomRecipeRepository_AddAndFind(t *testing.T) {
	repo := NewCustomRecipeRepository()
	repo.Add(sampleRecipe("Drone Link Augmentor"))

	recipe, err := repo.FindCustomRecipe(context.Background(), "Drone Link Augmentor")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if recipe == nil {
		t.Fatal("expected a recipe")
	}
	if recipe.Source != entities.SourceCustom {
		t.Errorf("expected custom source, got %s", recipe.Source)
	}
	if repo.Len() != 1 {
		t.Errorf("expected 1 recipe, got %d", repo.Len())
	}
}

func TestCustomRecipeRepository_MissReturnsNilNil(t *testing.T) {
	repo := NewCustomRecipeRepository()

	recipe, err := repo.FindCustomRecipe(context.Background(), "Nonexistent")
	if err != nil {
		t.Fatalf("miss must not error: %v", err)
	}
	if recipe != nil {
		t.Errorf("expected nil recipe on miss, got %+v", recipe)
	}
}

func TestCustomRecipeRepository_FindReturnsCopy(t *testing.T) {
	repo := NewCustomRecipeRepository()
	repo.Add(sampleRecipe("Drone Link Augmentor"))
	ctx := context.Background()

	first, _ := repo.FindCustomRecipe(ctx, "Drone Link Augmentor")
	first.Name = "Mutated"

	second, _ := repo.FindCustomRecipe(ctx, "Drone Link Augmentor")
	if second.Name != "Drone Link Augmentor" {
		t.Error("mutating a returned recipe leaked into the store")
	}
}

func TestCatalogRepository_AddDropsEmptyRecipes(t *testing.T) {
	repo := NewCatalogRepository()
	repo.Add(entities.Recipe{Name: "Broken Item"})

	if repo.Len() != 0 {
		t.Fatalf("expected empty-material recipe to be dropped, got %d", repo.Len())
	}
	recipe, err := repo.FindCatalogRecipe(context.Background(), "Broken Item")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if recipe != nil {
		t.Error("dropped recipe must not surface as present")
	}
}

func TestCatalogRepository_LoadAndAll(t *testing.T) {
	repo := NewCatalogRepository()
	repo.Load([]entities.Recipe{
		sampleRecipe("Item A"),
		sampleRecipe("Item B"),
		{Name: "Empty Item"},
	})

	if repo.Len() != 2 {
		t.Fatalf("expected 2 recipes, got %d", repo.Len())
	}
	all := repo.All()
	if len(all) != 2 {
		t.Fatalf("expected All to return 2 recipes, got %d", len(all))
	}
	for _, recipe := range all {
		if recipe.Source != entities.SourceCatalog {
			t.Errorf("recipe %s missing catalog source", recipe.Name)
		}
	}
}

func TestCatalogRepository_ReplaceOnSameName(t *testing.T) {
	repo := NewCatalogRepository()
	repo.Add(sampleRecipe("Item A"))

	updated := sampleRecipe("Item A")
	updated.Materials = []entities.MaterialLine{
		{Name: "Pyerite", QtyPer: decimal.NewFromInt(5)},
	}
	repo.Add(updated)

	if repo.Len() != 1 {
		t.Fatalf("expected replacement, got %d entries", repo.Len())
	}
	recipe, _ := repo.FindCatalogRecipe(context.Background(), "Item A")
	if recipe.Materials[0].Name != "Pyerite" {
		t.Errorf("expected replaced materials, got %s", recipe.Materials[0].Name)
	}
}
