package bolt

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Arielore/EVE-Industry/pkg/domain/entities"
)

func openTestStore(t *testing.T) *CatalogStore {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func storedRecipe(name entities.TypeName) entities.Recipe {
	return entities.Recipe{
		Name:         name,
		ActivityTime: 600 * time.Second,
		Materials: []entities.MaterialLine{
			{Name: "Tritanium", QtyPer: decimal.NewFromInt(1210)},
			{Name: "Pyerite", QtyPer: decimal.NewFromInt(303)},
		},
	}
}

func TestCatalogStore_ImportAndFind(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.ImportRecipes([]entities.Recipe{
		storedRecipe("Light Missile Launcher I"),
		storedRecipe("Hobgoblin I"),
	}))

	count, err := store.Count()
	require.NoError(t, err)
	require.Equal(t, 2, count)

	recipe, err := store.FindCatalogRecipe(context.Background(), "Light Missile Launcher I")
	require.NoError(t, err)
	require.NotNil(t, recipe)
	require.Equal(t, entities.SourceCatalog, recipe.Source)
	require.Equal(t, 600*time.Second, recipe.ActivityTime)
	require.Len(t, recipe.Materials, 2)
	require.True(t, recipe.Materials[0].QtyPer.Equal(decimal.NewFromInt(1210)))
}

func TestCatalogStore_MissReturnsNilNil(t *testing.T) {
	store := openTestStore(t)

	recipe, err := store.FindCatalogRecipe(context.Background(), "Nonexistent")
	require.NoError(t, err)
	require.Nil(t, recipe)
}

func TestCatalogStore_RejectsInvalidRecipe(t *testing.T) {
	store := openTestStore(t)

	err := store.ImportRecipes([]entities.Recipe{
		storedRecipe("Good Item"),
		{Name: "Hollow Item"},
	})
	require.Error(t, err)

	// Nothing from the failed batch is visible.
	count, err := store.Count()
	require.NoError(t, err)
	require.Equal(t, 0, count)
}

func TestCatalogStore_ReimportReplaces(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.ImportRecipes([]entities.Recipe{storedRecipe("Item A")}))

	updated := storedRecipe("Item A")
	updated.Materials = []entities.MaterialLine{
		{Name: "Mexallon", QtyPer: decimal.NewFromInt(7)},
	}
	require.NoError(t, store.ImportRecipes([]entities.Recipe{updated}))

	count, err := store.Count()
	require.NoError(t, err)
	require.Equal(t, 1, count)

	recipe, err := store.FindCatalogRecipe(context.Background(), "Item A")
	require.NoError(t, err)
	require.Equal(t, entities.TypeName("Mexallon"), recipe.Materials[0].Name)
}

func TestCatalogStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.ImportRecipes([]entities.Recipe{storedRecipe("Item A")}))
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	recipe, err := reopened.FindCatalogRecipe(context.Background(), "Item A")
	require.NoError(t, err)
	require.NotNil(t, recipe)
}
