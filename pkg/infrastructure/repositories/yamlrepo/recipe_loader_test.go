package yamlrepo

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Arielore/EVE-Industry/pkg/domain/entities"
)

const validRecipesYAML = `recipes:
  - name: Light Missile Launcher I
    recipe_type: module
    me_level: 10
    te_level: 20
    materials:
      - name: Tritanium
        quantity: 1210
      - name: Pyerite
        quantity: 303
  - name: Hobgoblin I
    recipe_type: drone
    materials:
      - name: Tritanium
        quantity: "450.5"
`

func writeRecipesFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "recipes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadRecipes(t *testing.T) {
	path := writeRecipesFile(t, validRecipesYAML)

	recipes, err := LoadRecipes(path)
	require.NoError(t, err)
	require.Len(t, recipes, 2)

	launcher := recipes[0]
	require.Equal(t, entities.TypeName("Light Missile Launcher I"), launcher.Name)
	require.Equal(t, entities.SourceCustom, launcher.Source)
	require.Equal(t, "module", launcher.RecipeType)
	require.Equal(t, 10, launcher.MELevel)
	require.Equal(t, 20, launcher.TELevel)

	// Material order follows the file.
	require.Len(t, launcher.Materials, 2)
	require.Equal(t, entities.TypeName("Tritanium"), launcher.Materials[0].Name)
	require.True(t, launcher.Materials[0].QtyPer.Equal(decimal.NewFromInt(1210)))
	require.Equal(t, entities.TypeName("Pyerite"), launcher.Materials[1].Name)

	// Fractional quantities survive as decimals.
	drone := recipes[1]
	require.True(t, drone.Materials[0].QtyPer.Equal(decimal.RequireFromString("450.5")))
}

func TestLoadRecipes_InvalidQuantity(t *testing.T) {
	path := writeRecipesFile(t, `recipes:
  - name: Broken Item
    materials:
      - name: Tritanium
        quantity: lots
`)

	_, err := LoadRecipes(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid quantity")
}

func TestLoadRecipes_RejectsRecipeWithoutMaterials(t *testing.T) {
	path := writeRecipesFile(t, `recipes:
  - name: Hollow Item
    materials: []
`)

	_, err := LoadRecipes(path)
	require.Error(t, err)
}

func TestLoadRecipes_MissingFile(t *testing.T) {
	_, err := LoadRecipes(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestRepository_Reload(t *testing.T) {
	path := writeRecipesFile(t, validRecipesYAML)
	repo, err := NewRepository(path, nil)
	require.NoError(t, err)
	ctx := context.Background()

	recipe, err := repo.FindCustomRecipe(ctx, "Hobgoblin I")
	require.NoError(t, err)
	require.NotNil(t, recipe)

	// Replace the file with a single different recipe.
	require.NoError(t, os.WriteFile(path, []byte(`recipes:
  - name: Warrior I
    materials:
      - name: Pyerite
        quantity: 80
`), 0644))
	require.NoError(t, repo.Reload())

	recipe, err = repo.FindCustomRecipe(ctx, "Hobgoblin I")
	require.NoError(t, err)
	require.Nil(t, recipe)

	recipe, err = repo.FindCustomRecipe(ctx, "Warrior I")
	require.NoError(t, err)
	require.NotNil(t, recipe)
}

func TestRepository_ReloadKeepsOldStoreOnFailure(t *testing.T) {
	path := writeRecipesFile(t, validRecipesYAML)
	repo, err := NewRepository(path, nil)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("recipes: [not, a, recipe"), 0644))
	require.Error(t, repo.Reload())

	// Previous recipes still served.
	recipe, err := repo.FindCustomRecipe(context.Background(), "Hobgoblin I")
	require.NoError(t, err)
	require.NotNil(t, recipe)
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	path := writeRecipesFile(t, validRecipesYAML)
	repo, err := NewRepository(path, nil)
	require.NoError(t, err)

	watcher, err := NewWatcher(repo, nil)
	require.NoError(t, err)
	require.NoError(t, watcher.Start())
	defer watcher.Stop()

	require.NoError(t, os.WriteFile(path, []byte(`recipes:
  - name: Acolyte I
    materials:
      - name: Tritanium
        quantity: 300
`), 0644))

	ctx := context.Background()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		recipe, err := repo.FindCustomRecipe(ctx, "Acolyte I")
		require.NoError(t, err)
		if recipe != nil {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("watcher did not reload recipes within deadline")
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	path := writeRecipesFile(t, validRecipesYAML)
	repo, err := NewRepository(path, nil)
	require.NoError(t, err)

	watcher, err := NewWatcher(repo, nil)
	require.NoError(t, err)
	require.NoError(t, watcher.Start())
	require.NoError(t, watcher.Stop())
	require.NoError(t, watcher.Stop())
}
