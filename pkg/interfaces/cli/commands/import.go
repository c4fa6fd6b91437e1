package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Arielore/EVE-Industry/pkg/infrastructure/repositories/bolt"
	"github.com/Arielore/EVE-Industry/pkg/infrastructure/repositories/sde"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import the SDE CSV dumps into a catalog database",
	Long: "Joins the SDE CSV dumps into manufacturing recipes and writes them to an\n" +
		"embedded catalog database, so later runs can skip the CSV join.\n" +
		"Requires --sde-dir and --catalog-db.",
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	if sdeDir == "" || catalogDB == "" {
		return fmt.Errorf("import requires both --sde-dir and --catalog-db")
	}

	logger := newLogger()
	defer logger.Sync()

	recipes, err := sde.NewLoader(logger).LoadRecipes(sdeDir)
	if err != nil {
		return fmt.Errorf("failed to load SDE catalog: %w", err)
	}

	store, err := bolt.Open(catalogDB)
	if err != nil {
		return fmt.Errorf("failed to open catalog database: %w", err)
	}
	defer store.Close()

	if err := store.ImportRecipes(recipes); err != nil {
		return fmt.Errorf("failed to import recipes: %w", err)
	}

	count, err := store.Count()
	if err != nil {
		return err
	}
	fmt.Printf("Imported %d recipes into %s\n", count, catalogDB)
	return nil
}
