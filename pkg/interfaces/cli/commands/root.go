// Package commands wires the BOM resolution pipeline into cobra commands.
package commands

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Arielore/EVE-Industry/pkg/application/services/bom"
	"github.com/Arielore/EVE-Industry/pkg/domain/entities"
	"github.com/Arielore/EVE-Industry/pkg/domain/repositories"
	"github.com/Arielore/EVE-Industry/pkg/domain/services"
	"github.com/Arielore/EVE-Industry/pkg/infrastructure/observability"
	"github.com/Arielore/EVE-Industry/pkg/infrastructure/repositories/bolt"
	"github.com/Arielore/EVE-Industry/pkg/infrastructure/repositories/memory"
	"github.com/Arielore/EVE-Industry/pkg/infrastructure/repositories/sde"
	"github.com/Arielore/EVE-Industry/pkg/infrastructure/repositories/yamlrepo"
)

var (
	recipesFile string
	sdeDir      string
	catalogDB   string
	maxDepth    int
	orderFlag   string
	formatFlag  string
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "eveindustry",
	Short: "Resolve manufacturable items into bills of materials",
	Long: "Expands an item into its full manufacturing tree, aggregates raw-material\n" +
		"quantities and estimates the manufacturing operation sequence. Custom recipes\n" +
		"come from a YAML file; catalog recipes come from SDE CSV dumps or an imported\n" +
		"catalog database.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&recipesFile, "recipes", "", "Path to custom recipes YAML file")
	rootCmd.PersistentFlags().StringVar(&sdeDir, "sde-dir", "", "Directory containing SDE CSV dumps")
	rootCmd.PersistentFlags().StringVar(&catalogDB, "catalog-db", "", "Path to imported catalog database")
	rootCmd.PersistentFlags().IntVar(&maxDepth, "max-depth", bom.DefaultMaxDepth, "Maximum recipe expansion depth")
	rootCmd.PersistentFlags().StringVar(&orderFlag, "order", "pre", "Operation sequence order: pre or post")
	rootCmd.PersistentFlags().StringVar(&formatFlag, "format", "text", "Output format: text or json")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// newLogger builds the CLI logger from the verbosity flag
func newLogger() *zap.Logger {
	level := "warn"
	if verbose {
		level = "debug"
	}
	logger, err := observability.NewLogger(observability.LogConfig{
		Level:  level,
		Format: "console",
	})
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// openCatalog picks the catalog source: an imported database when given,
// otherwise the SDE CSV dumps, otherwise an empty catalog (everything
// resolves as raw).
func openCatalog(logger *zap.Logger) (repositories.CatalogRepository, func() error, error) {
	if catalogDB != "" {
		store, err := bolt.Open(catalogDB)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open catalog database: %w", err)
		}
		return store, store.Close, nil
	}

	if sdeDir != "" {
		repo, err := sde.NewLoader(logger).LoadCatalog(sdeDir)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load SDE catalog: %w", err)
		}
		return repo, nil, nil
	}

	return memory.NewCatalogRepository(), nil, nil
}

// newAnalyzer assembles the full pipeline from the persistent flags. The
// returned cleanup must run once the analysis is rendered.
func newAnalyzer(logger *zap.Logger) (*bom.Analyzer, func(), error) {
	catalog, closeCatalog, err := openCatalog(logger)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		if closeCatalog != nil {
			if err := closeCatalog(); err != nil {
				logger.Warn("failed to close catalog", zap.Error(err))
			}
		}
		_ = logger.Sync()
	}

	var custom repositories.CustomRecipeRepository
	if recipesFile != "" {
		repo, err := yamlrepo.NewRepository(recipesFile, logger)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("failed to load custom recipes: %w", err)
		}
		custom = repo
	}

	order, err := parseOrder(orderFlag)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	classifier := services.NewClassifier(catalog, nil, logger)
	builder := bom.NewTreeBuilderWithConfig(custom, catalog, classifier, logger, bom.BuilderConfig{
		MaxDepth: maxDepth,
	})
	return bom.NewAnalyzerWithOrder(builder, order, logger), cleanup, nil
}

func parseOrder(s string) (bom.TraversalOrder, error) {
	switch s {
	case "pre":
		return bom.OrderPreOrder, nil
	case "post":
		return bom.OrderPostOrder, nil
	default:
		return bom.OrderPreOrder, fmt.Errorf("invalid order: %s (expected: pre or post)", s)
	}
}

// parseItemArgs reads the positional item name and optional quantity
// (default 1)
func parseItemArgs(args []string) (entities.TypeName, decimal.Decimal, error) {
	item := entities.TypeName(args[0])
	quantity := decimal.NewFromInt(1)
	if len(args) > 1 {
		var err error
		quantity, err = decimal.NewFromString(args[1])
		if err != nil {
			return "", decimal.Zero, fmt.Errorf("invalid quantity %q: %w", args[1], err)
		}
		if quantity.IsNegative() {
			return "", decimal.Zero, fmt.Errorf("quantity cannot be negative: %s", quantity)
		}
	}
	return item, quantity, nil
}
