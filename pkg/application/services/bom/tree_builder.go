// Package bom implements BOM tree expansion and analysis: recursive recipe
// resolution from a product down to raw materials, and the derived
// raw-material totals, operation counts and time estimates.
package bom

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Arielore/EVE-Industry/pkg/domain/entities"
	"github.com/Arielore/EVE-Industry/pkg/domain/repositories"
	"github.com/Arielore/EVE-Industry/pkg/domain/services"
	"github.com/Arielore/EVE-Industry/pkg/infrastructure/observability"
)

// DefaultMaxDepth bounds recursion on cyclic or pathologically deep recipe
// graphs. Branches at the limit are dropped, not errors.
const DefaultMaxDepth = 10

// BuilderConfig holds configuration for the tree builder
type BuilderConfig struct {
	MaxDepth int
}

// cacheKey memoizes sub-problems by (item name, required quantity). The same
// item at a different absolute quantity is rebuilt; see the per-quantity
// caching contract in the package docs.
type cacheKey struct {
	name entities.TypeName
	qty  string
}

// TreeBuilder recursively expands an item and quantity into a tree of
// MaterialNodes, applying custom-over-catalog recipe precedence, a depth
// guard and per-(name, quantity) memoization.
//
// A builder instance is not safe for concurrent use: the memo cache is
// unguarded instance state. Run one Build or Analyze call at a time, or use
// separate builders.
type TreeBuilder struct {
	custom     repositories.CustomRecipeRepository
	catalog    repositories.CatalogRepository
	classifier *services.Classifier
	config     BuilderConfig
	logger     *zap.Logger

	memo        map[cacheKey]*entities.MaterialNode
	truncations int
}

// NewTreeBuilder creates a builder with the default depth guard
func NewTreeBuilder(
	custom repositories.CustomRecipeRepository,
	catalog repositories.CatalogRepository,
	classifier *services.Classifier,
	logger *zap.Logger,
) *TreeBuilder {
	return NewTreeBuilderWithConfig(custom, catalog, classifier, logger, BuilderConfig{
		MaxDepth: DefaultMaxDepth,
	})
}

// NewTreeBuilderWithConfig creates a builder with custom configuration
func NewTreeBuilderWithConfig(
	custom repositories.CustomRecipeRepository,
	catalog repositories.CatalogRepository,
	classifier *services.Classifier,
	logger *zap.Logger,
	config BuilderConfig,
) *TreeBuilder {
	if config.MaxDepth <= 0 {
		config.MaxDepth = DefaultMaxDepth
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TreeBuilder{
		custom:     custom,
		catalog:    catalog,
		classifier: classifier,
		config:     config,
		logger:     logger,
		memo:       make(map[cacheKey]*entities.MaterialNode),
	}
}

// Build expands item into a BOM tree for the given required quantity.
// It returns nil only when the root itself is cut off by the depth guard,
// which cannot happen at depth zero with a positive MaxDepth; lookup faults
// and missing recipes degrade to raw leaves instead of failing.
func (b *TreeBuilder) Build(ctx context.Context, item entities.TypeName, quantity decimal.Decimal) *entities.MaterialNode {
	return b.build(ctx, item, quantity, 0)
}

func (b *TreeBuilder) build(ctx context.Context, item entities.TypeName, quantity decimal.Decimal, depth int) *entities.MaterialNode {
	if depth >= b.config.MaxDepth {
		b.truncations++
		observability.RecordTruncation()
		b.logger.Debug("max depth reached, dropping branch",
			zap.String("item", string(item)),
			zap.Int("depth", depth))
		return nil
	}

	key := cacheKey{name: item, qty: quantity.String()}
	if cached, ok := b.memo[key]; ok {
		observability.RecordCacheHit()
		// Hand out a clone so no two parents share a subtree.
		return cached.Clone()
	}

	if b.classifier.IsRaw(ctx, item) {
		node := entities.NewRawLeaf(item, quantity)
		b.memo[key] = node
		return node
	}

	recipe := b.resolveRecipe(ctx, item)
	if recipe == nil {
		// Recovery path: the classifier thinks the item is manufacturable
		// but no usable recipe data exists. Treat as an unexpandable leaf.
		b.logger.Debug("no recipe found, treating as raw",
			zap.String("item", string(item)))
		node := entities.NewRawLeaf(item, quantity)
		b.memo[key] = node
		return node
	}

	node := &entities.MaterialNode{
		Name:         item,
		Quantity:     quantity,
		IsRaw:        false,
		Source:       recipe.Source,
		ActivityTime: recipe.ActivityTime,
	}

	for _, line := range recipe.Materials {
		childQty := line.QtyPer.Mul(quantity)
		child := b.build(ctx, line.Name, childQty, depth+1)
		if child != nil {
			node.Materials = append(node.Materials, child)
		}
	}

	b.memo[key] = node
	return node
}

// resolveRecipe applies recipe precedence: custom first, then catalog.
// Lookup faults and empty material lists both count as "not found".
func (b *TreeBuilder) resolveRecipe(ctx context.Context, item entities.TypeName) *entities.Recipe {
	if b.custom != nil {
		recipe, err := b.custom.FindCustomRecipe(ctx, item)
		switch {
		case err != nil:
			observability.RecordLookup(observability.KindCustom, observability.ResultError)
			b.logger.Warn("custom recipe lookup failed",
				zap.String("item", string(item)),
				zap.Error(err))
		case recipe != nil && len(recipe.Materials) > 0:
			observability.RecordLookup(observability.KindCustom, observability.ResultHit)
			recipe.Source = entities.SourceCustom
			return recipe
		default:
			observability.RecordLookup(observability.KindCustom, observability.ResultMiss)
		}
	}

	if b.catalog != nil {
		recipe, err := b.catalog.FindCatalogRecipe(ctx, item)
		switch {
		case err != nil:
			observability.RecordLookup(observability.KindCatalog, observability.ResultError)
			b.logger.Warn("catalog recipe lookup failed",
				zap.String("item", string(item)),
				zap.Error(err))
		case recipe != nil && len(recipe.Materials) > 0:
			observability.RecordLookup(observability.KindCatalog, observability.ResultHit)
			recipe.Source = entities.SourceCatalog
			return recipe
		default:
			observability.RecordLookup(observability.KindCatalog, observability.ResultMiss)
		}
	}

	return nil
}

// Truncations returns how many branches the depth guard has dropped over
// the lifetime of this builder. Diagnostic only.
func (b *TreeBuilder) Truncations() int {
	return b.truncations
}

// ResetCache clears the memoization cache. The per-(name, quantity) cache
// conflates distinct root requests with coincidentally equal quantities, so
// reset between semantically different runs if that matters to the caller.
func (b *TreeBuilder) ResetCache() {
	b.memo = make(map[cacheKey]*entities.MaterialNode)
}
