package services

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/Arielore/EVE-Industry/pkg/domain/entities"
	"github.com/Arielore/EVE-Industry/pkg/domain/repositories"
)

// DefaultRawMaterials returns the shipped set of known elemental and base
// materials. Membership short-circuits classification without a catalog
// round-trip. The set is data, not policy: callers may pass their own.
func DefaultRawMaterials() map[entities.TypeName]struct{} {
	names := []entities.TypeName{
		"Tritanium", "Pyerite", "Mexallon", "Isogen", "Nocxium", "Zydrine", "Megacyte",
		"Morphite", "Crystalline Carbonide", "Titanium Carbide", "Tungsten Carbide",
		"Fernite Carbide", "Sylramic Fibers", "Fullerides", "Phenolic Composites",
		"Plasmoids", "Oxides", "Oxygen", "Hydrogen", "Helium", "Water",
	}
	set := make(map[entities.TypeName]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

// Classifier decides whether an item is a terminal, unmanufacturable
// material. Items outside the known-raw set require a catalog lookup, so
// results are cached: classification is a query, not a pure function.
type Classifier struct {
	catalog repositories.CatalogRepository
	known   map[entities.TypeName]struct{}
	cache   *gocache.Cache
	logger  *zap.Logger
}

// NewClassifier creates a classifier over the given catalog and known-raw
// set. A nil set means DefaultRawMaterials; a nil logger means no logging.
func NewClassifier(catalog repositories.CatalogRepository, known map[entities.TypeName]struct{}, logger *zap.Logger) *Classifier {
	if known == nil {
		known = DefaultRawMaterials()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Classifier{
		catalog: catalog,
		known:   known,
		cache:   gocache.New(10*time.Minute, 30*time.Minute),
		logger:  logger,
	}
}

// IsRaw reports whether the item has no manufacturing expansion. A catalog
// fault counts as "no recipe found": classification degrades to raw rather
// than failing.
func (c *Classifier) IsRaw(ctx context.Context, name entities.TypeName) bool {
	if _, ok := c.known[name]; ok {
		return true
	}

	if cached, ok := c.cache.Get(string(name)); ok {
		return cached.(bool)
	}

	recipe, err := c.catalog.FindCatalogRecipe(ctx, name)
	if err != nil {
		c.logger.Warn("catalog lookup failed during classification, treating as raw",
			zap.String("item", string(name)),
			zap.Error(err))
		recipe = nil
	}

	isRaw := recipe == nil
	c.cache.Set(string(name), isRaw, gocache.DefaultExpiration)
	return isRaw
}
