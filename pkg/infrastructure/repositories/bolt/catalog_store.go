// Package bolt implements a persistent CatalogRepository using bbolt
// (embedded B+ tree). Recipes are imported once from the SDE CSV join and
// served from the database afterwards, so repeat runs skip the join.
// Writes are transactional; a crash mid-import cannot corrupt previously
// committed data.
package bolt

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	bbolt "go.etcd.io/bbolt"

	"github.com/Arielore/EVE-Industry/pkg/domain/entities"
	"github.com/Arielore/EVE-Industry/pkg/domain/repositories"
)

var bucketCatalog = []byte("catalog")

// CatalogStore implements repositories.CatalogRepository backed by bbolt
type CatalogStore struct {
	db *bbolt.DB
}

// Verify interface compliance
var _ repositories.CatalogRepository = (*CatalogStore)(nil)

// Open opens (or creates) a catalog database at the given path
func Open(path string) (*CatalogStore, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}
	return &CatalogStore{db: db}, nil
}

// Close closes the underlying database
func (s *CatalogStore) Close() error {
	return s.db.Close()
}

// ImportRecipes stores a batch of catalog recipes in one transaction,
// replacing existing entries for the same product names. Recipes with no
// materials are rejected before anything is written.
func (s *CatalogStore) ImportRecipes(recipes []entities.Recipe) error {
	for _, recipe := range recipes {
		if err := recipe.Validate(); err != nil {
			return fmt.Errorf("refusing to import invalid recipe: %w", err)
		}
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(bucketCatalog)
		if err != nil {
			return err
		}
		for _, recipe := range recipes {
			recipe.Source = entities.SourceCatalog
			value, err := json.Marshal(recipe)
			if err != nil {
				return fmt.Errorf("marshal recipe %s: %w", recipe.Name, err)
			}
			if err := bucket.Put([]byte(recipe.Name), value); err != nil {
				return err
			}
		}
		return nil
	})
}

// Count returns the number of stored catalog recipes
func (s *CatalogStore) Count() (int, error) {
	var count int
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCatalog)
		if bucket == nil {
			return nil
		}
		count = bucket.Stats().KeyN
		return nil
	})
	return count, err
}

// FindCatalogRecipe returns the manufacturing recipe producing name, or nil
// if none is stored
func (s *CatalogStore) FindCatalogRecipe(_ context.Context, name entities.TypeName) (*entities.Recipe, error) {
	var value []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCatalog)
		if bucket == nil {
			return nil
		}
		// Copy bytes out of the transaction (bbolt slices are only valid within it)
		if v := bucket.Get([]byte(name)); v != nil {
			value = make([]byte, len(v))
			copy(value, v)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("catalog read: %w", err)
	}
	if value == nil {
		return nil, nil
	}

	var recipe entities.Recipe
	if err := json.Unmarshal(value, &recipe); err != nil {
		return nil, fmt.Errorf("unmarshal recipe %s: %w", name, err)
	}
	return &recipe, nil
}
