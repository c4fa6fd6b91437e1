package entities

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// MaterialLine is a single input of a recipe: the material consumed and how
// much of it one production run requires.
type MaterialLine struct {
	Name   TypeName
	QtyPer decimal.Decimal
}

// Recipe describes how one item is manufactured. Materials are kept in the
// order the source supplied them; child expansion follows that order.
type Recipe struct {
	Name      TypeName
	Source    RecipeSource
	Materials []MaterialLine

	// ActivityTime is the duration of one manufacturing run. Zero means the
	// source did not supply a time (custom recipes never carry one).
	ActivityTime time.Duration

	// Custom recipe metadata from the recipes file.
	RecipeType string
	BaseItem   TypeName
	MELevel    int
	TELevel    int

	// Catalog metadata from the SDE reference data.
	BlueprintID   int64
	BlueprintName string
}

// NewMaterialLine creates a validated MaterialLine
func NewMaterialLine(name TypeName, qtyPer decimal.Decimal) (*MaterialLine, error) {
	if name == "" {
		return nil, fmt.Errorf("material name cannot be empty")
	}
	if qtyPer.IsNegative() || qtyPer.IsZero() {
		return nil, fmt.Errorf("quantity per unit must be positive, got %s", qtyPer)
	}
	return &MaterialLine{Name: name, QtyPer: qtyPer}, nil
}

// Validate checks that a recipe is usable for expansion. A recipe with no
// materials is treated the same as no recipe at all, so loaders must not
// hand one to the builder.
func (r *Recipe) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("recipe name cannot be empty")
	}
	if len(r.Materials) == 0 {
		return fmt.Errorf("recipe for %s has no materials", r.Name)
	}
	for _, line := range r.Materials {
		if line.Name == "" {
			return fmt.Errorf("recipe for %s has a material with no name", r.Name)
		}
		if line.Name == r.Name {
			return fmt.Errorf("recipe for %s consumes itself", r.Name)
		}
		if !line.QtyPer.IsPositive() {
			return fmt.Errorf("recipe for %s: quantity for %s must be positive, got %s",
				r.Name, line.Name, line.QtyPer)
		}
	}
	if r.ActivityTime < 0 {
		return fmt.Errorf("recipe for %s has negative activity time", r.Name)
	}
	return nil
}
