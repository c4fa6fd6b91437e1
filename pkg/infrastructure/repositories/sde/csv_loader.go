// Package sde loads the bulk reference dataset (the SDE dump) from CSV
// files and derives one manufacturing recipe per producible item. The dump
// is relational: type names, activity times, activity products and activity
// materials live in separate files joined by blueprint type ID.
package sde

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Arielore/EVE-Industry/pkg/domain/entities"
	"github.com/Arielore/EVE-Industry/pkg/infrastructure/repositories/memory"
)

// ManufacturingActivityID selects manufacturing rows; the dump also carries
// research, copying and invention activities.
const ManufacturingActivityID = 1

// Loader handles loading SDE reference data from CSV files
type Loader struct {
	logger *zap.Logger
}

// NewLoader creates a new SDE CSV loader
func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{logger: logger}
}

type activityProduct struct {
	blueprintID int64
	productID   int64
}

type activityMaterial struct {
	blueprintID int64
	materialID  int64
	quantity    decimal.Decimal
}

// LoadCatalog loads the four SDE files from dir and joins them into a
// catalog repository. Rows with blank or "nan" names and unparsable
// quantities are dropped; a product left with zero valid materials gets no
// recipe at all.
func (l *Loader) LoadCatalog(dir string) (*memory.CatalogRepository, error) {
	recipes, err := l.LoadRecipes(dir)
	if err != nil {
		return nil, err
	}
	repo := memory.NewCatalogRepository()
	repo.Load(recipes)
	return repo, nil
}

// LoadRecipes loads and joins the SDE files into catalog recipes
func (l *Loader) LoadRecipes(dir string) ([]entities.Recipe, error) {
	names, err := l.loadTypeNames(filepath.Join(dir, "types.csv"))
	if err != nil {
		return nil, err
	}

	times, err := l.loadActivityTimes(filepath.Join(dir, "industry_activity.csv"))
	if err != nil {
		return nil, err
	}

	products, err := l.loadProducts(filepath.Join(dir, "industry_activity_products.csv"))
	if err != nil {
		return nil, err
	}

	materials, err := l.loadMaterials(filepath.Join(dir, "industry_activity_materials.csv"))
	if err != nil {
		return nil, err
	}

	materialsByBlueprint := make(map[int64][]activityMaterial)
	for _, m := range materials {
		materialsByBlueprint[m.blueprintID] = append(materialsByBlueprint[m.blueprintID], m)
	}

	var recipes []entities.Recipe
	for _, p := range products {
		productName, ok := names[p.productID]
		if !ok {
			continue
		}

		recipe := entities.Recipe{
			Name:          productName,
			Source:        entities.SourceCatalog,
			ActivityTime:  times[p.blueprintID],
			BlueprintID:   p.blueprintID,
			BlueprintName: string(names[p.blueprintID]),
		}

		for _, m := range materialsByBlueprint[p.blueprintID] {
			materialName, ok := names[m.materialID]
			if !ok {
				l.logger.Warn("material type has no name, dropping row",
					zap.Int64("blueprint_id", p.blueprintID),
					zap.Int64("material_id", m.materialID))
				continue
			}
			recipe.Materials = append(recipe.Materials, entities.MaterialLine{
				Name:   materialName,
				QtyPer: m.quantity,
			})
		}

		// Malformed reference rows can leave a recipe with no materials;
		// such a recipe must not exist (lookups would return it as
		// empty-but-present).
		if len(recipe.Materials) == 0 {
			l.logger.Warn("recipe has no valid materials, skipping",
				zap.String("product", string(productName)),
				zap.Int64("blueprint_id", p.blueprintID))
			continue
		}

		recipes = append(recipes, recipe)
	}

	l.logger.Info("SDE catalog loaded",
		zap.String("dir", dir),
		zap.Int("recipes", len(recipes)))
	return recipes, nil
}

// loadTypeNames reads types.csv (type_id,name), skipping blank and "nan"
// names the dump is known to contain
func (l *Loader) loadTypeNames(filename string) (map[int64]entities.TypeName, error) {
	records, err := readCSV(filename, []string{"type_id", "name"})
	if err != nil {
		return nil, err
	}

	names := make(map[int64]entities.TypeName, len(records))
	for i, record := range records {
		typeID, err := strconv.ParseInt(record[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("types CSV row %d: invalid type_id: %s", i+2, record[0])
		}
		name := strings.TrimSpace(record[1])
		if name == "" || strings.EqualFold(name, "nan") {
			continue
		}
		names[typeID] = entities.TypeName(name)
	}
	return names, nil
}

// loadActivityTimes reads industry_activity.csv (type_id,activity_id,time)
// keeping manufacturing rows only; time is in seconds
func (l *Loader) loadActivityTimes(filename string) (map[int64]time.Duration, error) {
	records, err := readCSV(filename, []string{"type_id", "activity_id", "time"})
	if err != nil {
		return nil, err
	}

	times := make(map[int64]time.Duration)
	for i, record := range records {
		activityID, err := strconv.Atoi(record[1])
		if err != nil || activityID != ManufacturingActivityID {
			continue
		}
		typeID, err := strconv.ParseInt(record[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("activity CSV row %d: invalid type_id: %s", i+2, record[0])
		}
		seconds, err := strconv.ParseFloat(record[2], 64)
		if err != nil || seconds < 0 {
			l.logger.Warn("could not parse activity time, skipping row",
				zap.Int64("type_id", typeID),
				zap.String("time", record[2]))
			continue
		}
		times[typeID] = time.Duration(seconds * float64(time.Second))
	}
	return times, nil
}

// loadProducts reads industry_activity_products.csv
// (type_id,activity_id,product_type_id,quantity) for manufacturing rows
func (l *Loader) loadProducts(filename string) ([]activityProduct, error) {
	records, err := readCSV(filename, []string{"type_id", "activity_id", "product_type_id", "quantity"})
	if err != nil {
		return nil, err
	}

	var products []activityProduct
	for i, record := range records {
		activityID, err := strconv.Atoi(record[1])
		if err != nil || activityID != ManufacturingActivityID {
			continue
		}
		blueprintID, err := strconv.ParseInt(record[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("products CSV row %d: invalid type_id: %s", i+2, record[0])
		}
		productID, err := strconv.ParseInt(record[2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("products CSV row %d: invalid product_type_id: %s", i+2, record[2])
		}
		products = append(products, activityProduct{
			blueprintID: blueprintID,
			productID:   productID,
		})
	}
	return products, nil
}

// loadMaterials reads industry_activity_materials.csv
// (type_id,activity_id,material_type_id,quantity) for manufacturing rows.
// Row order is preserved; it becomes the expansion order.
func (l *Loader) loadMaterials(filename string) ([]activityMaterial, error) {
	records, err := readCSV(filename, []string{"type_id", "activity_id", "material_type_id", "quantity"})
	if err != nil {
		return nil, err
	}

	var materials []activityMaterial
	for i, record := range records {
		activityID, err := strconv.Atoi(record[1])
		if err != nil || activityID != ManufacturingActivityID {
			continue
		}
		blueprintID, err := strconv.ParseInt(record[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("materials CSV row %d: invalid type_id: %s", i+2, record[0])
		}
		materialID, err := strconv.ParseInt(record[2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("materials CSV row %d: invalid material_type_id: %s", i+2, record[2])
		}
		quantity, err := decimal.NewFromString(record[3])
		if err != nil || !quantity.IsPositive() {
			l.logger.Warn("could not parse material quantity, skipping row",
				zap.Int64("blueprint_id", blueprintID),
				zap.String("quantity", record[3]))
			continue
		}
		materials = append(materials, activityMaterial{
			blueprintID: blueprintID,
			materialID:  materialID,
			quantity:    quantity,
		})
	}
	return materials, nil
}

// readCSV opens a CSV file, validates its header and returns the data rows
func readCSV(filename string, expectedHeader []string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open SDE file %s: %w", filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}

	if len(records) < 1 {
		return nil, fmt.Errorf("%s is empty, expected header %v", filename, expectedHeader)
	}

	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("%s header mismatch. Expected: %v, Got: %v",
			filename, expectedHeader, records[0])
	}

	return records[1:], nil
}

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}
	for i, col := range expected {
		if strings.ToLower(strings.TrimSpace(actual[i])) != col {
			return false
		}
	}
	return true
}
