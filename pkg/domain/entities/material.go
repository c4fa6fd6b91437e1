package entities

// TypeName identifies a material or manufacturable item by its exact name.
// Names are unique within one analysis run, but the same name may appear at
// multiple positions in an expansion tree.
type TypeName string

// RecipeSource identifies where the expansion rule for a node came from
type RecipeSource int

const (
	// SourceNone means the node has not been resolved yet
	SourceNone RecipeSource = iota
	// SourceCustom is a manually curated recipe, takes precedence over catalog data
	SourceCustom
	// SourceCatalog is a recipe derived from the SDE reference dataset
	SourceCatalog
	// SourceRaw means the item has no further expansion
	SourceRaw
)

// String method for RecipeSource enum
func (s RecipeSource) String() string {
	switch s {
	case SourceCustom:
		return "custom"
	case SourceCatalog:
		return "catalog"
	case SourceRaw:
		return "raw"
	default:
		return "unknown"
	}
}
