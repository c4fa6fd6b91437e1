package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaterialNode is one node in a BOM expansion tree. Quantity is the absolute
// amount required at this position, already scaled by every ancestor
// multiplier. A node is raw exactly when it has no children and its source
// is SourceRaw. Each child belongs to exactly one parent; trees are
// immutable once built.
type MaterialNode struct {
	Name         TypeName
	Quantity     decimal.Decimal
	IsRaw        bool
	Source       RecipeSource
	ActivityTime time.Duration // zero = not supplied
	Materials    []*MaterialNode
}

// NewRawLeaf creates a terminal node with no further expansion
func NewRawLeaf(name TypeName, quantity decimal.Decimal) *MaterialNode {
	return &MaterialNode{
		Name:     name,
		Quantity: quantity,
		IsRaw:    true,
		Source:   SourceRaw,
	}
}

// Clone returns a deep copy of the node and all of its children. The memo
// cache hands out clones so that no two parents ever share a subtree.
func (n *MaterialNode) Clone() *MaterialNode {
	if n == nil {
		return nil
	}
	cp := &MaterialNode{
		Name:         n.Name,
		Quantity:     n.Quantity,
		IsRaw:        n.IsRaw,
		Source:       n.Source,
		ActivityTime: n.ActivityTime,
	}
	if len(n.Materials) > 0 {
		cp.Materials = make([]*MaterialNode, 0, len(n.Materials))
		for _, child := range n.Materials {
			cp.Materials = append(cp.Materials, child.Clone())
		}
	}
	return cp
}

// NodeCount returns the number of nodes in the subtree rooted here
func (n *MaterialNode) NodeCount() int {
	if n == nil {
		return 0
	}
	count := 1
	for _, child := range n.Materials {
		count += child.NodeCount()
	}
	return count
}
