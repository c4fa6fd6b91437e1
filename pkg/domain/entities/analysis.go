package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaterialRef is a (name, absolute quantity) pair, used for the immediate
// inputs of an operation step.
type MaterialRef struct {
	Name     TypeName
	Quantity decimal.Decimal
}

// OperationStep describes one manufacturing step: a single non-raw node of
// the tree, captured with its immediate child materials before descending.
type OperationStep struct {
	Operation string
	Item      TypeName
	Quantity  decimal.Decimal
	Time      time.Duration // zero = not supplied
	Source    RecipeSource
	Materials []MaterialRef
}

// Analysis is the derived report for one root request. RawMaterials sums
// every raw occurrence anywhere in the tree; TotalOperations counts non-raw
// nodes (one step per node, not per unit); TotalTime is each step's activity
// time weighted by the ratio of the node's quantity to its parent's.
type Analysis struct {
	RunID           uuid.UUID
	Root            *MaterialNode
	RawMaterials    map[TypeName]decimal.Decimal
	TotalOperations int
	TotalTime       time.Duration
	Operations      []OperationStep
}
