package bom

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Arielore/EVE-Industry/pkg/domain/entities"
	"github.com/Arielore/EVE-Industry/pkg/infrastructure/observability"
)

// TraversalOrder controls where a node's manufacturing step lands in the
// operation sequence relative to its children's steps.
type TraversalOrder int

const (
	// OrderPreOrder lists a parent's step before its sub-steps. This is the
	// historical behavior and the default.
	OrderPreOrder TraversalOrder = iota
	// OrderPostOrder lists children first, giving true dependency order:
	// materials are produced before the assembly that consumes them.
	OrderPostOrder
)

// String method for TraversalOrder enum
func (o TraversalOrder) String() string {
	switch o {
	case OrderPreOrder:
		return "pre-order"
	case OrderPostOrder:
		return "post-order"
	default:
		return "unknown"
	}
}

// Analyzer walks a built tree once and derives the aggregated raw-material
// list, operation count, total time estimate and operation sequence.
type Analyzer struct {
	builder *TreeBuilder
	order   TraversalOrder
	logger  *zap.Logger
}

// NewAnalyzer creates an analyzer over the given builder with pre-order
// operation sequencing
func NewAnalyzer(builder *TreeBuilder, logger *zap.Logger) *Analyzer {
	return NewAnalyzerWithOrder(builder, OrderPreOrder, logger)
}

// NewAnalyzerWithOrder creates an analyzer with an explicit sequencing order
func NewAnalyzerWithOrder(builder *TreeBuilder, order TraversalOrder, logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{builder: builder, order: order, logger: logger}
}

// Builder returns the underlying tree builder
func (a *Analyzer) Builder() *TreeBuilder {
	return a.builder
}

// Analyze builds the tree for item and quantity and derives the full report.
// It returns nil when the builder produced no root node.
func (a *Analyzer) Analyze(ctx context.Context, item entities.TypeName, quantity decimal.Decimal) *entities.Analysis {
	start := time.Now()

	root := a.builder.Build(ctx, item, quantity)
	if root == nil {
		a.logger.Warn("no tree produced for item",
			zap.String("item", string(item)))
		return nil
	}

	analysis := &entities.Analysis{
		RunID:        uuid.New(),
		Root:         root,
		RawMaterials: make(map[entities.TypeName]decimal.Decimal),
	}

	// The root has no parent; its implicit parent quantity is its own,
	// so the root's time ratio is 1.
	a.traverse(analysis, root, root.Quantity)

	elapsed := time.Since(start)
	observability.RecordAnalysis(elapsed, root.NodeCount())
	a.logger.Info("analysis complete",
		zap.String("run_id", analysis.RunID.String()),
		zap.String("item", string(item)),
		zap.Int("operations", analysis.TotalOperations),
		zap.Int("raw_materials", len(analysis.RawMaterials)),
		zap.Duration("elapsed", elapsed))

	return analysis
}

func (a *Analyzer) traverse(analysis *entities.Analysis, node *entities.MaterialNode, parentQty decimal.Decimal) {
	if node.IsRaw {
		if existing, ok := analysis.RawMaterials[node.Name]; ok {
			analysis.RawMaterials[node.Name] = existing.Add(node.Quantity)
		} else {
			analysis.RawMaterials[node.Name] = node.Quantity
		}
		return
	}

	analysis.TotalOperations++
	if node.ActivityTime > 0 {
		analysis.TotalTime += scaleTime(node.ActivityTime, node.Quantity, parentQty)
	}

	if a.order == OrderPreOrder {
		analysis.Operations = append(analysis.Operations, newStep(node))
	}

	for _, child := range node.Materials {
		a.traverse(analysis, child, node.Quantity)
	}

	if a.order == OrderPostOrder {
		analysis.Operations = append(analysis.Operations, newStep(node))
	}
}

// newStep captures a node's manufacturing step with its immediate inputs
func newStep(node *entities.MaterialNode) entities.OperationStep {
	step := entities.OperationStep{
		Operation: fmt.Sprintf("Manufacture %s", node.Name),
		Item:      node.Name,
		Quantity:  node.Quantity,
		Time:      node.ActivityTime,
		Source:    node.Source,
	}
	for _, child := range node.Materials {
		step.Materials = append(step.Materials, entities.MaterialRef{
			Name:     child.Name,
			Quantity: child.Quantity,
		})
	}
	return step
}

// scaleTime weights one run's activity time by quantity/parentQty
func scaleTime(activity time.Duration, qty, parentQty decimal.Decimal) time.Duration {
	if parentQty.IsZero() {
		return 0
	}
	ratio, _ := qty.Div(parentQty).Float64()
	return time.Duration(float64(activity) * ratio)
}
