// Package output renders BOM trees and analysis reports for the CLI.
package output

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/Arielore/EVE-Industry/pkg/domain/entities"
)

// RenderTree renders an expansion tree as indented text
func RenderTree(node *entities.MaterialNode) string {
	var sb strings.Builder
	renderNode(&sb, node, 0)
	return sb.String()
}

func renderNode(sb *strings.Builder, node *entities.MaterialNode, indent int) {
	prefix := strings.Repeat("  ", indent)
	if node.IsRaw {
		fmt.Fprintf(sb, "%s└── %s x%s (RAW)\n", prefix, node.Name, node.Quantity)
		return
	}

	timeStr := ""
	if node.ActivityTime > 0 {
		timeStr = fmt.Sprintf(" (%s)", node.ActivityTime)
	}
	fmt.Fprintf(sb, "%s└── %s x%s [%s]%s\n", prefix, node.Name, node.Quantity, node.Source, timeStr)
	for _, child := range node.Materials {
		renderNode(sb, child, indent+1)
	}
}

// RenderAnalysis renders a full analysis report as human-readable text
func RenderAnalysis(analysis *entities.Analysis) string {
	var sb strings.Builder

	sb.WriteString("═══════════════════════════════════════════════════════════════\n")
	sb.WriteString("                    BOM ANALYSIS RESULTS\n")
	sb.WriteString("═══════════════════════════════════════════════════════════════\n\n")

	sb.WriteString("SUMMARY\n")
	fmt.Fprintf(&sb, "  Item:            %s\n", analysis.Root.Name)
	fmt.Fprintf(&sb, "  Quantity:        %s\n", analysis.Root.Quantity)
	fmt.Fprintf(&sb, "  Operations:      %d\n", analysis.TotalOperations)
	fmt.Fprintf(&sb, "  Total Time:      %s\n", analysis.TotalTime)
	fmt.Fprintf(&sb, "  Raw Materials:   %d\n", len(analysis.RawMaterials))
	fmt.Fprintf(&sb, "  Run ID:          %s\n\n", analysis.RunID)

	sb.WriteString(RenderRawMaterials(analysis))

	if len(analysis.Operations) > 0 {
		sb.WriteString("OPERATIONS SEQUENCE\n")
		sb.WriteString("────────────────────────────────────────────────────────────────\n")
		for i, op := range analysis.Operations {
			timeStr := "-"
			if op.Time > 0 {
				timeStr = op.Time.String()
			}
			fmt.Fprintf(&sb, "%3d. %-40s Qty: %10s  Time: %8s  [%s]\n",
				i+1, op.Operation, op.Quantity, timeStr, op.Source)
			for _, mat := range op.Materials {
				fmt.Fprintf(&sb, "       requires %s x%s\n", mat.Name, mat.Quantity)
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// RenderRawMaterials renders the aggregated raw-material list, sorted by
// name for stable output (the map itself is unordered)
func RenderRawMaterials(analysis *entities.Analysis) string {
	if len(analysis.RawMaterials) == 0 {
		return ""
	}

	names := make([]entities.TypeName, 0, len(analysis.RawMaterials))
	for name := range analysis.RawMaterials {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })

	var sb strings.Builder
	sb.WriteString("RAW MATERIALS\n")
	sb.WriteString("────────────────────────────────────────────────────────────────\n")
	for _, name := range names {
		fmt.Fprintf(&sb, "  %-40s %s\n", name, analysis.RawMaterials[name])
	}
	sb.WriteString("\n")
	return sb.String()
}

// JSON document shapes for --format json

type analysisJSON struct {
	RunID           string            `json:"run_id"`
	Item            string            `json:"item"`
	Quantity        string            `json:"quantity"`
	RawMaterials    map[string]string `json:"raw_materials"`
	TotalOperations int               `json:"total_operations"`
	TotalTimeSec    float64           `json:"total_time_seconds"`
	Operations      []operationJSON   `json:"operations_sequence"`
}

type operationJSON struct {
	Operation string         `json:"operation"`
	Item      string         `json:"item"`
	Quantity  string         `json:"quantity"`
	TimeSec   float64        `json:"time_seconds"`
	Source    string         `json:"source"`
	Materials []materialJSON `json:"materials"`
}

type materialJSON struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
}

// RenderAnalysisJSON renders an analysis report as indented JSON
func RenderAnalysisJSON(analysis *entities.Analysis) (string, error) {
	doc := analysisJSON{
		RunID:           analysis.RunID.String(),
		Item:            string(analysis.Root.Name),
		Quantity:        analysis.Root.Quantity.String(),
		RawMaterials:    make(map[string]string, len(analysis.RawMaterials)),
		TotalOperations: analysis.TotalOperations,
		TotalTimeSec:    analysis.TotalTime.Seconds(),
		Operations:      []operationJSON{},
	}

	for name, qty := range analysis.RawMaterials {
		doc.RawMaterials[string(name)] = qty.String()
	}

	for _, op := range analysis.Operations {
		opDoc := operationJSON{
			Operation: op.Operation,
			Item:      string(op.Item),
			Quantity:  op.Quantity.String(),
			TimeSec:   op.Time.Seconds(),
			Source:    op.Source.String(),
			Materials: []materialJSON{},
		}
		for _, mat := range op.Materials {
			opDoc.Materials = append(opDoc.Materials, materialJSON{
				Name:     string(mat.Name),
				Quantity: mat.Quantity.String(),
			})
		}
		doc.Operations = append(doc.Operations, opDoc)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal analysis: %w", err)
	}
	return string(data), nil
}
