package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Arielore/EVE-Industry/pkg/interfaces/cli/output"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <item> [quantity]",
	Short: "Produce the full BOM analysis for an item",
	Long: "Builds the expansion tree and reports aggregated raw materials, the\n" +
		"manufacturing operation count, the total time estimate and the operation\n" +
		"sequence.",
	Args: cobra.RangeArgs(1, 2),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	item, quantity, err := parseItemArgs(args)
	if err != nil {
		return err
	}

	analyzer, cleanup, err := newAnalyzer(newLogger())
	if err != nil {
		return err
	}
	defer cleanup()

	analysis := analyzer.Analyze(cmd.Context(), item, quantity)
	if analysis == nil {
		return fmt.Errorf("no analysis produced for %s", item)
	}

	switch formatFlag {
	case "text":
		fmt.Print(output.RenderAnalysis(analysis))
	case "json":
		doc, err := output.RenderAnalysisJSON(analysis)
		if err != nil {
			return err
		}
		fmt.Println(doc)
	default:
		return fmt.Errorf("unsupported output format: %s", formatFlag)
	}
	return nil
}
