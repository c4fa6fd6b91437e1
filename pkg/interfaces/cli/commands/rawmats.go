package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Arielore/EVE-Industry/pkg/interfaces/cli/output"
)

var rawmatsCmd = &cobra.Command{
	Use:   "rawmats <item> [quantity]",
	Short: "Print the flat raw-material requirements for an item",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runRawmats,
}

func init() {
	rootCmd.AddCommand(rawmatsCmd)
}

func runRawmats(cmd *cobra.Command, args []string) error {
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

	fmt.Print(output.RenderRawMaterials(analysis))
	return nil
}
