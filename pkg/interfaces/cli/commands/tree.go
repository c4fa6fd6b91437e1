package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Arielore/EVE-Industry/pkg/interfaces/cli/output"
)

var treeCmd = &cobra.Command{
	Use:   "tree <item> [quantity]",
	Short: "Print the BOM expansion tree for an item",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runTree,
}

func init() {
	rootCmd.AddCommand(treeCmd)
}

func runTree(cmd *cobra.Command, args []string) error {
	item, quantity, err := parseItemArgs(args)
	if err != nil {
		return err
	}

	analyzer, cleanup, err := newAnalyzer(newLogger())
	if err != nil {
		return err
	}
	defer cleanup()

	root := analyzer.Builder().Build(cmd.Context(), item, quantity)
	if root == nil {
		return fmt.Errorf("no tree produced for %s", item)
	}

	fmt.Print(output.RenderTree(root))
	return nil
}
