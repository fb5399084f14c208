package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"docgraph/internal/adapters/console"
	"docgraph/internal/adapters/filesystem"
	"docgraph/internal/adapters/plantuml"
	"docgraph/internal/adapters/tui/styles"
	"docgraph/internal/application/commands"
)

var (
	withMindmap bool
	withGraph   bool
	jsonOutput  bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Report link statistics and orphaned documents",
	Long: `Scan the root for markdown documents, resolve their relative links and
report totals plus the orphaned documents (no incoming and no outgoing links).

Links to external URLs, anchors, non-markdown files, paths outside the root,
excluded directories and documents that do not exist are not counted.

Examples:
  docgraph analyze
  docgraph analyze --path ./docs --verbose
  docgraph analyze --filter guide --json
  docgraph analyze --mindmap --graph`,
	RunE: runAnalyze,
}

func addAnalyzeFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&withMindmap, "mindmap", false, "also write the PlantUML mindmap (and render it when plantuml is installed)")
	cmd.Flags().BoolVar(&withGraph, "graph", false, "also write the PlantUML link graph (and render it when plantuml is installed)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print the report as JSON")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	printer := console.NewPrinter(os.Stdout)

	result, err := newAnalyzeCommand(filesystem.NewReader()).Execute(ctx)
	if err != nil {
		return err
	}

	if jsonOutput {
		if err := printer.PrintJSON(result.Report); err != nil {
			return err
		}
	} else {
		printer.PrintTarget(result.Inventory.Root, len(result.Inventory.Files))
		printer.PrintReport(result, verbose)
	}

	if withGraph {
		graph := commands.NewGraphCommand(nil, newGraphEncoder(),
			commands.WithAnalysis(result),
			commands.WithGraphOutput(cfg.Graph.Output),
			commands.WithGraphRenderer(newRenderer()),
			commands.WithGraphLogger(logger),
		)
		g, err := graph.Execute(ctx)
		if err != nil {
			return err
		}
		if !jsonOutput {
			printGraphArtifacts(printer, g)
		}
	}

	if !withMindmap {
		return nil
	}

	mindmap := commands.NewMindmapCommand(
		nil,
		plantuml.NewEncoder(plantuml.WithHighlight(result.Report.Orphaned, styles.OrphanHex)),
		commands.WithInventory(result.Inventory),
		commands.WithOutput(cfg.Mindmap.Output),
		commands.WithRenderer(newRenderer()),
		commands.WithMindmapLogger(logger),
	)
	mm, err := mindmap.Execute(ctx)
	if err != nil {
		return err
	}
	if !jsonOutput {
		printMindmapArtifacts(printer, mm)
	}
	return nil
}

func init() {
	addAnalyzeFlags(analyzeCmd)
	rootCmd.AddCommand(analyzeCmd)
}
