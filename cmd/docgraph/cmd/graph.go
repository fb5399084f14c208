package cmd

import (
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"docgraph/internal/adapters/console"
	"docgraph/internal/adapters/filesystem"
	"docgraph/internal/adapters/plantuml"
	"docgraph/internal/adapters/tui/styles"
	"docgraph/internal/application/commands"
	"docgraph/internal/domain"
)

var (
	graphOutput   string
	graphNoRender bool
	graphCopy     bool
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Draw the link graph with nodes colored by link status",
	Long: `Write the links between documents as a PlantUML diagram. Each document is a
node colored as orphaned, no incoming links, no outgoing links or connected.

The source is written to --output and rendered to an image when the plantuml
command is available. A missing renderer only produces a warning.

Examples:
  docgraph graph
  docgraph graph --output out/links.puml
  docgraph graph --no-render --copy`,
	RunE: func(cmd *cobra.Command, args []string) error {
		printer := console.NewPrinter(os.Stdout)

		output := cfg.Graph.Output
		if cmd.Flags().Changed("output") {
			output = graphOutput
		}
		opts := []commands.GraphOption{
			commands.WithGraphOutput(output),
			commands.WithGraphLogger(logger),
		}
		if !graphNoRender {
			opts = append(opts, commands.WithGraphRenderer(newRenderer()))
		}

		result, err := commands.NewGraphCommand(newAnalyzeCommand(filesystem.NewReader()), newGraphEncoder(), opts...).Execute(cmd.Context())
		if err != nil {
			return err
		}
		printGraphArtifacts(printer, result)

		if graphCopy {
			if err := clipboard.WriteAll(result.Text); err != nil {
				printer.PrintWarning(fmt.Errorf("failed to copy to clipboard: %w", err))
			} else {
				printer.PrintSuccess("Copied to clipboard")
			}
		}
		return nil
	},
}

func newGraphEncoder() *plantuml.GraphEncoder {
	return plantuml.NewGraphEncoder(plantuml.WithCategoryColor(domain.CategoryOrphaned, styles.OrphanHex))
}

func printGraphArtifacts(printer *console.Printer, result *commands.GraphResult) {
	if result.SourcePath != "" {
		printer.PrintSuccess(fmt.Sprintf("Link graph written to %s (%d documents, %d links)",
			result.SourcePath, result.Report.Stats.TotalDocuments, result.Report.Stats.TotalLinks))
	}
	if result.ImagePath != "" {
		printer.PrintSuccess("Image rendered to " + result.ImagePath)
	}
	if result.Warning != nil {
		printer.PrintWarning(result.Warning)
	}
}

func init() {
	graphCmd.Flags().StringVarP(&graphOutput, "output", "o", "", "PlantUML output file (default from config: docs_graph.puml)")
	graphCmd.Flags().BoolVar(&graphNoRender, "no-render", false, "write the PlantUML source without rendering an image")
	graphCmd.Flags().BoolVar(&graphCopy, "copy", false, "copy the PlantUML source to the clipboard")
	rootCmd.AddCommand(graphCmd)
}
