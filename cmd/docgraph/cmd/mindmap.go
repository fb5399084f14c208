package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"docgraph/internal/adapters/console"
	"docgraph/internal/adapters/filesystem"
	"docgraph/internal/adapters/plantuml"
	"docgraph/internal/adapters/tui/styles"
	"docgraph/internal/application/commands"
)

var (
	mindmapOutput    string
	mindmapFormat    string
	mindmapNoRender  bool
	mindmapCopy      bool
	mindmapHighlight bool
)

var mindmapCmd = &cobra.Command{
	Use:   "mindmap",
	Short: "Project the document layout onto a mindmap",
	Long: `Build a mindmap of the directories and markdown documents under the root.
The tree mirrors the file layout, directories first, and ignores links.

With the default puml format the PlantUML source is written to --output and
rendered to an image when the plantuml command is available. A missing
renderer only produces a warning.

Examples:
  docgraph mindmap
  docgraph mindmap --output out/docs.puml --highlight-orphans
  docgraph mindmap --format tree
  docgraph mindmap --format json --copy`,
	RunE: func(cmd *cobra.Command, args []string) error {
		switch mindmapFormat {
		case "puml", "tree", "json":
		default:
			return fmt.Errorf("invalid format: %s (expected puml, tree or json)", mindmapFormat)
		}

		ctx := cmd.Context()
		printer := console.NewPrinter(os.Stdout)

		var encoderOpts []plantuml.EncoderOption
		opts := []commands.MindmapOption{commands.WithMindmapLogger(logger)}

		if mindmapHighlight {
			result, err := newAnalyzeCommand(filesystem.NewReader()).Execute(ctx)
			if err != nil {
				return err
			}
			encoderOpts = append(encoderOpts, plantuml.WithHighlight(result.Report.Orphaned, styles.OrphanHex))
			opts = append(opts, commands.WithInventory(result.Inventory))
		}

		if mindmapFormat == "puml" {
			output := cfg.Mindmap.Output
			if cmd.Flags().Changed("output") {
				output = mindmapOutput
			}
			opts = append(opts, commands.WithOutput(output))
			if !mindmapNoRender {
				opts = append(opts, commands.WithRenderer(newRenderer()))
			}
		}

		result, err := commands.NewMindmapCommand(newScanner(), plantuml.NewEncoder(encoderOpts...), opts...).Execute(ctx)
		if err != nil {
			return err
		}

		var text string
		switch mindmapFormat {
		case "puml":
			text = result.Text
			printMindmapArtifacts(printer, result)
		case "tree":
			text = console.RenderTree(result.Root)
			printer.PrintTree(result.Root)
		case "json":
			data, err := json.MarshalIndent(result.Root, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode mindmap: %w", err)
			}
			text = string(data) + "\n"
			fmt.Print(text)
		}

		if mindmapCopy {
			if err := clipboard.WriteAll(text); err != nil {
				printer.PrintWarning(fmt.Errorf("failed to copy to clipboard: %w", err))
			} else {
				printer.PrintSuccess("Copied to clipboard")
			}
		}
		return nil
	},
}

func newRenderer() *plantuml.Renderer {
	return plantuml.NewRenderer(
		plantuml.WithCommand(cfg.Mindmap.Renderer),
		plantuml.WithFormat(cfg.Mindmap.Format),
	)
}

func printMindmapArtifacts(printer *console.Printer, result *commands.MindmapResult) {
	if result.SourcePath != "" {
		printer.PrintSuccess(fmt.Sprintf("Mindmap written to %s (%d documents)", result.SourcePath, result.Root.CountFiles()))
	}
	if result.ImagePath != "" {
		printer.PrintSuccess("Image rendered to " + result.ImagePath)
	}
	if result.Warning != nil {
		printer.PrintWarning(result.Warning)
	}
}

func init() {
	mindmapCmd.Flags().StringVarP(&mindmapOutput, "output", "o", "", "PlantUML output file (default from config: docs_mindmap.puml)")
	mindmapCmd.Flags().StringVarP(&mindmapFormat, "format", "f", "puml", "output format: puml, tree or json")
	mindmapCmd.Flags().BoolVar(&mindmapNoRender, "no-render", false, "write the PlantUML source without rendering an image")
	mindmapCmd.Flags().BoolVar(&mindmapCopy, "copy", false, "copy the output to the clipboard")
	mindmapCmd.Flags().BoolVar(&mindmapHighlight, "highlight-orphans", false, "color orphaned documents in the PlantUML output")
	rootCmd.AddCommand(mindmapCmd)
}
