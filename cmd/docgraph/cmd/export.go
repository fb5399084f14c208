package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"docgraph/internal/adapters/console"
	"docgraph/internal/adapters/filesystem"
	"docgraph/internal/adapters/sqlite"
	"docgraph/internal/ports"
)

var (
	exportDB   string
	exportList bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Store the analysis in a SQLite database",
	Long: `Run the analysis and append it to a SQLite database as a new run with
its documents, link counts and resolved links. Earlier runs are kept so the
orphan count can be tracked over time.

Examples:
  docgraph export
  docgraph export --db ~/.cache/docgraph.db
  docgraph export --list`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		printer := console.NewPrinter(os.Stdout)

		exporter := sqlite.NewExporter()
		if err := exporter.Open(exportDB); err != nil {
			return err
		}
		defer exporter.Close()

		if exportList {
			runs, err := exporter.Runs(ctx)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Println("No runs exported yet")
				return nil
			}
			for _, r := range runs {
				fmt.Printf("%s  %s  %s  documents=%d links=%d orphaned=%d\n",
					r.CreatedAt, r.ID, r.Root, r.TotalDocuments, r.TotalLinks, r.Orphaned)
			}
			return nil
		}

		result, err := newAnalyzeCommand(filesystem.NewReader()).Execute(ctx)
		if err != nil {
			return err
		}
		runID, err := exporter.Export(ctx, ports.Snapshot{
			Root:   result.Inventory.Root,
			Graph:  result.Graph,
			Report: result.Report,
		})
		if err != nil {
			return err
		}

		printer.PrintSuccess(fmt.Sprintf("Exported run %s to %s (%d documents, %d orphaned)",
			runID, exporter.Path(), result.Report.Stats.TotalDocuments, result.Report.Stats.Orphaned))
		printer.PrintWarnings(result.Warnings, verbose)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportDB, "db", "docgraph.db", "SQLite database file")
	exportCmd.Flags().BoolVar(&exportList, "list", false, "list the exported runs instead of exporting")
	rootCmd.AddCommand(exportCmd)
}
