package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"docgraph/internal/adapters/filesystem"
	"docgraph/internal/adapters/tui"
	"docgraph/internal/adapters/tui/views"
	"docgraph/internal/domain"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the documents interactively",
	Long: `Open a terminal UI showing the document tree with incoming and outgoing
link counts. Orphaned documents are highlighted; press o to jump between them
and r to re-run the analysis after editing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		reader, err := filesystem.NewCachedReader(filesystem.NewReader(), filesystem.DefaultCacheSize)
		if err != nil {
			return err
		}
		analyze := newAnalyzeCommand(reader)

		return tui.Run(func() (*views.BrowserData, error) {
			result, err := analyze.Execute(ctx)
			if err != nil {
				return nil, err
			}
			return &views.BrowserData{
				Root:   domain.BuildMindmap(filepath.Base(result.Inventory.Root), result.Inventory.Paths()),
				Report: result.Report,
			}, nil
		})
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
