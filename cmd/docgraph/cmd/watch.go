package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"docgraph/internal/adapters/console"
	"docgraph/internal/adapters/filesystem"
	"docgraph/internal/adapters/watch"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-run the analysis whenever a document changes",
	Long: `Analyze once, then watch the root for markdown changes and print the
statistics and orphaned documents again after every batch of edits.
Stop with Ctrl+C.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		printer := console.NewPrinter(os.Stdout)

		reader, err := filesystem.NewCachedReader(filesystem.NewReader(), filesystem.DefaultCacheSize)
		if err != nil {
			return err
		}
		analyze := newAnalyzeCommand(reader)

		result, err := analyze.Execute(ctx)
		if err != nil {
			return err
		}
		printer.PrintTarget(result.Inventory.Root, len(result.Inventory.Files))
		printer.PrintReport(result, verbose)

		debounce := cfg.Watch.Debounce
		if cmd.Flags().Changed("debounce") {
			debounce = watchDebounce
		}

		w := watch.NewWatcher(result.Inventory.Root,
			func(ctx context.Context, changed []string) {
				for _, path := range changed {
					reader.Forget(path)
				}
				result, err := analyze.Execute(ctx)
				if err != nil {
					printer.PrintWarning(err)
					return
				}
				fmt.Fprintf(os.Stdout, "\n%s %d changed\n", time.Now().Format("15:04:05"), len(changed))
				printer.PrintReport(result, verbose)
			},
			watch.WithExcludes(cfg.Exclude),
			watch.WithDebounce(debounce),
			watch.WithLogger(logger),
		)

		printer.PrintSuccess("Watching for changes (Ctrl+C to stop)")
		return w.Run(ctx)
	},
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watch.DefaultDebounce, "quiet period before re-analyzing")
	rootCmd.AddCommand(watchCmd)
}
