package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"docgraph/internal/adapters/filesystem"
	"docgraph/internal/application/commands"
	"docgraph/internal/config"
	"docgraph/internal/domain"
	"docgraph/internal/ports"
)

var (
	rootPath   string
	filterPath string
	configPath string
	logLevel   string
	excludes   []string
	workers    int
	verbose    bool

	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "docgraph",
	Short: "Find orphaned markdown documents",
	Long: `docgraph scans a directory tree of markdown documents, builds the graph of
relative links between them and reports the documents nothing links to and
that link to nothing.

Without a subcommand it runs analyze.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		return initConfig(cmd)
	},
	RunE: runAnalyze,
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&rootPath, "path", "p", "", "root directory to analyze (default: current directory)")
	flags.StringVar(&filterPath, "filter", "", "only scan this subdirectory of the root")
	flags.StringVar(&configPath, "config", "", "config file (default: <root>/"+config.FileName+")")
	flags.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringSliceVar(&excludes, "exclude", nil, "directory names to skip (replaces the defaults)")
	flags.IntVar(&workers, "workers", 0, "number of documents read in parallel")
	flags.BoolVarP(&verbose, "verbose", "v", false, "show per-document links and skipped paths")

	addAnalyzeFlags(rootCmd)
}

// initConfig merges the config file and environment with explicit flags
func initConfig(cmd *cobra.Command) error {
	flags := cmd.Flags()
	opts := config.Options{ConfigFile: configPath}
	if flags.Changed("path") {
		opts.Root = rootPath
	}

	loaded, err := config.Load(opts)
	if err != nil {
		return err
	}

	if flags.Changed("exclude") {
		loaded.Exclude = excludes
	}
	if flags.Changed("workers") {
		loaded.Workers = workers
	}
	if flags.Changed("log-level") {
		loaded.LogLevel = logLevel
	}
	if err := loaded.Validate(); err != nil {
		return err
	}

	logger, err = config.NewLogger(os.Stderr, loaded.LogLevel)
	if err != nil {
		return err
	}
	cfg = loaded
	return nil
}

func newScanner() *filesystem.Scanner {
	return filesystem.NewScanner(cfg.Root,
		filesystem.WithFilter(filterPath),
		filesystem.WithExcludes(cfg.Exclude),
		filesystem.WithLogger(logger),
	)
}

func newAnalyzeCommand(reader ports.DocumentReader) *commands.AnalyzeCommand {
	return commands.NewAnalyzeCommand(
		newScanner(),
		reader,
		domain.NewLinkExtractor(domain.NewExcludeSet(cfg.Exclude)),
		commands.WithWorkers(cfg.Workers),
		commands.WithLogger(logger),
	)
}
