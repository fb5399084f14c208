package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"docgraph/internal/domain"
)

const (
	DefaultRoot          = "."
	DefaultWorkers       = 8
	DefaultMindmapOutput = "docs_mindmap.puml"
	DefaultGraphOutput   = "docs_graph.puml"
	DefaultRenderer      = "plantuml"
	DefaultImageFormat   = "png"
	DefaultDebounce      = 300 * time.Millisecond
	DefaultLogLevel      = "info"

	// FileName is looked up in the root when no config file is given
	FileName = ".docgraph.yaml"
)

// Environment variables
const (
	EnvRoot     = "DOCGRAPH_ROOT"
	EnvExclude  = "DOCGRAPH_EXCLUDE"
	EnvRenderer = "DOCGRAPH_PLANTUML"
	EnvWorkers  = "DOCGRAPH_WORKERS"
	EnvLogLevel = "DOCGRAPH_LOG_LEVEL"
)

// Config holds every tunable of a run.
// Precedence, lowest first: defaults, YAML file, environment (.env included), flags.
type Config struct {
	Root     string        `yaml:"root"`
	Exclude  []string      `yaml:"exclude"`
	Workers  int           `yaml:"workers"`
	LogLevel string        `yaml:"log_level"`
	Mindmap  MindmapConfig `yaml:"mindmap"`
	Graph    GraphConfig   `yaml:"graph"`
	Watch    WatchConfig   `yaml:"watch"`
}

type MindmapConfig struct {
	Output   string `yaml:"output"`
	Renderer string `yaml:"renderer"`
	Format   string `yaml:"format"`
}

// GraphConfig is rendered with the mindmap renderer and format
type GraphConfig struct {
	Output string `yaml:"output"`
}

type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
}

// Options selects the files Load reads
type Options struct {
	ConfigFile string // Explicit YAML file; must exist when set
	EnvFile    string // Defaults to .env in the working directory
	Root       string // Root given on the command line; wins over file and environment
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Root:     DefaultRoot,
		Exclude:  append([]string(nil), domain.DefaultExcludedDirs...),
		Workers:  DefaultWorkers,
		LogLevel: DefaultLogLevel,
		Mindmap: MindmapConfig{
			Output:   DefaultMindmapOutput,
			Renderer: DefaultRenderer,
			Format:   DefaultImageFormat,
		},
		Graph: GraphConfig{Output: DefaultGraphOutput},
		Watch: WatchConfig{Debounce: DefaultDebounce},
	}
}

// Load builds the configuration from defaults, the YAML file and the environment.
// The result is not validated; callers merge their flags first and then call Validate.
func Load(opts Options) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	// A missing .env is normal
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	cfg := Default()

	configFile := opts.ConfigFile
	if configFile == "" {
		root := firstNonEmpty(opts.Root, strings.TrimSpace(os.Getenv(EnvRoot)), DefaultRoot)
		candidate := filepath.Join(root, FileName)
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
		}
	}
	if configFile != "" {
		if err := cfg.readFile(configFile); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if opts.Root != "" {
		cfg.Root = opts.Root
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := strings.TrimSpace(os.Getenv(EnvRoot)); v != "" {
		c.Root = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvExclude)); v != "" {
		c.Exclude = SplitList(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvRenderer)); v != "" {
		c.Mindmap.Renderer = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.LogLevel = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvWorkers)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %q is not a number", EnvWorkers, v)
		}
		c.Workers = n
	}
	return nil
}

// Validate checks values that would make a run fail later
func (c *Config) Validate() error {
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got: %d", c.Workers)
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch debounce must not be negative, got: %s", c.Watch.Debounce)
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// SplitList splits a comma separated list, dropping blanks
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
