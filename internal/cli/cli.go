// Package cli implements the psdui command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/psdui/pkg/assetdb"
	"github.com/matzehuels/psdui/pkg/buildinfo"
	"github.com/matzehuels/psdui/pkg/cache"
	"github.com/matzehuels/psdui/pkg/config"
	"github.com/matzehuels/psdui/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "psdui"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
	LogError = log.ErrorLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configPath is the --config flag; empty looks for psdui.toml in the
	// working directory.
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "psdui imports layered documents as UI scenes",
		Long: `psdui turns layered image documents into UI scenes.

Every image layer is exported as a PNG, and the layer hierarchy becomes a
scene of anchored containers saved as a prefab. Layout hints (anchors,
pivots, widgets, scroll and grid groups) come from the overlay metadata
stored in the document.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "configuration file (default ./"+config.FileName+")")

	// Register all subcommands
	root.AddCommand(c.importCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.overlayCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// loadConfig reads the --config file, or psdui.toml in the working
// directory.
func (c *CLI) loadConfig() (*config.Config, error) {
	return config.Load(c.configFile())
}

func (c *CLI) configFile() string {
	if c.configPath == "" {
		return config.FileName
	}
	return c.configPath
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, func(), error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, nil, err
	}

	registry, err := newRegistry(cfg)
	if err != nil {
		return nil, nil, err
	}
	tc, err := newCache(noCache)
	if err != nil {
		registry.Close()
		return nil, nil, err
	}

	runner := pipeline.NewRunner(cfg, registry, tc, c.Logger)
	cleanup := func() {
		if err := runner.Close(); err != nil {
			c.Logger.Warn("close cache", "err", err)
		}
		if err := registry.Close(); err != nil {
			c.Logger.Warn("close asset registry", "err", err)
		}
	}
	return runner, cleanup, nil
}

func newRegistry(cfg *config.Config) (assetdb.Registry, error) {
	if path := cfg.RegistryPath(); path != "" {
		return assetdb.OpenSQLite(path)
	}
	return assetdb.NewMemoryRegistry(), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/psdui/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
