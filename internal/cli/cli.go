// Package cli implements the visflow command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/visflow/pkg/cache"
	"github.com/matzehuels/visflow/pkg/config"
	"github.com/matzehuels/visflow/pkg/dataflow"
	"github.com/matzehuels/visflow/pkg/editor"
	pkgio "github.com/matzehuels/visflow/pkg/io"
	"github.com/matzehuels/visflow/pkg/nodetype/builtin"
	"github.com/matzehuels/visflow/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "visflow"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config

	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// =============================================================================
// Editor Factory
// =============================================================================

// newEditor creates an editor over the built-in node types.
func (c *CLI) newEditor(cv editor.Canvas, msg editor.Messenger) *editor.Editor {
	if msg == nil {
		msg = printMessenger{}
	}
	return editor.New(editor.Options{
		Registry:  builtin.NewRegistry(),
		Canvas:    cv,
		Messenger: msg,
		Logger:    c.Logger,
	})
}

// loadEditor imports a diagram file into a fresh editor. Records that could
// not be restored are in the report; only an unreadable file is an error.
func (c *CLI) loadEditor(path string, cv editor.Canvas, msg editor.Messenger) (*editor.Editor, editor.LoadReport, error) {
	save, err := pkgio.Import(path)
	if err != nil {
		return nil, editor.LoadReport{}, err
	}
	ed := c.newEditor(cv, msg)
	report := ed.DeserializeDiagram(save)
	return ed, report, nil
}

// printMessenger prints editor advisories as CLI status lines.
type printMessenger struct{}

func (printMessenger) Warn(msg string)  { printWarning("%s", msg) }
func (printMessenger) Error(msg string) { printError("%s", msg) }

// =============================================================================
// Backends
// =============================================================================

// newCache opens the render cache: redis when configured, the file cache
// otherwise.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if c.Config.RedisAddr != "" {
		s, err := c.redisStore(ctx)
		if err != nil {
			return nil, err
		}
		return cache.NewRedisCache(s.Client()), nil
	}
	dir, err := c.cacheDir()
	if err != nil {
		c.Logger.Warn("cache disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// openStore opens the diagram document store: redis when configured, the
// diagram directory otherwise.
func (c *CLI) openStore(ctx context.Context) (store.Store, error) {
	if c.Config.RedisAddr != "" {
		return c.redisStore(ctx)
	}
	return store.NewFileStore(c.Config.DiagramDir)
}

func (c *CLI) redisStore(ctx context.Context) (*store.RedisStore, error) {
	return store.NewRedisStore(ctx, store.RedisConfig{
		Addr:   c.Config.RedisAddr,
		Prefix: c.Config.RedisPrefix,
	})
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the configured cache directory, falling back to the XDG
// standard (~/.cache/visflow/).
func (c *CLI) cacheDir() (string, error) {
	if c.Config.CacheDir != "" {
		return c.Config.CacheDir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// outputPath derives an output file from the input file when output is
// empty.
func outputPath(output, input, ext string) string {
	if output != "" {
		return output
	}
	return input[:len(input)-len(filepath.Ext(input))] + "." + ext
}

// nodeLabel is the "id (type)" form used in status lines.
func nodeLabel(n *dataflow.Node) string {
	return string(n.ID) + " (" + n.Type + ")"
}
