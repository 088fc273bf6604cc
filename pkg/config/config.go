// Package config loads visflow settings.
//
// Settings come from three layers, later layers winning:
//
//  1. Built-in defaults ([Default])
//  2. A TOML file, by default $XDG_CONFIG_HOME/visflow/config.toml
//  3. VISFLOW_* environment variables
//
// Example file:
//
//	log_level = "debug"
//	diagram_dir = "~/diagrams"
//	redis_addr = "localhost:6379"
//
//	[canvas]
//	node_width = 22
//	port_spacing = 2
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/visflow/pkg/canvas"
	"github.com/matzehuels/visflow/pkg/errors"
)

// Config holds the settings shared by all visflow commands.
type Config struct {
	LogLevel    string `toml:"log_level"`
	DiagramDir  string `toml:"diagram_dir"`
	CacheDir    string `toml:"cache_dir"`
	RedisAddr   string `toml:"redis_addr"`
	RedisPrefix string `toml:"redis_prefix"`
	ServeAddr   string `toml:"serve_addr"`

	Canvas canvas.Config `toml:"canvas"`
}

// Default returns the built-in settings. Empty directories mean the
// per-user defaults chosen by the stores.
func Default() Config {
	return Config{
		LogLevel:    "info",
		RedisPrefix: "visflow:",
		ServeAddr:   "127.0.0.1:7070",
		Canvas:      canvas.DefaultConfig(),
	}
}

// Dir returns the visflow configuration directory.
func Dir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "visflow"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "get home dir")
	}
	return filepath.Join(home, ".config", "visflow"), nil
}

// DefaultPath returns the path of the default config file.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads settings from path and the environment. An empty path means
// [DefaultPath]. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil && !os.IsNotExist(err) {
		return cfg, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read config %s", path)
	}

	cfg.applyEnv()
	cfg.DiagramDir = expandHome(cfg.DiagramDir)
	cfg.CacheDir = expandHome(cfg.CacheDir)
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.LogLevel = getEnv("VISFLOW_LOG_LEVEL", c.LogLevel)
	c.DiagramDir = getEnv("VISFLOW_DIAGRAM_DIR", c.DiagramDir)
	c.CacheDir = getEnv("VISFLOW_CACHE_DIR", c.CacheDir)
	c.RedisAddr = getEnv("VISFLOW_REDIS_ADDR", c.RedisAddr)
	c.RedisPrefix = getEnv("VISFLOW_REDIS_PREFIX", c.RedisPrefix)
	c.ServeAddr = getEnv("VISFLOW_SERVE_ADDR", c.ServeAddr)
	c.Canvas.NodeWidth = getEnvAsFloat("VISFLOW_NODE_WIDTH", c.Canvas.NodeWidth)
	c.Canvas.NodeHeight = getEnvAsFloat("VISFLOW_NODE_HEIGHT", c.Canvas.NodeHeight)
	c.Canvas.PortSpacing = getEnvAsFloat("VISFLOW_PORT_SPACING", c.Canvas.PortSpacing)
}

func getEnv(key, defaultValue string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
