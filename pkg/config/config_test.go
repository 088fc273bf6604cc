package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/visflow/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("Load(missing) mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
log_level = "debug"
diagram_dir = "/srv/diagrams"
redis_addr = "localhost:6379"

[canvas]
node_width = 22
port_spacing = 2
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := Default()
	want.LogLevel = "debug"
	want.DiagramDir = "/srv/diagrams"
	want.RedisAddr = "localhost:6379"
	want.Canvas.NodeWidth = 22
	want.Canvas.PortSpacing = 2
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Load mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
log_level = "debug"
serve_addr = ":9000"
`)
	t.Setenv("VISFLOW_LOG_LEVEL", "warn")
	t.Setenv("VISFLOW_CACHE_DIR", "/tmp/vf-cache")
	t.Setenv("VISFLOW_NODE_HEIGHT", "6")
	t.Setenv("VISFLOW_PORT_SPACING", "not-a-number")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want warn", cfg.LogLevel)
	}
	if cfg.ServeAddr != ":9000" {
		t.Errorf("ServeAddr = %q, want :9000", cfg.ServeAddr)
	}
	if cfg.CacheDir != "/tmp/vf-cache" {
		t.Errorf("CacheDir = %q, want /tmp/vf-cache", cfg.CacheDir)
	}
	if cfg.Canvas.NodeHeight != 6 {
		t.Errorf("NodeHeight = %v, want 6", cfg.Canvas.NodeHeight)
	}
	if cfg.Canvas.PortSpacing != Default().Canvas.PortSpacing {
		t.Errorf("PortSpacing = %v, want default for unparsable value", cfg.Canvas.PortSpacing)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := writeConfig(t, "log_level = [unterminated")
	if _, err := Load(path); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Load(malformed) = %v, want INVALID_FORMAT", err)
	}
}

func TestDefaultPathHonorsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	got, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/xdg", "visflow", "config.toml"); got != want {
		t.Errorf("DefaultPath() = %q, want %q", got, want)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home dir")
	}
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"/abs", "/abs"},
		{"~", home},
		{"~/diagrams", filepath.Join(home, "diagrams")},
		{"~other", "~other"},
	}
	for _, tt := range tests {
		if got := expandHome(tt.in); got != tt.want {
			t.Errorf("expandHome(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
