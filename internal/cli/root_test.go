package cli

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/visflow/pkg/errors"
	"github.com/matzehuels/visflow/pkg/nodetype"
	"github.com/matzehuels/visflow/pkg/nodetype/builtin"
)

func newTestRegistryTypes() []nodetype.Type {
	return builtin.NewRegistry().Types()
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()

	want := []string{"run", "validate", "render", "edit", "types", "store", "serve", "cache", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("Find(%q) = %v, %v", name, cmd, err)
		}
	}
}

func TestSetupAppliesConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("log_level = \"warn\"\nserve_addr = \":9999\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	c := New(io.Discard, LogInfo)
	c.configPath = path
	if err := c.setup(); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if c.Logger.GetLevel() != log.WarnLevel {
		t.Errorf("level = %v, want warn", c.Logger.GetLevel())
	}
	if c.Config.ServeAddr != ":9999" {
		t.Errorf("ServeAddr = %q, want :9999", c.Config.ServeAddr)
	}

	c.verbose = true
	if err := c.setup(); err != nil {
		t.Fatal(err)
	}
	if c.Logger.GetLevel() != log.DebugLevel {
		t.Errorf("verbose level = %v, want debug", c.Logger.GetLevel())
	}
}

func TestSetupRejectsBadLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`log_level = "loud"`), 0644); err != nil {
		t.Fatal(err)
	}
	c := New(io.Discard, LogInfo)
	c.configPath = path
	if err := c.setup(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("setup() = %v, want INVALID_INPUT", err)
	}
}
