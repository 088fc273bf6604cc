package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/visflow/pkg/dataflow"
	"github.com/matzehuels/visflow/pkg/errors"
	pkgio "github.com/matzehuels/visflow/pkg/io"
)

// sumSave is two constants (3 and 4) feeding an add node. Without edges,
// node-3 has no inputs.
func sumSave(withEdges bool) dataflow.DiagramSave {
	save := dataflow.DiagramSave{
		DiagramName: "sum",
		Nodes: []dataflow.NodeSave{
			{ID: "node-1", Type: "constant", Layer: 1, X: 0, Y: 0, State: dataflow.Metadata{"value": 3.0}},
			{ID: "node-2", Type: "constant", Layer: 2, X: 0, Y: 8, State: dataflow.Metadata{"value": 4.0}},
			{ID: "node-3", Type: "add", Layer: 3, X: 30, Y: 2, State: dataflow.Metadata{}},
		},
		Edges: []dataflow.EdgeSave{},
	}
	if withEdges {
		save.Edges = []dataflow.EdgeSave{
			{SourceNodeID: "node-1", SourcePortID: "out", TargetNodeID: "node-3", TargetPortID: "a"},
			{SourceNodeID: "node-2", SourcePortID: "out", TargetNodeID: "node-3", TargetPortID: "b"},
		}
	}
	return save
}

func writeDiagram(t *testing.T, name string, save dataflow.DiagramSave) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := pkgio.Export(save, path); err != nil {
		t.Fatalf("Export: %v", err)
	}
	return path
}

// testCLI returns a CLI whose config, diagram and cache directories live
// under a temp dir.
func testCLI(t *testing.T) *CLI {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("VISFLOW_DIAGRAM_DIR", filepath.Join(dir, "diagrams"))
	t.Setenv("VISFLOW_CACHE_DIR", filepath.Join(dir, "cache"))
	t.Setenv("VISFLOW_REDIS_ADDR", "")
	return New(io.Discard, LogInfo)
}

func execute(t *testing.T, c *CLI, args ...string) error {
	t.Helper()
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.Execute()
}

func TestLoadEditor(t *testing.T) {
	c := testCLI(t)
	path := writeDiagram(t, "sum.json", sumSave(true))

	ed, report, err := c.loadEditor(path, nil, quietMessenger{})
	if err != nil {
		t.Fatalf("loadEditor: %v", err)
	}
	if report.Nodes != 3 || report.Edges != 2 {
		t.Errorf("report = %d nodes, %d edges, want 3, 2", report.Nodes, report.Edges)
	}
	v, err := ed.NodeValue(dataflow.PortRef{Node: "node-3", Port: "out"})
	if err != nil || v != 7.0 {
		t.Errorf("node-3.out = %v, %v, want 7", v, err)
	}
}

func TestLoadEditorMissingFile(t *testing.T) {
	c := testCLI(t)
	if _, _, err := c.loadEditor(filepath.Join(t.TempDir(), "absent.json"), nil, nil); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("loadEditor(missing) = %v, want INVALID_PATH", err)
	}
}

func TestRunCommand(t *testing.T) {
	c := testCLI(t)
	path := writeDiagram(t, "sum.toml", sumSave(true))

	if err := execute(t, c, "run", path, "--set", "node-1.value=10"); err != nil {
		t.Fatalf("run: %v", err)
	}
	if err := execute(t, c, "run", path, "--set", "node-1"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("run --set node-1 = %v, want INVALID_INPUT", err)
	}
	if err := execute(t, c, "run", path, "--set", "ghost.value=1"); !errors.Is(err, errors.ErrCodeNodeNotFound) {
		t.Errorf("run --set ghost.value=1 = %v, want NODE_NOT_FOUND", err)
	}
}

func TestApplySet(t *testing.T) {
	c := testCLI(t)
	path := writeDiagram(t, "sum.json", sumSave(true))
	ed, _, err := c.loadEditor(path, nil, quietMessenger{})
	if err != nil {
		t.Fatal(err)
	}

	if err := applySet(ed, "node-2.value=10"); err != nil {
		t.Fatalf("applySet: %v", err)
	}
	if v, _ := ed.NodeValue(dataflow.PortRef{Node: "node-3", Port: "out"}); v != 13.0 {
		t.Errorf("node-3.out = %v, want 13", v)
	}
}

func TestParseOption(t *testing.T) {
	tests := []struct {
		raw  string
		want any
	}{
		{"10", 10.0},
		{"-2.5", -2.5},
		{"true", true},
		{"hello", "hello"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := parseOption(tt.raw); got != tt.want {
			t.Errorf("parseOption(%q) = %#v, want %#v", tt.raw, got, tt.want)
		}
	}
}

func TestOutputsTable(t *testing.T) {
	c := testCLI(t)
	path := writeDiagram(t, "sum.json", sumSave(true))
	ed, _, err := c.loadEditor(path, nil, quietMessenger{})
	if err != nil {
		t.Fatal(err)
	}

	got := outputsTable(ed.Diagram())
	for _, want := range []string{"node-1", "constant", "node-3", "add", "7", "ok"} {
		if !strings.Contains(got, want) {
			t.Errorf("outputsTable() missing %q:\n%s", want, got)
		}
	}
}

func TestValidateCommand(t *testing.T) {
	c := testCLI(t)
	good := writeDiagram(t, "good.json", sumSave(true))
	if err := execute(t, c, "validate", good); err != nil {
		t.Errorf("validate(good) = %v", err)
	}

	bad := sumSave(true)
	bad.Nodes = append(bad.Nodes, dataflow.NodeSave{ID: "node-4", Type: "teleport", State: dataflow.Metadata{}})
	badPath := writeDiagram(t, "bad.json", bad)
	if err := execute(t, c, "validate", badPath); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("validate(bad) = %v, want INVALID_FORMAT", err)
	}
}

func TestRenderCommandDOT(t *testing.T) {
	c := testCLI(t)
	path := writeDiagram(t, "sum.json", sumSave(true))
	out := filepath.Join(t.TempDir(), "sum.dot")

	if err := execute(t, c, "render", path, "-f", "dot", "-o", out); err != nil {
		t.Fatalf("render: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"node-1":"out_out" -> "node-3":"in_a";`) {
		t.Errorf("rendered DOT missing edge:\n%s", data)
	}

	// Second render is served from the file cache.
	if err := execute(t, c, "render", path, "-f", "dot", "-o", out); err != nil {
		t.Fatalf("render (cached): %v", err)
	}
	entries, err := os.ReadDir(c.Config.CacheDir)
	if err != nil || len(entries) == 0 {
		t.Errorf("cache dir %s should hold the render: %v", c.Config.CacheDir, err)
	}
}

func TestRenderCommandBadFormat(t *testing.T) {
	c := testCLI(t)
	path := writeDiagram(t, "sum.json", sumSave(true))
	if err := execute(t, c, "render", path, "-f", "png"); !errors.Is(err, errors.ErrCodeUnsupportedFormat) {
		t.Errorf("render -f png = %v, want UNSUPPORTED_FORMAT", err)
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		output, input, ext, want string
	}{
		{"", "dir/sum.json", "svg", "dir/sum.svg"},
		{"", "sum", "dot", "sum.dot"},
		{"out.svg", "sum.json", "svg", "out.svg"},
	}
	for _, tt := range tests {
		if got := outputPath(tt.output, tt.input, tt.ext); got != tt.want {
			t.Errorf("outputPath(%q, %q, %q) = %q, want %q", tt.output, tt.input, tt.ext, got, tt.want)
		}
	}
}

func TestStoreCommands(t *testing.T) {
	c := testCLI(t)
	path := writeDiagram(t, "pipeline.json", sumSave(true))
	out := filepath.Join(t.TempDir(), "restored.toml")

	if err := execute(t, c, "store", "save", path); err != nil {
		t.Fatalf("store save: %v", err)
	}
	if err := execute(t, c, "store", "list"); err != nil {
		t.Fatalf("store list: %v", err)
	}
	if err := execute(t, c, "store", "load", "pipeline", "-o", out); err != nil {
		t.Fatalf("store load: %v", err)
	}
	restored, err := pkgio.Import(out)
	if err != nil {
		t.Fatal(err)
	}
	if restored.DiagramName != "pipeline" || len(restored.Nodes) != 3 || len(restored.Edges) != 2 {
		t.Errorf("restored = %s with %d nodes, %d edges", restored.DiagramName, len(restored.Nodes), len(restored.Edges))
	}

	if err := execute(t, c, "store", "delete", "pipeline"); err != nil {
		t.Fatalf("store delete: %v", err)
	}
	if err := execute(t, c, "store", "load", "pipeline"); !errors.Is(err, errors.ErrCodeDiagramNotFound) {
		t.Errorf("store load after delete = %v, want DIAGRAM_NOT_FOUND", err)
	}
}

func TestTypesTable(t *testing.T) {
	got := typesTable(newTestRegistryTypes())
	for _, want := range []string{"constant", "out:number", "filter", "in:list*"} {
		if !strings.Contains(got, want) {
			t.Errorf("typesTable() missing %q:\n%s", want, got)
		}
	}
}

func TestPortList(t *testing.T) {
	specs := []dataflow.PortSpec{
		{ID: "a", Type: "number", Required: true},
		{ID: "b", Type: "number"},
	}
	if got := portList(specs); got != "a:number*, b:number" {
		t.Errorf("portList() = %q", got)
	}
	if got := portList(nil); got != "—" {
		t.Errorf("portList(nil) = %q, want —", got)
	}
}
