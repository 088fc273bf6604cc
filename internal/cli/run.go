package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/visflow/pkg/dataflow"
	"github.com/matzehuels/visflow/pkg/editor"
	"github.com/matzehuels/visflow/pkg/errors"
)

// runCommand creates the run command: load a diagram, propagate it once and
// print every output port.
func (c *CLI) runCommand() *cobra.Command {
	var sets []string

	cmd := &cobra.Command{
		Use:   "run [file]",
		Short: "Load a diagram, propagate it and print node outputs",
		Long: `Load a diagram, propagate it and print node outputs.

Node options can be overridden before printing with --set, which takes
NODE.KEY=VALUE. Numeric values are parsed as numbers.`,
		Example: `  visflow run pipeline.json
  visflow run pipeline.toml --set node-1.value=10`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prog := newProgress(c.Logger)
			ed, report, err := c.loadEditor(args[0], nil, nil)
			if err != nil {
				return err
			}
			for _, s := range sets {
				if err := applySet(ed, s); err != nil {
					return err
				}
			}
			prog.done(fmt.Sprintf("Propagated %d nodes", ed.Diagram().NodeCount()))

			fmt.Println(outputsTable(ed.Diagram()))
			printStats(report.Nodes, report.Edges, false)
			if n := len(report.Problems); n > 0 {
				printWarning("%d records skipped while loading", n)
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&sets, "set", nil, "override a node option (NODE.KEY=VALUE, repeatable)")
	return cmd
}

// applySet parses NODE.KEY=VALUE and sets the option, which propagates.
func applySet(ed *editor.Editor, s string) error {
	target, raw, ok := strings.Cut(s, "=")
	if !ok {
		return errors.New(errors.ErrCodeInvalidInput, "--set %q: want NODE.KEY=VALUE", s)
	}
	node, key, ok := strings.Cut(target, ".")
	if !ok || node == "" || key == "" {
		return errors.New(errors.ErrCodeInvalidInput, "--set %q: want NODE.KEY=VALUE", s)
	}
	return ed.SetNodeOption(dataflow.NodeID(node), key, parseOption(raw))
}

// parseOption reads numbers as float64 and booleans as bool; anything else
// stays a string.
func parseOption(raw string) any {
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	return raw
}

// outputsTable lists every output port value, one row per port. Nodes
// without outputs get a single row.
func outputsTable(d *dataflow.Diagram) string {
	var rows [][]string
	var failed []bool
	for _, n := range d.Nodes() {
		status := "ok"
		if n.Err != nil {
			status = errors.UserMessage(n.Err)
		}
		if len(n.Outputs) == 0 {
			rows = append(rows, []string{string(n.ID), n.Type, "", "", status})
			failed = append(failed, n.Err != nil)
			continue
		}
		for _, p := range n.Outputs {
			rows = append(rows, []string{string(n.ID), n.Type, string(p.ID), formatValue(p.Value), status})
			failed = append(failed, n.Err != nil)
		}
	}

	return renderTable([]string{"Node", "Type", "Port", "Value", "Status"}, rows, func(row, col int) lipgloss.Style {
		switch {
		case col == 4 && failed[row]:
			return StyleError
		case col == 3:
			return StyleValue
		case col == 0:
			return StyleHighlight
		}
		return StyleDim
	})
}
