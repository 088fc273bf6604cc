package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/visflow/pkg/dataflow"
	"github.com/matzehuels/visflow/pkg/nodetype"
	"github.com/matzehuels/visflow/pkg/nodetype/builtin"
)

// typesCommand creates the types command listing the registered node types.
func (c *CLI) typesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the available node types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(typesTable(builtin.NewRegistry().Types()))
			return nil
		},
	}
}

func typesTable(types []nodetype.Type) string {
	rows := make([][]string, len(types))
	for i, t := range types {
		rows[i] = []string{t.Name, portList(t.Inputs), portList(t.Outputs), t.Description}
	}
	return renderTable([]string{"Type", "Inputs", "Outputs", "Description"}, rows, func(row, col int) lipgloss.Style {
		if col == 0 {
			return StyleHighlight
		}
		return StyleDim
	})
}

// portList formats port specs as "id:type", with * marking required inputs.
func portList(specs []dataflow.PortSpec) string {
	if len(specs) == 0 {
		return "—"
	}
	parts := make([]string, len(specs))
	for i, s := range specs {
		parts[i] = string(s.ID) + ":" + s.Type
		if s.Required {
			parts[i] += "*"
		}
	}
	return strings.Join(parts, ", ")
}
