package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/visflow/pkg/errors"
)

// validateCommand creates the validate command: load a diagram, report the
// records that could not be restored and check the graph structure.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a diagram file for problems",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ed, report, err := c.loadEditor(args[0], nil, quietMessenger{})
			if err != nil {
				return err
			}

			for _, p := range report.Problems {
				printError("%s %s", StyleDim.Render(string(errors.GetCode(p))), errors.UserMessage(p))
			}
			for _, id := range report.Propagation.Failed {
				n, _ := ed.Diagram().Node(id)
				printWarning("%s failed: %v", nodeLabel(n), n.Err)
			}
			for _, id := range report.Propagation.Skipped {
				n, _ := ed.Diagram().Node(id)
				printWarning("%s skipped: required input has no value", nodeLabel(n))
			}

			if err := ed.Diagram().Validate(); err != nil {
				printError("%v", err)
				return errors.Wrap(errors.ErrCodeInvalidFormat, err, "%s is structurally invalid", args[0])
			}
			if len(report.Problems) > 0 {
				return errors.New(errors.ErrCodeInvalidFormat, "%s: %d records could not be restored", args[0], len(report.Problems))
			}

			printSuccess("%s is valid", args[0])
			printStats(report.Nodes, report.Edges, false)
			return nil
		},
	}
}

// quietMessenger drops advisories the caller reports itself.
type quietMessenger struct{}

func (quietMessenger) Warn(string)  {}
func (quietMessenger) Error(string) {}
