package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	pkgio "github.com/matzehuels/visflow/pkg/io"
	"github.com/matzehuels/visflow/pkg/store"
)

// storeCommand creates the store command for named diagram documents.
func (c *CLI) storeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Save, list, load and delete named diagrams",
		Long: `Save, list, load and delete named diagrams.

Documents live in diagram_dir, or in redis when redis_addr is configured.`,
	}

	cmd.AddCommand(c.storeSaveCommand())
	cmd.AddCommand(c.storeListCommand())
	cmd.AddCommand(c.storeLoadCommand())
	cmd.AddCommand(c.storeDeleteCommand())

	return cmd
}

// storeSaveCommand creates the "store save" subcommand.
func (c *CLI) storeSaveCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "save [file]",
		Short: "Store a diagram file under a name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			save, err := pkgio.Import(args[0])
			if err != nil {
				return err
			}
			if name == "" {
				name = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			}

			s, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			doc, err := s.Save(cmd.Context(), name, save)
			if err != nil {
				return err
			}
			printSuccess("Stored %s", StyleHighlight.Render(doc.Name))
			printKeyValue("id", doc.ID)
			printKeyValue("nodes", fmt.Sprint(len(doc.Diagram.Nodes)))
			printKeyValue("edges", fmt.Sprint(len(doc.Diagram.Edges)))
			printNextStep("Load it with", "visflow store load "+doc.Name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "document name (default: file name without extension)")
	return cmd
}

// storeListCommand creates the "store list" subcommand.
func (c *CLI) storeListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored diagrams",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			docs, err := s.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(docs) == 0 {
				printInfo("No stored diagrams")
				return nil
			}
			fmt.Println(summaryTable(docs))
			return nil
		},
	}
}

func summaryTable(docs []store.Summary) string {
	rows := make([][]string, len(docs))
	for i, d := range docs {
		rows[i] = []string{d.Name, fmt.Sprint(d.Nodes), fmt.Sprint(d.Edges), d.UpdatedAt.Format("2006-01-02 15:04")}
	}
	return renderTable([]string{"Name", "Nodes", "Edges", "Updated"}, rows, func(row, col int) lipgloss.Style {
		if col == 0 {
			return StyleHighlight
		}
		return StyleDim
	})
}

// storeLoadCommand creates the "store load" subcommand.
func (c *CLI) storeLoadCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "load [name]",
		Short: "Write a stored diagram to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			doc, err := s.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := output
			if out == "" {
				out = doc.Name + ".json"
			}
			if err := pkgio.Export(doc.Diagram, out); err != nil {
				return err
			}
			printSuccess("Loaded %s", StyleHighlight.Render(doc.Name))
			printFile(out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, .json or .toml (default: NAME.json)")
	return cmd
}

// storeDeleteCommand creates the "store delete" subcommand.
func (c *CLI) storeDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [name]",
		Short: "Delete a stored diagram",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			printSuccess("Deleted %s", args[0])
			return nil
		},
	}
}
