package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/visflow/pkg/cache"
	"github.com/matzehuels/visflow/pkg/dataflow"
	"github.com/matzehuels/visflow/pkg/errors"
	"github.com/matzehuels/visflow/pkg/render/nodelink"
)

const (
	formatSVG = "svg"
	formatDOT = "dot"

	// renderTTL bounds how long a rendered artifact stays cached. Keys are
	// content hashes, so entries never go stale, only unused.
	renderTTL = 7 * 24 * time.Hour
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string // output file path, derived from the input when empty
	format   string // "svg" or "dot"
	detailed bool   // include state and output values in node labels
	noCache  bool   // bypass the render cache
}

// renderCommand creates the render command for drawing a diagram as a
// node-link graph.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{format: formatSVG}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a diagram to SVG or DOT",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(opts.format); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: input name with the format extension)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg, dot")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show node state and output values")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the render cache")

	return cmd
}

func validateFormat(format string) error {
	switch format {
	case formatSVG, formatDOT:
		return nil
	}
	return errors.New(errors.ErrCodeUnsupportedFormat, "unsupported render format %q (want svg or dot)", format)
}

// runRender loads and propagates the diagram, then renders it through the
// cache. Cache keys hash the saved document; computed values follow from it.
func (c *CLI) runRender(ctx context.Context, input string, opts renderOpts) error {
	ed, report, err := c.loadEditor(input, nil, nil)
	if err != nil {
		return err
	}
	c.Logger.Infof("Loaded diagram: %d nodes, %d edges", report.Nodes, report.Edges)

	rc, err := c.newCache(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer rc.Close()

	spin := newSpinnerWithContext(ctx, "Rendering...")
	spin.Start()
	data, cached, err := renderCached(ctx, rc, ed.Diagram(), ed.SerializeDiagram(), opts)
	if err != nil {
		spin.StopWithError("Render failed")
		return err
	}
	spin.Stop()

	out := outputPath(opts.output, input, opts.format)
	if err := os.WriteFile(out, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", out)
	}

	printSuccess("Rendered %s", input)
	printStats(report.Nodes, report.Edges, cached)
	printFile(out)
	return nil
}

// renderCached returns the rendered diagram and whether it came from the
// cache.
func renderCached(ctx context.Context, c cache.Cache, d *dataflow.Diagram, save dataflow.DiagramSave, opts renderOpts) ([]byte, bool, error) {
	key := cache.NewDefaultKeyer().RenderKey(cache.DiagramHash(save), cache.RenderKeyOpts{
		Format:   opts.format,
		Detailed: opts.detailed,
	})
	return cache.GetOrCompute(ctx, c, key, renderTTL, func() ([]byte, error) {
		return renderDiagram(d, opts)
	})
}

func renderDiagram(d *dataflow.Diagram, opts renderOpts) ([]byte, error) {
	dot := nodelink.ToDOT(d, nodelink.Options{Detailed: opts.detailed})
	if opts.format == formatDOT {
		return []byte(dot), nil
	}
	svg, err := nodelink.RenderSVG(dot)
	if err != nil {
		return nil, fmt.Errorf("render svg: %w", err)
	}
	return svg, nil
}
