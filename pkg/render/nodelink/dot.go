package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/visflow/pkg/dataflow"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes state and output values in node labels.
	// When false, only the node ID and type are shown.
	Detailed bool
}

// ToDOT converts a diagram to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG].
func ToDOT(d *dataflow.Diagram, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=record, style=\"rounded,filled\", fillcolor=white, fontsize=14];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range d.Nodes() {
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(fmtAttrs(n, opts.Detailed), ", "))
	}

	buf.WriteString("\n")
	for _, e := range d.Edges() {
		fmt.Fprintf(&buf, "  %q:%q -> %q:%q;\n",
			e.Source.Node, fieldName(dataflow.Output, e.Source.Port),
			e.Target.Node, fieldName(dataflow.Input, e.Target.Port))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtAttrs(n *dataflow.Node, detailed bool) []string {
	// Record labels are escaped already; %q would double the backslashes.
	attrs := []string{`label="` + fmtLabel(n, detailed) + `"`}
	if n.Err != nil {
		attrs = append(attrs, "color=red", "penwidth=2", `tooltip="`+escape(n.Err.Error())+`"`)
	}
	if n.Selected {
		attrs = append(attrs, "fillcolor=lightblue")
	}
	return attrs
}

// fmtLabel builds a record label: {inputs}|body|{outputs}.
func fmtLabel(n *dataflow.Node, detailed bool) string {
	body := []string{escape(string(n.ID)), escape(n.Type)}
	if detailed {
		for _, k := range slices.Sorted(maps.Keys(n.State)) {
			body = append(body, escape(fmt.Sprintf("%s: %v", k, n.State[k])))
		}
		for _, p := range n.Outputs {
			if p.Value != nil {
				body = append(body, escape(fmt.Sprintf("%s = %v", p.ID, p.Value)))
			}
		}
	}

	parts := []string{}
	if len(n.Inputs) > 0 {
		parts = append(parts, "{"+fields(n.Inputs, dataflow.Input)+"}")
	}
	parts = append(parts, strings.Join(body, `\n`))
	if len(n.Outputs) > 0 {
		parts = append(parts, "{"+fields(n.Outputs, dataflow.Output)+"}")
	}
	return strings.Join(parts, "|")
}

func fields(ports []*dataflow.Port, dir dataflow.Direction) string {
	out := make([]string, len(ports))
	for i, p := range ports {
		out[i] = fmt.Sprintf("<%s> %s", fieldName(dir, p.ID), escape(string(p.ID)))
	}
	return strings.Join(out, "|")
}

// fieldName keeps input and output ports with the same id apart.
func fieldName(dir dataflow.Direction, id dataflow.PortID) string {
	if dir == dataflow.Input {
		return "in_" + string(id)
	}
	return "out_" + string(id)
}

var recordSpecial = strings.NewReplacer(
	`\`, `\\`, "{", `\{`, "}", `\}`, "|", `\|`, "<", `\<`, ">", `\>`, `"`, `\"`,
)

// escape quotes the characters that structure a record label.
func escape(s string) string {
	return recordSpecial.Replace(s)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based svg header with one whose
// viewBox starts at the origin and whose size matches it.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}
