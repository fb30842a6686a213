package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/flowtower/pkg/graph"
)

// inspectCommand creates the inspect command, which prints every box of a
// computed layout.
func (c *CLI) inspectCommand() *cobra.Command {
	var flags pipelineFlags

	cmd := &cobra.Command{
		Use:   "inspect [flow.json|flow.toml|flow.layout.json|-]",
		Short: "Print the boxes and connectors of a flow layout",
		Long: `Print the boxes and connectors of a flow layout.

The argument is a flow document, which is laid out first, or a layout
written by 'flowtower layout' (*.layout.json, or - to read one from stdin).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := c.loadInspectLayout(cmd.Context(), cmd.InOrStdin(), args[0], &flags)
			if err != nil {
				return err
			}
			printInspect(cmd.OutOrStdout(), l)
			return nil
		},
	}
	flags.register(cmd)

	return cmd
}

// loadInspectLayout reads a stored layout, or computes one from a flow
// document.
func (c *CLI) loadInspectLayout(ctx context.Context, stdin io.Reader, input string, flags *pipelineFlags) (graph.Layout, error) {
	switch {
	case input == "-":
		return graph.ReadLayout(stdin)
	case strings.HasSuffix(input, ".layout.json"):
		return graph.ReadLayoutFile(input)
	}

	opts, err := c.baseOptions(input, flags)
	if err != nil {
		return graph.Layout{}, err
	}

	runner, err := c.newRunner(flags.noCache)
	if err != nil {
		return graph.Layout{}, fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	doc, err := runner.Parse(ctx, opts)
	if err != nil {
		return graph.Layout{}, fmt.Errorf("load %s: %w", input, err)
	}
	l, _, err := runner.ComputeLayoutWithCacheInfo(ctx, doc, opts)
	if err != nil {
		return graph.Layout{}, fmt.Errorf("compute layout: %w", err)
	}
	return l, nil
}

// edgeSummary counts connector segments by their attributes.
type edgeSummary struct {
	total, directed, dashed, labelled int
}

func summarizeEdges(edges []graph.Edge) edgeSummary {
	s := edgeSummary{total: len(edges)}
	for _, e := range edges {
		if e.Directed {
			s.directed++
		}
		if e.Dashed {
			s.dashed++
		}
		if e.Text != "" {
			s.labelled++
		}
	}
	return s
}

// boxTable renders the boxes of l as a table.
func boxTable(l graph.Layout) *table.Table {
	header := lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	marker := cell.Foreground(colorGray)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers("ID", "KIND", "LABEL", "X", "Y", "W", "H")

	for _, n := range l.Nodes {
		t.Row(n.ID, n.Kind, n.Label,
			formatCoord(n.X), formatCoord(n.Y), formatCoord(n.Width), formatCoord(n.Height))
	}

	return t.StyleFunc(func(row, col int) lipgloss.Style {
		if row == table.HeaderRow {
			return header
		}
		if row >= 0 && row < len(l.Nodes) && l.Nodes[row].IsMarker() {
			return marker
		}
		return cell
	})
}

func formatCoord(v float64) string {
	return fmt.Sprintf("%.1f", v)
}

func printInspect(w io.Writer, l graph.Layout) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	kv := func(key, value string) {
		fmt.Fprintln(w, keyStyle.Render(key)+" "+StyleValue.Render(value))
	}

	if l.Title != "" {
		fmt.Fprintln(w, StyleTitle.Render(l.Title))
	}
	kv("size", fmt.Sprintf("%s × %s", formatCoord(l.Width), formatCoord(l.Height)))
	kv("axis", formatCoord(l.AxisX))
	kv("boxes", fmt.Sprintf("%d", len(l.Nodes)))

	es := summarizeEdges(l.Edges)
	kv("edges", fmt.Sprintf("%d (%d directed, %d dashed, %d labelled)", es.total, es.directed, es.dashed, es.labelled))

	if len(l.Nodes) > 0 {
		fmt.Fprintln(w, boxTable(l).String())
	}
}
