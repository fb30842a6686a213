package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowtower/pkg/graph"
)

// layoutCommand creates the layout command for computing flow layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output string
		flags  pipelineFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [flow.json|flow.toml]",
		Short: "Compute the layout of a flow document",
		Long: `Compute the layout of a flow document.

The layout command measures and arranges every step, decision and loop of
the document and writes the result as a layout.json file (same format as
'render -f json'): the size of the diagram, the shared flow axis, every box
and every connector segment, all in root coordinates.

Use -o - to write the layout to stdout, e.g. to pipe it into
'flowtower inspect -'.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), cmd.OutOrStdout(), args[0], output, &flags)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, or - for stdout (default: <input>.layout.json)")
	flags.register(cmd)

	return cmd
}

// runLayout loads the document, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, stdout io.Writer, input, output string, flags *pipelineFlags) error {
	opts, err := c.baseOptions(input, flags)
	if err != nil {
		return err
	}
	toStdout := output == "-"
	outPath := output
	if !toStdout {
		if outPath, err = outputPath(output, trimExt(input)+".layout.json"); err != nil {
			return err
		}
	}

	runner, err := c.newRunner(flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	doc, err := runner.Parse(ctx, opts)
	if err != nil {
		return fmt.Errorf("load %s: %w", input, err)
	}

	spinner := newSpinner(ctx, os.Stderr, "Computing layout...")
	spinner.Start()

	l, cacheHit, err := runner.ComputeLayoutWithCacheInfo(ctx, doc, opts)
	if err != nil {
		spinner.Fail("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if toStdout {
		return graph.WriteLayout(l, stdout)
	}
	if err := graph.WriteLayoutFile(l, outPath); err != nil {
		return fmt.Errorf("write output %s: %w", outPath, err)
	}

	printSuccess("Layout complete")
	printFile(outPath)
	printStats(len(l.Nodes), len(l.Edges), cacheHit)
	printNewline()
	printNextStep("Render", "flowtower render "+input)

	return nil
}
