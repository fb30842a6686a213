package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowtower/pkg/errors"
	"github.com/matzehuels/flowtower/pkg/pipeline"
	"github.com/matzehuels/flowtower/pkg/render"
)

// renderFlags holds the render-specific flags. Flags left unset keep the
// value from the config file.
type renderFlags struct {
	output   string
	formats  string
	style    string
	seed     uint64
	scale    float64
	nodelink bool
	clusters bool
}

// renderCommand creates the render command for generating diagrams.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		rf    renderFlags
		flags pipelineFlags
	)

	cmd := &cobra.Command{
		Use:   "render [flow.json|flow.toml]",
		Short: "Render a flow document to SVG, PNG, PDF, JSON or DOT",
		Long: `Render a flow document.

Formats:
  svg   box-and-connector diagram (default)
  png   raster image (requires rsvg-convert unless --nodelink)
  pdf   vector document (requires rsvg-convert unless --nodelink)
  json  the computed layout (same as 'flowtower layout')
  dot   Graphviz source of the flow tree

With --nodelink the diagram is drawn by Graphviz instead of the flow
layout engine.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.baseOptions(args[0], &flags)
			if err != nil {
				return err
			}
			if err := rf.apply(cmd, &opts); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], rf.output, opts, flags.noCache)
		},
	}

	cmd.Flags().StringVarP(&rf.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&rf.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot (comma-separated)")
	cmd.Flags().StringVar(&rf.style, "style", "", "visual style: simple (default), sketch")
	cmd.Flags().Uint64Var(&rf.seed, "seed", pipeline.DefaultSeed, "random seed for the sketch style")
	cmd.Flags().Float64Var(&rf.scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	cmd.Flags().BoolVar(&rf.nodelink, "nodelink", false, "draw with Graphviz instead of the flow layout")
	cmd.Flags().BoolVar(&rf.clusters, "clusters", false, "frame decisions and loops (dot, nodelink)")
	flags.register(cmd)

	return cmd
}

// apply overrides opts with the flags the user set explicitly.
func (rf *renderFlags) apply(cmd *cobra.Command, opts *pipeline.Options) error {
	if cmd.Flags().Changed("format") {
		opts.Formats = pipeline.ParseFormats(rf.formats)
	}
	if cmd.Flags().Changed("style") {
		opts.Style = rf.style
	}
	if cmd.Flags().Changed("scale") {
		opts.Scale = rf.scale
	}
	opts.Seed = rf.seed
	opts.Nodelink = rf.nodelink
	opts.Clusters = rf.clusters

	if err := pipeline.ValidateFormats(opts.Formats); err != nil {
		return err
	}
	if opts.Style != "" {
		return pipeline.ValidateStyle(opts.Style)
	}
	return nil
}

// outputPaths maps each format to its output file. A single format may be
// written to an explicit file; several formats share a base path.
func outputPaths(output, input string, formats []string) (map[string]string, error) {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		p, err := outputPath(output, "")
		if err != nil {
			return nil, err
		}
		paths[formats[0]] = p
		return paths, nil
	}

	base := basePath(output, input)
	if output != "" {
		if err := errors.ValidatePath(base); err != nil {
			return nil, err
		}
	}
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths, nil
}

// runRender runs the pipeline and writes one file per format.
func (c *CLI) runRender(ctx context.Context, input, output string, opts pipeline.Options, noCache bool) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	if pipeline.NeedsConverter(opts) && !render.Available() {
		return errors.New(errors.ErrCodeUnsupported,
			"png and pdf output require rsvg-convert (brew install librsvg, apt install librsvg2-bin) or --nodelink")
	}
	paths, err := outputPaths(output, input, opts.Formats)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinner(ctx, os.Stderr, "Rendering "+strings.Join(opts.Formats, ", ")+"...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.Fail("Render failed")
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Rendered %d artifact(s)", len(result.Artifacts)))

	for _, format := range opts.Formats {
		path := paths[format]
		if err := os.WriteFile(path, result.Artifacts[format], 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}

	printSuccess("Rendered %s", result.Document.Title)
	for _, format := range opts.Formats {
		printFile(paths[format])
	}
	printStats(result.Stats.BoxCount, result.Stats.EdgeCount, result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit)

	return nil
}
