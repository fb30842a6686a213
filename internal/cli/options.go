package cli

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowtower/pkg/errors"
	"github.com/matzehuels/flowtower/pkg/pipeline"
)

// pipelineFlags are the flags shared by every command that reads a flow
// document.
type pipelineFlags struct {
	title     string
	rootEdges bool
	noCache   bool
	refresh   bool
}

func (f *pipelineFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "override the document title")
	cmd.Flags().BoolVar(&f.rootEdges, "root-edges", false, "draw entry and exit connectors on the root sequence")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "recompute even if a cached result exists")
}

// baseOptions returns pipeline options for input seeded from the config
// file and the shared flags.
func (c *CLI) baseOptions(input string, f *pipelineFlags) (pipeline.Options, error) {
	cfg, err := c.config()
	if err != nil {
		return pipeline.Options{}, err
	}
	opts := cfg.PipelineOptions()
	opts.Path = input
	opts.Title = f.title
	opts.RootEdges = f.rootEdges
	opts.Refresh = f.refresh
	opts.Logger = c.Logger
	return opts, nil
}

// trimExt strips the extension from path.
func trimExt(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path))
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return trimExt(input)
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPath validates an explicit output path. Paths derived from the
// input are trusted.
func outputPath(explicit, derived string) (string, error) {
	if explicit == "" {
		return derived, nil
	}
	if err := errors.ValidatePath(explicit); err != nil {
		return "", err
	}
	return explicit, nil
}
