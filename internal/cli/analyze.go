package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/VASemenov/depender/pkg/pipeline"
)

// runAnalysis executes the pipeline for opts and writes the resulting
// artifacts. It is shared by the dependency and structure commands.
func (c *CLI) runAnalysis(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Analyzing %s...", opts.Path))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Analysis failed")
		if spinner.Cancelled() {
			return ctx.Err()
		}
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Analyzed %d modules with %d imports", result.Stats.NodeCount, result.Stats.EdgeCount))
	logger.Debugf("Timings: parse=%s analyze=%s render=%s",
		result.Stats.ParseTime, result.Stats.AnalyzeTime, result.Stats.RenderTime)

	printSuccess("Analyzed %s", opts.Path)
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.ParseHit)

	paths, err := writeArtifacts(result.Artifacts, opts.Formats, opts.Path, output)
	if err != nil {
		return err
	}
	for _, p := range paths {
		printFile(p)
	}
	if html, ok := htmlPath(paths); ok {
		printNextStep("View result", "open "+html)
	}
	return nil
}

// writeArtifacts writes each requested format to disk and returns the paths
// written, in format order.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) ([]string, error) {
	base := basePath(output, input)

	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			return nil, fmt.Errorf("no %s artifact produced", format)
		}
		path := base + "." + format
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// basePath derives the base output path from the output flag and the
// project path. If output is empty, the project directory name is used.
// A known format extension on output is stripped so multiple formats can
// share the base.
func basePath(output, input string) string {
	if output == "" {
		abs, err := filepath.Abs(input)
		if err != nil {
			abs = input
		}
		return filepath.Base(abs)
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// htmlPath returns the first .html path in paths.
func htmlPath(paths []string) (string, bool) {
	for _, p := range paths {
		if strings.HasSuffix(p, ".html") {
			return p, true
		}
	}
	return "", false
}
