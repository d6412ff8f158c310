package cli

import (
	"github.com/spf13/cobra"

	"github.com/VASemenov/depender/pkg/pipeline"
)

// dependencyCommand creates the dependency command for analyzing imports.
func (c *CLI) dependencyCommand() *cobra.Command {
	var (
		formatsStr string
		excludeStr string
		output     string
		noCache    bool
	)
	opts := pipeline.Options{Kind: pipeline.KindDependency}

	cmd := &cobra.Command{
		Use:   "dependency [path]",
		Short: "Analyze import relationships between modules",
		Long: `Analyze import relationships between the modules of a Python project.

The project is scanned for .py files and every import between project
modules becomes an edge, counted once per import statement. The result
renders either as a node-link graph (--view graph, the default) or as an
adjacency matrix (--view matrix).

When no path is given, an interactive picker lists the current directory
and its subdirectories.

Examples:
  depender dependency ./myproject
  depender dependency ./myproject --view matrix -f svg
  depender dependency ./myproject -f svg,png,dot --engine dot
  depender dependency ./myproject --include-external --detailed`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveProjectPath(args)
			if err != nil {
				return err
			}
			opts.Path = path
			opts.Formats = parseFormats(formatsStr)
			if excludeStr != "" {
				opts.ExcludedDirs = splitList(excludeStr)
			}

			cfg, err := loadFileConfig(path)
			if err != nil {
				return err
			}
			cfg.apply(&opts)

			return c.runAnalysis(cmd.Context(), opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): html (default), svg, png, dot, json (comma-separated)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even if cached")

	// Parse flags
	cmd.Flags().IntVar(&opts.MaxDepth, "max-depth", 0, "maximum directory depth (0 = unlimited)")
	cmd.Flags().StringVar(&excludeStr, "exclude", "", "directory names to skip (comma-separated)")
	cmd.Flags().BoolVar(&opts.IncludeExternal, "include-external", false, "include imports of packages outside the project")
	cmd.Flags().BoolVar(&opts.FollowLinks, "follow-links", false, "follow symbolic links while scanning")

	// Render flags
	cmd.Flags().StringVar(&opts.View, "view", "", "view: graph (default), matrix")
	cmd.Flags().StringVar(&opts.Engine, "engine", "", "graphviz layout engine: fdp (default), dot, neato")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "show per-module import counts in node labels")
	cmd.Flags().StringVar(&opts.ImporterColor, "importer-color", "", "hex color for modules that only import")
	cmd.Flags().StringVar(&opts.ImportedColor, "imported-color", "", "hex color for modules that are only imported")
	cmd.Flags().StringVar(&opts.DisconnectedColor, "disconnected-color", "", "hex color for modules with no imports")

	return cmd
}
