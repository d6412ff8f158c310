package cli

import (
	"github.com/spf13/cobra"

	"github.com/VASemenov/depender/pkg/pipeline"
)

// structureCommand creates the structure command for directory hierarchies.
func (c *CLI) structureCommand() *cobra.Command {
	var (
		formatsStr string
		excludeStr string
		output     string
		noCache    bool
	)
	opts := pipeline.Options{Kind: pipeline.KindStructure}

	cmd := &cobra.Command{
		Use:   "structure [path]",
		Short: "Render a project's directory tree as a hierarchy diagram",
		Long: `Render a project's directory tree as a hierarchy diagram.

Directories and files become nodes of a tree rooted at the project
directory. Node positions are computed bottom-up so that every parent is
centered over its children, with depth mapped to the vertical axis.

Examples:
  depender structure ./myproject
  depender structure ./myproject -f svg --step-x 1.5
  depender structure ./myproject --exclude tests,docs`,
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
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): html (default), svg, json (comma-separated)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even if cached")

	// Parse flags
	cmd.Flags().IntVar(&opts.MaxDepth, "max-depth", 0, "maximum directory depth (0 = unlimited)")
	cmd.Flags().StringVar(&excludeStr, "exclude", "", "directory names to skip (comma-separated)")
	cmd.Flags().BoolVar(&opts.FollowLinks, "follow-links", false, "follow symbolic links while scanning")

	// Layout flags
	cmd.Flags().Float64Var(&opts.StepX, "step-x", 0, "horizontal spacing between sibling nodes")
	cmd.Flags().Float64Var(&opts.StepY, "step-y", 0, "vertical spacing between tree levels")

	// Color flags
	cmd.Flags().StringVar(&opts.RootColor, "root-color", "", "hex color for the project root node")
	cmd.Flags().StringVar(&opts.DirColor, "dir-color", "", "hex color for directory nodes")
	cmd.Flags().StringVar(&opts.FileColor, "file-color", "", "hex color for file nodes")

	return cmd
}
