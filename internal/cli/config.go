package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/VASemenov/depender/pkg/pipeline"
)

// configFileName is the per-project configuration file.
const configFileName = ".depender.toml"

// fileConfig holds defaults read from a project's .depender.toml. Values
// set here are applied only where the corresponding flag was left unset,
// so flags always win.
type fileConfig struct {
	Parse struct {
		MaxDepth        int      `toml:"max_depth"`
		Exclude         []string `toml:"exclude"`
		IncludeExternal bool     `toml:"include_external"`
		FollowLinks     bool     `toml:"follow_links"`
	} `toml:"parse"`

	Layout struct {
		StepX float64 `toml:"step_x"`
		StepY float64 `toml:"step_y"`
	} `toml:"layout"`

	Render struct {
		Engine   string `toml:"engine"`
		Detailed bool   `toml:"detailed"`
	} `toml:"render"`

	Colors struct {
		Importer     string `toml:"importer"`
		Imported     string `toml:"imported"`
		Disconnected string `toml:"disconnected"`
		Root         string `toml:"root"`
		Dir          string `toml:"dir"`
		File         string `toml:"file"`
	} `toml:"colors"`
}

// loadFileConfig reads .depender.toml from the project directory. A missing
// file is not an error; a malformed one is.
func loadFileConfig(projectDir string) (*fileConfig, error) {
	path := filepath.Join(projectDir, configFileName)

	var cfg fileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return &cfg, nil
}

// apply copies file-level defaults into opts for every field still at its
// zero value.
func (c *fileConfig) apply(opts *pipeline.Options) {
	if opts.MaxDepth == 0 {
		opts.MaxDepth = c.Parse.MaxDepth
	}
	if len(opts.ExcludedDirs) == 0 {
		opts.ExcludedDirs = c.Parse.Exclude
	}
	if !opts.IncludeExternal {
		opts.IncludeExternal = c.Parse.IncludeExternal
	}
	if !opts.FollowLinks {
		opts.FollowLinks = c.Parse.FollowLinks
	}
	if opts.StepX == 0 {
		opts.StepX = c.Layout.StepX
	}
	if opts.StepY == 0 {
		opts.StepY = c.Layout.StepY
	}
	if opts.Engine == "" {
		opts.Engine = c.Render.Engine
	}
	if !opts.Detailed {
		opts.Detailed = c.Render.Detailed
	}
	if opts.ImporterColor == "" {
		opts.ImporterColor = c.Colors.Importer
	}
	if opts.ImportedColor == "" {
		opts.ImportedColor = c.Colors.Imported
	}
	if opts.DisconnectedColor == "" {
		opts.DisconnectedColor = c.Colors.Disconnected
	}
	if opts.RootColor == "" {
		opts.RootColor = c.Colors.Root
	}
	if opts.DirColor == "" {
		opts.DirColor = c.Colors.Dir
	}
	if opts.FileColor == "" {
		opts.FileColor = c.Colors.File
	}
}

// resolveProjectPath turns the optional positional argument into a project
// directory, falling back to the interactive picker when stdin is a
// terminal and no path was given.
func resolveProjectPath(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if !isTerminal(os.Stdin) {
		return wd, nil
	}
	return pickProjectDir(wd)
}

// isTerminal reports whether f is attached to a character device.
func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
