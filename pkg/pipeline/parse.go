package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/VASemenov/depender/pkg/errors"
	"github.com/VASemenov/depender/pkg/graph"
	"github.com/VASemenov/depender/pkg/parse"
)

// Parse runs the parse stage without caching. Dependency analyses parse
// Python sources; structure analyses walk the directory tree.
func Parse(ctx context.Context, opts Options) (*graph.Graph, error) {
	if err := opts.ValidateForParse(); err != nil {
		return nil, err
	}

	info, err := os.Stat(opts.Path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "stat %s", opts.Path)
	}
	if !info.IsDir() {
		return nil, errors.New(errors.ErrCodeInvalidPath, "%s is not a directory", opts.Path)
	}

	switch opts.Kind {
	case KindStructure:
		g, err := parse.Structure(opts.Path, opts.ParseOptions())
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeParse, err, "walk %s", opts.Path)
		}
		return g, nil
	default:
		g, err := parse.Code(ctx, opts.Path, opts.ParseOptions())
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeParse, err, "parse %s", opts.Path)
		}
		return g, nil
	}
}

// projectFingerprint hashes the project's file paths, sizes, and modification
// times. Any change to the tree changes the fingerprint, which invalidates
// cached graphs without reading file contents.
func projectFingerprint(root string) (string, error) {
	h := sha256.New()
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		fmt.Fprintf(h, "%s|%d|%d\n", path, info.Size(), info.ModTime().UnixNano())
		return nil
	})
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
