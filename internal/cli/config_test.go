package cli

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/VASemenov/depender/pkg/pipeline"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, configFileName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadFileConfigMissingFile(t *testing.T) {
	cfg, err := loadFileConfig(t.TempDir())
	if err != nil {
		t.Fatalf("missing config file should not be an error: %v", err)
	}
	if cfg.Render.Engine != "" {
		t.Errorf("expected zero config, got engine %q", cfg.Render.Engine)
	}
}

func TestLoadFileConfigMalformed(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "[colors\nimporter = nope")

	if _, err := loadFileConfig(dir); err == nil {
		t.Error("expected error for malformed config")
	}
}

func TestFileConfigApply(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
[parse]
max_depth = 3
exclude = ["tests", "docs"]
include_external = true

[layout]
step_x = 1.5

[render]
engine = "dot"

[colors]
importer = "#112233"
disconnected = "#445566"
root = "#778899"
file = "#aabbcc"
`)

	cfg, err := loadFileConfig(dir)
	if err != nil {
		t.Fatal(err)
	}

	var opts pipeline.Options
	cfg.apply(&opts)

	if opts.MaxDepth != 3 {
		t.Errorf("MaxDepth = %d, want 3", opts.MaxDepth)
	}
	if want := []string{"tests", "docs"}; !reflect.DeepEqual(opts.ExcludedDirs, want) {
		t.Errorf("ExcludedDirs = %v, want %v", opts.ExcludedDirs, want)
	}
	if !opts.IncludeExternal {
		t.Error("IncludeExternal not applied")
	}
	if opts.StepX != 1.5 {
		t.Errorf("StepX = %v, want 1.5", opts.StepX)
	}
	if opts.Engine != "dot" {
		t.Errorf("Engine = %q, want dot", opts.Engine)
	}
	if opts.ImporterColor != "#112233" {
		t.Errorf("ImporterColor = %q", opts.ImporterColor)
	}
	if opts.DisconnectedColor != "#445566" {
		t.Errorf("DisconnectedColor = %q", opts.DisconnectedColor)
	}
	if opts.ImportedColor != "" {
		t.Errorf("ImportedColor = %q, want empty", opts.ImportedColor)
	}
	if opts.RootColor != "#778899" {
		t.Errorf("RootColor = %q", opts.RootColor)
	}
	if opts.FileColor != "#aabbcc" {
		t.Errorf("FileColor = %q", opts.FileColor)
	}
	if opts.DirColor != "" {
		t.Errorf("DirColor = %q, want empty", opts.DirColor)
	}
}

func TestFileConfigFlagsWin(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
[parse]
max_depth = 3

[render]
engine = "dot"
`)

	cfg, err := loadFileConfig(dir)
	if err != nil {
		t.Fatal(err)
	}

	opts := pipeline.Options{MaxDepth: 7, Engine: "neato"}
	cfg.apply(&opts)

	if opts.MaxDepth != 7 {
		t.Errorf("flag value overwritten: MaxDepth = %d", opts.MaxDepth)
	}
	if opts.Engine != "neato" {
		t.Errorf("flag value overwritten: Engine = %q", opts.Engine)
	}
}
