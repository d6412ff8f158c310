package pipeline

import (
	"context"
	"encoding/json"
	"path/filepath"

	"github.com/VASemenov/depender/pkg/classify"
	"github.com/VASemenov/depender/pkg/errors"
	"github.com/VASemenov/depender/pkg/graph"
	"github.com/VASemenov/depender/pkg/layout"
	"github.com/VASemenov/depender/pkg/matrix"
	"github.com/VASemenov/depender/pkg/render"
	"github.com/VASemenov/depender/pkg/render/depgraph"
	"github.com/VASemenov/depender/pkg/render/matrixview"
	"github.com/VASemenov/depender/pkg/render/structview"
)

// Render produces all requested formats from an analyzed result, without
// caching. The result must carry the stage outputs the kind needs: Geometry
// for structure analyses, Matrix for dependency matrix views.
func Render(ctx context.Context, result *Result, opts Options) (map[string][]byte, error) {
	opts.SetLayoutDefaults()
	opts.SetRenderDefaults()

	switch {
	case opts.Kind == KindStructure:
		return renderStructure(result, opts)
	case opts.View == ViewMatrix:
		return renderMatrix(result, opts)
	default:
		return renderDepGraph(ctx, result, opts)
	}
}

func renderDepGraph(ctx context.Context, result *Result, opts Options) (map[string][]byte, error) {
	p, err := opts.Palette()
	if err != nil {
		return nil, err
	}
	dot := depgraph.ToDOT(result.Graph, classify.Colors(result.Graph, p), depgraph.Options{
		Engine:   depgraph.Engine(opts.Engine),
		Detailed: opts.Detailed,
	})

	artifacts := make(map[string][]byte)
	var svg []byte
	needSVG := func() ([]byte, error) {
		if svg != nil {
			return svg, nil
		}
		svg, err = depgraph.RenderSVG(ctx, dot, depgraph.Engine(opts.Engine))
		return svg, err
	}

	for _, format := range opts.Formats {
		switch format {
		case FormatDOT:
			artifacts[format] = []byte(dot)
		case FormatSVG:
			data, err := needSVG()
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeRender, err, "render svg")
			}
			artifacts[format] = data
		case FormatPNG:
			data, err := depgraph.RenderPNG(ctx, dot, depgraph.Engine(opts.Engine))
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeRender, err, "render png")
			}
			artifacts[format] = data
		case FormatHTML:
			data, err := needSVG()
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeRender, err, "render svg")
			}
			page, err := render.Page(pageTitle(opts), data)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeRender, err, "render html")
			}
			artifacts[format] = page
		case FormatJSON:
			data, err := graph.Marshal(result.Graph)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeRender, err, "marshal graph")
			}
			artifacts[format] = data
		}
	}
	return artifacts, nil
}

func renderMatrix(result *Result, opts Options) (map[string][]byte, error) {
	if result.Matrix == nil {
		p, err := opts.Palette()
		if err != nil {
			return nil, err
		}
		m := matrix.Build(result.Graph, p)
		result.Matrix = &m
	}

	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		switch format {
		case FormatSVG:
			artifacts[format] = matrixview.RenderSVG(*result.Matrix, matrixview.Options{})
		case FormatHTML:
			svg := matrixview.RenderSVG(*result.Matrix, matrixview.Options{})
			page, err := render.Page(pageTitle(opts), svg)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeRender, err, "render html")
			}
			artifacts[format] = page
		case FormatJSON:
			data, err := json.Marshal(result.Matrix)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeRender, err, "marshal matrix")
			}
			artifacts[format] = data
		default:
			return nil, errors.New(errors.ErrCodeUnsupported,
				"format %q is not supported for matrix views", format)
		}
	}
	return artifacts, nil
}

func renderStructure(result *Result, opts Options) (map[string][]byte, error) {
	if result.Geometry == nil {
		return nil, errors.New(errors.ErrCodeInternal, "structure render requires geometry")
	}
	palette, err := opts.StructurePalette()
	if err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte)
	var svg []byte
	needSVG := func() []byte {
		if svg == nil {
			svg = structview.RenderSVG(result.Graph, result.Geometry, structview.Options{
				Palette: palette,
			})
		}
		return svg
	}

	for _, format := range opts.Formats {
		switch format {
		case FormatSVG:
			artifacts[format] = needSVG()
		case FormatHTML:
			page, err := render.Page(pageTitle(opts), needSVG())
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeRender, err, "render html")
			}
			artifacts[format] = page
		case FormatJSON:
			payload := struct {
				Graph    graph.File                 `json:"graph"`
				Geometry map[string]layout.Geometry `json:"geometry"`
			}{graph.Export(result.Graph), result.Geometry}
			data, err := json.Marshal(payload)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeRender, err, "marshal structure")
			}
			artifacts[format] = data
		default:
			return nil, errors.New(errors.ErrCodeUnsupported,
				"format %q is not supported for structure views", format)
		}
	}
	return artifacts, nil
}

func pageTitle(opts Options) string {
	abs, err := filepath.Abs(opts.Path)
	if err != nil {
		return opts.Path
	}
	return filepath.Base(abs)
}
