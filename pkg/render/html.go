package render

import (
	"bytes"
	"fmt"
	"html/template"
)

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  body { margin: 0; background: #ffffff; display: flex; justify-content: center; }
  svg { max-width: 100vw; height: auto; }
</style>
</head>
<body>
{{.SVG}}
</body>
</html>
`))

// Page wraps rendered SVG in a standalone HTML document. The SVG bytes are
// trusted output of this package's renderers, not user input.
func Page(title string, svg []byte) ([]byte, error) {
	var buf bytes.Buffer
	err := pageTmpl.Execute(&buf, struct {
		Title string
		SVG   template.HTML
	}{
		Title: title,
		SVG:   template.HTML(svg),
	})
	if err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	return buf.Bytes(), nil
}
