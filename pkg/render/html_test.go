package render

import (
	"strings"
	"testing"
)

func TestPage(t *testing.T) {
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg"><rect/></svg>`)
	out, err := Page("my-project", svg)
	if err != nil {
		t.Fatalf("Page: %v", err)
	}

	html := string(out)
	if !strings.Contains(html, "<title>my-project</title>") {
		t.Error("title missing")
	}
	if !strings.Contains(html, string(svg)) {
		t.Error("SVG not embedded verbatim")
	}
	if !strings.HasPrefix(html, "<!DOCTYPE html>") {
		t.Error("doctype missing")
	}
}

func TestPageEscapesTitle(t *testing.T) {
	out, err := Page(`<script>`, []byte("<svg/>"))
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	if strings.Contains(string(out), "<title><script></title>") {
		t.Error("title not escaped")
	}
}
