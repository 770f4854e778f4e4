// Package markup renders the short Markdown snippets of a resort profile
// (rule descriptions, policy statements) to HTML fragments.
package markup

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrMarkupConversion indicates a Markdown snippet could not be converted.
var ErrMarkupConversion = errors.New("markdown conversion failed")

// Renderer converts Markdown snippets with goldmark.
// Raw HTML in the input is not passed through.
type Renderer struct {
	md goldmark.Markdown
}

// New creates a Renderer with autolinks and strikethrough enabled.
func New() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.Linkify,
				extension.Strikethrough,
			),
			goldmark.WithRendererOptions(
				html.WithXHTML(),
			),
		),
	}
}

// Block converts src to an HTML fragment, keeping paragraph tags.
func (r *Renderer) Block(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMarkupConversion, err)
	}
	// #nosec G203 -- goldmark escapes raw HTML without WithUnsafe
	return template.HTML(strings.TrimSpace(buf.String())), nil
}

// Inline converts src and strips a single wrapping paragraph so the result
// can sit inside an existing block element.
func (r *Renderer) Inline(src string) (template.HTML, error) {
	out, err := r.Block(src)
	if err != nil {
		return "", err
	}
	s := string(out)
	if strings.HasPrefix(s, "<p>") && strings.HasSuffix(s, "</p>") &&
		strings.Count(s, "<p>") == 1 {
		s = strings.TrimSuffix(strings.TrimPrefix(s, "<p>"), "</p>")
	}
	// #nosec G203 -- derived from goldmark output above
	return template.HTML(s), nil
}
