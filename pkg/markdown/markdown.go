package markdown

import (
	"bytes"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrConversion indicates the Markdown could not be converted to HTML.
var ErrConversion = errors.New("markdown conversion failed")

// Formatter converts Markdown text to an HTML fragment.
// Implementations must be deterministic and perform no external I/O,
// so the same input always produces the same output.
type Formatter interface {
	ToHTML(markdown string) (string, error)
}

// goldmarkFormatter converts Markdown using goldmark (pure Go).
type goldmarkFormatter struct {
	md goldmark.Markdown
}

// NewFormatter creates a Formatter with GFM extensions and syntax highlighting.
func NewFormatter() Formatter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM, // Tables, strikethrough, autolinks, task lists
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true), // CSS classes, styled by the document stylesheet
				),
			),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(), // Treat newlines as <br>
			html.WithXHTML(),     // Self-closing tags
			// WithUnsafe() intentionally NOT used: shared documents may carry
			// attacker-controlled Markdown, raw HTML must stay escaped.
		),
	)
	return &goldmarkFormatter{md: md}
}

// ToHTML converts Markdown content to an HTML fragment.
func (f *goldmarkFormatter) ToHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := f.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrConversion, err)
	}
	return buf.String(), nil
}
