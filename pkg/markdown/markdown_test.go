package markdown_test

import (
	"strings"
	"testing"

	"go-applytrack-backend/pkg/markdown"

	"github.com/stretchr/testify/assert"
)

func TestToHTML(t *testing.T) {
	f := markdown.NewFormatter()

	t.Run("Should render headings and emphasis", func(t *testing.T) {
		out, err := f.ToHTML("# Jane Doe\n\nSome **bold** text")
		assert.NoError(t, err)
		assert.Contains(t, out, "<h1")
		assert.Contains(t, out, "Jane Doe")
		assert.Contains(t, out, "<strong>bold</strong>")
	})

	t.Run("Should render GFM tables", func(t *testing.T) {
		out, err := f.ToHTML("| Skill | Years |\n|---|---|\n| Go | 5 |")
		assert.NoError(t, err)
		assert.Contains(t, out, "<table>")
		assert.Contains(t, out, "<td>Go</td>")
	})

	t.Run("Should render a thematic break as hr", func(t *testing.T) {
		out, err := f.ToHTML("above\n\n---\n\nbelow")
		assert.NoError(t, err)
		assert.Contains(t, out, "<hr")
	})

	t.Run("Should treat single newlines as line breaks", func(t *testing.T) {
		out, err := f.ToHTML("line one\nline two")
		assert.NoError(t, err)
		assert.Contains(t, out, "<br")
	})

	t.Run("Should strip raw HTML instead of emitting it", func(t *testing.T) {
		out, err := f.ToHTML("hello <script>alert(1)</script> world")
		assert.NoError(t, err)
		// Without unsafe rendering the tags are omitted entirely;
		// the inner text survives as plain text.
		assert.NotContains(t, out, "<script>")
		assert.Contains(t, out, "raw HTML omitted")
		assert.Contains(t, out, "alert(1)")
	})

	t.Run("Should highlight fenced code with CSS classes instead of inline styles", func(t *testing.T) {
		out, err := f.ToHTML("```go\nfunc main() {}\n```")
		assert.NoError(t, err)
		assert.Contains(t, out, "<pre")
		assert.False(t, strings.Contains(out, "style=\"color"))
	})

	t.Run("Should be deterministic", func(t *testing.T) {
		first, err := f.ToHTML("# Same input")
		assert.NoError(t, err)
		second, err := f.ToHTML("# Same input")
		assert.NoError(t, err)
		assert.Equal(t, first, second)
	})
}
