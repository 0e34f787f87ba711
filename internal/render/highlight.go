package render

import (
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
)

// Highlighter colors source text for 256 color terminals.
type Highlighter struct {
	style string
}

// NewHighlighter uses the named chroma style; unknown names fall back to chroma's default.
func NewHighlighter(style string) *Highlighter {
	return &Highlighter{style: style}
}

// Markdown highlights raw markdown source.
func (h *Highlighter) Markdown(src string) (string, error) {
	return h.highlight(src, "markdown")
}

// HTML highlights HTML source.
func (h *Highlighter) HTML(src string) (string, error) {
	return h.highlight(src, "html")
}

func (h *Highlighter) highlight(src, lexer string) (string, error) {
	var sb strings.Builder
	if err := quick.Highlight(&sb, strings.TrimSpace(src), lexer, "terminal256", h.style); err != nil {
		return "", err
	}
	return sb.String(), nil
}
