package render

import (
	"html"
	"strings"

	"maunium.net/go/mautrix/format"
)

// toHTML renders markdown with inline HTML allowed. mautrix leaves the
// formatted body empty when the markdown has no formatting at all; the
// escaped source is the HTML in that case.
func toHTML(markdown string) string {
	rendered := format.RenderMarkdown(markdown, true, true)
	if rendered.FormattedBody != "" {
		return rendered.FormattedBody
	}
	return strings.ReplaceAll(html.EscapeString(markdown), "\n", "<br/>")
}

// HTML converts markdown to an HTML fragment.
func HTML() Converter {
	return ConverterFunc(func(markdown string) (string, error) {
		return toHTML(markdown), nil
	})
}

// Text converts markdown to plain text, dropping all formatting.
func Text() Converter {
	return ConverterFunc(func(markdown string) (string, error) {
		return format.HTMLToText(toHTML(markdown)), nil
	})
}

// IM converts markdown to the restricted markdown instant messengers understand:
// emphasis, code and links survive, headings and tables are flattened.
func IM() Converter {
	return ConverterFunc(func(markdown string) (string, error) {
		return format.HTMLToMarkdown(toHTML(markdown)), nil
	})
}
