// Package render converts markdown message bodies into the formats a chat
// platform might display them in: HTML, plain text, IM flavoured markdown and
// ANSI for terminals. The text backend prints all of them side by side so
// plugin authors can see how their replies would look elsewhere.
package render

import "fmt"

// Converter turns a markdown document into another representation.
type Converter interface {
	Convert(markdown string) (string, error)
}

// ConverterFunc adapts a function to Converter.
type ConverterFunc func(markdown string) (string, error)

func (f ConverterFunc) Convert(markdown string) (string, error) { return f(markdown) }

// Options tunes the converters.
type Options struct {
	// WordWrap is the ANSI rendering width, 0 disables wrapping.
	WordWrap int

	// ANSIStyle is a glamour standard style name.
	ANSIStyle string

	// HighlightStyle is a chroma style name.
	HighlightStyle string
}

// DefaultOptions mirrors the configuration defaults.
func DefaultOptions() Options {
	return Options{WordWrap: 80, ANSIStyle: "dark", HighlightStyle: "paraiso-dark"}
}

// Set is the full collection of converters used for debug output.
type Set struct {
	HTML       Converter
	Text       Converter
	IM         Converter
	ANSI       Converter
	Borderless Converter
	Highlight  *Highlighter
}

// NewSet builds every converter. Building glamour renderers parses styles, so
// sets are meant to be built once and reused.
func NewSet(opts Options) (*Set, error) {
	ansi, err := NewANSI(opts)
	if err != nil {
		return nil, fmt.Errorf("ansi renderer: %w", err)
	}
	borderless, err := NewBorderlessANSI(opts)
	if err != nil {
		return nil, fmt.Errorf("borderless renderer: %w", err)
	}
	return &Set{
		HTML:       HTML(),
		Text:       Text(),
		IM:         IM(),
		ANSI:       ansi,
		Borderless: borderless,
		Highlight:  NewHighlighter(opts.HighlightStyle),
	}, nil
}
