package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
)

// glamourConverter wraps a TermRenderer. TermRenderer is not safe for
// concurrent use, neither is this.
type glamourConverter struct {
	tr *glamour.TermRenderer
}

func (g *glamourConverter) Convert(markdown string) (string, error) {
	out, err := g.tr.Render(markdown)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n"), nil
}

// NewANSI builds a converter producing colored terminal output.
func NewANSI(opts Options) (Converter, error) {
	style := opts.ANSIStyle
	if style == "" {
		style = styles.DarkStyle
	}
	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(opts.WordWrap),
	)
	if err != nil {
		return nil, err
	}
	return &glamourConverter{tr: tr}, nil
}

// NewBorderlessANSI is NewANSI without the document margin and with blank
// table separators, convenient when output is pasted somewhere else.
func NewBorderlessANSI(opts Options) (Converter, error) {
	cfg, err := borderlessStyle(opts.ANSIStyle)
	if err != nil {
		return nil, err
	}
	tr, err := glamour.NewTermRenderer(
		glamour.WithStyles(cfg),
		glamour.WithWordWrap(opts.WordWrap),
	)
	if err != nil {
		return nil, err
	}
	return &glamourConverter{tr: tr}, nil
}

func borderlessStyle(name string) (ansi.StyleConfig, error) {
	// auto is resolved against the terminal background by glamour itself,
	// a fixed base is needed here.
	if name == "" || name == styles.AutoStyle {
		name = styles.DarkStyle
	}
	base, ok := styles.DefaultStyles[name]
	if !ok {
		return ansi.StyleConfig{}, fmt.Errorf("unknown ansi style %q", name)
	}

	cfg := *base
	blank := " "
	zero := uint(0)
	cfg.Document.Margin = &zero
	cfg.Table.CenterSeparator = &blank
	cfg.Table.ColumnSeparator = &blank
	cfg.Table.RowSeparator = &blank
	return cfg, nil
}
