package textbackend

import (
	"fmt"
	"strings"

	"github.com/gookit/color"
	"go.uber.org/zap"

	"consolebot/internal/bot"
	"consolebot/internal/render"
)

// separatorWidth is the number of ╌ after each block label.
const separatorWidth = 60

// echoStrategy prints an outbound message. It is picked once, from the demo
// mode flag, when the backend is built.
type echoStrategy interface {
	send(b *Backend, msg *bot.Message)
}

// ====== DEMO ======

// demoEcho prints replies the way a user would see them, nothing else.
type demoEcho struct {
	ansi render.Converter
}

func newDemoEcho(opts render.Options) (echoStrategy, error) {
	ansi, err := render.NewANSI(opts)
	if err != nil {
		return nil, err
	}
	return &demoEcho{ansi: ansi}, nil
}

func (e *demoEcho) send(b *Backend, msg *bot.Message) {
	out, err := e.ansi.Convert(msg.Body)
	if err != nil {
		out = b.renderFailed("ANSI", err)
	}
	fmt.Fprintln(b.out, out)
}

// ====== DEBUG ======

// debugEcho lets the host account for the message, then prints the body in
// every format side by side. The ANSI blocks need a color terminal.
type debugEcho struct {
	set   *render.Set
	color bool
}

func newDebugEcho(opts render.Options, colored bool) (echoStrategy, error) {
	set, err := render.NewSet(opts)
	if err != nil {
		return nil, err
	}
	return &debugEcho{set: set, color: colored}, nil
}

type echoBlock struct {
	label  string
	render func(body string) (string, error)
}

func (e *debugEcho) blocks() []echoBlock {
	blocks := []echoBlock{
		{"MD  ", e.markdown},
		{"HTML", e.html},
		{"TEXT", e.set.Text.Convert},
		{"IM  ", e.set.IM.Convert},
	}
	if e.color {
		blocks = append(blocks,
			echoBlock{"ANSI", e.set.ANSI.Convert},
			echoBlock{"BORDERLESS", e.set.Borderless.Convert},
		)
	}
	return blocks
}

func (e *debugEcho) send(b *Backend, msg *bot.Message) {
	b.host.OnMessageSent(msg)

	for _, blk := range e.blocks() {
		fmt.Fprintln(b.out, e.separator(blk.label))
		out, err := blk.render(msg.Body)
		if err != nil {
			out = b.renderFailed(blk.label, err)
		}
		fmt.Fprintln(b.out, out)
	}
	fmt.Fprint(b.out, "\n\n\n")
}

func (e *debugEcho) markdown(body string) (string, error) {
	if !e.color {
		return body, nil
	}
	return e.set.Highlight.Markdown(body)
}

func (e *debugEcho) html(body string) (string, error) {
	html, err := e.set.HTML.Convert(body)
	if err != nil || !e.color {
		return html, err
	}
	return e.set.Highlight.HTML(html)
}

func (e *debugEcho) separator(label string) string {
	bar := "\n╌╌[" + label + "]" + strings.Repeat("╌", separatorWidth)
	if !e.color {
		return bar
	}
	return color.FgDarkGray.Render(bar)
}

// renderFailed logs a rendering error and returns the text shown in place of
// the rendered block.
func (b *Backend) renderFailed(format string, err error) string {
	format = strings.TrimSpace(format)
	b.renderLog.Warn("failed to render message", zap.String("format", format), zap.Error(err))
	return fmt.Sprintf("<%s rendering failed: %v>", format, err)
}
