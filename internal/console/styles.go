package console

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Prompt palette
var (
	AdminColor  = lipgloss.Color("#e53935") // Red
	UserColor   = lipgloss.Color("#8BC34A") // Lime Green
	ArrowColor  = lipgloss.Color("#00BCD4") // Cyan
	BannerColor = lipgloss.Color("#2196F3") // Blue
)

// Styles renders prompts, with or without color.
type Styles struct {
	color  bool
	Admin  lipgloss.Style
	User   lipgloss.Style
	Arrow  lipgloss.Style
	Banner lipgloss.Style
}

// NewStyles builds styles for w. When color is false every style renders
// plain text; when true colors are forced even if w is not a terminal, which
// is what demo recordings need.
func NewStyles(w io.Writer, color bool) Styles {
	r := lipgloss.NewRenderer(w)
	if color {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	return Styles{
		color:  color,
		Admin:  r.NewStyle().Foreground(AdminColor).Bold(true),
		User:   r.NewStyle().Foreground(UserColor),
		Arrow:  r.NewStyle().Foreground(ArrowColor),
		Banner: r.NewStyle().Foreground(BannerColor).Bold(true),
	}
}

// ColorEnabled reports whether stderr is a terminal.
func ColorEnabled() bool { return IsTerminal(os.Stderr) }

// Color reports whether these styles emit escape codes.
func (s Styles) Color() bool { return s.color }

// Prompt renders "[from ➡ to] >>> " on a fresh line, the speaker part in the
// admin or user color.
func (s Styles) Prompt(from, to fmt.Stringer, admin bool) string {
	who := s.User
	if admin {
		who = s.Admin
	}
	return "\n" + who.Render(fmt.Sprintf("[%s ➡ %s]", from, to)) + s.Arrow.Render(" >>> ")
}
