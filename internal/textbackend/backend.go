// Package textbackend is a chat backend that lives in the console. Typed
// lines become messages to the bot or to a room, and every reply is printed
// back, rendered in each format a real chat platform might use.
package textbackend

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"consolebot/internal/bot"
	"consolebot/internal/config"
	"consolebot/internal/console"
	"consolebot/internal/identity"
	"consolebot/internal/logging"
	"consolebot/internal/render"
)

// Backend implements bot.Backend on top of the console.
type Backend struct {
	cfg       *config.Config
	host      bot.Host
	log       *zap.Logger
	renderLog *zap.Logger
	botID     identity.Person
	admin     identity.Person
	session   *Session

	input   console.LineReader
	out     io.Writer
	color   bool
	pacing  time.Duration
	styles  console.Styles
	echo    echoStrategy
	startAs string
}

var _ bot.Backend = (*Backend)(nil)

// Option configures a Backend.
type Option func(*Backend)

// WithInput replaces the console line reader.
func WithInput(r console.LineReader) Option {
	return func(b *Backend) { b.input = r }
}

// WithOutput sends prompts and echoed replies to w instead of stdout.
func WithOutput(w io.Writer) Option {
	return func(b *Backend) { b.out = w }
}

// WithColor overrides color detection.
func WithColor(enabled bool) Option {
	return func(b *Backend) { b.color = enabled }
}

// WithPacing overrides the configured delay between two reads.
func WithPacing(d time.Duration) Option {
	return func(b *Backend) { b.pacing = d }
}

// WithUser starts the session as name ("@name") instead of the first
// administrator.
func WithUser(name string) Option {
	return func(b *Backend) { b.startAs = name }
}

// New creates a text backend talking to host.
func New(cfg *config.Config, host bot.Host, logger *zap.Logger, opts ...Option) (*Backend, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	b := &Backend{
		cfg:       cfg,
		host:      host,
		log:       logger,
		renderLog: logging.Get(logger, logging.CategoryRender),
		out:       os.Stdout,
		color:     console.ColorEnabled(),
		pacing:    cfg.GetPacingDelay(),
	}
	for _, opt := range opts {
		opt(b)
	}

	botID, err := parsePerson(cfg.Username())
	if err != nil {
		return nil, fmt.Errorf("bot identity: %w", err)
	}
	admin, err := parsePerson(cfg.FirstAdmin())
	if err != nil {
		return nil, fmt.Errorf("admin identity: %w", err)
	}
	b.botID = botID
	b.admin = admin
	user := admin
	if b.startAs != "" {
		if user, err = parsePerson(b.startAs); err != nil {
			return nil, fmt.Errorf("starting user: %w", err)
		}
	}
	b.session = newSession(user, identity.NewRegistry(admin, botID))
	b.log.Debug("bot username set", zap.Stringer("identity", botID))

	if b.input == nil {
		b.input = console.NewLineReader(os.Stdin, os.Stdout, logging.Get(logger, logging.CategoryConsole))
	}
	b.styles = console.NewStyles(b.out, b.color || cfg.Text.DemoMode)

	renderOpts := render.Options{
		WordWrap:       cfg.Text.WordWrap,
		ANSIStyle:      cfg.Text.ANSIStyle,
		HighlightStyle: cfg.Text.HighlightStyle,
	}
	if cfg.Text.DemoMode {
		b.echo, err = newDemoEcho(renderOpts)
	} else {
		b.echo, err = newDebugEcho(renderOpts, b.color)
	}
	if err != nil {
		return nil, fmt.Errorf("renderers: %w", err)
	}
	return b, nil
}

// Session exposes the conversation state.
func (b *Backend) Session() *Session { return b.session }

// parsePerson turns "@name" into a Person.
func parsePerson(token string) (identity.Person, error) {
	name, ok := strings.CutPrefix(token, "@")
	if !ok || name == "" {
		return identity.Person{}, fmt.Errorf("%w: %q is not a person", identity.ErrInvalidIdentifier, token)
	}
	return identity.NewPerson(name), nil
}

// isAdmin reports whether p is the first configured administrator.
func (b *Backend) isAdmin(p identity.Person) bool {
	return p.Equal(b.admin)
}

// ====== bot.Backend ======

// BuildIdentifier resolves "@person", "#room" or "#room/person".
func (b *Backend) BuildIdentifier(text string) (identity.Identifier, error) {
	return b.session.rooms.Resolve(text)
}

// BuildMessage creates an outbound message with the given body.
func (b *Backend) BuildMessage(body string) *bot.Message {
	return bot.NewMessage(body)
}

// BuildReply answers msg from the bot. Replies always go back to the sender,
// private or not.
func (b *Backend) BuildReply(msg *bot.Message, text string, private bool) *bot.Message {
	reply := b.BuildMessage(text)
	reply.From = b.botID
	reply.To = msg.From
	reply.InReplyTo = msg
	return reply
}

// QueryRoom returns the room named "#name", registering it on first use.
func (b *Backend) QueryRoom(name string) (*identity.Room, error) {
	return b.session.rooms.Query(name)
}

// Rooms returns every room seen in this session, in registration order.
func (b *Backend) Rooms() []*identity.Room {
	return b.session.rooms.Rooms()
}

// Send prints msg instead of transmitting it.
func (b *Backend) Send(msg *bot.Message) {
	b.echo.send(b, msg)
}

// AddReaction answers msg with "reaction +:name:".
func (b *Backend) AddReaction(msg *bot.Message, reaction string) {
	b.react("+", msg, reaction)
}

// RemoveReaction answers msg with "reaction -:name:".
func (b *Backend) RemoveReaction(msg *bot.Message, reaction string) {
	b.react("-", msg, reaction)
}

func (b *Backend) react(sign string, msg *bot.Message, reaction string) {
	b.Send(b.BuildReply(msg, fmt.Sprintf("reaction %s:%s:", sign, reaction), false))
}

// ChangePresence has nobody to tell, it is only logged.
func (b *Backend) ChangePresence(status bot.Status, message string) {
	b.log.Debug("changed presence",
		zap.String("status", string(status)),
		zap.String("message", message))
}

// PrefixGroupchatReply addresses msg to to's nick, as group chats expect.
func (b *Backend) PrefixGroupchatReply(msg *bot.Message, to identity.Identifier) {
	msg.Body = "@" + nickOf(to) + " " + msg.Body
}

func nickOf(id identity.Identifier) string {
	switch v := id.(type) {
	case identity.Occupant:
		return v.Nick()
	case identity.Person:
		if v.Nick() != "" {
			return v.Nick()
		}
		return v.Person()
	}
	return strings.TrimLeft(id.String(), "@#")
}

// Mode is always "text".
func (b *Backend) Mode() string { return "text" }

// Identity is the bot's own person.
func (b *Backend) Identity() identity.Identifier { return b.botID }
