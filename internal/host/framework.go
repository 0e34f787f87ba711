// Package host is a small bot framework: it owns the command registry,
// dispatches prefixed commands typed to the bot and replies through
// whatever backend it is attached to.
package host

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"consolebot/internal/bot"
	"consolebot/internal/config"
	"consolebot/internal/identity"
)

// Stats counts what went through the framework since it was created.
type Stats struct {
	Received int
	Sent     int
	Mentions int
	Commands int
}

// Framework implements bot.Host.
type Framework struct {
	cfg      *config.Config
	log      *zap.Logger
	backend  bot.Backend
	commands map[string]bot.Command
	started  time.Time
	stats    Stats
	online   map[string]bot.Status
}

var _ bot.Host = (*Framework)(nil)

// New creates a framework with the builtin commands registered.
func New(cfg *config.Config, logger *zap.Logger) *Framework {
	if logger == nil {
		logger = zap.NewNop()
	}
	f := &Framework{
		cfg:      cfg,
		log:      logger,
		commands: make(map[string]bot.Command),
		started:  time.Now(),
		online:   make(map[string]bot.Status),
	}
	for _, cmd := range f.builtins() {
		if err := f.RegisterCommand(cmd); err != nil {
			panic(fmt.Sprintf("builtin command %s: %v", cmd.Name, err))
		}
	}
	return f
}

// SetBackend attaches the backend replies are sent through.
func (f *Framework) SetBackend(b bot.Backend) { f.backend = b }

// Stats returns a snapshot of the counters.
func (f *Framework) Stats() Stats { return f.stats }

// Status returns the last presence status seen for id.
func (f *Framework) Status(id identity.Identifier) (bot.Status, bool) {
	s, ok := f.online[id.Key()]
	return s, ok
}

// ====== COMMAND REGISTRY ======

// RegisterCommand adds cmd. Names are unique.
func (f *Framework) RegisterCommand(cmd bot.Command) error {
	if cmd.Name == "" || strings.ContainsAny(cmd.Name, " \t\n") {
		return fmt.Errorf("invalid command name %q", cmd.Name)
	}
	if cmd.Handler == nil {
		return fmt.Errorf("command %s has no handler", cmd.Name)
	}
	if _, exists := f.commands[cmd.Name]; exists {
		return fmt.Errorf("%w: %s", bot.ErrDuplicateCommand, cmd.Name)
	}
	f.commands[cmd.Name] = cmd
	f.log.Debug("command registered", zap.String("command", cmd.Name), zap.Bool("admin", cmd.Admin))
	return nil
}

// Commands returns every registered command sorted by name.
func (f *Framework) Commands() []bot.Command {
	names := lo.Keys(f.commands)
	slices.Sort(names)
	return lo.Map(names, func(name string, _ int) bot.Command { return f.commands[name] })
}

// Execute runs the named command for msg.
func (f *Framework) Execute(msg *bot.Message, name, args string) (string, error) {
	cmd, ok := f.commands[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", bot.ErrUnknownCommand, name)
	}
	if cmd.Admin && !f.IsAdmin(msg.From) {
		return "", fmt.Errorf("%w: %s", bot.ErrNotAdmin, name)
	}
	f.stats.Commands++
	return cmd.Handler(msg, args)
}

// IsAdmin reports whether the person behind id is a configured administrator.
func (f *Framework) IsAdmin(id identity.Identifier) bool {
	p, ok := identity.PersonOf(id)
	if !ok {
		return false
	}
	return lo.Contains(f.cfg.BotAdmins, p.String())
}

// parseCommand splits "<prefix>name args" into name and args.
func (f *Framework) parseCommand(body string) (name, args string, ok bool) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(body), f.cfg.BotPrefix)
	if !ok || rest == "" {
		return "", "", false
	}
	name, args, _ = strings.Cut(rest, " ")
	return name, strings.TrimSpace(args), name != ""
}

// ====== CALLBACKS ======

func (f *Framework) OnConnect() {
	f.log.Info("connected", zap.String("mode", f.mode()))
}

func (f *Framework) OnDisconnect() {
	f.log.Info("disconnected")
}

func (f *Framework) OnShutdown() {
	f.log.Info("shutting down",
		zap.Int("received", f.stats.Received),
		zap.Int("sent", f.stats.Sent),
		zap.Int("commands", f.stats.Commands))
}

func (f *Framework) OnPresenceChange(p bot.Presence) {
	if p.Identifier != nil {
		f.online[p.Identifier.Key()] = p.Status
	}
	f.log.Info("presence changed", zap.Stringer("presence", p))
}

// OnMessageReceived runs commands typed with the configured prefix and
// ignores everything else.
func (f *Framework) OnMessageReceived(msg *bot.Message) {
	f.stats.Received++
	if f.backend != nil && identity.Equal(msg.From, f.backend.Identity()) {
		return
	}

	name, args, ok := f.parseCommand(msg.Body)
	if !ok {
		f.log.Debug("not a command", zap.String("body", msg.Body))
		return
	}

	reply, err := f.Execute(msg, name, args)
	switch {
	case errors.Is(err, bot.ErrUnknownCommand):
		f.log.Info("unknown command", zap.String("command", name))
		reply = fmt.Sprintf("Command %q not found. Type `%shelp` for the list of commands.", name, f.cfg.BotPrefix)
	case errors.Is(err, bot.ErrNotAdmin):
		f.log.Warn("admin command refused", zap.String("command", name), zap.Stringer("from", msg.From))
		reply = "You're not allowed to access this command from this user."
	case err != nil:
		f.log.Error("command failed", zap.String("command", name), zap.Error(err))
		reply = fmt.Sprintf("Command %s failed: %v", name, err)
	}
	f.reply(msg, reply)
}

// OnMention acknowledges messages that mention the bot.
func (f *Framework) OnMention(msg *bot.Message, mentioned []identity.Identifier) {
	f.stats.Mentions++
	if f.backend == nil {
		return
	}
	me := f.backend.Identity()
	if !lo.ContainsBy(mentioned, func(id identity.Identifier) bool { return identity.Equal(id, me) }) {
		return
	}
	f.reply(msg, fmt.Sprintf("You mentioned me. Type `%shelp` to see what I can do.", f.cfg.BotPrefix))
}

func (f *Framework) OnMessageSent(msg *bot.Message) {
	f.stats.Sent++
	f.log.Debug("message sent", zap.Stringer("to", msg.To), zap.Int("bytes", len(msg.Body)))
}

// reply answers msg, addressing the sender by nick in rooms.
func (f *Framework) reply(msg *bot.Message, text string) {
	if text == "" || f.backend == nil {
		return
	}
	out := f.backend.BuildReply(msg, text, false)
	if msg.IsGroup() {
		out.To = msg.To
		f.backend.PrefixGroupchatReply(out, msg.From)
	}
	f.backend.Send(out)
}

func (f *Framework) mode() string {
	if f.backend == nil {
		return "none"
	}
	return f.backend.Mode()
}
