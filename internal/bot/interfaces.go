package bot

import (
	"context"
	"errors"

	"consolebot/internal/identity"
)

var (
	ErrUnknownCommand   = errors.New("unknown command")
	ErrDuplicateCommand = errors.New("command already registered")
	ErrNotAdmin         = errors.New("command reserved to administrators")
)

// CommandHandler runs a text command. args is everything after the command
// name, trimmed. The returned text, if any, is sent back as a reply.
type CommandHandler func(msg *Message, args string) (string, error)

// Command is a named text command with its help text.
type Command struct {
	Name    string
	Help    string
	Admin   bool
	Handler CommandHandler
}

// Host is the bot framework as seen by a backend. Every callback is invoked
// synchronously from the backend's serving goroutine.
type Host interface {
	// RegisterCommand adds a text command to the host's command registry.
	RegisterCommand(cmd Command) error

	OnConnect()
	OnDisconnect()
	OnShutdown()
	OnPresenceChange(p Presence)

	// OnMessageReceived handles an inbound message. Panics propagate to the backend's caller.
	OnMessageReceived(msg *Message)

	// OnMention is called once per message with every identity mentioned in it.
	OnMention(msg *Message, mentioned []identity.Identifier)

	// OnMessageSent is the host's own bookkeeping for outbound messages,
	// run by backends that do not transmit anywhere.
	OnMessageSent(msg *Message)
}

// Backend is a chat platform as seen by the host.
type Backend interface {
	// Serve runs until the input ends or ctx is cancelled.
	Serve(ctx context.Context) error

	Send(msg *Message)
	BuildIdentifier(text string) (identity.Identifier, error)
	BuildMessage(body string) *Message
	BuildReply(msg *Message, text string, private bool) *Message
	QueryRoom(name string) (*identity.Room, error)
	Rooms() []*identity.Room

	AddReaction(msg *Message, reaction string)
	RemoveReaction(msg *Message, reaction string)
	ChangePresence(status Status, message string)
	PrefixGroupchatReply(msg *Message, to identity.Identifier)

	// Mode names the backend, e.g. "text".
	Mode() string

	// Identity is the bot's own identity on this backend.
	Identity() identity.Identifier
}
