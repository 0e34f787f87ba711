// Package bot defines the contract between a chat backend and the bot
// framework hosting it: the message and presence values that cross the
// boundary, the callbacks the host exposes and the operations a backend offers.
package bot

import (
	"github.com/google/uuid"

	"consolebot/internal/identity"
)

// Message is a chat message travelling in either direction.
type Message struct {
	ID   string
	Body string
	From identity.Identifier
	To   identity.Identifier

	// InReplyTo is set on replies to the message being answered.
	InReplyTo *Message

	// Extras carries backend specific attributes.
	Extras map[string]string
}

// NewMessage creates a message with a fresh ID.
func NewMessage(body string) *Message {
	return &Message{
		ID:     uuid.NewString(),
		Body:   body,
		Extras: make(map[string]string),
	}
}

// IsDirect reports whether the message was sent one-on-one rather than to a room.
func (m *Message) IsDirect() bool {
	_, toRoom := m.To.(*identity.Room)
	return !toRoom
}

// IsGroup reports whether the message was sent to a room.
func (m *Message) IsGroup() bool { return !m.IsDirect() }
