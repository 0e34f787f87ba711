// Package identity models who is talking and where: people, rooms and the
// occupants that bind a person to a room.
//
// Identities are plain values rebuilt every time a token is parsed, so equality
// is always by identifying fields and never by pointer. Rooms are the one
// exception: they carry mutable state (topic, joined) and are handed out as
// *Room from a Registry that guarantees a single instance per name.
package identity

import "errors"

var (
	// ErrInvalidIdentifier is returned when a token is neither a room (#) nor a person (@).
	ErrInvalidIdentifier = errors.New("an identifier needs to start with # for a room or @ for a person")

	// ErrInvalidRoomName is returned when a room reference does not start with #.
	ErrInvalidRoomName = errors.New("a room name must start with #")
)

// Identifier is anything a message can come from or be sent to.
type Identifier interface {
	// String is the textual form a user would type to reference this identity.
	String() string

	// Key is the equality and hashing key. Two identifiers are the same
	// identity iff their keys are equal and they are of the same kind.
	Key() string
}

// Equal reports whether two identifiers denote the same identity.
func Equal(a, b Identifier) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch av := a.(type) {
	case Person:
		return av.Equal(b)
	case Occupant:
		return av.Equal(b)
	case *Room:
		return av.Equal(b)
	}
	return a.Key() == b.Key()
}

// PersonOf extracts the person behind an identifier, if there is one.
// Rooms have no person behind them.
func PersonOf(id Identifier) (Person, bool) {
	switch v := id.(type) {
	case Person:
		return v, true
	case Occupant:
		return v.Person(), true
	}
	return Person{}, false
}
