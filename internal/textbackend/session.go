package textbackend

import "consolebot/internal/identity"

// DefaultRoom is joined at startup when no room was referenced before.
const DefaultRoom = "testroom"

// Session is the state of one console conversation: who is typing, where
// they are typing and every room seen so far.
type Session struct {
	user   identity.Person
	inRoom bool
	rooms  *identity.Registry
}

func newSession(user identity.Person, rooms *identity.Registry) *Session {
	return &Session{user: user, rooms: rooms}
}

// User is the person currently typing.
func (s *Session) User() identity.Person { return s.user }

// InRoom reports whether input goes to the first room instead of the bot.
func (s *Session) InRoom() bool { return s.inRoom }

// Rooms is the session's room registry.
func (s *Session) Rooms() *identity.Registry { return s.rooms }

// firstRoom returns the first registered room, joining DefaultRoom if none
// exists yet.
func (s *Session) firstRoom() *identity.Room {
	if room := s.rooms.First(); room != nil {
		return room
	}
	room, _ := s.rooms.Query("#" + DefaultRoom)
	room.Join()
	return room
}

// endpoints returns the sender and recipient of the next typed line.
func (s *Session) endpoints(bot identity.Person) (from, to identity.Identifier) {
	if s.inRoom {
		room := s.firstRoom()
		return identity.NewOccupant(s.user, room), room
	}
	return s.user, bot
}
