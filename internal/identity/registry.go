package identity

import (
	"fmt"
	"regexp"
	"strings"
)

// Registry holds every room referenced during a session, in the order they
// were first referenced. It never removes a room. It is not safe for
// concurrent use; the session loop owns it.
type Registry struct {
	admin  Person
	bot    Person
	rooms  []*Room
	byName map[string]*Room
}

// NewRegistry creates an empty registry. admin and bot seed the occupant list
// of every room it creates.
func NewRegistry(admin, bot Person) *Registry {
	return &Registry{
		admin:  admin,
		bot:    bot,
		byName: make(map[string]*Room),
	}
}

// Query returns the room named by token ("#name"), creating it on first use.
func (r *Registry) Query(token string) (*Room, error) {
	name, ok := strings.CutPrefix(token, "#")
	if !ok || name == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRoomName, token)
	}
	return r.room(name), nil
}

// Rooms returns the registered rooms in registration order.
func (r *Registry) Rooms() []*Room {
	out := make([]*Room, len(r.rooms))
	copy(out, r.rooms)
	return out
}

// First returns the earliest registered room, or nil.
func (r *Registry) First() *Room {
	if len(r.rooms) == 0 {
		return nil
	}
	return r.rooms[0]
}

func (r *Registry) Len() int { return len(r.rooms) }

func (r *Registry) room(name string) *Room {
	if room, ok := r.byName[name]; ok {
		return room
	}
	room := newRoom(name, r.admin, r.bot)
	r.byName[name] = room
	r.rooms = append(r.rooms, room)
	return room
}

// Resolve turns a textual token into an identity:
//
//	#room/person  an Occupant of room
//	#room         the Room itself
//	@person       a Person
//
// Rooms are created in the registry on first reference.
func (r *Registry) Resolve(token string) (Identifier, error) {
	switch {
	case strings.HasPrefix(token, "#"):
		rest := token[1:]
		if roomName, person, found := strings.Cut(rest, "/"); found {
			if roomName == "" || person == "" {
				return nil, fmt.Errorf("%w: %q", ErrInvalidIdentifier, token)
			}
			return NewOccupant(NewPerson(person), r.room(roomName)), nil
		}
		return r.Query(token)
	case strings.HasPrefix(token, "@"):
		return NewPerson(token[1:]), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidIdentifier, token)
}

// mentionPattern matches @word tokens, word being letters, digits, _ or ' in
// any script.
var mentionPattern = regexp.MustCompile(`@[\p{L}\p{N}_']+`)

// Mentions returns the people mentioned in text, in order of appearance.
func Mentions(text string) []Person {
	matches := mentionPattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}
	people := make([]Person, 0, len(matches))
	for _, m := range matches {
		people = append(people, NewPerson(m[1:]))
	}
	return people
}
