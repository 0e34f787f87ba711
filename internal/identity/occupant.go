package identity

// Occupant is a person seen through a room.
type Occupant struct {
	person Person
	room   *Room
}

// NewOccupant binds person to room.
func NewOccupant(person Person, room *Room) Occupant {
	return Occupant{person: person, room: room}
}

func (o Occupant) Person() Person { return o.person }
func (o Occupant) Room() *Room    { return o.room }

// Nick falls back to the person identifier, group chat replies are prefixed with it.
func (o Occupant) Nick() string {
	if nick := o.person.Nick(); nick != "" {
		return nick
	}
	return o.person.Person()
}

func (o Occupant) String() string {
	return "#" + o.roomName() + "/" + o.person.Person()
}

func (o Occupant) Key() string {
	return o.roomName() + "/" + o.person.Key()
}

// Equal requires both the person and the room to match.
func (o Occupant) Equal(other Identifier) bool {
	oo, ok := other.(Occupant)
	if !ok {
		return false
	}
	return o.person.Equal(oo.person) && o.roomName() == oo.roomName()
}

func (o Occupant) roomName() string {
	if o.room == nil {
		return ""
	}
	return o.room.Name()
}
