package identity

// placeholderOccupant is the generic first occupant of every room.
const placeholderOccupant = "somebody"

// Room is a named chat room. Rooms are never destroyed during a session;
// Join, Leave, Create and Destroy only flip the joined flag.
type Room struct {
	name      string
	topic     string
	joined    bool
	occupants []Occupant
}

// newRoom fills the room with a fixed, coherent set of identities: a generic
// occupant, the first administrator and the bot itself. The list does not
// track real membership.
func newRoom(name string, admin, bot Person) *Room {
	r := &Room{name: name}
	r.occupants = []Occupant{
		NewOccupant(NewPerson(placeholderOccupant), r),
		NewOccupant(admin, r),
		NewOccupant(bot, r),
	}
	return r
}

func (r *Room) Name() string { return r.name }

func (r *Room) Join()    { r.joined = true }
func (r *Room) Leave()   { r.joined = false }
func (r *Room) Create()  { r.joined = true }
func (r *Room) Destroy() { r.joined = false }

// Exists is always true, any room that can be named exists on the console.
func (r *Room) Exists() bool { return true }

func (r *Room) Joined() bool { return r.joined }

func (r *Room) Topic() string         { return r.topic }
func (r *Room) SetTopic(topic string) { r.topic = topic }

// Occupants returns a copy of the synthetic occupant list.
func (r *Room) Occupants() []Occupant {
	out := make([]Occupant, len(r.occupants))
	copy(out, r.occupants)
	return out
}

// Invite does nothing, there is nobody to invite.
func (r *Room) Invite(...Identifier) {}

func (r *Room) String() string { return "#" + r.name }

func (r *Room) Key() string { return "#" + r.name }

// Equal compares room names.
func (r *Room) Equal(other Identifier) bool {
	o, ok := other.(*Room)
	if !ok || o == nil {
		return false
	}
	return r.name == o.name
}
