package identity

// Person is a user known by a plain text identifier.
type Person struct {
	person   string
	client   string
	nick     string
	fullname string
}

// PersonOption sets one of the optional Person attributes.
type PersonOption func(*Person)

// WithClient tags the person with the client it is talking from.
func WithClient(client string) PersonOption {
	return func(p *Person) { p.client = client }
}

// WithNick sets a nickname.
func WithNick(nick string) PersonOption {
	return func(p *Person) { p.nick = nick }
}

// WithFullname sets a display name.
func WithFullname(fullname string) PersonOption {
	return func(p *Person) { p.fullname = fullname }
}

// NewPerson builds a Person. person is the identifier without the leading @.
func NewPerson(person string, opts ...PersonOption) Person {
	p := Person{person: person}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

func (p Person) Person() string   { return p.person }
func (p Person) Client() string   { return p.client }
func (p Person) Nick() string     { return p.nick }
func (p Person) Fullname() string { return p.fullname }

// ACLAttr is the attribute access control lists match against.
func (p Person) ACLAttr() string { return p.person }

func (p Person) String() string { return "@" + p.person }

func (p Person) Key() string { return p.person }

// Equal compares identifiers only; client, nick and full name are ignored.
func (p Person) Equal(other Identifier) bool {
	o, ok := other.(Person)
	if !ok {
		return false
	}
	return p.person == o.person
}
