package bot

import "consolebot/internal/identity"

// Status is a presence status.
type Status string

const (
	StatusOnline  Status = "online"
	StatusOffline Status = "offline"
	StatusAway    Status = "away"
	StatusDND     Status = "dnd"
)

// Presence is a status change for an identity.
type Presence struct {
	Identifier identity.Identifier
	Status     Status
	Message    string
}

func (p Presence) String() string {
	id := "<nobody>"
	if p.Identifier != nil {
		id = p.Identifier.String()
	}
	if p.Message == "" {
		return id + " is " + string(p.Status)
	}
	return id + " is " + string(p.Status) + " (" + p.Message + ")"
}
