package textbackend

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"consolebot/internal/bot"
)

// defaultUser is who "asuser" switches to without an argument.
const defaultUser = "@luser"

// commands are the test helpers the backend adds to the host.
func (b *Backend) commands() []bot.Command {
	return []bot.Command{
		{
			Name:    "inroom",
			Help:    "This puts you in a room with the bot.",
			Handler: b.cmdInRoom,
		},
		{
			Name:    "inperson",
			Help:    "This puts you in a 1-1 chat with the bot.",
			Handler: b.cmdInPerson,
		},
		{
			Name:    "asuser",
			Help:    "Talk as another user. Defaults to 'luser' when no name is given.",
			Handler: b.cmdAsUser,
		},
		{
			Name:    "asadmin",
			Help:    "Talk as the first administrator again.",
			Handler: b.cmdAsAdmin,
		},
	}
}

// registerCommands injects the test helpers. Commands left over from a
// previous Serve on the same host are kept.
func (b *Backend) registerCommands() error {
	for _, cmd := range b.commands() {
		err := b.host.RegisterCommand(cmd)
		switch {
		case errors.Is(err, bot.ErrDuplicateCommand):
			b.log.Debug("command already registered", zap.String("command", cmd.Name))
		case err != nil:
			return fmt.Errorf("register %s: %w", cmd.Name, err)
		}
	}
	return nil
}

func (b *Backend) cmdInRoom(_ *bot.Message, _ string) (string, error) {
	room := b.session.firstRoom()
	b.session.inRoom = true
	return fmt.Sprintf("Joined Room %s.", room), nil
}

func (b *Backend) cmdInPerson(_ *bot.Message, _ string) (string, error) {
	b.session.inRoom = false
	return "Now in one-on-one with the bot.", nil
}

func (b *Backend) cmdAsUser(_ *bot.Message, args string) (string, error) {
	name := strings.TrimSpace(args)
	if name == "" {
		name = defaultUser
	}
	if !strings.HasPrefix(name, "@") {
		name = "@" + name
	}
	user, err := parsePerson(name)
	if err != nil {
		return "", err
	}
	b.session.user = user
	return fmt.Sprintf("You are now: %s", user), nil
}

func (b *Backend) cmdAsAdmin(_ *bot.Message, _ string) (string, error) {
	b.session.user = b.admin
	return fmt.Sprintf("You are now an admin: %s", b.admin), nil
}
