package host

import (
	"fmt"
	"strings"
	"time"

	"consolebot/internal/bot"
	"consolebot/internal/identity"
)

func (f *Framework) builtins() []bot.Command {
	return []bot.Command{
		{Name: "help", Help: "List the available commands.", Handler: f.cmdHelp},
		{Name: "echo", Help: "Repeat the arguments back.", Handler: cmdEcho},
		{Name: "whoami", Help: "Show who the bot thinks you are.", Handler: cmdWhoami},
		{Name: "status", Help: "Uptime and message counters.", Admin: true, Handler: f.cmdStatus},
	}
}

func (f *Framework) cmdHelp(msg *bot.Message, _ string) (string, error) {
	admin := f.IsAdmin(msg.From)

	var sb strings.Builder
	sb.WriteString("## Available Commands\n\n")
	sb.WriteString("| Command | Description |\n")
	sb.WriteString("|---------|-------------|\n")
	for _, cmd := range f.Commands() {
		if cmd.Admin && !admin {
			continue
		}
		help := cmd.Help
		if cmd.Admin {
			help += " *(admin)*"
		}
		fmt.Fprintf(&sb, "| %s%s | %s |\n", f.cfg.BotPrefix, cmd.Name, help)
	}
	return sb.String(), nil
}

func cmdEcho(_ *bot.Message, args string) (string, error) {
	return args, nil
}

func cmdWhoami(msg *bot.Message, _ string) (string, error) {
	var sb strings.Builder
	sb.WriteString("| key | value |\n|-----|-------|\n")
	fmt.Fprintf(&sb, "| identifier | `%s` |\n", msg.From)
	switch from := msg.From.(type) {
	case identity.Occupant:
		fmt.Fprintf(&sb, "| person | `%s` |\n", from.Person())
		fmt.Fprintf(&sb, "| nick | `%s` |\n", from.Nick())
		fmt.Fprintf(&sb, "| room | `%s` |\n", from.Room())
	case identity.Person:
		fmt.Fprintf(&sb, "| person | `%s` |\n", from)
		if from.Nick() != "" {
			fmt.Fprintf(&sb, "| nick | `%s` |\n", from.Nick())
		}
		if from.Fullname() != "" {
			fmt.Fprintf(&sb, "| fullname | `%s` |\n", from.Fullname())
		}
	}
	return sb.String(), nil
}

func (f *Framework) cmdStatus(msg *bot.Message, _ string) (string, error) {
	s := f.stats
	out := fmt.Sprintf("Mode: %s. Up %s. Received %d, sent %d, %d commands, %d mentions.",
		f.mode(), time.Since(f.started).Round(time.Second), s.Received, s.Sent, s.Commands, s.Mentions)
	if p, ok := identity.PersonOf(msg.From); ok {
		if status, seen := f.Status(p); seen {
			out += fmt.Sprintf(" %s is %s.", p, status)
		}
	}
	return out, nil
}
