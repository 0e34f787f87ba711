package textbackend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"consolebot/internal/bot"
	"consolebot/internal/console"
	"consolebot/internal/identity"
)

// Serve runs the console session until the input ends, ctx is cancelled or
// reading fails. The host sees the user go offline, then a disconnect, then
// a shutdown, whichever way the session ends. Only read failures other than
// end of input and interruption are returned.
func (b *Backend) Serve(ctx context.Context) error {
	if err := b.registerCommands(); err != nil {
		return err
	}

	if b.session.rooms.Len() == 0 {
		b.session.firstRoom()
	}

	defer b.cleanup()

	b.host.OnPresenceChange(bot.Presence{Identifier: b.session.user, Status: bot.StatusOnline})
	b.host.OnConnect()
	b.log.Info("text backend serving", zap.Bool("demo", b.cfg.Text.DemoMode))

	for {
		from, to := b.session.endpoints(b.botID)
		prompt := b.styles.Prompt(from, to, b.isAdmin(b.session.user))

		line, err := b.input.ReadLine(ctx, prompt)
		if err != nil {
			switch {
			case errors.Is(err, io.EOF):
				b.log.Debug("end of input")
				return nil
			case errors.Is(err, console.ErrInterrupted):
				b.log.Debug("input interrupted", zap.Error(err))
				return nil
			default:
				b.log.Error("failed to read input", zap.Error(err))
				return fmt.Errorf("read input: %w", err)
			}
		}

		b.receive(line, from, to)

		if !b.pause(ctx) {
			return nil
		}
	}
}

// receive hands one typed line to the host.
func (b *Backend) receive(line string, from, to identity.Identifier) {
	msg := b.BuildMessage(line)
	msg.From = from
	msg.To = to
	b.host.OnMessageReceived(msg)

	mentioned := identity.Mentions(line)
	if len(mentioned) == 0 {
		return
	}
	b.host.OnMention(msg, lo.Map(mentioned, func(p identity.Person, _ int) identity.Identifier {
		return p
	}))
}

// pause waits out the pacing delay. It returns false when ctx ended first.
func (b *Backend) pause(ctx context.Context) bool {
	if b.pacing <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(b.pacing)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}

func (b *Backend) cleanup() {
	b.host.OnPresenceChange(bot.Presence{Identifier: b.session.user, Status: bot.StatusOffline})
	b.log.Debug("trigger disconnect callback")
	b.host.OnDisconnect()
	b.log.Debug("trigger shutdown")
	b.host.OnShutdown()
}
