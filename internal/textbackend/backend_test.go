package textbackend

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"consolebot/internal/bot"
	"consolebot/internal/config"
	"consolebot/internal/identity"
)

// =============================================================================
// SESSION LIFECYCLE
// =============================================================================

func TestServe_JoinsTestroomBeforeFirstPrompt(t *testing.T) {
	f := newFixture(t, testConfig(), "hello")

	var roomsAtFirstRead []*identity.Room
	var eventsAtFirstRead []string
	f.script.BeforeRead = func(n int) {
		if n == 0 {
			roomsAtFirstRead = f.backend.Rooms()
			eventsAtFirstRead = append([]string(nil), f.host.events...)
		}
	}
	f.serve(t)

	require.Len(t, roomsAtFirstRead, 1)
	assert.Equal(t, "testroom", roomsAtFirstRead[0].Name())
	assert.True(t, roomsAtFirstRead[0].Joined())

	want := []string{"presence @admin is online", "connect"}
	if diff := cmp.Diff(want, eventsAtFirstRead); diff != "" {
		t.Errorf("events before first read (-want +got):\n%s", diff)
	}
	assert.Len(t, f.backend.Rooms(), 1)
}

func TestServe_KeepsExistingRooms(t *testing.T) {
	f := newFixture(t, testConfig(), "!inroom", "hi")
	_, err := f.backend.QueryRoom("#ops")
	require.NoError(t, err)

	f.serve(t)

	rooms := f.backend.Rooms()
	require.Len(t, rooms, 1)
	assert.Equal(t, "ops", rooms[0].Name())
	assert.Equal(t, rooms[0], f.host.received[1].To)
	assert.Contains(t, f.host.sentBodies(), "Joined Room #ops.")
}

func TestServe_EOFRunsCleanupOnceInOrder(t *testing.T) {
	f := newFixture(t, testConfig())
	f.serve(t)

	want := []string{
		"presence @admin is online",
		"connect",
		"presence @admin is offline",
		"disconnect",
		"shutdown",
	}
	if diff := cmp.Diff(want, f.host.events); diff != "" {
		t.Errorf("events (-want +got):\n%s", diff)
	}
}

func TestServe_CancelledContext(t *testing.T) {
	f := newFixture(t, testConfig(), "never read")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, f.backend.Serve(ctx))

	assert.Equal(t, 1, f.script.Remaining())
	assert.Equal(t, []string{"presence @admin is offline", "disconnect", "shutdown"}, f.host.events[2:])
}

func TestServe_CancelDuringPacing(t *testing.T) {
	f := newFixture(t, testConfig(), "first", "second")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	b, err := New(testConfig(), f.host, nil, WithInput(f.script), WithOutput(f.out), WithColor(false), WithPacing(time.Hour))
	require.NoError(t, err)
	f.host.backend = b
	f.host.onReceive = func(*bot.Message) { cancel() }

	require.NoError(t, b.Serve(ctx))

	assert.Equal(t, 1, f.script.Remaining())
	assert.Equal(t, "shutdown", f.host.events[len(f.host.events)-1])
}

type failingReader struct{ err error }

func (r failingReader) ReadLine(context.Context, string) (string, error) { return "", r.err }

func TestServe_ReadErrorIsReturnedAfterCleanup(t *testing.T) {
	boom := errors.New("boom")
	host := newRecordingHost()
	b, err := New(testConfig(), host, nil, WithInput(failingReader{err: boom}), WithOutput(&strings.Builder{}), WithColor(false))
	require.NoError(t, err)
	host.backend = b

	err = b.Serve(context.Background())

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"presence @admin is offline", "disconnect", "shutdown"}, host.events[2:])
}

func TestServe_PanicInHostStillCleansUp(t *testing.T) {
	f := newFixture(t, testConfig(), "explode")
	f.host.onReceive = func(*bot.Message) { panic("plugin crashed") }

	assert.PanicsWithValue(t, "plugin crashed", func() {
		_ = f.backend.Serve(context.Background())
	})
	assert.Equal(t, []string{"presence @admin is offline", "disconnect", "shutdown"}, f.host.events[len(f.host.events)-3:])
}

func TestServe_RegistersCommandsOnce(t *testing.T) {
	f := newFixture(t, testConfig())
	f.serve(t)
	f.serve(t)

	assert.ElementsMatch(t, []string{"inroom", "inperson", "asuser", "asadmin"}, keys(f.host.commands))
}

func keys(m map[string]bot.Command) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

// =============================================================================
// MESSAGES AND MENTIONS
// =============================================================================

func TestServe_OneOnOneMessage(t *testing.T) {
	f := newFixture(t, testConfig(), "hello")
	f.serve(t)

	require.Len(t, f.host.received, 1)
	msg := f.host.received[0]
	assert.Equal(t, "hello", msg.Body)
	assert.NotEmpty(t, msg.ID)
	assert.True(t, identity.Equal(identity.NewPerson("admin"), msg.From))
	assert.True(t, identity.Equal(identity.NewPerson("consolebot"), msg.To))
	assert.True(t, msg.IsDirect())
	assert.Equal(t, []string{"\n[@admin ➡ @consolebot] >>> ", "\n[@admin ➡ @consolebot] >>> "}, f.script.Prompts)
}

func TestServe_Mentions(t *testing.T) {
	f := newFixture(t, testConfig(), "hello @bob and @carol", "nobody here", "mail me at a@b")
	f.serve(t)

	require.Len(t, f.host.mentions, 2)
	assert.True(t, identity.Equal(identity.NewPerson("bob"), f.host.mentions[0][0]))
	assert.True(t, identity.Equal(identity.NewPerson("carol"), f.host.mentions[0][1]))
	assert.Len(t, f.host.mentions[0], 2)

	want := []string{
		"presence @admin is online",
		"connect",
		"received hello @bob and @carol",
		"mention @bob,@carol",
		"received nobody here",
		"received mail me at a@b",
		"mention @b",
		"presence @admin is offline",
		"disconnect",
		"shutdown",
	}
	if diff := cmp.Diff(want, f.host.events); diff != "" {
		t.Errorf("events (-want +got):\n%s", diff)
	}
}

// =============================================================================
// BUILT-IN COMMANDS
// =============================================================================

func TestCommands_InRoomAndBack(t *testing.T) {
	f := newFixture(t, testConfig(), "!inroom", "hi room", "!inperson", "hi bot")
	f.serve(t)

	require.Len(t, f.host.received, 4)
	room := f.backend.Rooms()[0]

	inRoom := f.host.received[1]
	assert.True(t, identity.Equal(identity.NewOccupant(identity.NewPerson("admin"), room), inRoom.From))
	assert.Same(t, room, inRoom.To)
	assert.True(t, inRoom.IsGroup())

	back := f.host.received[3]
	assert.True(t, identity.Equal(identity.NewPerson("consolebot"), back.To))

	assert.Equal(t, []string{"Joined Room #testroom.", "Now in one-on-one with the bot."}, f.host.sentBodies())
	assert.Equal(t, "\n[#testroom/admin ➡ #testroom] >>> ", f.script.Prompts[1])
	assert.False(t, f.backend.Session().InRoom())
}

func TestCommands_AsUserAsAdmin(t *testing.T) {
	f := newFixture(t, testConfig(), "!asuser", "a", "!asuser bob", "b", "!asuser @carol", "c", "!asadmin", "d")
	f.serve(t)

	froms := make([]string, 0, 4)
	for _, msg := range f.host.received {
		if !strings.HasPrefix(msg.Body, "!") {
			froms = append(froms, msg.From.String())
		}
	}
	assert.Equal(t, []string{"@luser", "@bob", "@carol", "@admin"}, froms)
	assert.Equal(t, []string{
		"You are now: @luser",
		"You are now: @bob",
		"You are now: @carol",
		"You are now an admin: @admin",
	}, f.host.sentBodies())
	assert.Equal(t, "\n[@luser ➡ @consolebot] >>> ", f.script.Prompts[1])
	// The offline presence is for whoever is typing at the end.
	assert.Contains(t, f.host.events, "presence @admin is offline")
}

// =============================================================================
// BACKEND OPERATIONS
// =============================================================================

func TestBuildIdentifier(t *testing.T) {
	f := newFixture(t, testConfig())

	p, err := f.backend.BuildIdentifier("@bob")
	require.NoError(t, err)
	assert.Equal(t, "bob", p.(identity.Person).Person())

	o1, err := f.backend.BuildIdentifier("#dev/bob")
	require.NoError(t, err)
	o2, err := f.backend.BuildIdentifier("#dev/bob")
	require.NoError(t, err)
	assert.True(t, identity.Equal(o1, o2))

	r1, err := f.backend.BuildIdentifier("#dev")
	require.NoError(t, err)
	r2, err := f.backend.QueryRoom("#dev")
	require.NoError(t, err)
	assert.Same(t, r1, r2)
	assert.Len(t, f.backend.Rooms(), 1)

	for _, bad := range []string{"bob", "", "!cmd"} {
		_, err := f.backend.BuildIdentifier(bad)
		assert.ErrorIs(t, err, identity.ErrInvalidIdentifier, bad)
	}
	_, err = f.backend.QueryRoom("dev")
	assert.ErrorIs(t, err, identity.ErrInvalidRoomName)
}

func TestBuildReply(t *testing.T) {
	f := newFixture(t, testConfig())
	msg := f.backend.BuildMessage("ping")
	msg.From = identity.NewPerson("bob")
	msg.To = f.backend.Identity()

	for _, private := range []bool{false, true} {
		reply := f.backend.BuildReply(msg, "pong", private)
		assert.Equal(t, "pong", reply.Body)
		assert.True(t, identity.Equal(f.backend.Identity(), reply.From))
		assert.True(t, identity.Equal(msg.From, reply.To))
		assert.Same(t, msg, reply.InReplyTo)
	}
}

func TestReactions(t *testing.T) {
	f := newFixture(t, testConfig())
	msg := f.backend.BuildMessage("nice")
	msg.From = identity.NewPerson("bob")
	msg.To = f.backend.Identity()

	f.backend.AddReaction(msg, "thumbsup")
	f.backend.RemoveReaction(msg, "thumbsup")

	require.Len(t, f.host.sent, 2)
	assert.Equal(t, []string{"reaction +:thumbsup:", "reaction -:thumbsup:"}, f.host.sentBodies())
	for _, reply := range f.host.sent {
		assert.True(t, identity.Equal(identity.NewPerson("bob"), reply.To))
		assert.Same(t, msg, reply.InReplyTo)
	}
}

func TestPrefixGroupchatReply(t *testing.T) {
	f := newFixture(t, testConfig())
	room, err := f.backend.QueryRoom("#dev")
	require.NoError(t, err)

	tests := []struct {
		name string
		to   identity.Identifier
		want string
	}{
		{"occupant", identity.NewOccupant(identity.NewPerson("bob"), room), "@bob hi"},
		{"person", identity.NewPerson("carol"), "@carol hi"},
		{"person with nick", identity.NewPerson("dave", identity.WithNick("d")), "@d hi"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := f.backend.BuildMessage("hi")
			f.backend.PrefixGroupchatReply(msg, tt.to)
			assert.Equal(t, tt.want, msg.Body)
		})
	}
}

func TestModeAndIdentity(t *testing.T) {
	cfg := testConfig()
	cfg.BotIdentity.Username = "@helper"
	f := newFixture(t, cfg)

	assert.Equal(t, "text", f.backend.Mode())
	assert.Equal(t, "@helper", f.backend.Identity().String())
	f.backend.ChangePresence(bot.StatusAway, "lunch")
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.BotAdmins = nil
	_, err := New(cfg, newRecordingHost(), nil, WithInput(nil))
	assert.Error(t, err)

	cfg = testConfig()
	cfg.Text.ANSIStyle = "no-such-style"
	_, err = New(cfg, newRecordingHost(), nil, WithOutput(&strings.Builder{}), WithInput(failingReader{}))
	assert.Error(t, err)
}

func TestNew_DefaultUsername(t *testing.T) {
	cfg := testConfig()
	cfg.BotIdentity.Username = ""
	f := newFixture(t, cfg)
	assert.Equal(t, config.DefaultUsername, f.backend.Identity().String())
}
