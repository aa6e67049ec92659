package events

import (
	"encoding/json"
	"testing"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/go-playground/assert/v2"
)

func testSession() *Session {
	return New(Config{})
}

// env wraps a gateway event struct in an envelope, the same way the transport
// would deliver it.
func env(t *testing.T, typ string, v interface{}) Envelope {
	t.Helper()

	b, err := json.Marshal(v)
	assert.Equal(t, err, nil)

	return Envelope{Type: typ, Payload: b}
}

// record registers a listener that appends every received *E to out.
func record[E any](s *Session, out *[]interface{}) {
	s.AddHandler(func(ev *E) {
		*out = append(*out, ev)
	})
}

// readyGuild submits a small-guild snapshot that becomes ready immediately.
func readyGuild(t *testing.T, s *Session, id discord.GuildID) {
	t.Helper()

	owner := discord.User{ID: 10, Username: "owner"}

	s.SubmitEvent(env(t, "GUILD_CREATE", gateway.GuildCreateEvent{
		Guild: discord.Guild{
			ID:      id,
			Name:    "test guild",
			OwnerID: owner.ID,
		},
		Members: []discord.Member{
			{User: owner},
		},
		MemberCount: 1,
	}))

	assert.Equal(t, s.Locks.Locked(id), false)
}

func TestUnknownEventTypeIgnored(t *testing.T) {
	s := testSession()

	s.SubmitEvent(Envelope{Type: "SOME_FUTURE_EVENT", Payload: []byte(`{"a":1}`)})

	guilds, _ := s.Cabinet.Guilds()
	assert.Equal(t, len(guilds), 0)
}

func TestMalformedPayloadDropped(t *testing.T) {
	s := testSession()
	readyGuild(t, s, 1)

	var got []interface{}
	record[ChannelCreated](s, &got)

	// not valid JSON for the event type: dropped, no panic, no events
	s.SubmitEvent(Envelope{Type: "CHANNEL_CREATE", Payload: []byte(`"not an object"`)})
	// missing required ID
	s.SubmitEvent(Envelope{Type: "CHANNEL_CREATE", Payload: []byte(`{"name":"no id"}`)})

	assert.Equal(t, len(got), 0)

	// the session still works afterwards
	s.SubmitEvent(env(t, "CHANNEL_CREATE", gateway.ChannelCreateEvent{
		Channel: discord.Channel{ID: 100, GuildID: 1, Name: "general"},
	}))
	assert.Equal(t, len(got), 1)
}

func TestDuplicateUpdateIsNoop(t *testing.T) {
	s := testSession()
	readyGuild(t, s, 1)

	s.SubmitEvent(env(t, "CHANNEL_CREATE", gateway.ChannelCreateEvent{
		Channel: discord.Channel{ID: 100, GuildID: 1, Name: "general"},
	}))

	var got []interface{}
	record[ChannelNameChanged](s, &got)
	record[ChannelUpdated](s, &got)

	update := env(t, "CHANNEL_UPDATE", gateway.ChannelUpdateEvent{
		Channel: discord.Channel{ID: 100, GuildID: 1, Name: "renamed"},
	})

	s.SubmitEvent(update)
	assert.Equal(t, len(got), 2) // name change + aggregate

	// the transport may re-deliver after a reconnect; old == new diffs to
	// nothing
	s.SubmitEvent(update)
	assert.Equal(t, len(got), 2)
}

func TestCloseStopsProcessing(t *testing.T) {
	s := testSession()
	readyGuild(t, s, 1)

	s.Close()

	var got []interface{}
	record[ChannelCreated](s, &got)

	s.SubmitEvent(env(t, "CHANNEL_CREATE", gateway.ChannelCreateEvent{
		Channel: discord.Channel{ID: 100, GuildID: 1, Name: "general"},
	}))

	assert.Equal(t, len(got), 0)
}
