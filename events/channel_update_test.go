package events

import (
	"testing"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/go-playground/assert/v2"
)

func setupChannel(t *testing.T, s *Session) {
	t.Helper()

	readyGuild(t, s, 1)
	s.SubmitEvent(env(t, "CHANNEL_CREATE", gateway.ChannelCreateEvent{
		Channel: discord.Channel{ID: 100, GuildID: 1, Name: "general", Topic: "hello"},
	}))
}

func TestChannelUpdateEmitsSpecificEventsFirst(t *testing.T) {
	s := testSession()
	setupChannel(t, s)

	var got []interface{}
	record[ChannelNameChanged](s, &got)
	record[ChannelTopicChanged](s, &got)
	record[ChannelUpdated](s, &got)

	s.SubmitEvent(env(t, "CHANNEL_UPDATE", gateway.ChannelUpdateEvent{
		Channel: discord.Channel{ID: 100, GuildID: 1, Name: "renamed", Topic: "changed"},
	}))

	assert.Equal(t, len(got), 3)

	name := got[0].(*ChannelNameChanged)
	assert.Equal(t, name.OldName, "general")
	assert.Equal(t, name.Channel.Name, "renamed")

	topic := got[1].(*ChannelTopicChanged)
	assert.Equal(t, topic.OldTopic, "hello")

	agg := got[2].(*ChannelUpdated)
	assert.Equal(t, len(agg.ChangeSet.Changes), 2)
}

func TestChannelUpdateBeforeCreateIsDeferred(t *testing.T) {
	s := testSession()
	readyGuild(t, s, 1)

	var got []interface{}
	record[ChannelCreated](s, &got)
	record[ChannelNameChanged](s, &got)

	// update for a channel whose creation event hasn't arrived yet
	s.SubmitEvent(env(t, "CHANNEL_UPDATE", gateway.ChannelUpdateEvent{
		Channel: discord.Channel{ID: 100, GuildID: 1, Name: "after"},
	}))
	assert.Equal(t, len(got), 0)

	s.SubmitEvent(env(t, "CHANNEL_CREATE", gateway.ChannelCreateEvent{
		Channel: discord.Channel{ID: 100, GuildID: 1, Name: "before"},
	}))

	// the deferred update replayed right after the create
	assert.Equal(t, len(got), 2)
	assert.Equal(t, got[1].(*ChannelNameChanged).OldName, "before")

	ch, err := s.Cabinet.Channel(100)
	assert.Equal(t, err, nil)
	assert.Equal(t, ch.Name, "after")
}

// Role R123's creation event arrives after a channel update that references
// it in an overwrite: the overwrite must be parked and applied exactly once
// when the role materializes.
func TestOverwriteDeferredOnMissingRole(t *testing.T) {
	s := testSession()
	setupChannel(t, s)

	var perms []interface{}
	record[ChannelPermissionsChanged](s, &perms)

	s.SubmitEvent(env(t, "CHANNEL_UPDATE", gateway.ChannelUpdateEvent{
		Channel: discord.Channel{
			ID:      100,
			GuildID: 1,
			Name:    "general",
			Topic:   "hello",
			Overwrites: []discord.Overwrite{{
				ID:    123,
				Type:  discord.OverwriteRole,
				Allow: 1024,
				Deny:  0,
			}},
		},
	}))

	// the subject doesn't exist yet: nothing emitted, nothing stored
	assert.Equal(t, len(perms), 0)
	ch, _ := s.Cabinet.Channel(100)
	assert.Equal(t, len(ch.Overwrites), 0)

	s.SubmitEvent(env(t, "GUILD_ROLE_CREATE", gateway.GuildRoleCreateEvent{
		GuildID: 1,
		Role:    discord.Role{ID: 123, Name: "mods"},
	}))

	assert.Equal(t, len(perms), 1)
	changes := perms[0].(*ChannelPermissionsChanged).Changes
	assert.Equal(t, len(changes), 1)
	assert.Equal(t, changes[0].Overwrite.ID, discord.Snowflake(123))

	ch, _ = s.Cabinet.Channel(100)
	assert.Equal(t, len(ch.Overwrites), 1)
	assert.Equal(t, ch.Overwrites[0].Allow, discord.Permissions(1024))
	assert.Equal(t, ch.Overwrites[0].Deny, discord.Permissions(0))
}

// One unresolvable overwrite must not block the rest of the update.
func TestPartialOverwriteFailureIsIsolated(t *testing.T) {
	s := testSession()
	setupChannel(t, s)

	s.SubmitEvent(env(t, "GUILD_ROLE_CREATE", gateway.GuildRoleCreateEvent{
		GuildID: 1,
		Role:    discord.Role{ID: 200, Name: "existing"},
	}))

	var perms, names []interface{}
	record[ChannelPermissionsChanged](s, &perms)
	record[ChannelNameChanged](s, &names)

	s.SubmitEvent(env(t, "CHANNEL_UPDATE", gateway.ChannelUpdateEvent{
		Channel: discord.Channel{
			ID:      100,
			GuildID: 1,
			Name:    "renamed",
			Topic:   "hello",
			Overwrites: []discord.Overwrite{
				{ID: 200, Type: discord.OverwriteRole, Allow: 8},
				{ID: 999, Type: discord.OverwriteRole, Allow: 16},
			},
		},
	}))

	// the name change and the valid overwrite both applied
	assert.Equal(t, len(names), 1)
	assert.Equal(t, len(perms), 1)
	assert.Equal(t, len(perms[0].(*ChannelPermissionsChanged).Changes), 1)
	assert.Equal(t, perms[0].(*ChannelPermissionsChanged).Changes[0].Overwrite.ID, discord.Snowflake(200))

	ch, _ := s.Cabinet.Channel(100)
	assert.Equal(t, len(ch.Overwrites), 1)

	// the invalid one was deferred, not dropped
	s.SubmitEvent(env(t, "GUILD_ROLE_CREATE", gateway.GuildRoleCreateEvent{
		GuildID: 1,
		Role:    discord.Role{ID: 999, Name: "late"},
	}))

	assert.Equal(t, len(perms), 2)
	ch, _ = s.Cabinet.Channel(100)
	assert.Equal(t, len(ch.Overwrites), 2)
}

// Overwrite removal has no wire signal of its own; it is inferred from the
// entry being present before and absent from the update payload.
func TestOverwriteRemovalInferredByAbsence(t *testing.T) {
	s := testSession()
	readyGuild(t, s, 1)

	s.SubmitEvent(env(t, "GUILD_ROLE_CREATE", gateway.GuildRoleCreateEvent{
		GuildID: 1,
		Role:    discord.Role{ID: 200, Name: "role"},
	}))
	s.SubmitEvent(env(t, "CHANNEL_CREATE", gateway.ChannelCreateEvent{
		Channel: discord.Channel{
			ID:      100,
			GuildID: 1,
			Name:    "general",
			Overwrites: []discord.Overwrite{
				{ID: 200, Type: discord.OverwriteRole, Allow: 8},
			},
		},
	}))

	var perms []interface{}
	record[ChannelPermissionsChanged](s, &perms)

	s.SubmitEvent(env(t, "CHANNEL_UPDATE", gateway.ChannelUpdateEvent{
		Channel: discord.Channel{ID: 100, GuildID: 1, Name: "general"},
	}))

	assert.Equal(t, len(perms), 1)
	changes := perms[0].(*ChannelPermissionsChanged).Changes
	assert.Equal(t, len(changes), 1)
	assert.Equal(t, changes[0].Removed, true)
	assert.Equal(t, changes[0].Overwrite.ID, discord.Snowflake(200))

	ch, _ := s.Cabinet.Channel(100)
	assert.Equal(t, len(ch.Overwrites), 0)
}
