package events

import (
	"testing"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/go-playground/assert/v2"
)

func joinMember(t *testing.T, s *Session, guildID discord.GuildID, userID discord.UserID) {
	t.Helper()

	s.SubmitEvent(env(t, "GUILD_MEMBER_ADD", gateway.GuildMemberAddEvent{
		GuildID: guildID,
		Member: discord.Member{
			User: discord.User{ID: userID, Username: "someone"},
		},
	}))
}

func TestMemberJoinAndLeave(t *testing.T) {
	s := testSession()
	readyGuild(t, s, 1)

	var got []interface{}
	record[MemberJoined](s, &got)
	record[MemberLeft](s, &got)

	joinMember(t, s, 1, 20)

	assert.Equal(t, len(got), 1)
	assert.Equal(t, got[0].(*MemberJoined).Member.User.ID, discord.UserID(20))

	_, err := s.Cabinet.Member(1, 20)
	assert.Equal(t, err, nil)

	s.SubmitEvent(env(t, "GUILD_MEMBER_REMOVE", gateway.GuildMemberRemoveEvent{
		GuildID: 1,
		User:    discord.User{ID: 20, Username: "someone"},
	}))

	assert.Equal(t, len(got), 2)
	assert.Equal(t, got[1].(*MemberLeft).User.ID, discord.UserID(20))

	_, err = s.Cabinet.Member(1, 20)
	assert.NotEqual(t, err, nil)
}

func TestMemberUpdateDiffsRoles(t *testing.T) {
	s := testSession()
	readyGuild(t, s, 1)
	joinMember(t, s, 1, 20)

	var got []interface{}
	record[MemberUpdated](s, &got)

	s.SubmitEvent(env(t, "GUILD_MEMBER_UPDATE", gateway.GuildMemberUpdateEvent{
		GuildID: 1,
		User:    discord.User{ID: 20, Username: "someone"},
		RoleIDs: []discord.RoleID{5, 6},
		Nick:    "nickname",
	}))

	assert.Equal(t, len(got), 1)
	up := got[0].(*MemberUpdated)

	c, ok := up.ChangeSet.Change("nick")
	assert.Equal(t, ok, true)
	assert.Equal(t, c.New, "nickname")

	_, ok = up.ChangeSet.Change("roles")
	assert.Equal(t, ok, true)

	m, err := s.Cabinet.Member(1, 20)
	assert.Equal(t, err, nil)
	assert.Equal(t, m.RoleIDs, []discord.RoleID{5, 6})
	assert.Equal(t, m.Nick, "nickname")
}

func TestMemberUpdateBeforeJoinIsDeferred(t *testing.T) {
	s := testSession()
	readyGuild(t, s, 1)

	var got []interface{}
	record[MemberUpdated](s, &got)

	s.SubmitEvent(env(t, "GUILD_MEMBER_UPDATE", gateway.GuildMemberUpdateEvent{
		GuildID: 1,
		User:    discord.User{ID: 20, Username: "someone"},
		Nick:    "late nick",
	}))
	assert.Equal(t, len(got), 0)

	joinMember(t, s, 1, 20)

	assert.Equal(t, len(got), 1)
	m, _ := s.Cabinet.Member(1, 20)
	assert.Equal(t, m.Nick, "late nick")
}

func TestRoleDeleteStripsMemberRoles(t *testing.T) {
	s := testSession()
	readyGuild(t, s, 1)
	joinMember(t, s, 1, 20)

	s.SubmitEvent(env(t, "GUILD_ROLE_CREATE", gateway.GuildRoleCreateEvent{
		GuildID: 1,
		Role:    discord.Role{ID: 5, Name: "gone soon"},
	}))
	s.SubmitEvent(env(t, "GUILD_MEMBER_UPDATE", gateway.GuildMemberUpdateEvent{
		GuildID: 1,
		User:    discord.User{ID: 20, Username: "someone"},
		RoleIDs: []discord.RoleID{5},
	}))

	s.SubmitEvent(env(t, "GUILD_ROLE_DELETE", gateway.GuildRoleDeleteEvent{
		GuildID: 1,
		RoleID:  5,
	}))

	m, err := s.Cabinet.Member(1, 20)
	assert.Equal(t, err, nil)
	assert.Equal(t, len(m.RoleIDs), 0)
}

func TestVoiceJoinMoveLeave(t *testing.T) {
	s := testSession()
	setupChannel(t, s)
	joinMember(t, s, 1, 20)

	var got []interface{}
	record[VoiceStateChanged](s, &got)

	join := gateway.VoiceStateUpdateEvent{VoiceState: discord.VoiceState{
		GuildID: 1, UserID: 20, ChannelID: 100,
	}}
	s.SubmitEvent(env(t, "VOICE_STATE_UPDATE", join))

	// re-delivered identical state is a no-op
	s.SubmitEvent(env(t, "VOICE_STATE_UPDATE", join))
	assert.Equal(t, len(got), 1)
	assert.Equal(t, got[0].(*VoiceStateChanged).Old, (*discord.VoiceState)(nil))

	s.SubmitEvent(env(t, "VOICE_STATE_UPDATE", gateway.VoiceStateUpdateEvent{
		VoiceState: discord.VoiceState{GuildID: 1, UserID: 20, ChannelID: 101},
	}))
	assert.Equal(t, len(got), 2)
	move := got[1].(*VoiceStateChanged)
	assert.Equal(t, move.Old.ChannelID, discord.ChannelID(100))
	assert.Equal(t, move.New.ChannelID, discord.ChannelID(101))

	s.SubmitEvent(env(t, "VOICE_STATE_UPDATE", gateway.VoiceStateUpdateEvent{
		VoiceState: discord.VoiceState{GuildID: 1, UserID: 20},
	}))
	assert.Equal(t, len(got), 3)
	leave := got[2].(*VoiceStateChanged)
	assert.Equal(t, leave.New, (*discord.VoiceState)(nil))

	_, err := s.Cabinet.VoiceState(1, 20)
	assert.NotEqual(t, err, nil)
}
