package events

import (
	"github.com/diamondburned/arikawa/v3/discord"
)

// Semantic events, emitted once per distinct change detected while applying a
// wire event. Field-specific events fire before the aggregate update event
// for the same entity.

// GuildReady fires when a guild finishes materializing: the snapshot is
// applied, all member chunks have arrived, and the event backlog queued
// during materialization has been replayed.
type GuildReady struct {
	Guild       discord.Guild
	MemberCount int
}

// GuildUpdated fires on a guild-level field change.
type GuildUpdated struct {
	Guild discord.Guild
	Old   discord.Guild

	ChangeSet ChangeSet
}

// GuildUnavailable fires when a guild goes offline without being removed.
type GuildUnavailable struct {
	GuildID discord.GuildID
}

// GuildRemoved fires when the session actually leaves a guild. Guild is the
// last cached state, if any.
type GuildRemoved struct {
	GuildID discord.GuildID
	Guild   *discord.Guild
}

type ChannelCreated struct {
	Channel discord.Channel
}

type ChannelNameChanged struct {
	Channel discord.Channel
	OldName string
}

type ChannelTopicChanged struct {
	Channel  discord.Channel
	OldTopic string
}

type ChannelPositionChanged struct {
	Channel     discord.Channel
	OldPosition int
}

// ChannelPermissionsChanged carries the overwrite-set diff for one channel.
// Changes is never empty.
type ChannelPermissionsChanged struct {
	Channel discord.Channel
	Changes []OverwriteChange
}

// ChannelUpdated is the aggregate event for a channel update, fired after any
// field-specific events for the same payload.
type ChannelUpdated struct {
	Channel discord.Channel
	Old     discord.Channel

	ChangeSet ChangeSet
}

type ChannelDeleted struct {
	Channel discord.Channel
}

type RoleCreated struct {
	GuildID discord.GuildID
	Role    discord.Role
}

type RoleUpdated struct {
	GuildID discord.GuildID
	Role    discord.Role
	Old     discord.Role

	ChangeSet ChangeSet
}

type RoleDeleted struct {
	GuildID discord.GuildID
	Role    discord.Role
}

type MemberJoined struct {
	GuildID discord.GuildID
	Member  discord.Member
}

type MemberUpdated struct {
	GuildID discord.GuildID
	Member  discord.Member
	Old     discord.Member

	ChangeSet ChangeSet
}

type MemberLeft struct {
	GuildID discord.GuildID
	User    discord.User
}

type MessageCreated struct {
	Message discord.Message
}

// MessageEdited carries the previous content when the message was still in
// the recent-message cache, and an empty OldContent otherwise.
type MessageEdited struct {
	Message    discord.Message
	OldContent string
}

// MessageDeleted carries the cached message when it was still in the
// recent-message cache.
type MessageDeleted struct {
	ID        discord.MessageID
	ChannelID discord.ChannelID
	GuildID   discord.GuildID

	Cached *discord.Message
}

type TypingStarted struct {
	ChannelID discord.ChannelID
	GuildID   discord.GuildID
	UserID    discord.UserID
}

type PresenceUpdated struct {
	Presence discord.Presence
}

// VoiceStateChanged fires when a member joins, leaves, or moves between voice
// channels, or toggles mute/deafen state. Old is nil on join; New is nil on
// leave.
type VoiceStateChanged struct {
	GuildID discord.GuildID
	UserID  discord.UserID

	Old *discord.VoiceState
	New *discord.VoiceState
}
