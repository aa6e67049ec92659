// Package store defines the interfaces for a session's entity cache.
// A session owns exactly one Cabinet and is the only writer to it; reads may
// happen concurrently from listener callbacks, so implementations must be
// safe for concurrent reads and must never expose a half-written entity.
package store

import (
	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
)

// ErrNotFound is returned for any lookup of an entity that is not cached.
const ErrNotFound = errors.Sentinel("entity not found in store")

// Cabinet bundles one store per entity kind.
type Cabinet struct {
	GuildStore
	ChannelStore
	RoleStore
	UserStore
	MemberStore
	VoiceStateStore
}

type GuildStore interface {
	Guild(id discord.GuildID) (discord.Guild, error)
	Guilds() ([]discord.Guild, error)
	GuildSet(g discord.Guild) error
	// GuildGetOrCreate returns the guild with the given ID, creating an empty
	// record for it if none exists yet. Used for forward references: a guild
	// may be referenced by ID before its snapshot arrives.
	GuildGetOrCreate(id discord.GuildID) (g discord.Guild, created bool, err error)
	// GuildRemove removes a guild and cascades to its channels, roles,
	// members, and voice states.
	GuildRemove(id discord.GuildID) error
}

type ChannelStore interface {
	Channel(id discord.ChannelID) (discord.Channel, error)
	Channels(guildID discord.GuildID) ([]discord.Channel, error)
	ChannelSet(ch discord.Channel) error
	ChannelRemove(ch discord.Channel) error
}

type RoleStore interface {
	Role(id discord.RoleID) (discord.Role, error)
	Roles(guildID discord.GuildID) ([]discord.Role, error)
	RoleSet(guildID discord.GuildID, r discord.Role) error
	RoleRemove(guildID discord.GuildID, id discord.RoleID) error
}

// UserStore holds users globally: a user can be visible from any number of
// guilds, so user records are not owned by a guild.
type UserStore interface {
	User(id discord.UserID) (discord.User, error)
	UserSet(u discord.User) error
	UserRemove(id discord.UserID) error
}

type MemberStore interface {
	Member(guildID discord.GuildID, userID discord.UserID) (discord.Member, error)
	Members(guildID discord.GuildID) ([]discord.Member, error)
	MemberSet(guildID discord.GuildID, m discord.Member) error
	MemberRemove(guildID discord.GuildID, userID discord.UserID) error
}

type VoiceStateStore interface {
	VoiceState(guildID discord.GuildID, userID discord.UserID) (discord.VoiceState, error)
	VoiceStates(guildID discord.GuildID) ([]discord.VoiceState, error)
	VoiceStateSet(vs discord.VoiceState) error
	VoiceStateRemove(guildID discord.GuildID, userID discord.UserID) error
}
