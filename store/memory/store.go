// Package memory provides an in-memory store.
package memory

import (
	"sync"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/starshine-sys/guildmirror/store"
)

type Store struct {
	guilds   map[discord.GuildID]*discord.Guild
	guildsMu sync.RWMutex

	channels      map[discord.ChannelID]*discord.Channel
	guildChannels map[discord.GuildID][]discord.ChannelID
	channelsMu    sync.RWMutex

	roles      map[discord.RoleID]*discord.Role
	guildRoles map[discord.GuildID][]discord.RoleID
	rolesMu    sync.RWMutex

	users   map[discord.UserID]*discord.User
	usersMu sync.RWMutex

	members   map[discord.GuildID]map[discord.UserID]*discord.Member
	membersMu sync.RWMutex

	voiceStates   map[discord.GuildID]map[discord.UserID]*discord.VoiceState
	voiceStatesMu sync.RWMutex
}

func New() *Store {
	return &Store{
		guilds:        make(map[discord.GuildID]*discord.Guild),
		channels:      make(map[discord.ChannelID]*discord.Channel),
		guildChannels: make(map[discord.GuildID][]discord.ChannelID),
		roles:         make(map[discord.RoleID]*discord.Role),
		guildRoles:    make(map[discord.GuildID][]discord.RoleID),
		users:         make(map[discord.UserID]*discord.User),
		members:       make(map[discord.GuildID]map[discord.UserID]*discord.Member),
		voiceStates:   make(map[discord.GuildID]map[discord.UserID]*discord.VoiceState),
	}
}

// Cabinet returns a store.Cabinet backed entirely by s.
func (s *Store) Cabinet() store.Cabinet {
	return store.Cabinet{
		GuildStore:      s,
		ChannelStore:    s,
		RoleStore:       s,
		UserStore:       s,
		MemberStore:     s,
		VoiceStateStore: s,
	}
}

// remove removes the given value in slice.
func remove[T comparable](slice []T, val T) []T {
	for i := range slice {
		if slice[i] == val {
			if i == 0 {
				slice = slice[1:]
			} else if i == len(slice)-1 {
				slice = slice[:len(slice)-1]
			} else {
				slice = append(slice[:i], slice[i+1:]...)
			}
			break
		}
	}
	return slice
}

// contains returns true if slice contains val.
func contains[T comparable](slice []T, val T) bool {
	for i := range slice {
		if slice[i] == val {
			return true
		}
	}
	return false
}
