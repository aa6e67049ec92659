package memory

import (
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/starshine-sys/guildmirror/store"
)

var _ store.GuildStore = (*Store)(nil)

func (s *Store) Guild(id discord.GuildID) (discord.Guild, error) {
	s.guildsMu.RLock()
	defer s.guildsMu.RUnlock()

	g, ok := s.guilds[id]
	if !ok {
		return discord.Guild{}, store.ErrNotFound
	}
	return *g, nil
}

func (s *Store) Guilds() ([]discord.Guild, error) {
	s.guildsMu.RLock()
	defer s.guildsMu.RUnlock()

	gs := make([]discord.Guild, 0, len(s.guilds))
	for _, g := range s.guilds {
		gs = append(gs, *g)
	}
	return gs, nil
}

func (s *Store) GuildSet(g discord.Guild) error {
	s.guildsMu.Lock()
	defer s.guildsMu.Unlock()

	s.guilds[g.ID] = &g
	return nil
}

func (s *Store) GuildGetOrCreate(id discord.GuildID) (discord.Guild, bool, error) {
	s.guildsMu.Lock()
	defer s.guildsMu.Unlock()

	if g, ok := s.guilds[id]; ok {
		return *g, false, nil
	}

	g := discord.Guild{ID: id}
	s.guilds[id] = &g
	return g, true, nil
}

// GuildRemove removes a guild and everything owned by it: channels, roles,
// members, and voice states. Users stay, as they are not guild-owned.
func (s *Store) GuildRemove(id discord.GuildID) error {
	s.guildsMu.Lock()
	delete(s.guilds, id)
	s.guildsMu.Unlock()

	s.channelsMu.Lock()
	for _, chID := range s.guildChannels[id] {
		delete(s.channels, chID)
	}
	delete(s.guildChannels, id)
	s.channelsMu.Unlock()

	s.rolesMu.Lock()
	for _, rID := range s.guildRoles[id] {
		delete(s.roles, rID)
	}
	delete(s.guildRoles, id)
	s.rolesMu.Unlock()

	s.membersMu.Lock()
	delete(s.members, id)
	s.membersMu.Unlock()

	s.voiceStatesMu.Lock()
	delete(s.voiceStates, id)
	s.voiceStatesMu.Unlock()

	return nil
}
