package memory

import (
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/starshine-sys/guildmirror/store"
)

var _ store.RoleStore = (*Store)(nil)

func (s *Store) Role(id discord.RoleID) (discord.Role, error) {
	s.rolesMu.RLock()
	defer s.rolesMu.RUnlock()

	r, ok := s.roles[id]
	if !ok {
		return discord.Role{}, store.ErrNotFound
	}
	return *r, nil
}

func (s *Store) Roles(guildID discord.GuildID) ([]discord.Role, error) {
	s.rolesMu.RLock()
	defer s.rolesMu.RUnlock()

	ids, ok := s.guildRoles[guildID]
	if !ok {
		return nil, store.ErrNotFound
	}

	rs := make([]discord.Role, 0, len(ids))
	for _, id := range ids {
		if r, ok := s.roles[id]; ok {
			rs = append(rs, *r)
		}
	}
	return rs, nil
}

func (s *Store) RoleSet(guildID discord.GuildID, r discord.Role) error {
	s.rolesMu.Lock()
	defer s.rolesMu.Unlock()

	if _, ok := s.roles[r.ID]; !ok {
		if !contains(s.guildRoles[guildID], r.ID) {
			s.guildRoles[guildID] = append(s.guildRoles[guildID], r.ID)
		}
	}

	s.roles[r.ID] = &r
	return nil
}

func (s *Store) RoleRemove(guildID discord.GuildID, id discord.RoleID) error {
	s.rolesMu.Lock()
	defer s.rolesMu.Unlock()

	delete(s.roles, id)
	s.guildRoles[guildID] = remove(s.guildRoles[guildID], id)
	return nil
}
