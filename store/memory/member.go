package memory

import (
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/starshine-sys/guildmirror/store"
)

var _ store.MemberStore = (*Store)(nil)

func (s *Store) Member(guildID discord.GuildID, userID discord.UserID) (discord.Member, error) {
	s.membersMu.RLock()
	defer s.membersMu.RUnlock()

	m, ok := s.members[guildID][userID]
	if !ok {
		return discord.Member{}, store.ErrNotFound
	}
	return *m, nil
}

func (s *Store) Members(guildID discord.GuildID) ([]discord.Member, error) {
	s.membersMu.RLock()
	defer s.membersMu.RUnlock()

	gm, ok := s.members[guildID]
	if !ok {
		return nil, store.ErrNotFound
	}

	ms := make([]discord.Member, 0, len(gm))
	for _, m := range gm {
		ms = append(ms, *m)
	}
	return ms, nil
}

func (s *Store) MemberSet(guildID discord.GuildID, m discord.Member) error {
	s.membersMu.Lock()
	defer s.membersMu.Unlock()

	if s.members[guildID] == nil {
		s.members[guildID] = make(map[discord.UserID]*discord.Member)
	}
	s.members[guildID][m.User.ID] = &m
	return nil
}

func (s *Store) MemberRemove(guildID discord.GuildID, userID discord.UserID) error {
	s.membersMu.Lock()
	defer s.membersMu.Unlock()

	delete(s.members[guildID], userID)
	return nil
}
