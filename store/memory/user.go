package memory

import (
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/starshine-sys/guildmirror/store"
)

var _ store.UserStore = (*Store)(nil)

func (s *Store) User(id discord.UserID) (discord.User, error) {
	s.usersMu.RLock()
	defer s.usersMu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return discord.User{}, store.ErrNotFound
	}
	return *u, nil
}

func (s *Store) UserSet(u discord.User) error {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()

	s.users[u.ID] = &u
	return nil
}

func (s *Store) UserRemove(id discord.UserID) error {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()

	delete(s.users, id)
	return nil
}
