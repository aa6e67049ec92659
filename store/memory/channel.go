package memory

import (
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/starshine-sys/guildmirror/store"
)

var _ store.ChannelStore = (*Store)(nil)

func (s *Store) Channel(id discord.ChannelID) (discord.Channel, error) {
	s.channelsMu.RLock()
	defer s.channelsMu.RUnlock()

	ch, ok := s.channels[id]
	if !ok {
		return discord.Channel{}, store.ErrNotFound
	}
	return *ch, nil
}

func (s *Store) Channels(guildID discord.GuildID) ([]discord.Channel, error) {
	s.channelsMu.RLock()
	defer s.channelsMu.RUnlock()

	ids, ok := s.guildChannels[guildID]
	if !ok {
		return nil, store.ErrNotFound
	}

	chs := make([]discord.Channel, 0, len(ids))
	for _, id := range ids {
		if ch, ok := s.channels[id]; ok {
			chs = append(chs, *ch)
		}
	}
	return chs, nil
}

func (s *Store) ChannelSet(ch discord.Channel) error {
	s.channelsMu.Lock()
	defer s.channelsMu.Unlock()

	if _, ok := s.channels[ch.ID]; !ok && ch.GuildID.IsValid() {
		if !contains(s.guildChannels[ch.GuildID], ch.ID) {
			s.guildChannels[ch.GuildID] = append(s.guildChannels[ch.GuildID], ch.ID)
		}
	}

	s.channels[ch.ID] = &ch
	return nil
}

func (s *Store) ChannelRemove(ch discord.Channel) error {
	s.channelsMu.Lock()
	defer s.channelsMu.Unlock()

	delete(s.channels, ch.ID)
	if ch.GuildID.IsValid() {
		s.guildChannels[ch.GuildID] = remove(s.guildChannels[ch.GuildID], ch.ID)
	}
	return nil
}
