package memory

import (
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/starshine-sys/guildmirror/store"
)

var _ store.VoiceStateStore = (*Store)(nil)

func (s *Store) VoiceState(guildID discord.GuildID, userID discord.UserID) (discord.VoiceState, error) {
	s.voiceStatesMu.RLock()
	defer s.voiceStatesMu.RUnlock()

	vs, ok := s.voiceStates[guildID][userID]
	if !ok {
		return discord.VoiceState{}, store.ErrNotFound
	}
	return *vs, nil
}

func (s *Store) VoiceStates(guildID discord.GuildID) ([]discord.VoiceState, error) {
	s.voiceStatesMu.RLock()
	defer s.voiceStatesMu.RUnlock()

	gvs, ok := s.voiceStates[guildID]
	if !ok {
		return nil, store.ErrNotFound
	}

	states := make([]discord.VoiceState, 0, len(gvs))
	for _, vs := range gvs {
		states = append(states, *vs)
	}
	return states, nil
}

func (s *Store) VoiceStateSet(vs discord.VoiceState) error {
	s.voiceStatesMu.Lock()
	defer s.voiceStatesMu.Unlock()

	if s.voiceStates[vs.GuildID] == nil {
		s.voiceStates[vs.GuildID] = make(map[discord.UserID]*discord.VoiceState)
	}
	s.voiceStates[vs.GuildID][vs.UserID] = &vs
	return nil
}

func (s *Store) VoiceStateRemove(guildID discord.GuildID, userID discord.UserID) error {
	s.voiceStatesMu.Lock()
	defer s.voiceStatesMu.Unlock()

	delete(s.voiceStates[guildID], userID)
	return nil
}
