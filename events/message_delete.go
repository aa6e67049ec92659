package events

import (
	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
)

func (s *Session) messageDelete(env Envelope) {
	ev, err := unmarshal[gateway.MessageDeleteEvent](env)
	if err != nil {
		drop(env, err)
		return
	}
	if !ev.ID.IsValid() || !ev.ChannelID.IsValid() {
		drop(env, errors.New("missing message or channel ID"))
		return
	}

	if s.gate(ev.GuildID, env) {
		return
	}

	var cached *discord.Message
	if m, ok := s.cachedMessage(ev.ID); ok {
		cached = &m
		s.messages.Remove(ev.ID.String())
	}

	s.Handler.Call(&MessageDeleted{
		ID:        ev.ID,
		ChannelID: ev.ChannelID,
		GuildID:   ev.GuildID,
		Cached:    cached,
	})
}
