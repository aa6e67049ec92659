package events

import (
	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
)

func (s *Session) channelDelete(env Envelope) {
	ev, err := unmarshal[gateway.ChannelDeleteEvent](env)
	if err != nil {
		drop(env, err)
		return
	}
	if !ev.ID.IsValid() {
		drop(env, errors.New("missing channel ID"))
		return
	}

	if s.gate(ev.GuildID, env) {
		return
	}

	s.applyChannelDelete(ev)
}

func (s *Session) applyChannelDelete(ev *gateway.ChannelDeleteEvent) {
	old, err := s.Cabinet.Channel(ev.ID)
	if err != nil {
		// the delete can overtake the create; replay it once the create
		// lands so the final state is still "deleted"
		ev := ev
		s.Deferred.Defer(DepChannel, discord.Snowflake(ev.ID), func() { s.applyChannelDelete(ev) })
		return
	}

	s.Cabinet.ChannelRemove(old)

	s.Handler.Call(&ChannelDeleted{Channel: old})
}
