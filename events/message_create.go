package events

import (
	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
)

func (s *Session) messageCreate(env Envelope) {
	ev, err := unmarshal[gateway.MessageCreateEvent](env)
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

	s.applyMessageCreate(ev)
}

func (s *Session) applyMessageCreate(ev *gateway.MessageCreateEvent) {
	if ev.GuildID.IsValid() {
		if _, err := s.Cabinet.Channel(ev.ChannelID); err != nil {
			ev := ev
			s.Deferred.Defer(DepChannel, discord.Snowflake(ev.ChannelID), func() { s.applyMessageCreate(ev) })
			return
		}
	}

	if ev.Member != nil && ev.GuildID.IsValid() {
		m := *ev.Member
		m.User = ev.Author
		s.Cabinet.MemberSet(ev.GuildID, m)
	}
	s.Cabinet.UserSet(ev.Author)

	s.messages.Set(ev.ID.String(), ev.Message)

	s.Handler.Call(&MessageCreated{Message: ev.Message})
}
