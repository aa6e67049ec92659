package events

import (
	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
)

func (s *Session) guildMemberRemove(env Envelope) {
	ev, err := unmarshal[gateway.GuildMemberRemoveEvent](env)
	if err != nil {
		drop(env, err)
		return
	}
	if !ev.GuildID.IsValid() || !ev.User.ID.IsValid() {
		drop(env, errors.New("missing guild or user ID"))
		return
	}

	if s.gate(ev.GuildID, env) {
		return
	}

	s.applyMemberRemove(ev)
}

func (s *Session) applyMemberRemove(ev *gateway.GuildMemberRemoveEvent) {
	if _, err := s.Cabinet.Member(ev.GuildID, ev.User.ID); err != nil {
		// the leave can overtake the join
		ev := ev
		s.Deferred.Defer(DepUser, discord.Snowflake(ev.User.ID), func() { s.applyMemberRemove(ev) })
		return
	}

	s.Cabinet.MemberRemove(ev.GuildID, ev.User.ID)
	s.Cabinet.VoiceStateRemove(ev.GuildID, ev.User.ID)

	s.Handler.Call(&MemberLeft{GuildID: ev.GuildID, User: ev.User})
}
