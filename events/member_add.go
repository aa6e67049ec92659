package events

import (
	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
)

func (s *Session) guildMemberAdd(env Envelope) {
	ev, err := unmarshal[gateway.GuildMemberAddEvent](env)
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

	s.applyMemberAdd(ev)
}

func (s *Session) applyMemberAdd(ev *gateway.GuildMemberAddEvent) {
	if _, err := s.Cabinet.Guild(ev.GuildID); err != nil {
		ev := ev
		s.Deferred.Defer(DepGuild, discord.Snowflake(ev.GuildID), func() { s.applyMemberAdd(ev) })
		return
	}

	s.Cabinet.UserSet(ev.User)
	s.Cabinet.MemberSet(ev.GuildID, ev.Member)

	s.Handler.Call(&MemberJoined{GuildID: ev.GuildID, Member: ev.Member})

	// anything that referenced this user before it was seen replays now
	s.Deferred.Run(DepUser, discord.Snowflake(ev.User.ID))
}
