package events

import (
	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
)

func (s *Session) guildRoleCreate(env Envelope) {
	ev, err := unmarshal[gateway.GuildRoleCreateEvent](env)
	if err != nil {
		drop(env, err)
		return
	}
	if !ev.GuildID.IsValid() || !ev.Role.ID.IsValid() {
		drop(env, errors.New("missing guild or role ID"))
		return
	}

	if s.gate(ev.GuildID, env) {
		return
	}

	s.applyRoleCreate(ev)
}

func (s *Session) applyRoleCreate(ev *gateway.GuildRoleCreateEvent) {
	if _, err := s.Cabinet.Guild(ev.GuildID); err != nil {
		ev := ev
		s.Deferred.Defer(DepGuild, discord.Snowflake(ev.GuildID), func() { s.applyRoleCreate(ev) })
		return
	}

	s.Cabinet.RoleSet(ev.GuildID, ev.Role)

	s.Handler.Call(&RoleCreated{GuildID: ev.GuildID, Role: ev.Role})

	// anything that referenced this role before it existed replays now
	s.Deferred.Run(DepRole, discord.Snowflake(ev.Role.ID))
}
