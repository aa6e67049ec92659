package events

import (
	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
)

func (s *Session) guildRoleUpdate(env Envelope) {
	ev, err := unmarshal[gateway.GuildRoleUpdateEvent](env)
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

	s.applyRoleUpdate(ev)
}

func (s *Session) applyRoleUpdate(ev *gateway.GuildRoleUpdateEvent) {
	old, err := s.Cabinet.Role(ev.Role.ID)
	if err != nil {
		ev := ev
		s.Deferred.Defer(DepRole, discord.Snowflake(ev.Role.ID), func() { s.applyRoleUpdate(ev) })
		return
	}

	cs := diffRole(old, ev.Role)

	s.Cabinet.RoleSet(ev.GuildID, ev.Role)

	if cs.IsEmpty() {
		return
	}

	s.Handler.Call(&RoleUpdated{GuildID: ev.GuildID, Role: ev.Role, Old: old, ChangeSet: cs})
}
