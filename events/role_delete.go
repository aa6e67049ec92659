package events

import (
	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
)

func (s *Session) guildRoleDelete(env Envelope) {
	ev, err := unmarshal[gateway.GuildRoleDeleteEvent](env)
	if err != nil {
		drop(env, err)
		return
	}
	if !ev.GuildID.IsValid() || !ev.RoleID.IsValid() {
		drop(env, errors.New("missing guild or role ID"))
		return
	}

	if s.gate(ev.GuildID, env) {
		return
	}

	s.applyRoleDelete(ev)
}

func (s *Session) applyRoleDelete(ev *gateway.GuildRoleDeleteEvent) {
	old, err := s.Cabinet.Role(ev.RoleID)
	if err != nil {
		// the delete can overtake the create
		ev := ev
		s.Deferred.Defer(DepRole, discord.Snowflake(ev.RoleID), func() { s.applyRoleDelete(ev) })
		return
	}

	s.Cabinet.RoleRemove(ev.GuildID, ev.RoleID)

	// strip dangling references. The server sends explicit follow-up updates
	// for these as well, which then diff to nothing.
	if chs, err := s.Cabinet.Channels(ev.GuildID); err == nil {
		for _, ch := range chs {
			for i, ow := range ch.Overwrites {
				if ow.Type == discord.OverwriteRole && discord.RoleID(ow.ID) == ev.RoleID {
					ch.Overwrites = append(ch.Overwrites[:i], ch.Overwrites[i+1:]...)
					s.Cabinet.ChannelSet(ch)
					break
				}
			}
		}
	}

	if ms, err := s.Cabinet.Members(ev.GuildID); err == nil {
		for _, m := range ms {
			if roleIn(m.RoleIDs, ev.RoleID) {
				ids := make([]discord.RoleID, 0, len(m.RoleIDs)-1)
				for _, id := range m.RoleIDs {
					if id != ev.RoleID {
						ids = append(ids, id)
					}
				}
				m.RoleIDs = ids
				s.Cabinet.MemberSet(ev.GuildID, m)
			}
		}
	}

	s.Handler.Call(&RoleDeleted{GuildID: ev.GuildID, Role: old})
}
