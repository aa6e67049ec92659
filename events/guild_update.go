package events

import (
	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
)

func (s *Session) guildUpdate(env Envelope) {
	ev, err := unmarshal[gateway.GuildUpdateEvent](env)
	if err != nil {
		drop(env, err)
		return
	}
	if !ev.ID.IsValid() {
		drop(env, errors.New("missing guild ID"))
		return
	}

	if s.gate(ev.ID, env) {
		return
	}

	s.applyGuildUpdate(ev)
}

func (s *Session) applyGuildUpdate(ev *gateway.GuildUpdateEvent) {
	old, err := s.Cabinet.Guild(ev.ID)
	if err != nil {
		ev := ev
		s.Deferred.Defer(DepGuild, discord.Snowflake(ev.ID), func() { s.applyGuildUpdate(ev) })
		return
	}

	cs := diffGuild(old, ev.Guild)

	g := ev.Guild
	// update payloads don't reliably carry the role list
	if len(g.Roles) == 0 {
		g.Roles = old.Roles
	}
	s.Cabinet.GuildSet(g)

	if cs.IsEmpty() {
		return
	}

	s.Handler.Call(&GuildUpdated{Guild: g, Old: old, ChangeSet: cs})
}
