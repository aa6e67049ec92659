package events

import (
	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/starshine-sys/guildmirror/common/log"
)

// guildDelete is never gated: it changes the lock state itself.
func (s *Session) guildDelete(env Envelope) {
	ev, err := unmarshal[gateway.GuildDeleteEvent](env)
	if err != nil {
		drop(env, err)
		return
	}
	if !ev.ID.IsValid() {
		drop(env, errors.New("missing guild ID"))
		return
	}

	if ev.Unavailable {
		// outage, not removal: keep the cached state, gate live events until
		// the guild comes back with a fresh snapshot
		s.Locks.Lock(ev.ID, guildUnavailable)
		s.Chunks.Forget(ev.ID)

		log.Infof("guild %v became unavailable", ev.ID)
		s.Handler.Call(&GuildUnavailable{GuildID: ev.ID})
		return
	}

	var cached *discord.Guild
	if g, err := s.Cabinet.Guild(ev.ID); err == nil {
		cached = &g
	}

	// cascades to channels, roles, members, and voice states
	s.Cabinet.GuildRemove(ev.ID)

	s.Locks.Forget(ev.ID)
	s.Chunks.Forget(ev.ID)

	log.Infof("removed from guild %v", ev.ID)
	s.Handler.Call(&GuildRemoved{GuildID: ev.ID, Guild: cached})
}
