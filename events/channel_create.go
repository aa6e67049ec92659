package events

import (
	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/starshine-sys/guildmirror/common/log"
)

func (s *Session) channelCreate(env Envelope) {
	ev, err := unmarshal[gateway.ChannelCreateEvent](env)
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

	s.applyChannelCreate(ev)
}

func (s *Session) applyChannelCreate(ev *gateway.ChannelCreateEvent) {
	ch := ev.Channel

	if ch.GuildID.IsValid() {
		if _, err := s.Cabinet.Guild(ch.GuildID); err != nil {
			// creation raced ahead of the guild itself
			ev := ev
			s.Deferred.Defer(DepGuild, discord.Snowflake(ch.GuildID), func() { s.applyChannelCreate(ev) })
			return
		}
	}

	kept := make([]discord.Overwrite, 0, len(ch.Overwrites))
	for _, ow := range ch.Overwrites {
		err := s.resolveOverwrite(ch.GuildID, ow)
		if err == nil {
			kept = append(kept, ow)
			continue
		}

		var dep MissingDependencyError
		if errors.As(err, &dep) {
			ow, chID := ow, ch.ID
			s.Deferred.Defer(dep.Kind, dep.ID, func() { s.applyOverwrite(chID, ow) })
		} else {
			log.Errorf("skipping overwrite %v on channel %v: %v", ow.ID, ch.ID, err)
		}
	}
	ch.Overwrites = kept

	s.Cabinet.ChannelSet(ch)

	s.Handler.Call(&ChannelCreated{Channel: ch})

	// anything that referenced this channel before it existed replays now
	s.Deferred.Run(DepChannel, discord.Snowflake(ch.ID))
}
