package events

import (
	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/starshine-sys/guildmirror/common/log"
)

func (s *Session) channelUpdate(env Envelope) {
	ev, err := unmarshal[gateway.ChannelUpdateEvent](env)
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

	s.applyChannelUpdate(ev)
}

// applyChannelUpdate diffs an update payload against the cached channel and
// applies it. Overwrites whose subject hasn't materialized are deferred
// individually: one unresolvable overwrite doesn't block the rest of the
// update. Nothing is stored until every lookup has been done, so a deferred
// replay of this whole operation sees untouched state.
func (s *Session) applyChannelUpdate(ev *gateway.ChannelUpdateEvent) {
	old, err := s.Cabinet.Channel(ev.ID)
	if err != nil {
		// update raced ahead of the creation event; replay once it lands
		ev := ev
		s.Deferred.Defer(DepChannel, discord.Snowflake(ev.ID), func() { s.applyChannelUpdate(ev) })
		return
	}

	cs := diffChannel(old, ev.Channel)

	resolved := make([]discord.Overwrite, 0, len(ev.Overwrites))
	for _, ow := range ev.Overwrites {
		err := s.resolveOverwrite(old.GuildID, ow)
		if err == nil {
			resolved = append(resolved, ow)
			continue
		}

		var dep MissingDependencyError
		if errors.As(err, &dep) {
			ow, chID := ow, ev.ID
			s.Deferred.Defer(dep.Kind, dep.ID, func() { s.applyOverwrite(chID, ow) })
		} else {
			log.Errorf("skipping overwrite %v on channel %v: %v", ow.ID, ev.ID, err)
		}
	}

	// removals have no wire signal of their own; an overwrite stored before
	// but absent from the payload is gone
	cs.Overwrites = diffOverwrites(old.Overwrites, resolved)

	ch := ev.Channel
	ch.Overwrites = resolved
	if !ch.GuildID.IsValid() {
		ch.GuildID = old.GuildID
	}
	s.Cabinet.ChannelSet(ch)

	if cs.IsEmpty() {
		return
	}

	// most specific events first, the aggregate update last
	if c, ok := cs.Change("name"); ok {
		s.Handler.Call(&ChannelNameChanged{Channel: ch, OldName: c.Old.(string)})
	}
	if c, ok := cs.Change("topic"); ok {
		s.Handler.Call(&ChannelTopicChanged{Channel: ch, OldTopic: c.Old.(string)})
	}
	if c, ok := cs.Change("position"); ok {
		s.Handler.Call(&ChannelPositionChanged{Channel: ch, OldPosition: c.Old.(int)})
	}
	if len(cs.Overwrites) > 0 {
		s.Handler.Call(&ChannelPermissionsChanged{Channel: ch, Changes: cs.Overwrites})
	}

	s.Handler.Call(&ChannelUpdated{Channel: ch, Old: old, ChangeSet: cs})
}
