package events

import (
	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/starshine-sys/guildmirror/common/log"
)

func (s *Session) guildCreate(env Envelope) {
	ev, err := unmarshal[gateway.GuildCreateEvent](env)
	if err != nil {
		drop(env, err)
		return
	}
	if !ev.ID.IsValid() {
		drop(env, errors.New("missing guild ID"))
		return
	}

	s.beginMaterialization(ev)
}

// BeginGuildMaterialization feeds a guild snapshot into the session directly,
// equivalent to submitting it as a GUILD_CREATE envelope.
func (s *Session) BeginGuildMaterialization(ev *gateway.GuildCreateEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	s.beginMaterialization(ev)
}

// beginMaterialization runs first-pass materialization: the guild snapshot is
// applied, and live events for the guild are gated until the member list is
// complete. Small guilds carry their full member list in the snapshot and
// become ready immediately; large guilds stay locked until the chunked member
// responses add up to the declared count.
func (s *Session) beginMaterialization(ev *gateway.GuildCreateEvent) {
	if ev.Unavailable {
		// the guild exists but its snapshot isn't here yet; create a bare
		// record so it can be referenced by ID, and gate everything else
		s.Cabinet.GuildGetOrCreate(ev.ID)
		s.Locks.Lock(ev.ID, guildUnavailable)
		log.Debugf("guild %v is unavailable, gating its events", ev.ID)
		return
	}

	s.Locks.Lock(ev.ID, guildMaterializing)

	s.Cabinet.GuildSet(ev.Guild)

	for _, r := range ev.Roles {
		s.Cabinet.RoleSet(ev.ID, r)
	}

	for _, m := range ev.Members {
		s.Cabinet.UserSet(m.User)
		s.Cabinet.MemberSet(ev.ID, m)
	}

	chunking := int(ev.MemberCount) > len(ev.Members)
	if chunking {
		s.Chunks.SetExpected(ev.ID, int(ev.MemberCount))
	}

	for _, ch := range ev.Channels {
		ch.GuildID = ev.ID

		kept := make([]discord.Overwrite, 0, len(ch.Overwrites))
		for _, ow := range ch.Overwrites {
			err := s.resolveOverwrite(ev.ID, ow)
			if err == nil {
				kept = append(kept, ow)
				continue
			}

			var dep MissingDependencyError
			switch {
			case errors.As(err, &dep) && chunking && dep.Kind == DepUser:
				// the subject should be in a member chunk; park the
				// overwrite for the second pass
				s.Chunks.PushOverwrite(ev.ID, ch.ID, ow)
			case errors.As(err, &dep):
				ow, chID := ow, ch.ID
				s.Deferred.Defer(dep.Kind, dep.ID, func() { s.applyOverwrite(chID, ow) })
			default:
				log.Errorf("skipping overwrite %v on channel %v: %v", ow.ID, ch.ID, err)
			}
		}
		ch.Overwrites = kept

		s.Cabinet.ChannelSet(ch)
	}

	for _, vs := range ev.VoiceStates {
		vs.GuildID = ev.ID
		s.Cabinet.VoiceStateSet(vs)
	}

	if chunking {
		log.Debugf("guild %v declares %v members, waiting for chunks", ev.ID, ev.MemberCount)

		if s.requestMembers != nil {
			s.requestMembers(ev.ID)
		}
		return
	}

	s.finishMaterialization(ev.ID)
}

// finishMaterialization runs second-pass materialization and unlocks the
// guild: accumulated member batches are applied, parked overwrites resolve,
// and the gated event backlog replays in arrival order before anything newer
// for this guild can be processed.
func (s *Session) finishMaterialization(id discord.GuildID) {
	if st := s.Chunks.Take(id); st != nil {
		for _, batch := range st.batches {
			for _, m := range batch {
				s.Cabinet.UserSet(m.User)
				s.Cabinet.MemberSet(id, m)
			}
		}

		for _, po := range st.overwrites {
			err := s.resolveOverwrite(id, po.Overwrite)
			if err == nil {
				s.storeOverwrite(po.ChannelID, po.Overwrite)
				continue
			}

			var dep MissingDependencyError
			if errors.As(err, &dep) {
				po := po
				s.Deferred.Defer(dep.Kind, dep.ID, func() { s.applyOverwrite(po.ChannelID, po.Overwrite) })
			} else {
				log.Errorf("skipping overwrite %v on channel %v: %v", po.Overwrite.ID, po.ChannelID, err)
			}
		}
	}

	g, err := s.Cabinet.Guild(id)
	if err != nil {
		s.violation("finishing materialization for guild %v with no cached guild", id)
		return
	}

	if g.OwnerID.IsValid() {
		if _, err := s.Cabinet.Member(id, g.OwnerID); err != nil {
			log.Debugf("owner %v of guild %v is not in the member cache", g.OwnerID, id)
		}
	}

	members, _ := s.Cabinet.Members(id)

	queue := s.Locks.Unlock(id)

	log.Infof("guild %v (%v) is ready: %v members, replaying %v gated events", g.Name, id, len(members), len(queue))

	s.Handler.Call(&GuildReady{Guild: g, MemberCount: len(members)})

	// replays deferred on the guild, or on any entity the snapshot and
	// chunks materialized, predate the gated backlog, so they run first
	s.Deferred.Run(DepGuild, discord.Snowflake(id))
	if chs, err := s.Cabinet.Channels(id); err == nil {
		for _, ch := range chs {
			s.Deferred.Run(DepChannel, discord.Snowflake(ch.ID))
		}
	}
	if rs, err := s.Cabinet.Roles(id); err == nil {
		for _, r := range rs {
			s.Deferred.Run(DepRole, discord.Snowflake(r.ID))
		}
	}
	for _, m := range members {
		s.Deferred.Run(DepUser, discord.Snowflake(m.User.ID))
	}

	for _, env := range queue {
		s.dispatch(env)
	}
}

// storeOverwrite upserts an overwrite without emitting events, for snapshot
// application where there is no previous state to diff against.
func (s *Session) storeOverwrite(channelID discord.ChannelID, ow discord.Overwrite) {
	ch, err := s.Cabinet.Channel(channelID)
	if err != nil {
		return
	}

	for i := range ch.Overwrites {
		if ch.Overwrites[i].ID == ow.ID {
			ch.Overwrites[i] = ow
			s.Cabinet.ChannelSet(ch)
			return
		}
	}

	ch.Overwrites = append(ch.Overwrites, ow)
	s.Cabinet.ChannelSet(ch)
}
