package events

import (
	"encoding/json"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/starshine-sys/guildmirror/common/log"
)

// Envelope is a single decoded gateway frame, as handed over by the
// transport: the wire event type, the session sequence number, and the raw
// payload. Payloads are decoded per event type by the route handlers.
type Envelope struct {
	Type     string          `json:"t"`
	Sequence int64           `json:"s"`
	Payload  json.RawMessage `json:"d"`
}

// SubmitEvent is the single entry point for the transport. Events are applied
// one at a time, in submission order; it is safe to call from multiple
// goroutines, but ordering across callers is then up to the callers.
func (s *Session) SubmitEvent(env Envelope) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	s.stats.RegisterEvent(env.Type)
	s.dispatch(env)
}

// dispatch routes one envelope to its handler. Called with s.mu held, both
// for live events and for backlog replays.
func (s *Session) dispatch(env Envelope) {
	switch env.Type {
	case "GUILD_CREATE":
		s.guildCreate(env)
	case "GUILD_UPDATE":
		s.guildUpdate(env)
	case "GUILD_DELETE":
		s.guildDelete(env)
	case "GUILD_MEMBERS_CHUNK":
		s.guildMembersChunk(env)
	case "CHANNEL_CREATE":
		s.channelCreate(env)
	case "CHANNEL_UPDATE":
		s.channelUpdate(env)
	case "CHANNEL_DELETE":
		s.channelDelete(env)
	case "GUILD_ROLE_CREATE":
		s.guildRoleCreate(env)
	case "GUILD_ROLE_UPDATE":
		s.guildRoleUpdate(env)
	case "GUILD_ROLE_DELETE":
		s.guildRoleDelete(env)
	case "GUILD_MEMBER_ADD":
		s.guildMemberAdd(env)
	case "GUILD_MEMBER_UPDATE":
		s.guildMemberUpdate(env)
	case "GUILD_MEMBER_REMOVE":
		s.guildMemberRemove(env)
	case "MESSAGE_CREATE":
		s.messageCreate(env)
	case "MESSAGE_UPDATE":
		s.messageUpdate(env)
	case "MESSAGE_DELETE":
		s.messageDelete(env)
	case "VOICE_STATE_UPDATE":
		s.voiceStateUpdate(env)
	case "PRESENCE_UPDATE":
		s.presenceUpdate(env)
	case "TYPING_START":
		s.typingStart(env)
	default:
		// forward compatibility: the server may introduce new event types
		log.Debugf("ignoring unknown event type %q", env.Type)
	}
}

// unmarshal decodes an envelope payload. A decode failure is a structural
// error for that single event: the caller logs and drops it.
func unmarshal[E any](env Envelope) (*E, error) {
	var ev E
	if err := json.Unmarshal(env.Payload, &ev); err != nil {
		return nil, errors.Wrap(err, "decode "+env.Type)
	}
	return &ev, nil
}

// drop logs a structural decode error. The event is discarded: replaying
// malformed data cannot succeed.
func drop(env Envelope, err error) {
	log.Errorf("dropping malformed %v event (seq %v): %v", env.Type, env.Sequence, err)
}

// gate queues the envelope if its guild is still materializing. Reports
// whether the event was queued, in which case the caller stops processing.
func (s *Session) gate(guildID discord.GuildID, env Envelope) bool {
	if !guildID.IsValid() {
		return false
	}

	if !s.Locks.Locked(guildID) {
		return false
	}

	s.Locks.Queue(guildID, env)
	s.stats.IncQueued()
	return true
}

// resolveOverwrite checks that the subject of a permission overwrite is
// materialized. Returns a MissingDependencyError when it isn't, and a plain
// error for an unrecognized subject type.
func (s *Session) resolveOverwrite(guildID discord.GuildID, ow discord.Overwrite) error {
	switch ow.Type {
	case discord.OverwriteRole:
		if _, err := s.Cabinet.Role(discord.RoleID(ow.ID)); err != nil {
			return MissingDependencyError{Kind: DepRole, ID: ow.ID}
		}
	case discord.OverwriteMember:
		if _, err := s.Cabinet.Member(guildID, discord.UserID(ow.ID)); err != nil {
			return MissingDependencyError{Kind: DepUser, ID: ow.ID}
		}
	default:
		return errors.Errorf("unknown overwrite type %d", ow.Type)
	}
	return nil
}

// applyOverwrite is the replay path for a single overwrite that was deferred
// on its subject: it upserts the overwrite into the channel's set and emits
// exactly one permissions-changed event for it.
func (s *Session) applyOverwrite(channelID discord.ChannelID, ow discord.Overwrite) {
	ch, err := s.Cabinet.Channel(channelID)
	if err != nil {
		// channel went away while the overwrite was parked
		log.Debugf("discarding overwrite for %v on deleted channel %v", ow.ID, channelID)
		return
	}

	change := OverwriteChange{Overwrite: ow}
	replaced := false
	for i := range ch.Overwrites {
		if ch.Overwrites[i].ID == ow.ID {
			if ch.Overwrites[i].Allow == ow.Allow && ch.Overwrites[i].Deny == ow.Deny {
				return
			}
			old := ch.Overwrites[i]
			change.Old = &old
			ch.Overwrites[i] = ow
			replaced = true
			break
		}
	}
	if !replaced {
		ch.Overwrites = append(ch.Overwrites, ow)
	}

	s.Cabinet.ChannelSet(ch)
	s.Handler.Call(&ChannelPermissionsChanged{Channel: ch, Changes: []OverwriteChange{change}})
}
