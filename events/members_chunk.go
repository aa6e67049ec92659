package events

import (
	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
)

func (s *Session) guildMembersChunk(env Envelope) {
	ev, err := unmarshal[gateway.GuildMembersChunkEvent](env)
	if err != nil {
		drop(env, err)
		return
	}
	if !ev.GuildID.IsValid() {
		drop(env, errors.New("missing guild ID"))
		return
	}

	s.addMemberChunk(ev.GuildID, ev.Members)
}

// AddMemberChunk feeds one paginated member batch into the session directly,
// equivalent to submitting it as a GUILD_MEMBERS_CHUNK envelope.
func (s *Session) AddMemberChunk(guildID discord.GuildID, members []discord.Member) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	s.addMemberChunk(guildID, members)
}

func (s *Session) addMemberChunk(guildID discord.GuildID, members []discord.Member) {
	done, ok := s.Chunks.AddChunk(guildID, members)
	if !ok {
		// duplicate or unsolicited chunk; don't touch state we can't verify
		s.violation("member chunk for guild %v with no materialization in progress", guildID)
		return
	}

	if done {
		s.finishMaterialization(guildID)
	}
}
