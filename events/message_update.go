package events

import (
	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
)

func (s *Session) messageUpdate(env Envelope) {
	ev, err := unmarshal[gateway.MessageUpdateEvent](env)
	if err != nil {
		drop(env, err)
		return
	}
	if !ev.ID.IsValid() || !ev.ChannelID.IsValid() {
		drop(env, errors.New("missing message or channel ID"))
		return
	}

	if s.gate(ev.GuildID, env) {
		return
	}

	s.applyMessageUpdate(ev)
}

// applyMessageUpdate diffs against the recent-message cache when the message
// is still in it. Update payloads are partial, so cached fields not carried
// by the payload are kept.
func (s *Session) applyMessageUpdate(ev *gateway.MessageUpdateEvent) {
	old, cached := s.cachedMessage(ev.ID)

	up := ev.Message
	if cached {
		if up.Content == "" {
			up.Content = old.Content
		}
		if !up.Author.ID.IsValid() {
			up.Author = old.Author
		}
		if !up.GuildID.IsValid() {
			up.GuildID = old.GuildID
		}

		// a re-delivered edit diffs to nothing
		if up.Content == old.Content && len(up.Embeds) == len(old.Embeds) {
			return
		}
	}

	s.messages.Set(ev.ID.String(), up)

	var oldContent string
	if cached {
		oldContent = old.Content
	}
	s.Handler.Call(&MessageEdited{Message: up, OldContent: oldContent})
}

func (s *Session) cachedMessage(id discord.MessageID) (discord.Message, bool) {
	v, err := s.messages.Get(id.String())
	if err != nil {
		return discord.Message{}, false
	}
	m, ok := v.(discord.Message)
	return m, ok
}
