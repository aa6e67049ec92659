package events

import (
	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/gateway"
)

func (s *Session) presenceUpdate(env Envelope) {
	ev, err := unmarshal[gateway.PresenceUpdateEvent](env)
	if err != nil {
		drop(env, err)
		return
	}
	if !ev.User.ID.IsValid() {
		drop(env, errors.New("missing user ID"))
		return
	}

	if s.gate(ev.GuildID, env) {
		return
	}

	// presence payloads carry a partial user; fold any carried fields into
	// the cached one
	if old, err := s.Cabinet.User(ev.User.ID); err == nil {
		up := old
		if ev.User.Username != "" {
			up.Username = ev.User.Username
		}
		if ev.User.Discriminator != "" {
			up.Discriminator = ev.User.Discriminator
		}
		if ev.User.Avatar != "" {
			up.Avatar = ev.User.Avatar
		}
		if up.Username != old.Username || up.Discriminator != old.Discriminator || up.Avatar != old.Avatar {
			s.Cabinet.UserSet(up)
		}
	}

	s.Handler.Call(&PresenceUpdated{Presence: ev.Presence})
}

func (s *Session) typingStart(env Envelope) {
	ev, err := unmarshal[gateway.TypingStartEvent](env)
	if err != nil {
		drop(env, err)
		return
	}
	if !ev.ChannelID.IsValid() || !ev.UserID.IsValid() {
		drop(env, errors.New("missing channel or user ID"))
		return
	}

	if s.gate(ev.GuildID, env) {
		return
	}

	s.Handler.Call(&TypingStarted{ChannelID: ev.ChannelID, GuildID: ev.GuildID, UserID: ev.UserID})
}
