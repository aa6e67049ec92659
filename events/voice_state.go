package events

import (
	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
)

func (s *Session) voiceStateUpdate(env Envelope) {
	ev, err := unmarshal[gateway.VoiceStateUpdateEvent](env)
	if err != nil {
		drop(env, err)
		return
	}
	if !ev.UserID.IsValid() {
		drop(env, errors.New("missing user ID"))
		return
	}

	if s.gate(ev.GuildID, env) {
		return
	}

	s.applyVoiceState(ev)
}

func (s *Session) applyVoiceState(ev *gateway.VoiceStateUpdateEvent) {
	if ev.GuildID.IsValid() {
		if _, err := s.Cabinet.Guild(ev.GuildID); err != nil {
			ev := ev
			s.Deferred.Defer(DepGuild, discord.Snowflake(ev.GuildID), func() { s.applyVoiceState(ev) })
			return
		}
	}

	var old *discord.VoiceState
	if vs, err := s.Cabinet.VoiceState(ev.GuildID, ev.UserID); err == nil {
		old = &vs
	}

	if ev.Member != nil {
		s.Cabinet.UserSet(ev.Member.User)
		s.Cabinet.MemberSet(ev.GuildID, *ev.Member)
	}

	// no channel means the member left voice entirely
	if !ev.ChannelID.IsValid() {
		if old == nil {
			return
		}

		s.Cabinet.VoiceStateRemove(ev.GuildID, ev.UserID)
		s.Handler.Call(&VoiceStateChanged{GuildID: ev.GuildID, UserID: ev.UserID, Old: old})
		return
	}

	if old != nil && voiceStateEqual(*old, ev.VoiceState) {
		return
	}

	s.Cabinet.VoiceStateSet(ev.VoiceState)

	vs := ev.VoiceState
	s.Handler.Call(&VoiceStateChanged{GuildID: ev.GuildID, UserID: ev.UserID, Old: old, New: &vs})
}

func voiceStateEqual(a, b discord.VoiceState) bool {
	return a.ChannelID == b.ChannelID &&
		a.Deaf == b.Deaf && a.Mute == b.Mute &&
		a.SelfDeaf == b.SelfDeaf && a.SelfMute == b.SelfMute &&
		a.SelfStream == b.SelfStream && a.SelfVideo == b.SelfVideo &&
		a.Suppress == b.Suppress
}
