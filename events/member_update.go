package events

import (
	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
)

func (s *Session) guildMemberUpdate(env Envelope) {
	ev, err := unmarshal[gateway.GuildMemberUpdateEvent](env)
	if err != nil {
		drop(env, err)
		return
	}
	if !ev.GuildID.IsValid() || !ev.User.ID.IsValid() {
		drop(env, errors.New("missing guild or user ID"))
		return
	}

	if s.gate(ev.GuildID, env) {
		return
	}

	s.applyMemberUpdate(ev)
}

// applyMemberUpdate applies a partial member payload: only the fields the
// event carries are touched, everything else keeps its cached value.
func (s *Session) applyMemberUpdate(ev *gateway.GuildMemberUpdateEvent) {
	old, err := s.Cabinet.Member(ev.GuildID, ev.User.ID)
	if err != nil {
		ev := ev
		s.Deferred.Defer(DepUser, discord.Snowflake(ev.User.ID), func() { s.applyMemberUpdate(ev) })
		return
	}

	up := old
	up.RoleIDs = append([]discord.RoleID(nil), old.RoleIDs...)
	ev.UpdateMember(&up)

	var cs ChangeSet
	cs.add("nick", old.Nick, up.Nick)
	cs.add("username", old.User.Username, up.User.Username)
	cs.add("avatar", old.User.Avatar, up.User.Avatar)

	var added, removed []discord.RoleID
	for _, r := range old.RoleIDs {
		if !roleIn(up.RoleIDs, r) {
			removed = append(removed, r)
		}
	}
	for _, r := range up.RoleIDs {
		if !roleIn(old.RoleIDs, r) {
			added = append(added, r)
		}
	}
	if len(added) > 0 || len(removed) > 0 {
		cs.Changes = append(cs.Changes, Change{Field: "roles", Old: old.RoleIDs, New: up.RoleIDs})
	}

	s.Cabinet.UserSet(up.User)
	s.Cabinet.MemberSet(ev.GuildID, up)

	if cs.IsEmpty() {
		return
	}

	s.Handler.Call(&MemberUpdated{GuildID: ev.GuildID, Member: up, Old: old, ChangeSet: cs})
}
