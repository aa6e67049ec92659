package events

import (
	"github.com/diamondburned/arikawa/v3/discord"
)

// Change is a single field-level difference between the cached entity and an
// update payload.
type Change struct {
	Field string
	Old   interface{}
	New   interface{}
}

// OverwriteChange is a difference in a channel's permission overwrite set.
// Old is nil for added overwrites; Removed overwrites are inferred by absence
// from the payload, as removal produces no explicit wire signal.
type OverwriteChange struct {
	Overwrite discord.Overwrite
	Old       *discord.Overwrite
	Removed   bool
}

// ChangeSet is the result of applying an update payload to a cached entity.
// An identical payload applied twice yields an empty ChangeSet the second
// time, so re-delivered events produce no duplicate semantic events.
type ChangeSet struct {
	Changes    []Change
	Overwrites []OverwriteChange
}

func (cs ChangeSet) IsEmpty() bool {
	return len(cs.Changes) == 0 && len(cs.Overwrites) == 0
}

// Change returns the change for the given field, if any.
func (cs ChangeSet) Change(field string) (Change, bool) {
	for _, c := range cs.Changes {
		if c.Field == field {
			return c, true
		}
	}
	return Change{}, false
}

func (cs *ChangeSet) add(field string, old, new interface{}) {
	if old == new {
		return
	}
	cs.Changes = append(cs.Changes, Change{Field: field, Old: old, New: new})
}

// diffChannel compares everything except the overwrite set, which is diffed
// separately after subject resolution.
func diffChannel(old, new discord.Channel) ChangeSet {
	var cs ChangeSet
	cs.add("name", old.Name, new.Name)
	cs.add("topic", old.Topic, new.Topic)
	cs.add("nsfw", old.NSFW, new.NSFW)
	cs.add("position", old.Position, new.Position)
	cs.add("parent_id", old.ParentID, new.ParentID)
	cs.add("bitrate", old.VoiceBitrate, new.VoiceBitrate)
	cs.add("user_limit", old.VoiceUserLimit, new.VoiceUserLimit)
	return cs
}

func diffRole(old, new discord.Role) ChangeSet {
	var cs ChangeSet
	cs.add("name", old.Name, new.Name)
	cs.add("color", old.Color, new.Color)
	cs.add("hoist", old.Hoist, new.Hoist)
	cs.add("mentionable", old.Mentionable, new.Mentionable)
	cs.add("permissions", old.Permissions, new.Permissions)
	cs.add("position", old.Position, new.Position)
	return cs
}

func diffGuild(old, new discord.Guild) ChangeSet {
	var cs ChangeSet
	cs.add("name", old.Name, new.Name)
	cs.add("icon", old.Icon, new.Icon)
	cs.add("owner_id", old.OwnerID, new.OwnerID)
	return cs
}

// diffOverwrites computes the symmetric difference between the stored and the
// incoming overwrite sets: entries only in new are added, entries only in old
// are removed, entries in both with different masks are edited.
func diffOverwrites(old, new []discord.Overwrite) []OverwriteChange {
	var changes []OverwriteChange

	for _, o := range old {
		if !overwriteIn(new, o) {
			o := o
			changes = append(changes, OverwriteChange{Overwrite: o, Old: &o, Removed: true})
		}
	}

	for _, n := range new {
		if !overwriteIn(old, n) {
			changes = append(changes, OverwriteChange{Overwrite: n})
			continue
		}

		for i := range old {
			if old[i].ID == n.ID {
				if old[i].Allow != n.Allow || old[i].Deny != n.Deny {
					o := old[i]
					changes = append(changes, OverwriteChange{Overwrite: n, Old: &o})
				}
				break
			}
		}
	}

	return changes
}

func overwriteIn(s []discord.Overwrite, p discord.Overwrite) bool {
	for _, o := range s {
		if p.ID == o.ID {
			return true
		}
	}
	return false
}

func roleIn(s []discord.RoleID, id discord.RoleID) bool {
	for _, r := range s {
		if r == id {
			return true
		}
	}
	return false
}
