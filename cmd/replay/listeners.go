package replay

import (
	"github.com/starshine-sys/guildmirror/common/log"
	"github.com/starshine-sys/guildmirror/events"
)

// addLogListeners registers a listener per semantic event type that logs it.
func addLogListeners(sess *events.Session) {
	sess.AddHandler(func(ev *events.GuildReady) {
		log.Infof("guild ready: %v (%v), %v members", ev.Guild.Name, ev.Guild.ID, ev.MemberCount)
	})
	sess.AddHandler(func(ev *events.GuildUpdated) {
		log.Infof("guild %v updated: %v changes", ev.Guild.ID, len(ev.ChangeSet.Changes))
	})
	sess.AddHandler(func(ev *events.GuildUnavailable) {
		log.Infof("guild %v unavailable", ev.GuildID)
	})
	sess.AddHandler(func(ev *events.GuildRemoved) {
		log.Infof("removed from guild %v", ev.GuildID)
	})

	sess.AddHandler(func(ev *events.ChannelCreated) {
		log.Infof("channel #%v (%v) created in %v", ev.Channel.Name, ev.Channel.ID, ev.Channel.GuildID)
	})
	sess.AddHandler(func(ev *events.ChannelNameChanged) {
		log.Infof("channel %v renamed: %q -> %q", ev.Channel.ID, ev.OldName, ev.Channel.Name)
	})
	sess.AddHandler(func(ev *events.ChannelTopicChanged) {
		log.Infof("channel %v topic changed", ev.Channel.ID)
	})
	sess.AddHandler(func(ev *events.ChannelPositionChanged) {
		log.Infof("channel %v moved: %v -> %v", ev.Channel.ID, ev.OldPosition, ev.Channel.Position)
	})
	sess.AddHandler(func(ev *events.ChannelPermissionsChanged) {
		log.Infof("channel %v overwrites changed: %v entries", ev.Channel.ID, len(ev.Changes))
	})
	sess.AddHandler(func(ev *events.ChannelDeleted) {
		log.Infof("channel #%v (%v) deleted", ev.Channel.Name, ev.Channel.ID)
	})

	sess.AddHandler(func(ev *events.RoleCreated) {
		log.Infof("role %q (%v) created in %v", ev.Role.Name, ev.Role.ID, ev.GuildID)
	})
	sess.AddHandler(func(ev *events.RoleUpdated) {
		log.Infof("role %q (%v) updated: %v changes", ev.Role.Name, ev.Role.ID, len(ev.ChangeSet.Changes))
	})
	sess.AddHandler(func(ev *events.RoleDeleted) {
		log.Infof("role %q (%v) deleted from %v", ev.Role.Name, ev.Role.ID, ev.GuildID)
	})

	sess.AddHandler(func(ev *events.MemberJoined) {
		log.Infof("%v joined %v", ev.Member.User.Tag(), ev.GuildID)
	})
	sess.AddHandler(func(ev *events.MemberUpdated) {
		log.Infof("member %v updated in %v", ev.Member.User.Tag(), ev.GuildID)
	})
	sess.AddHandler(func(ev *events.MemberLeft) {
		log.Infof("%v left %v", ev.User.Tag(), ev.GuildID)
	})

	sess.AddHandler(func(ev *events.MessageCreated) {
		log.Debugf("message %v created in %v", ev.Message.ID, ev.Message.ChannelID)
	})
	sess.AddHandler(func(ev *events.MessageEdited) {
		log.Debugf("message %v edited in %v", ev.Message.ID, ev.Message.ChannelID)
	})
	sess.AddHandler(func(ev *events.MessageDeleted) {
		log.Debugf("message %v deleted in %v", ev.ID, ev.ChannelID)
	})

	sess.AddHandler(func(ev *events.VoiceStateChanged) {
		switch {
		case ev.Old == nil:
			log.Infof("%v joined voice %v in %v", ev.UserID, ev.New.ChannelID, ev.GuildID)
		case ev.New == nil:
			log.Infof("%v left voice %v in %v", ev.UserID, ev.Old.ChannelID, ev.GuildID)
		default:
			log.Infof("voice state for %v changed in %v", ev.UserID, ev.GuildID)
		}
	})
	sess.AddHandler(func(ev *events.PresenceUpdated) {
		log.Debugf("presence for %v updated in %v", ev.Presence.User.ID, ev.Presence.GuildID)
	})
	sess.AddHandler(func(ev *events.TypingStarted) {
		log.Debugf("%v is typing in %v", ev.UserID, ev.ChannelID)
	})
}
