package events

import (
	"testing"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/go-playground/assert/v2"
)

func sendMessage(t *testing.T, s *Session, id discord.MessageID, content string) {
	t.Helper()

	s.SubmitEvent(env(t, "MESSAGE_CREATE", gateway.MessageCreateEvent{
		Message: discord.Message{
			ID:        id,
			ChannelID: 100,
			GuildID:   1,
			Content:   content,
			Author:    discord.User{ID: 10, Username: "author"},
		},
	}))
}

func TestMessageEditCarriesOldContent(t *testing.T) {
	s := testSession()
	setupChannel(t, s)

	var got []interface{}
	record[MessageEdited](s, &got)

	sendMessage(t, s, 1000, "original")

	s.SubmitEvent(env(t, "MESSAGE_UPDATE", gateway.MessageUpdateEvent{
		Message: discord.Message{ID: 1000, ChannelID: 100, Content: "edited"},
	}))

	assert.Equal(t, len(got), 1)
	ed := got[0].(*MessageEdited)
	assert.Equal(t, ed.OldContent, "original")
	assert.Equal(t, ed.Message.Content, "edited")
	// partial payloads inherit cached fields
	assert.Equal(t, ed.Message.Author.ID, discord.UserID(10))
	assert.Equal(t, ed.Message.GuildID, discord.GuildID(1))
}

func TestMessageEditRedeliveredIsNoop(t *testing.T) {
	s := testSession()
	setupChannel(t, s)

	var got []interface{}
	record[MessageEdited](s, &got)

	sendMessage(t, s, 1000, "original")

	edit := env(t, "MESSAGE_UPDATE", gateway.MessageUpdateEvent{
		Message: discord.Message{ID: 1000, ChannelID: 100, Content: "edited"},
	})
	s.SubmitEvent(edit)
	s.SubmitEvent(edit)

	assert.Equal(t, len(got), 1)
}

func TestMessageEditOfUncachedMessage(t *testing.T) {
	s := testSession()
	setupChannel(t, s)

	var got []interface{}
	record[MessageEdited](s, &got)

	s.SubmitEvent(env(t, "MESSAGE_UPDATE", gateway.MessageUpdateEvent{
		Message: discord.Message{ID: 9999, ChannelID: 100, Content: "edited"},
	}))

	assert.Equal(t, len(got), 1)
	assert.Equal(t, got[0].(*MessageEdited).OldContent, "")
}

func TestMessageDeleteCarriesCachedMessage(t *testing.T) {
	s := testSession()
	setupChannel(t, s)

	var got []interface{}
	record[MessageDeleted](s, &got)

	sendMessage(t, s, 1000, "going away")

	s.SubmitEvent(env(t, "MESSAGE_DELETE", gateway.MessageDeleteEvent{
		ID: 1000, ChannelID: 100, GuildID: 1,
	}))

	assert.Equal(t, len(got), 1)
	del := got[0].(*MessageDeleted)
	assert.NotEqual(t, del.Cached, nil)
	assert.Equal(t, del.Cached.Content, "going away")

	// second delete for the same ID finds nothing cached
	s.SubmitEvent(env(t, "MESSAGE_DELETE", gateway.MessageDeleteEvent{
		ID: 1000, ChannelID: 100, GuildID: 1,
	}))
	assert.Equal(t, got[1].(*MessageDeleted).Cached, (*discord.Message)(nil))
}

func TestMessageBeforeChannelIsDeferred(t *testing.T) {
	s := testSession()
	readyGuild(t, s, 1)

	var got []interface{}
	record[MessageCreated](s, &got)

	sendMessage(t, s, 1000, "early")
	assert.Equal(t, len(got), 0)

	s.SubmitEvent(env(t, "CHANNEL_CREATE", gateway.ChannelCreateEvent{
		Channel: discord.Channel{ID: 100, GuildID: 1, Name: "general"},
	}))

	assert.Equal(t, len(got), 1)
	assert.Equal(t, got[0].(*MessageCreated).Message.Content, "early")
}
