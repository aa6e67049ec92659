package events

import (
	"github.com/diamondburned/arikawa/v3/discord"
)

// pendingOverwrite is a channel permission overwrite from a guild snapshot
// whose subject (a member) can only resolve once the member list arrives.
type pendingOverwrite struct {
	ChannelID discord.ChannelID
	Overwrite discord.Overwrite
}

type chunkState struct {
	expected int
	received int

	batches    [][]discord.Member
	overwrites []pendingOverwrite
}

// ChunkAggregator accumulates paginated member list responses for guilds
// whose snapshot declared more members than it carried. Once the running
// total reaches the declared count, the accumulated state is consumed exactly
// once for second-pass materialization.
//
// Not safe for concurrent use; only ever touched from the session's event
// sequence.
type ChunkAggregator struct {
	guilds map[discord.GuildID]*chunkState
}

func newChunkAggregator() *ChunkAggregator {
	return &ChunkAggregator{
		guilds: make(map[discord.GuildID]*chunkState),
	}
}

// SetExpected records the declared member count for a guild and starts
// accumulating.
func (c *ChunkAggregator) SetExpected(id discord.GuildID, total int) {
	c.guilds[id] = &chunkState{expected: total}
}

// Expecting returns whether the guild has an accumulation in progress.
func (c *ChunkAggregator) Expecting(id discord.GuildID) bool {
	return c.guilds[id] != nil
}

// PushOverwrite parks a snapshot overwrite for second-pass application.
func (c *ChunkAggregator) PushOverwrite(id discord.GuildID, channelID discord.ChannelID, ow discord.Overwrite) {
	st := c.guilds[id]
	if st == nil {
		return
	}
	st.overwrites = append(st.overwrites, pendingOverwrite{ChannelID: channelID, Overwrite: ow})
}

// AddChunk adds one member batch. done reports whether the declared count is
// now satisfied; ok is false when no accumulation exists for the guild, which
// callers treat as a protocol violation and a no-op.
func (c *ChunkAggregator) AddChunk(id discord.GuildID, members []discord.Member) (done, ok bool) {
	st := c.guilds[id]
	if st == nil {
		return false, false
	}

	// copy: callers may reuse their batch buffer between calls
	st.batches = append(st.batches, append([]discord.Member(nil), members...))
	st.received += len(members)

	return st.received >= st.expected, true
}

// Take consumes and removes the guild's accumulated state.
func (c *ChunkAggregator) Take(id discord.GuildID) *chunkState {
	st := c.guilds[id]
	delete(c.guilds, id)
	return st
}

// Forget drops the guild's accumulation without consuming it.
func (c *ChunkAggregator) Forget(id discord.GuildID) {
	delete(c.guilds, id)
}

// Reset drops all state, for session teardown.
func (c *ChunkAggregator) Reset() {
	c.guilds = make(map[discord.GuildID]*chunkState)
}
