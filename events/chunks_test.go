package events

import (
	"testing"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/go-playground/assert/v2"
)

func memberBatch(n int) []discord.Member {
	batch := make([]discord.Member, n)
	for i := range batch {
		batch[i].User.ID = discord.UserID(i + 1)
	}
	return batch
}

func TestChunkAccumulation(t *testing.T) {
	c := newChunkAggregator()

	c.SetExpected(1, 120)
	assert.Equal(t, c.Expecting(1), true)

	done, ok := c.AddChunk(1, memberBatch(50))
	assert.Equal(t, ok, true)
	assert.Equal(t, done, false)

	done, ok = c.AddChunk(1, memberBatch(50))
	assert.Equal(t, done, false)

	done, ok = c.AddChunk(1, memberBatch(20))
	assert.Equal(t, ok, true)
	assert.Equal(t, done, true)

	st := c.Take(1)
	assert.Equal(t, len(st.batches), 3)
	assert.Equal(t, st.received, 120)
	assert.Equal(t, c.Expecting(1), false)
}

func TestChunkBatchesSurviveBufferReuse(t *testing.T) {
	c := newChunkAggregator()
	c.SetExpected(1, 4)

	buf := memberBatch(2)
	c.AddChunk(1, buf)

	// a caller reusing its buffer must not corrupt accumulated batches
	buf[0].User.ID = 900
	buf[1].User.ID = 901
	c.AddChunk(1, buf)

	st := c.Take(1)
	assert.Equal(t, st.batches[0][0].User.ID, discord.UserID(1))
	assert.Equal(t, st.batches[0][1].User.ID, discord.UserID(2))
	assert.Equal(t, st.batches[1][0].User.ID, discord.UserID(900))
}

func TestChunkWithoutExpectationRejected(t *testing.T) {
	c := newChunkAggregator()

	done, ok := c.AddChunk(1, memberBatch(10))
	assert.Equal(t, ok, false)
	assert.Equal(t, done, false)
}

func TestChunkOverwritesParkedUntilTake(t *testing.T) {
	c := newChunkAggregator()

	c.SetExpected(1, 10)
	c.PushOverwrite(1, 100, discord.Overwrite{ID: 5, Type: discord.OverwriteMember, Allow: 8})
	c.PushOverwrite(1, 101, discord.Overwrite{ID: 6, Type: discord.OverwriteMember})

	// overwrites for a guild without an accumulation are dropped
	c.PushOverwrite(2, 100, discord.Overwrite{ID: 7})

	st := c.Take(1)
	assert.Equal(t, len(st.overwrites), 2)
	assert.Equal(t, st.overwrites[0].ChannelID, discord.ChannelID(100))
	assert.Equal(t, st.overwrites[0].Overwrite.ID, discord.Snowflake(5))

	assert.Equal(t, c.Take(2), (*chunkState)(nil))
}

func TestChunkForget(t *testing.T) {
	c := newChunkAggregator()

	c.SetExpected(1, 10)
	c.Forget(1)

	_, ok := c.AddChunk(1, memberBatch(10))
	assert.Equal(t, ok, false)
}
