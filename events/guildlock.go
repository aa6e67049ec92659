package events

import (
	"github.com/diamondburned/arikawa/v3/discord"
)

// guildStatus is the materialization state of a guild.
// Guilds with no recorded status are ready: live events apply directly.
type guildStatus uint8

const (
	guildReady guildStatus = iota
	// guildUnavailable: the guild has been referenced (or reported offline)
	// but no snapshot has been applied yet.
	guildUnavailable
	// guildMaterializing: the snapshot is applied but the bulk member list is
	// still incoming.
	guildMaterializing
)

// GuildLocks gates live events for guilds that are still materializing.
// While a guild is locked, its events are queued verbatim in arrival order
// and replayed in one batch when the guild becomes ready.
//
// Not safe for concurrent use; only ever touched from the session's event
// sequence.
type GuildLocks struct {
	status map[discord.GuildID]guildStatus
	queues map[discord.GuildID][]Envelope
}

func newGuildLocks() *GuildLocks {
	return &GuildLocks{
		status: make(map[discord.GuildID]guildStatus),
		queues: make(map[discord.GuildID][]Envelope),
	}
}

// Status returns the guild's materialization state.
func (l *GuildLocks) Status(id discord.GuildID) guildStatus {
	return l.status[id]
}

// Locked returns whether live events for the guild must be queued.
func (l *GuildLocks) Locked(id discord.GuildID) bool {
	return l.status[id] != guildReady
}

// Lock moves the guild into the given state. An already queued backlog is
// kept: a guild moving from unavailable to materializing must not lose events
// queued while it was unavailable.
func (l *GuildLocks) Lock(id discord.GuildID, status guildStatus) {
	l.status[id] = status
}

// Queue appends a raw event to the guild's backlog.
func (l *GuildLocks) Queue(id discord.GuildID, env Envelope) {
	l.queues[id] = append(l.queues[id], env)
}

// Unlock marks the guild ready and returns its backlog in arrival order.
// The caller must replay the backlog before processing anything newer for
// this guild.
func (l *GuildLocks) Unlock(id discord.GuildID) []Envelope {
	q := l.queues[id]
	delete(l.queues, id)
	delete(l.status, id)
	return q
}

// Forget drops the guild's state and backlog without replaying, for guilds
// that are removed mid-materialization.
func (l *GuildLocks) Forget(id discord.GuildID) {
	delete(l.queues, id)
	delete(l.status, id)
}

// Reset drops all state, for session teardown.
func (l *GuildLocks) Reset() {
	l.status = make(map[discord.GuildID]guildStatus)
	l.queues = make(map[discord.GuildID][]Envelope)
}
