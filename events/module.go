// Package events implements the gateway session cache: it consumes decoded
// gateway event envelopes and maintains a consistent in-memory mirror of
// guild state, deferring events whose dependencies haven't materialized yet
// and replaying them once they do.
package events

import (
	"fmt"
	"sync"
	"time"

	"github.com/ReneKroon/ttlcache/v2"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/getsentry/sentry-go"
	"github.com/starshine-sys/guildmirror/common/log"
	"github.com/starshine-sys/guildmirror/events/handler"
	"github.com/starshine-sys/guildmirror/stats"
	"github.com/starshine-sys/guildmirror/store"
	"github.com/starshine-sys/guildmirror/store/memory"
)

// keep edited/deleted message context around for this long
const messageTTL = 10 * time.Minute

// Config configures a Session. The zero value is usable.
type Config struct {
	// RequestMembers is called when a guild snapshot declares more members
	// than it carried, and the full member list must be requested out of
	// band. The session stays in the materializing state until the chunks
	// arrive via AddMemberChunk (or the GUILD_MEMBERS_CHUNK route).
	// Fire-and-forget: the session never blocks on it.
	RequestMembers func(guildID discord.GuildID)

	// Stats is an optional metrics client. May be nil.
	Stats *stats.Client

	// Hub is an optional sentry hub for invariant violations and listener
	// panics. May be nil.
	Hub *sentry.Hub
}

// Session owns the cache state for one gateway session. All event processing
// happens on a single logical sequence: SubmitEvent, BeginGuildMaterialization
// and AddMemberChunk serialize on an internal mutex, and everything they
// trigger (lock drains, deferred replays, listener calls) runs synchronously
// inside that critical section. The Cabinet may be read concurrently by
// application code; it only ever observes fully applied states.
type Session struct {
	mu sync.Mutex

	Cabinet store.Cabinet

	// Handler fans out semantic events. Register listeners with AddHandler.
	Handler *handler.Handler

	Deferred *DeferredCache
	Locks    *GuildLocks
	Chunks   *ChunkAggregator

	messages *ttlcache.Cache

	requestMembers func(discord.GuildID)
	stats          *stats.Client
	hub            *sentry.Hub

	closed bool
}

// New creates a new Session.
func New(cfg Config) *Session {
	s := &Session{
		Cabinet:        memory.New().Cabinet(),
		Handler:        handler.New(),
		Deferred:       newDeferredCache(cfg.Stats),
		Locks:          newGuildLocks(),
		Chunks:         newChunkAggregator(),
		messages:       ttlcache.NewCache(),
		requestMembers: cfg.RequestMembers,
		stats:          cfg.Stats,
		hub:            cfg.Hub,
	}
	s.messages.SetTTL(messageTTL)

	if cfg.Hub != nil {
		s.Handler.HandlePanic = func(ev interface{}, recovered interface{}) {
			cfg.Hub.WithScope(func(scope *sentry.Scope) {
				scope.SetExtra("event", ev)
				cfg.Hub.Recover(recovered)
			})
		}
	}

	return s
}

// AddHandler registers a listener for a semantic event type.
// See handler.Handler.AddHandler for the accepted signature.
func (s *Session) AddHandler(fn interface{}) {
	s.Handler.AddHandler(fn)
}

// Close tears down all transient state: queued backlogs, chunk accumulations,
// deferred replays, and the message cache. The Cabinet keeps its contents so
// late readers don't observe a vanished cache.
//
// ttlcache has no Close, so the expiry goroutines of the (purged) message and
// deferred caches run until process exit.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true

	s.Locks.Reset()
	s.Chunks.Reset()
	s.Deferred.Close()
	s.messages.Purge()
	s.stats.Flush()
}

// violation reports a protocol desync or programming error: logged loudly and
// surfaced to sentry, but never fatal, and never partially repaired.
func (s *Session) violation(tmpl string, v ...interface{}) {
	log.Errorf(tmpl, v...)

	if s.hub != nil {
		s.hub.CaptureMessage(fmt.Sprintf(tmpl, v...))
	}
}
