package events

import (
	"sync"
	"time"

	"github.com/ReneKroon/ttlcache/v2"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/starshine-sys/guildmirror/common/log"
	"github.com/starshine-sys/guildmirror/stats"
)

// deferTTL bounds how long a replay may wait for its dependency. The server is
// not expected to produce unbounded backlogs, so anything still parked after
// this long is dropped and logged.
const deferTTL = 10 * time.Minute

// DeferredCache holds replays waiting for a dependency to materialize, keyed
// by (dependency kind, dependency ID). Replays for one key run in the order
// they were deferred in.
type DeferredCache struct {
	cache *ttlcache.Cache
	stats *stats.Client
}

type replayList struct {
	mu      sync.Mutex
	replays []func()
	drained bool
}

func newDeferredCache(st *stats.Client) *DeferredCache {
	c := &DeferredCache{
		cache: ttlcache.NewCache(),
		stats: st,
	}
	c.cache.SetTTL(deferTTL)
	c.cache.SetExpirationCallback(func(key string, value interface{}) {
		list, ok := value.(*replayList)
		if !ok {
			return
		}

		list.mu.Lock()
		n := len(list.replays)
		drained := list.drained
		list.mu.Unlock()

		if drained || n == 0 {
			return
		}

		log.Warnf("dropping %v deferred replays for %v: dependency never materialized", n, key)
		st.AddDropped(n)
	})
	return c
}

func deferKey(kind DependencyKind, id discord.Snowflake) string {
	return kind.String() + ":" + id.String()
}

// Defer parks replay until the given dependency materializes.
func (c *DeferredCache) Defer(kind DependencyKind, id discord.Snowflake, replay func()) {
	key := deferKey(kind, id)

	var list *replayList
	if v, err := c.cache.Get(key); err == nil {
		list = v.(*replayList)
	} else {
		list = &replayList{}
	}

	list.mu.Lock()
	list.replays = append(list.replays, replay)
	list.mu.Unlock()

	// also refreshes the TTL
	c.cache.Set(key, list)

	c.stats.IncDeferred()
	log.Debugf("deferred replay on %v %v", kind, id)
}

// Run executes all replays waiting on the given dependency, in the order they
// were deferred, and clears the key. Replays may call Defer again for a
// different dependency.
func (c *DeferredCache) Run(kind DependencyKind, id discord.Snowflake) {
	key := deferKey(kind, id)

	v, err := c.cache.Get(key)
	if err != nil {
		return
	}
	list := v.(*replayList)

	list.mu.Lock()
	list.drained = true
	replays := list.replays
	list.replays = nil
	list.mu.Unlock()

	c.cache.Remove(key)

	for _, replay := range replays {
		replay()
		c.stats.IncReplayed()
	}
}

// Count returns the number of dependency keys with parked replays.
func (c *DeferredCache) Count() int {
	return c.cache.Count()
}

// Close drops all parked replays.
func (c *DeferredCache) Close() {
	c.cache.Purge()
}
