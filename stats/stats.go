// Package stats submits ingestion metrics to InfluxDB.
package stats

import (
	"runtime"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/starshine-sys/guildmirror/common/log"
)

// Client is an InfluxDB client. A nil *Client is valid and does nothing, so
// callers never need to check whether metrics are configured.
type Client struct {
	Client api.WriteAPI

	mu     sync.Mutex
	events map[string]uint32

	deferred uint32
	replayed uint32
	dropped  uint32
	queued   uint32
}

// New creates a new client and starts its submit loop.
func New(url, token, organization, database string) *Client {
	c := &Client{
		events: make(map[string]uint32),
	}

	c.Client = influxdb2.NewClientWithOptions(url, token,
		influxdb2.DefaultOptions().SetBatchSize(20)).WriteAPI(organization, database)

	go c.submit()

	return c
}

// RegisterEvent registers a single received event by wire type name.
func (c *Client) RegisterEvent(name string) {
	if c == nil {
		return
	}

	c.mu.Lock()
	c.events[name]++
	c.mu.Unlock()
}

// IncDeferred increments the count of replays parked on a missing dependency.
func (c *Client) IncDeferred() {
	if c == nil {
		return
	}

	c.mu.Lock()
	c.deferred++
	c.mu.Unlock()
}

// IncReplayed increments the count of replays executed after their dependency
// materialized.
func (c *Client) IncReplayed() {
	if c == nil {
		return
	}

	c.mu.Lock()
	c.replayed++
	c.mu.Unlock()
}

// AddDropped adds n to the count of replays dropped because their dependency
// never materialized.
func (c *Client) AddDropped(n int) {
	if c == nil {
		return
	}

	c.mu.Lock()
	c.dropped += uint32(n)
	c.mu.Unlock()
}

// IncQueued increments the count of events queued behind a guild still
// materializing.
func (c *Client) IncQueued() {
	if c == nil {
		return
	}

	c.mu.Lock()
	c.queued++
	c.mu.Unlock()
}

func (c *Client) submit() {
	if c == nil {
		return
	}

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		events := c.events
		c.events = make(map[string]uint32)

		var total uint32
		fields := make(map[string]interface{}, len(events)+4)
		for name, count := range events {
			fields[name] = count
			total += count
		}
		fields["deferred"] = c.deferred
		fields["replayed"] = c.replayed
		fields["dropped"] = c.dropped
		fields["queued"] = c.queued
		c.deferred, c.replayed, c.dropped, c.queued = 0, 0, 0, 0
		c.mu.Unlock()

		stats := runtime.MemStats{}
		runtime.ReadMemStats(&stats)
		fields["heap_used"] = stats.Alloc
		fields["heap_sys"] = stats.Sys
		fields["goroutines"] = runtime.NumGoroutine()

		if vm, err := mem.VirtualMemory(); err == nil {
			fields["sys_mem_used"] = vm.Used
			fields["sys_mem_percent"] = vm.UsedPercent
		}

		c.Client.WritePoint(influxdb2.NewPoint("gateway", nil, fields, time.Now().UTC()))

		log.Debugf("submitted metrics: %v events this minute, %v heap used", total, humanize.Bytes(stats.Alloc))
	}
}

// Flush blocks until all pending points are written.
func (c *Client) Flush() {
	if c == nil {
		return
	}

	c.Client.Flush()
}
