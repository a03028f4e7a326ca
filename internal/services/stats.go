package services

import (
	"sync/atomic"
	"time"
)

// Stats counts draw state transitions over the life of a session.
type Stats struct {
	SpinsStarted  int64 `json:"spinsStarted"`
	SpinsRevealed int64 `json:"spinsRevealed"`
	Committed     int64 `json:"committed"`
	Discarded     int64 `json:"discarded"`
	Undone        int64 `json:"undone"`
	StartTime     int64 `json:"startTime"`
	LastUpdate    int64 `json:"lastUpdate"`
}

// statsRecorder is read without the service lock, hence the atomics.
type statsRecorder struct {
	stats Stats
}

func newStatsRecorder() *statsRecorder {
	r := &statsRecorder{}
	r.reset()
	return r
}

func (r *statsRecorder) add(counter *int64) {
	atomic.AddInt64(counter, 1)
	atomic.StoreInt64(&r.stats.LastUpdate, time.Now().UnixNano())
}

func (r *statsRecorder) spinStarted()  { r.add(&r.stats.SpinsStarted) }
func (r *statsRecorder) spinRevealed() { r.add(&r.stats.SpinsRevealed) }
func (r *statsRecorder) committed()    { r.add(&r.stats.Committed) }
func (r *statsRecorder) discarded()    { r.add(&r.stats.Discarded) }
func (r *statsRecorder) undone()       { r.add(&r.stats.Undone) }

func (r *statsRecorder) reset() {
	now := time.Now().UnixNano()
	atomic.StoreInt64(&r.stats.SpinsStarted, 0)
	atomic.StoreInt64(&r.stats.SpinsRevealed, 0)
	atomic.StoreInt64(&r.stats.Committed, 0)
	atomic.StoreInt64(&r.stats.Discarded, 0)
	atomic.StoreInt64(&r.stats.Undone, 0)
	atomic.StoreInt64(&r.stats.StartTime, now)
	atomic.StoreInt64(&r.stats.LastUpdate, now)
}

// snapshot returns a copy of the counters.
func (r *statsRecorder) snapshot() Stats {
	return Stats{
		SpinsStarted:  atomic.LoadInt64(&r.stats.SpinsStarted),
		SpinsRevealed: atomic.LoadInt64(&r.stats.SpinsRevealed),
		Committed:     atomic.LoadInt64(&r.stats.Committed),
		Discarded:     atomic.LoadInt64(&r.stats.Discarded),
		Undone:        atomic.LoadInt64(&r.stats.Undone),
		StartTime:     atomic.LoadInt64(&r.stats.StartTime),
		LastUpdate:    atomic.LoadInt64(&r.stats.LastUpdate),
	}
}
