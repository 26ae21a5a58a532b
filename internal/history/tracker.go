/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package history

import (
	"sync"
	"time"

	"github.com/friendsincode/bragi_autodj/internal/rules"
)

type entry struct {
	lastPlayedAt time.Time
	songsSince   int
	loopConsumed bool
}

// Tracker maintains per-playlist play counters between scheduling ticks. The
// evaluator only consumes counters; this is the caller-side bookkeeping it
// recommends updates for.
type Tracker struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// NewTracker creates an empty tracker. Unknown playlists read as never played.
func NewTracker() *Tracker {
	return &Tracker{entries: make(map[string]*entry)}
}

// Snapshot materializes counters for a tick at the given instant.
func (t *Tracker) Snapshot(now time.Time) map[string]rules.PlayCounters {
	t.mu.Lock()
	defer t.mu.Unlock()

	counters := make(map[string]rules.PlayCounters, len(t.entries))
	for id, e := range t.entries {
		counters[id] = rules.PlayCounters{
			HasPlayed:            true,
			SongsSinceLastPlay:   e.songsSince,
			MinutesSinceLastPlay: int(now.Sub(e.lastPlayedAt) / time.Minute),
			LastPlayedHour:       rules.HourBucket(e.lastPlayedAt),
			LastPlayedDay:        rules.DayBucket(e.lastPlayedAt),
			LoopConsumed:         e.loopConsumed,
		}
	}
	return counters
}

// ObservePlay records that the chosen playlist played a song at the given
// instant. Every other tracked playlist's songs-since counter advances by one.
func (t *Tracker) ObservePlay(chosenID string, now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for id, e := range t.entries {
		if id != chosenID {
			e.songsSince++
		}
	}

	chosen := t.entries[chosenID]
	if chosen == nil {
		chosen = &entry{}
		t.entries[chosenID] = chosen
	}
	chosen.lastPlayedAt = now
	chosen.songsSince = 0
}

// MarkLoopConsumed flags a loop-once playlist as having finished its extra
// cycle. It stays excluded from scheduling until re-armed.
func (t *Tracker) MarkLoopConsumed(playlistID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	e := t.entries[playlistID]
	if e == nil {
		e = &entry{}
		t.entries[playlistID] = e
	}
	e.loopConsumed = true
}

// ReArm clears the loop-consumed flag so the playlist can be scheduled again.
func (t *Tracker) ReArm(playlistID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if e := t.entries[playlistID]; e != nil {
		e.loopConsumed = false
	}
}

// Forget drops bookkeeping for playlists no longer in the station snapshot.
func (t *Tracker) Forget(keep map[string]bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for id := range t.entries {
		if !keep[id] {
			delete(t.entries, id)
		}
	}
}
