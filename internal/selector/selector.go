/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package selector

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"github.com/friendsincode/bragi_autodj/internal/models"
	"github.com/friendsincode/bragi_autodj/internal/rules"
)

var (
	// ErrNoPlayableMedia indicates a track was requested from an empty playlist.
	ErrNoPlayableMedia = errors.New("no playable media in playlist")

	// ErrPlaylistExhausted indicates the playlist has finished its cycle
	// (single-track or loop-once) and must be re-armed before offering more.
	ErrPlaylistExhausted = errors.New("playlist exhausted for this cycle")
)

// Selector performs weighted random selection. The rand source is injected so
// results are reproducible given a seed, and guarded so one selector can be
// shared across concurrently evaluated stations.
type Selector struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func (s *Selector) intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}

func (s *Selector) shuffle(n int, swap func(i, j int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rng.Shuffle(n, swap)
}

// New creates a selector around an existing rand source.
func New(rng *rand.Rand) *Selector {
	return &Selector{rng: rng}
}

// NewSeeded creates a selector with a deterministic source.
func NewSeeded(seed int64) *Selector {
	return New(rand.New(rand.NewSource(seed)))
}

// PickPlaylist draws one playlist from the eligible set, weighted by playlist
// weight. An empty set is a valid "nothing due" outcome, not an error.
func (s *Selector) PickPlaylist(eligible []*models.Playlist) (*models.Playlist, bool) {
	if len(eligible) == 0 {
		return nil, false
	}

	total := 0
	for _, p := range eligible {
		total += p.Weight()
	}

	draw := s.intn(total)
	for _, p := range eligible {
		draw -= p.Weight()
		if draw < 0 {
			return p, true
		}
	}
	return eligible[len(eligible)-1], true
}

// ShuffleCursor holds the remaining permutation of one shuffle cycle. It is a
// plain value owned by the caller, threaded back in on every tick.
type ShuffleCursor struct {
	Remaining []string
}

// TrackState carries a playlist's selection bookkeeping between ticks.
type TrackState struct {
	LastMediaID     string
	Cursor          ShuffleCursor
	PickedThisCycle int
	CyclesCompleted int

	// SingleTrackDone marks that a play-single-track playlist consumed its
	// one pick for the current due period.
	SingleTrackDone bool

	// WasDue records the playlist's due-ness on the previous evaluation, so
	// the evaluator can detect the start of a new due period.
	WasDue bool
}

// ReArm resets cycle bookkeeping so an exhausted playlist offers tracks again.
func (st *TrackState) ReArm() {
	st.PickedThisCycle = 0
	st.CyclesCompleted = 0
	st.SingleTrackDone = false
	st.Cursor = ShuffleCursor{}
}

// Exhausted reports whether the playlist should stop offering tracks until
// re-armed: single-track playlists after their one pick, loop-once playlists
// after their second full cycle.
func (st TrackState) Exhausted(p models.Playlist) bool {
	if p.PlaySingleTrack && st.SingleTrackDone {
		return true
	}
	if p.LoopPlaylistOnce && st.CyclesCompleted >= 2 {
		return true
	}
	return false
}

// PickTrack selects the next media item from a playlist according to its
// playback order, mutating the caller-held state.
func (s *Selector) PickTrack(p models.Playlist, st *TrackState) (models.PlaylistMedia, error) {
	items := weightOrdered(p.MediaItems)
	if len(items) == 0 {
		return models.PlaylistMedia{}, fmt.Errorf("%w: playlist %s", ErrNoPlayableMedia, p.ID)
	}

	if st.Exhausted(p) {
		return models.PlaylistMedia{}, fmt.Errorf("%w: playlist %s", ErrPlaylistExhausted, p.ID)
	}

	var picked models.PlaylistMedia
	switch p.Order {
	case models.OrderSequential:
		picked = s.pickSequential(items, st)
	case models.OrderShuffle:
		picked = s.pickShuffled(items, st)
	case models.OrderRandom:
		picked = s.pickRandom(items)
	default:
		return models.PlaylistMedia{}, fmt.Errorf("%w: unknown playback order %q", rules.ErrInvalidPlaylistConfig, p.Order)
	}

	st.LastMediaID = picked.MediaID
	if p.PlaySingleTrack {
		st.SingleTrackDone = true
	}
	st.PickedThisCycle++
	if st.PickedThisCycle >= len(items) {
		st.CyclesCompleted++
		st.PickedThisCycle = 0
	}

	return picked, nil
}

func (s *Selector) pickSequential(items []models.PlaylistMedia, st *TrackState) models.PlaylistMedia {
	if st.LastMediaID == "" {
		return items[0]
	}
	for i, item := range items {
		if item.MediaID == st.LastMediaID {
			return items[(i+1)%len(items)]
		}
	}
	// Last-played track left the playlist; start over.
	return items[0]
}

func (s *Selector) pickShuffled(items []models.PlaylistMedia, st *TrackState) models.PlaylistMedia {
	if len(st.Cursor.Remaining) == 0 {
		st.Cursor = s.reshuffle(items)
	}

	id := st.Cursor.Remaining[0]
	st.Cursor.Remaining = st.Cursor.Remaining[1:]

	for _, item := range items {
		if item.MediaID == id {
			return item
		}
	}
	// Cursor referenced a removed track; rebuild next draw.
	st.Cursor = ShuffleCursor{}
	return items[0]
}

func (s *Selector) reshuffle(items []models.PlaylistMedia) ShuffleCursor {
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.MediaID
	}
	s.shuffle(len(ids), func(i, j int) {
		ids[i], ids[j] = ids[j], ids[i]
	})
	return ShuffleCursor{Remaining: ids}
}

func (s *Selector) pickRandom(items []models.PlaylistMedia) models.PlaylistMedia {
	total := 0
	for _, item := range items {
		total += itemWeight(item)
	}

	draw := s.intn(total)
	for _, item := range items {
		draw -= itemWeight(item)
		if draw < 0 {
			return item
		}
	}
	return items[len(items)-1]
}

func itemWeight(item models.PlaylistMedia) int {
	if item.Weight < 1 {
		return 1
	}
	return item.Weight
}

func weightOrdered(items []models.PlaylistMedia) []models.PlaylistMedia {
	ordered := make([]models.PlaylistMedia, len(items))
	copy(ordered, items)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Weight < ordered[j].Weight
	})
	return ordered
}
