/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package autodj

import (
	"errors"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/friendsincode/bragi_autodj/internal/models"
	"github.com/friendsincode/bragi_autodj/internal/rules"
	"github.com/friendsincode/bragi_autodj/internal/selector"
)

// TickContext is the caller-supplied scheduling context for one evaluation.
// Counters and ForceDue are keyed by playlist ID; missing counter entries
// mean "never played".
type TickContext struct {
	Now      time.Time
	Counters map[string]rules.PlayCounters
	ForceDue map[string]bool
}

func (c TickContext) counters(playlistID string) rules.PlayCounters {
	if c.Counters == nil {
		return rules.PlayCounters{}
	}
	return c.Counters[playlistID]
}

// Decision is the outcome of one scheduling tick.
type Decision struct {
	None             bool
	PlaylistID       string
	TrackID          string
	SuppressMetadata bool

	// SkippedPlaylists lists playlists excluded this tick because their
	// configuration could not be evaluated.
	SkippedPlaylists []string
}

// NothingDue is the decision for an empty eligible set.
func NothingDue() Decision {
	return Decision{None: true}
}

// Evaluator filters a station's playlists to the eligible set each tick and
// picks the next playlist and track.
type Evaluator struct {
	sel    *selector.Selector
	logger zerolog.Logger
}

// New creates an evaluator.
func New(sel *selector.Selector, logger zerolog.Logger) *Evaluator {
	return &Evaluator{sel: sel, logger: logger}
}

// Evaluate runs one synchronous filter/select/decide pass over the playlist
// snapshot. Track selection state is caller-held, keyed by playlist ID, and
// is mutated for the chosen playlist only.
func (e *Evaluator) Evaluate(playlists []models.Playlist, ctx TickContext, states map[string]*selector.TrackState) Decision {
	eligible, skipped := e.filter(playlists, ctx, states)
	eligible = collapseInterrupts(eligible)

	for len(eligible) > 0 {
		picked, ok := e.sel.PickPlaylist(eligible)
		if !ok {
			break
		}

		// Remote streams carry no track; the playlist itself is the source.
		if picked.Source == models.SourceRemoteURL {
			return Decision{
				PlaylistID:       picked.ID,
				SuppressMetadata: picked.IsJingle,
				SkippedPlaylists: skipped,
			}
		}

		st := states[picked.ID]
		if st == nil {
			st = &selector.TrackState{}
			if states != nil {
				states[picked.ID] = st
			}
		}

		track, err := e.sel.PickTrack(*picked, st)
		if err != nil {
			e.logger.Warn().Err(err).
				Str("playlist_id", picked.ID).
				Str("playlist", picked.Name).
				Msg("playlist excluded from tick")
			// Config errors are reported alongside the filter-stage skips;
			// exhausted or empty playlists are a normal pass-over.
			if errors.Is(err, rules.ErrInvalidPlaylistConfig) {
				skipped = append(skipped, picked.ID)
			}
			eligible = remove(eligible, picked.ID)
			continue
		}

		return Decision{
			PlaylistID:       picked.ID,
			TrackID:          track.MediaID,
			SuppressMetadata: picked.IsJingle,
			SkippedPlaylists: skipped,
		}
	}

	decision := NothingDue()
	decision.SkippedPlaylists = skipped
	return decision
}

func (e *Evaluator) filter(playlists []models.Playlist, ctx TickContext, states map[string]*selector.TrackState) (eligible []*models.Playlist, skipped []string) {
	for i := range playlists {
		p := &playlists[i]

		if !p.IsPlayable() {
			continue
		}

		counters := ctx.counters(p.ID)
		if p.LoopPlaylistOnce && counters.LoopConsumed {
			continue
		}

		due, err := rules.IsDueNow(*p, rules.Context{
			Now:      ctx.Now,
			Counters: counters,
			ForceDue: ctx.ForceDue[p.ID],
		})
		if err != nil {
			e.logger.Warn().Err(err).
				Str("playlist_id", p.ID).
				Str("playlist", p.Name).
				Msg("playlist configuration invalid, skipping for tick")
			skipped = append(skipped, p.ID)
			continue
		}

		// A due-ness rising edge starts a new due period; single-track
		// playlists get their one pick back at that point.
		if p.PlaySingleTrack && states != nil {
			st := states[p.ID]
			if st == nil {
				st = &selector.TrackState{}
				states[p.ID] = st
			}
			if due && !st.WasDue {
				st.ReArm()
			}
			st.WasDue = due
		}

		if due {
			eligible = append(eligible, p)
		}
	}
	return eligible, skipped
}

// collapseInterrupts gives absolute priority to interrupting playlists: when
// any are eligible, the set collapses to a single winner. Ties break by
// highest weight, then lowest ID.
func collapseInterrupts(eligible []*models.Playlist) []*models.Playlist {
	var interrupting []*models.Playlist
	for _, p := range eligible {
		if p.InterruptOtherSongs {
			interrupting = append(interrupting, p)
		}
	}
	if len(interrupting) == 0 {
		return eligible
	}

	sort.SliceStable(interrupting, func(i, j int) bool {
		if interrupting[i].Weight() != interrupting[j].Weight() {
			return interrupting[i].Weight() > interrupting[j].Weight()
		}
		return interrupting[i].ID < interrupting[j].ID
	})
	return interrupting[:1]
}

func remove(eligible []*models.Playlist, id string) []*models.Playlist {
	out := eligible[:0]
	for _, p := range eligible {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}
