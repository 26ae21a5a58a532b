/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package automation

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/friendsincode/bragi_autodj/internal/autodj"
	"github.com/friendsincode/bragi_autodj/internal/events"
	"github.com/friendsincode/bragi_autodj/internal/history"
	"github.com/friendsincode/bragi_autodj/internal/models"
	"github.com/friendsincode/bragi_autodj/internal/rules"
	"github.com/friendsincode/bragi_autodj/internal/selector"
	"github.com/friendsincode/bragi_autodj/internal/store"
	"github.com/friendsincode/bragi_autodj/internal/telemetry"
)

// stationState bundles the per-station bookkeeping that survives between
// ticks. Its mutex serializes evaluations for the station: the ticker loop
// and on-demand API evaluations may arrive concurrently, and the evaluator
// mutates track state without locking of its own.
type stationState struct {
	mu       sync.Mutex
	tracker  *history.Tracker
	tracks   map[string]*selector.TrackState
	forceDue map[string]bool
}

// drainForceDue empties the pending force-due set; force triggers fire once.
// Caller holds the state mutex.
func (s *stationState) drainForceDue() map[string]bool {
	if len(s.forceDue) == 0 {
		return nil
	}
	pending := s.forceDue
	s.forceDue = make(map[string]bool)
	return pending
}

// Director drives the AutoDJ tick loop across all stations.
type Director struct {
	store  *store.Store
	bus    *events.Bus
	eval   *autodj.Evaluator
	logger zerolog.Logger
	tick   time.Duration

	mu       sync.Mutex
	stations map[string]*stationState
}

// NewDirector creates the automation director.
func NewDirector(st *store.Store, bus *events.Bus, eval *autodj.Evaluator, tick time.Duration, logger zerolog.Logger) *Director {
	return &Director{
		store:    st,
		bus:      bus,
		eval:     eval,
		logger:   logger,
		tick:     tick,
		stations: make(map[string]*stationState),
	}
}

// Run executes the director loop until context cancellation.
func (d *Director) Run(ctx context.Context) error {
	d.logger.Info().Dur("tick", d.tick).Msg("autodj director started")
	ticker := time.NewTicker(d.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.logger.Info().Msg("autodj director stopped")
			return ctx.Err()
		case <-ticker.C:
			if err := d.tickAll(ctx); err != nil {
				d.logger.Error().Err(err).Msg("autodj tick failed")
			}
		}
	}
}

func (d *Director) tickAll(ctx context.Context) error {
	stations, err := d.store.Stations(ctx)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	for _, station := range stations {
		if _, err := d.EvaluateStation(ctx, station.ID, now); err != nil {
			d.logger.Warn().Err(err).Str("station_id", station.ID).Msg("station evaluation failed")
		}
	}
	return nil
}

// EvaluateStation runs one scheduling tick for a station and applies the
// resulting bookkeeping.
func (d *Director) EvaluateStation(ctx context.Context, stationID string, now time.Time) (autodj.Decision, error) {
	snapshot, err := d.store.StationSnapshot(ctx, stationID)
	if err != nil {
		return autodj.NothingDue(), err
	}

	decision := d.evaluateSnapshot(snapshot, now)

	if !decision.None {
		play := &models.PlayHistory{
			StationID:        snapshot.ID,
			PlaylistID:       decision.PlaylistID,
			MediaID:          decision.TrackID,
			SuppressMetadata: decision.SuppressMetadata,
			StartedAt:        now,
		}
		if media := findMedia(snapshot, decision.PlaylistID, decision.TrackID); media != nil {
			play.Artist = media.Artist
			play.Title = media.Title
		}
		if err := d.store.RecordPlay(ctx, play); err != nil {
			d.logger.Warn().Err(err).Str("station_id", snapshot.ID).Msg("failed to record play history")
		}
	}

	return decision, nil
}

func findMedia(snapshot models.Station, playlistID, mediaID string) *models.MediaFile {
	if mediaID == "" {
		return nil
	}
	for i := range snapshot.Playlists {
		if snapshot.Playlists[i].ID != playlistID {
			continue
		}
		for _, item := range snapshot.Playlists[i].MediaItems {
			if item.MediaID == mediaID {
				return item.Media
			}
		}
	}
	return nil
}

// evaluateSnapshot is the DB-free core of a tick: evaluate, update counters,
// publish events, count metrics. The station mutex is held throughout so
// concurrent ticker and API evaluations cannot interleave on one station.
func (d *Director) evaluateSnapshot(snapshot models.Station, now time.Time) autodj.Decision {
	state := d.stationState(snapshot.ID)
	state.mu.Lock()
	defer state.mu.Unlock()

	keep := make(map[string]bool, len(snapshot.Playlists))
	for i := range snapshot.Playlists {
		keep[snapshot.Playlists[i].ID] = true
	}
	state.tracker.Forget(keep)

	telemetry.Evaluations.WithLabelValues(snapshot.ShortName()).Inc()

	tickCtx := autodj.TickContext{
		Now:      now,
		Counters: state.tracker.Snapshot(now),
		ForceDue: state.drainForceDue(),
	}

	decision := d.eval.Evaluate(snapshot.Playlists, tickCtx, state.tracks)

	for _, skipped := range decision.SkippedPlaylists {
		telemetry.SkippedPlaylists.WithLabelValues(snapshot.ShortName()).Inc()
		d.bus.Publish(events.EventPlaylistSkipped, events.Payload{
			"station_id":  snapshot.ID,
			"playlist_id": skipped,
		})
	}

	if decision.None {
		telemetry.Decisions.WithLabelValues(snapshot.ShortName(), telemetry.OutcomeNothingDue).Inc()
		d.bus.Publish(events.EventDecision, events.Payload{
			"station_id": snapshot.ID,
			"none":       true,
		})
		return decision
	}

	state.tracker.ObservePlay(decision.PlaylistID, now)
	d.settleLoopOnce(snapshot, state, decision.PlaylistID)

	outcome := telemetry.OutcomePlay
	if decision.TrackID == "" {
		outcome = telemetry.OutcomeRemote
	}
	telemetry.Decisions.WithLabelValues(snapshot.ShortName(), outcome).Inc()

	payload := events.Payload{
		"station_id":        snapshot.ID,
		"playlist_id":       decision.PlaylistID,
		"track_id":          decision.TrackID,
		"suppress_metadata": decision.SuppressMetadata,
	}
	d.bus.Publish(events.EventDecision, payload)

	// Jingles play but stay out of the now-playing channel.
	if !decision.SuppressMetadata {
		d.bus.Publish(events.EventNowPlaying, payload)
	}

	return decision
}

// settleLoopOnce marks a loop-once playlist as consumed after its second
// full cycle completes.
func (d *Director) settleLoopOnce(snapshot models.Station, state *stationState, playlistID string) {
	for i := range snapshot.Playlists {
		p := &snapshot.Playlists[i]
		if p.ID != playlistID || !p.LoopPlaylistOnce {
			continue
		}
		if st := state.tracks[p.ID]; st != nil && st.CyclesCompleted >= 2 {
			state.tracker.MarkLoopConsumed(p.ID)
		}
	}
}

// PlaylistStatus reports one playlist's standing for eligibility inspection.
type PlaylistStatus struct {
	PlaylistID string `json:"playlist_id"`
	Name       string `json:"name"`
	Playable   bool   `json:"playable"`
	Due        bool   `json:"due"`
	Weight     int    `json:"weight"`
	Error      string `json:"error,omitempty"`
}

// InspectStation reports each playlist's eligibility at the given instant
// without advancing any scheduling state.
func (d *Director) InspectStation(ctx context.Context, stationID string, now time.Time) ([]PlaylistStatus, error) {
	snapshot, err := d.store.StationSnapshot(ctx, stationID)
	if err != nil {
		return nil, err
	}

	state := d.stationState(snapshot.ID)
	state.mu.Lock()
	counters := state.tracker.Snapshot(now)
	state.mu.Unlock()

	statuses := make([]PlaylistStatus, 0, len(snapshot.Playlists))
	for i := range snapshot.Playlists {
		p := &snapshot.Playlists[i]
		status := PlaylistStatus{
			PlaylistID: p.ID,
			Name:       p.Name,
			Playable:   p.IsPlayable(),
			Weight:     p.Weight(),
		}

		due, err := rules.IsDueNow(*p, rules.Context{Now: now, Counters: counters[p.ID]})
		if err != nil {
			status.Error = err.Error()
		} else {
			status.Due = due && status.Playable && !(p.LoopPlaylistOnce && counters[p.ID].LoopConsumed)
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

// ForceDue arms a playlist (typically type custom) to be treated as due on
// the station's next tick.
func (d *Director) ForceDue(stationID, playlistID string) {
	state := d.stationState(stationID)
	state.mu.Lock()
	state.forceDue[playlistID] = true
	state.mu.Unlock()
}

// ReArmLoop re-enables a loop-once playlist after external re-arming.
func (d *Director) ReArmLoop(stationID, playlistID string) {
	state := d.stationState(stationID)
	state.mu.Lock()
	state.tracker.ReArm(playlistID)
	if st := state.tracks[playlistID]; st != nil {
		st.ReArm()
	}
	state.mu.Unlock()
}

// stationState returns the per-station bookkeeping, creating it on first use.
// The director mutex guards only the stations map itself.
func (d *Director) stationState(stationID string) *stationState {
	d.mu.Lock()
	defer d.mu.Unlock()

	state := d.stations[stationID]
	if state == nil {
		state = &stationState{
			tracker:  history.NewTracker(),
			tracks:   make(map[string]*selector.TrackState),
			forceDue: make(map[string]bool),
		}
		d.stations[stationID] = state
	}
	return state
}
