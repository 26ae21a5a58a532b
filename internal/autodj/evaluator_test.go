package autodj

import (
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/friendsincode/bragi_autodj/internal/models"
	"github.com/friendsincode/bragi_autodj/internal/rules"
	"github.com/friendsincode/bragi_autodj/internal/selector"
)

func testEvaluator(seed int64) *Evaluator {
	return New(selector.NewSeeded(seed), zerolog.Nop())
}

func songsPlaylist(id string, weight int) models.Playlist {
	return models.Playlist{
		ID:           id,
		Name:         id,
		Type:         models.TypeDefault,
		Source:       models.SourceSongs,
		Order:        models.OrderSequential,
		IsEnabled:    true,
		StoredWeight: weight,
		MediaItems: []models.PlaylistMedia{
			{ID: "pm-" + id, MediaID: "media-" + id},
		},
	}
}

func tick(now time.Time) TickContext {
	return TickContext{Now: now}
}

var noon = time.Date(2026, time.March, 11, 12, 0, 0, 0, time.UTC)

func TestEvaluateNothingDue(t *testing.T) {
	e := testEvaluator(1)

	d := e.Evaluate(nil, tick(noon), nil)
	if !d.None {
		t.Error("empty playlist set should yield a nothing-due decision")
	}

	disabled := songsPlaylist("a", 3)
	disabled.IsEnabled = false
	d = e.Evaluate([]models.Playlist{disabled}, tick(noon), nil)
	if !d.None {
		t.Error("disabled playlists should yield nothing due")
	}
}

func TestEvaluatePicksPlayableDuePlaylist(t *testing.T) {
	e := testEvaluator(1)

	d := e.Evaluate([]models.Playlist{songsPlaylist("a", 3)}, tick(noon), map[string]*selector.TrackState{})
	if d.None {
		t.Fatal("expected a decision")
	}
	if d.PlaylistID != "a" || d.TrackID != "media-a" {
		t.Errorf("decision = %+v, want playlist a / media-a", d)
	}
	if d.SuppressMetadata {
		t.Error("non-jingle decision should not suppress metadata")
	}
}

func TestEvaluateJingleTagsSuppression(t *testing.T) {
	e := testEvaluator(1)

	jingle := songsPlaylist("jingle", 3)
	jingle.IsJingle = true

	d := e.Evaluate([]models.Playlist{jingle}, tick(noon), map[string]*selector.TrackState{})
	if d.None || !d.SuppressMetadata {
		t.Errorf("jingle decision = %+v, want suppress metadata", d)
	}
}

func TestEvaluateWeightedDistribution(t *testing.T) {
	e := testEvaluator(42)

	playlists := []models.Playlist{songsPlaylist("light", 1), songsPlaylist("heavy", 3)}

	heavy := 0
	for i := 0; i < 4000; i++ {
		d := e.Evaluate(playlists, tick(noon), map[string]*selector.TrackState{})
		if d.None {
			t.Fatal("expected a decision")
		}
		if d.PlaylistID == "heavy" {
			heavy++
		}
	}
	if heavy < 2850 || heavy > 3150 {
		t.Errorf("weight-3 playlist chosen %d/4000 times, want within [2850,3150]", heavy)
	}
}

func TestEvaluateInterruptCollapses(t *testing.T) {
	e := testEvaluator(1)

	interrupt := songsPlaylist("interrupt", 1)
	interrupt.InterruptOtherSongs = true

	playlists := []models.Playlist{songsPlaylist("heavy", 100), interrupt}
	for i := 0; i < 50; i++ {
		d := e.Evaluate(playlists, tick(noon), map[string]*selector.TrackState{})
		if d.PlaylistID != "interrupt" {
			t.Fatalf("draw %d picked %s, interrupting playlist must always win", i, d.PlaylistID)
		}
	}
}

func TestEvaluateInterruptTieBreak(t *testing.T) {
	e := testEvaluator(1)

	a := songsPlaylist("b-heavy", 5)
	a.InterruptOtherSongs = true
	b := songsPlaylist("a-light", 2)
	b.InterruptOtherSongs = true
	c := songsPlaylist("a-heavy", 5)
	c.InterruptOtherSongs = true

	// Highest weight first, then lowest ID among equals.
	d := e.Evaluate([]models.Playlist{a, b, c}, tick(noon), map[string]*selector.TrackState{})
	if d.PlaylistID != "a-heavy" {
		t.Errorf("picked %s, want a-heavy (weight tie broken by lowest id)", d.PlaylistID)
	}
}

func TestEvaluateSkipsInvalidConfig(t *testing.T) {
	e := testEvaluator(1)

	broken := songsPlaylist("broken", 3)
	broken.Type = "bogus"

	d := e.Evaluate([]models.Playlist{broken, songsPlaylist("ok", 3)}, tick(noon), map[string]*selector.TrackState{})
	if d.None {
		t.Fatal("valid playlist should still be chosen")
	}
	if d.PlaylistID != "ok" {
		t.Errorf("picked %s, want ok", d.PlaylistID)
	}
	if len(d.SkippedPlaylists) != 1 || d.SkippedPlaylists[0] != "broken" {
		t.Errorf("skipped = %v, want [broken]", d.SkippedPlaylists)
	}
}

func TestEvaluateRemotePlaylistHasNoTrack(t *testing.T) {
	e := testEvaluator(1)

	remote := models.Playlist{
		ID:        "remote",
		Name:      "remote",
		Type:      models.TypeDefault,
		Source:    models.SourceRemoteURL,
		RemoteURL: "http://relay.example.com/stream.mp3",
		Order:     models.OrderSequential,
		IsEnabled: true,
	}

	d := e.Evaluate([]models.Playlist{remote}, tick(noon), map[string]*selector.TrackState{})
	if d.None || d.PlaylistID != "remote" {
		t.Fatalf("decision = %+v, want remote playlist", d)
	}
	if d.TrackID != "" {
		t.Errorf("remote decision carries track %q, want none", d.TrackID)
	}
}

func TestEvaluateFallsBackWhenTrackSelectionFails(t *testing.T) {
	e := testEvaluator(1)

	single := songsPlaylist("single", 100)
	single.PlaySingleTrack = true

	// The single-track playlist already consumed its pick for this due
	// period, so selection fails and the evaluator must move on.
	states := map[string]*selector.TrackState{
		"single": {SingleTrackDone: true, WasDue: true},
	}

	d := e.Evaluate([]models.Playlist{single, songsPlaylist("ok", 1)}, tick(noon), states)
	if d.None {
		t.Fatal("expected fallback decision from the other playlist")
	}
	if d.PlaylistID != "ok" {
		t.Errorf("picked %s, want ok", d.PlaylistID)
	}
}

func TestEvaluateReportsInvalidOrderInSkipped(t *testing.T) {
	e := testEvaluator(1)

	broken := songsPlaylist("broken", 3)
	broken.Order = "zigzag"

	d := e.Evaluate([]models.Playlist{broken}, tick(noon), map[string]*selector.TrackState{})
	if !d.None {
		t.Fatalf("decision = %+v, want nothing due", d)
	}
	if len(d.SkippedPlaylists) != 1 || d.SkippedPlaylists[0] != "broken" {
		t.Errorf("skipped = %v, want [broken]", d.SkippedPlaylists)
	}
}

func TestSingleTrackReArmsOnNewDuePeriod(t *testing.T) {
	e := testEvaluator(1)

	single := songsPlaylist("single", 3)
	single.Type = models.TypeScheduled
	single.ScheduleStartTime = 900
	single.ScheduleEndTime = 1700
	single.PlaySingleTrack = true

	states := map[string]*selector.TrackState{}

	d := e.Evaluate([]models.Playlist{single}, tick(noon), states)
	if d.None || d.PlaylistID != "single" {
		t.Fatalf("first in-window decision = %+v, want single", d)
	}

	// Same window: the one pick is spent.
	d = e.Evaluate([]models.Playlist{single}, tick(noon.Add(time.Minute)), states)
	if !d.None {
		t.Fatalf("same-window decision = %+v, want nothing due", d)
	}

	// Out of window.
	evening := time.Date(2026, time.March, 11, 20, 0, 0, 0, time.UTC)
	if d = e.Evaluate([]models.Playlist{single}, tick(evening), states); !d.None {
		t.Fatalf("out-of-window decision = %+v, want nothing due", d)
	}

	// Next day's window starts a new due period and re-arms the pick.
	nextNoon := noon.Add(24 * time.Hour)
	d = e.Evaluate([]models.Playlist{single}, tick(nextNoon), states)
	if d.None || d.PlaylistID != "single" {
		t.Errorf("new-window decision = %+v, want single again", d)
	}
}

func TestEvaluateLoopConsumedExcluded(t *testing.T) {
	e := testEvaluator(1)

	loop := songsPlaylist("loop", 3)
	loop.LoopPlaylistOnce = true

	ctx := tick(noon)
	ctx.Counters = map[string]rules.PlayCounters{
		"loop": {HasPlayed: true, LoopConsumed: true},
	}

	d := e.Evaluate([]models.Playlist{loop}, ctx, map[string]*selector.TrackState{})
	if !d.None {
		t.Error("loop-consumed playlist should be excluded until re-armed")
	}
}

func TestEvaluateForceDueCustomPlaylist(t *testing.T) {
	e := testEvaluator(1)

	custom := songsPlaylist("custom", 3)
	custom.Type = models.TypeAdvanced

	d := e.Evaluate([]models.Playlist{custom}, tick(noon), map[string]*selector.TrackState{})
	if !d.None {
		t.Fatal("custom playlist should never be auto-due")
	}

	ctx := tick(noon)
	ctx.ForceDue = map[string]bool{"custom": true}
	d = e.Evaluate([]models.Playlist{custom}, ctx, map[string]*selector.TrackState{})
	if d.None || d.PlaylistID != "custom" {
		t.Errorf("forced custom playlist decision = %+v, want custom", d)
	}
}
