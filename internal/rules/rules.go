/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package rules

import (
	"errors"
	"fmt"
	"time"

	"github.com/friendsincode/bragi_autodj/internal/models"
	"github.com/friendsincode/bragi_autodj/internal/timecode"
)

// ErrInvalidPlaylistConfig indicates a playlist whose configuration cannot be
// evaluated (unrecognized enum value or malformed time code). The caller
// should skip the playlist for the current tick, not abort evaluation.
var ErrInvalidPlaylistConfig = errors.New("invalid playlist configuration")

// PlayCounters carries a playlist's play-history bookkeeping into a tick.
// The zero value means "never played".
type PlayCounters struct {
	HasPlayed            bool
	SongsSinceLastPlay   int
	MinutesSinceLastPlay int
	LastPlayedHour       int64 // unix-hour bucket of the last play
	LastPlayedDay        int64 // unix-day bucket of the last play
	LoopConsumed         bool
}

// Context is the scheduling context for one playlist in one tick. Now is
// always passed explicitly so evaluation stays deterministic.
type Context struct {
	Now      time.Time
	Counters PlayCounters
	ForceDue bool
}

// HourBucket returns the unix-hour bucket for an instant.
func HourBucket(t time.Time) int64 {
	return t.Unix() / 3600
}

// DayBucket returns the unix-day bucket for an instant.
func DayBucket(t time.Time) int64 {
	return t.Unix() / 86400
}

// IsDueNow reports whether the playlist's scheduling rule fires at the
// context instant. It does not consider playability; callers combine it with
// Playlist.IsPlayable.
func IsDueNow(p models.Playlist, ctx Context) (bool, error) {
	switch p.Type {
	case models.TypeDefault:
		return true, nil

	case models.TypeScheduled:
		return scheduledDue(p, ctx)

	case models.TypeOncePerXSongs:
		if !ctx.Counters.HasPlayed || p.PlayPerSongs <= 0 {
			return true, nil
		}
		return ctx.Counters.SongsSinceLastPlay >= p.PlayPerSongs, nil

	case models.TypeOncePerXMins:
		if !ctx.Counters.HasPlayed || p.PlayPerMinutes <= 0 {
			return true, nil
		}
		return ctx.Counters.MinutesSinceLastPlay >= p.PlayPerMinutes, nil

	case models.TypeOncePerHour:
		if ctx.Now.Minute() != p.PlayPerHourMinute {
			return false, nil
		}
		if ctx.Counters.HasPlayed && ctx.Counters.LastPlayedHour == HourBucket(ctx.Now) {
			return false, nil
		}
		return true, nil

	case models.TypeOncePerDay:
		return onceDailyDue(p, ctx)

	case models.TypeAdvanced:
		// Advanced playlists are triggered externally, never by the clock.
		return ctx.ForceDue, nil

	default:
		return false, fmt.Errorf("%w: unknown type %q", ErrInvalidPlaylistConfig, p.Type)
	}
}

func scheduledDue(p models.Playlist, ctx Context) (bool, error) {
	days := p.ScheduleDaySet()
	if len(days) > 0 && !days[ctx.Now.Weekday()] {
		return false, nil
	}

	start, end := p.ScheduleStartTime, p.ScheduleEndTime
	if err := validateCode(start); err != nil {
		return false, err
	}
	if err := validateCode(end); err != nil {
		return false, err
	}

	current := timecode.Current(ctx.Now)
	if end < start {
		// Window spans midnight.
		return current >= start || current < end, nil
	}
	return current >= start && current < end, nil
}

func onceDailyDue(p models.Playlist, ctx Context) (bool, error) {
	if !p.PlayOnceDaySet()[ctx.Now.Weekday()] {
		return false, nil
	}
	if err := validateCode(p.PlayOnceTime); err != nil {
		return false, err
	}
	if timecode.Current(ctx.Now) < p.PlayOnceTime {
		return false, nil
	}
	if ctx.Counters.HasPlayed && ctx.Counters.LastPlayedDay == DayBucket(ctx.Now) {
		return false, nil
	}
	return true, nil
}

func validateCode(code int) error {
	if _, err := timecode.Duration(code, code); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPlaylistConfig, err)
	}
	return nil
}
