package rules

import (
	"errors"
	"testing"
	"time"

	"github.com/friendsincode/bragi_autodj/internal/models"
)

// at builds a UTC instant on a fixed Wednesday.
func at(hour, minute int) time.Time {
	return time.Date(2026, time.March, 11, hour, minute, 0, 0, time.UTC)
}

func playedAt(t time.Time) PlayCounters {
	return PlayCounters{
		HasPlayed:      true,
		LastPlayedHour: HourBucket(t),
		LastPlayedDay:  DayBucket(t),
	}
}

func TestDefaultAlwaysDue(t *testing.T) {
	due, err := IsDueNow(models.Playlist{Type: models.TypeDefault}, Context{Now: at(3, 12)})
	if err != nil || !due {
		t.Errorf("default playlist due = %v, err = %v; want due", due, err)
	}
}

func TestScheduledWindow(t *testing.T) {
	p := models.Playlist{
		Type:              models.TypeScheduled,
		ScheduleStartTime: 900,
		ScheduleEndTime:   1700,
	}

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"inside window", at(12, 0), true},
		{"before window", at(8, 0), false},
		{"after window", at(22, 0), false},
		{"start is inclusive", at(9, 0), true},
		{"end is exclusive", at(17, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			due, err := IsDueNow(p, Context{Now: tt.now})
			if err != nil {
				t.Fatalf("IsDueNow error: %v", err)
			}
			if due != tt.want {
				t.Errorf("due at %02d:%02d = %v, want %v", tt.now.Hour(), tt.now.Minute(), due, tt.want)
			}
		})
	}
}

func TestScheduledOvernightWindow(t *testing.T) {
	p := models.Playlist{
		Type:              models.TypeScheduled,
		ScheduleStartTime: 2300,
		ScheduleEndTime:   100,
	}

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"before midnight", at(23, 30), true},
		{"after midnight", at(0, 30), true},
		{"outside window", at(12, 0), false},
		{"end exclusive after wrap", at(1, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			due, err := IsDueNow(p, Context{Now: tt.now})
			if err != nil {
				t.Fatalf("IsDueNow error: %v", err)
			}
			if due != tt.want {
				t.Errorf("due = %v, want %v", due, tt.want)
			}
		})
	}
}

func TestScheduledWeekdays(t *testing.T) {
	p := models.Playlist{
		Type:              models.TypeScheduled,
		ScheduleStartTime: 900,
		ScheduleEndTime:   1700,
	}
	p.SetScheduleDays([]time.Weekday{time.Monday, time.Tuesday})

	// Fixture date is a Wednesday.
	due, err := IsDueNow(p, Context{Now: at(12, 0)})
	if err != nil {
		t.Fatalf("IsDueNow error: %v", err)
	}
	if due {
		t.Error("playlist restricted to Mon/Tue should not be due on Wednesday")
	}

	// Empty day set means every day.
	p.ScheduleDays = ""
	due, err = IsDueNow(p, Context{Now: at(12, 0)})
	if err != nil {
		t.Fatalf("IsDueNow error: %v", err)
	}
	if !due {
		t.Error("playlist with empty day set should be due on any weekday")
	}
}

func TestOncePerXSongs(t *testing.T) {
	p := models.Playlist{Type: models.TypeOncePerXSongs, PlayPerSongs: 5}

	tests := []struct {
		name     string
		counters PlayCounters
		want     bool
	}{
		{"never played", PlayCounters{}, true},
		{"under threshold", PlayCounters{HasPlayed: true, SongsSinceLastPlay: 4}, false},
		{"at threshold", PlayCounters{HasPlayed: true, SongsSinceLastPlay: 5}, true},
		{"over threshold", PlayCounters{HasPlayed: true, SongsSinceLastPlay: 9}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			due, err := IsDueNow(p, Context{Now: at(12, 0), Counters: tt.counters})
			if err != nil {
				t.Fatalf("IsDueNow error: %v", err)
			}
			if due != tt.want {
				t.Errorf("due = %v, want %v", due, tt.want)
			}
		})
	}

	// A zero threshold disables the throttle entirely.
	p.PlayPerSongs = 0
	due, err := IsDueNow(p, Context{Now: at(12, 0), Counters: PlayCounters{HasPlayed: true}})
	if err != nil || !due {
		t.Errorf("zero threshold due = %v, err = %v; want due", due, err)
	}
}

func TestOncePerXMinutes(t *testing.T) {
	p := models.Playlist{Type: models.TypeOncePerXMins, PlayPerMinutes: 120}

	due, _ := IsDueNow(p, Context{Now: at(12, 0), Counters: PlayCounters{HasPlayed: true, MinutesSinceLastPlay: 60}})
	if due {
		t.Error("playlist played 60 minutes ago with 120 minute spacing should not be due")
	}

	due, _ = IsDueNow(p, Context{Now: at(12, 0), Counters: PlayCounters{HasPlayed: true, MinutesSinceLastPlay: 120}})
	if !due {
		t.Error("playlist at its minute spacing should be due")
	}
}

func TestOncePerHour(t *testing.T) {
	p := models.Playlist{Type: models.TypeOncePerHour, PlayPerHourMinute: 15}

	due, _ := IsDueNow(p, Context{Now: at(12, 15)})
	if !due {
		t.Error("should be due at the configured minute")
	}

	due, _ = IsDueNow(p, Context{Now: at(12, 16)})
	if due {
		t.Error("should not be due off the configured minute")
	}

	// Already played within this hour.
	due, _ = IsDueNow(p, Context{Now: at(12, 15), Counters: playedAt(at(12, 15))})
	if due {
		t.Error("should not fire twice in the same hour")
	}

	// Played in a previous hour is fine.
	due, _ = IsDueNow(p, Context{Now: at(12, 15), Counters: playedAt(at(11, 15))})
	if !due {
		t.Error("previous-hour play should not block the current hour")
	}
}

func TestOncePerDay(t *testing.T) {
	p := models.Playlist{Type: models.TypeOncePerDay, PlayOnceTime: 1500}
	p.SetPlayOnceDays([]time.Weekday{time.Wednesday})

	due, _ := IsDueNow(p, Context{Now: at(14, 0)})
	if due {
		t.Error("should not be due before the trigger time")
	}

	due, _ = IsDueNow(p, Context{Now: at(15, 30)})
	if !due {
		t.Error("should be due after the trigger time on a configured day")
	}

	due, _ = IsDueNow(p, Context{Now: at(15, 30), Counters: playedAt(at(15, 5))})
	if due {
		t.Error("should not fire twice on the same day")
	}

	p.SetPlayOnceDays([]time.Weekday{time.Saturday})
	due, _ = IsDueNow(p, Context{Now: at(15, 30)})
	if due {
		t.Error("should not be due on an unconfigured weekday")
	}
}

func TestAdvancedOnlyForceDue(t *testing.T) {
	p := models.Playlist{Type: models.TypeAdvanced}

	due, err := IsDueNow(p, Context{Now: at(12, 0)})
	if err != nil || due {
		t.Errorf("advanced playlist without force = %v, err = %v; want not due", due, err)
	}

	due, err = IsDueNow(p, Context{Now: at(12, 0), ForceDue: true})
	if err != nil || !due {
		t.Errorf("forced advanced playlist = %v, err = %v; want due", due, err)
	}
}

func TestUnknownTypeIsConfigError(t *testing.T) {
	_, err := IsDueNow(models.Playlist{Type: "bogus"}, Context{Now: at(12, 0)})
	if !errors.Is(err, ErrInvalidPlaylistConfig) {
		t.Errorf("error = %v, want ErrInvalidPlaylistConfig", err)
	}
}

func TestMalformedTimeCodeIsConfigError(t *testing.T) {
	p := models.Playlist{
		Type:              models.TypeScheduled,
		ScheduleStartTime: 2575,
		ScheduleEndTime:   1700,
	}

	_, err := IsDueNow(p, Context{Now: at(12, 0)})
	if !errors.Is(err, ErrInvalidPlaylistConfig) {
		t.Errorf("error = %v, want ErrInvalidPlaylistConfig", err)
	}
}
