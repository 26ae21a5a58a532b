package models

import (
	"strings"
	"testing"
	"time"
)

func mediaItem(path, artist, title string, length int) PlaylistMedia {
	return PlaylistMedia{
		Media: &MediaFile{Path: path, Artist: artist, Title: title, Length: length},
	}
}

func TestWeightNeverBelowOne(t *testing.T) {
	tests := []struct {
		name   string
		stored int
		want   int
	}{
		{"zero falls back to default", 0, DefaultWeight},
		{"negative falls back to default", -4, DefaultWeight},
		{"one passes through", 1, 1},
		{"large passes through", 25, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Playlist{StoredWeight: tt.stored}
			if got := p.Weight(); got != tt.want {
				t.Errorf("Weight() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSetPlayPerHourMinuteClamps(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{75, 0},
		{-5, 0},
		{59, 59},
		{0, 0},
		{30, 30},
	}

	for _, tt := range tests {
		var p Playlist
		p.SetPlayPerHourMinute(tt.in)
		if p.PlayPerHourMinute != tt.want {
			t.Errorf("SetPlayPerHourMinute(%d) stored %d, want %d", tt.in, p.PlayPerHourMinute, tt.want)
		}
	}
}

func TestIsPlayable(t *testing.T) {
	p := Playlist{IsEnabled: true, Source: SourceSongs}
	if p.IsPlayable() {
		t.Error("songs playlist with no media should not be playable")
	}

	p.MediaItems = append(p.MediaItems, mediaItem("a.mp3", "A", "One", 180))
	if !p.IsPlayable() {
		t.Error("songs playlist with media should be playable")
	}

	remote := Playlist{IsEnabled: true, Source: SourceRemoteURL}
	if !remote.IsPlayable() {
		t.Error("enabled remote playlist should be playable without media")
	}

	remote.IsEnabled = false
	if remote.IsPlayable() {
		t.Error("disabled playlist should never be playable")
	}
}

func TestIsRequestable(t *testing.T) {
	p := Playlist{IsEnabled: true, IncludeInRequests: true}
	if !p.IsRequestable() {
		t.Error("enabled playlist included in requests should be requestable")
	}

	p.IncludeInRequests = false
	if p.IsRequestable() {
		t.Error("playlist excluded from requests should not be requestable")
	}
}

func TestScheduleDuration(t *testing.T) {
	tests := []struct {
		name  string
		ptype PlaylistType
		start int
		end   int
		want  int
	}{
		{"daytime window", TypeScheduled, 900, 1700, 28800},
		{"overnight window", TypeScheduled, 2300, 100, 7200},
		{"non scheduled type reports zero", TypeDefault, 900, 1700, 0},
		{"once per day reports zero", TypeOncePerDay, 900, 1700, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Playlist{Type: tt.ptype, ScheduleStartTime: tt.start, ScheduleEndTime: tt.end}
			if got := p.ScheduleDuration(); got != tt.want {
				t.Errorf("ScheduleDuration() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestScheduleDaySetRoundTrip(t *testing.T) {
	var p Playlist
	p.SetScheduleDays([]time.Weekday{time.Sunday, time.Wednesday, time.Friday})

	days := p.ScheduleDaySet()
	if len(days) != 3 || !days[time.Sunday] || !days[time.Wednesday] || !days[time.Friday] {
		t.Errorf("ScheduleDaySet() = %v, want Sun/Wed/Fri", days)
	}

	p.ScheduleDays = ""
	if got := p.ScheduleDaySet(); got != nil {
		t.Errorf("empty schedule days should return nil set, got %v", got)
	}

	p.ScheduleDays = "1, junk,9,3"
	days = p.ScheduleDaySet()
	if len(days) != 2 || !days[time.Monday] || !days[time.Wednesday] {
		t.Errorf("malformed entries should be dropped, got %v", days)
	}
}

func TestSetNameTruncates(t *testing.T) {
	var p Playlist
	p.SetName(strings.Repeat("x", 500))
	if len(p.Name) != 200 {
		t.Errorf("SetName left %d chars, want 200", len(p.Name))
	}
}

func TestExportPLS(t *testing.T) {
	p := Playlist{
		Name: "Test Playlist",
		MediaItems: []PlaylistMedia{
			mediaItem("one.mp3", "Artist A", "Track One", 181),
			mediaItem("two.mp3", "Artist B", "Track Two", 242),
		},
	}

	want := strings.Join([]string{
		"[playlist]",
		"File1=one.mp3",
		"Title1=Artist A - Track One",
		"Length1=181",
		"",
		"File2=two.mp3",
		"Title2=Artist B - Track Two",
		"Length2=242",
		"",
		"NumberOfEntries=2",
		"Version=2",
	}, "\n")

	if got := p.Export(ExportPLS, false); got != want {
		t.Errorf("Export(pls) mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestExportM3U(t *testing.T) {
	p := Playlist{
		Station: &Station{MediaRoot: "/var/media/"},
		MediaItems: []PlaylistMedia{
			mediaItem("one.mp3", "A", "One", 180),
			mediaItem("sub/two.mp3", "B", "Two", 240),
		},
	}

	if got := p.Export(ExportM3U, false); got != "one.mp3\nsub/two.mp3" {
		t.Errorf("Export(m3u) = %q", got)
	}

	if got := p.Export(ExportM3U, true); got != "/var/media/one.mp3\n/var/media/sub/two.mp3" {
		t.Errorf("Export(m3u, absolute) = %q", got)
	}
}

func TestStationShortName(t *testing.T) {
	if got := StationShortName("My Test Station!"); got != "my_test_station" {
		t.Errorf("StationShortName() = %q", got)
	}
}
