/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/friendsincode/bragi_autodj/internal/timecode"
)

// PlaylistType selects the scheduling rule applied to a playlist.
type PlaylistType string

const (
	TypeDefault       PlaylistType = "default"
	TypeScheduled     PlaylistType = "scheduled"
	TypeOncePerXSongs PlaylistType = "once_per_x_songs"
	TypeOncePerXMins  PlaylistType = "once_per_x_minutes"
	TypeOncePerHour   PlaylistType = "once_per_hour"
	TypeOncePerDay    PlaylistType = "once_per_day"
	TypeAdvanced      PlaylistType = "custom"
)

// PlaylistSource selects where a playlist's audio comes from.
type PlaylistSource string

const (
	SourceSongs     PlaylistSource = "songs"
	SourceRemoteURL PlaylistSource = "remote_url"
)

// RemoteType qualifies a remote_url source.
type RemoteType string

const (
	RemoteTypeStream   RemoteType = "stream"
	RemoteTypePlaylist RemoteType = "playlist"
)

// PlaybackOrder selects the track selection mode within a playlist.
type PlaybackOrder string

const (
	OrderRandom     PlaybackOrder = "random"
	OrderShuffle    PlaybackOrder = "shuffle"
	OrderSequential PlaybackOrder = "sequential"
)

const (
	DefaultWeight       = 3
	DefaultRemoteBuffer = 20

	maxNameLength = 200
)

// Playlist is a station-owned collection of media with scheduling rules.
type Playlist struct {
	ID        string   `gorm:"type:uuid;primaryKey"`
	StationID string   `gorm:"type:uuid;index;not null"`
	Station   *Station `gorm:"foreignKey:StationID"`
	Name      string   `gorm:"type:varchar(200)"`

	Type   PlaylistType   `gorm:"type:varchar(50);default:'default'"`
	Source PlaylistSource `gorm:"type:varchar(50);default:'songs'"`
	Order  PlaybackOrder  `gorm:"column:playback_order;type:varchar(50);default:'shuffle'"`

	RemoteURL    string     `gorm:"type:varchar(255)"`
	RemoteType   RemoteType `gorm:"type:varchar(25);default:'stream'"`
	RemoteBuffer int        `gorm:"type:smallint;default:0"`

	IsEnabled bool `gorm:"default:true"`
	IsJingle  bool `gorm:"default:false"`

	PlayPerSongs      int `gorm:"type:smallint;default:0"`
	PlayPerMinutes    int `gorm:"type:smallint;default:0"`
	PlayPerHourMinute int `gorm:"type:smallint;default:0"`

	ScheduleStartTime int    `gorm:"type:smallint;default:0"`
	ScheduleEndTime   int    `gorm:"type:smallint;default:0"`
	ScheduleDays      string `gorm:"type:varchar(50)"`
	PlayOnceTime      int    `gorm:"type:smallint;default:0"`
	PlayOnceDays      string `gorm:"type:varchar(50)"`

	StoredWeight int `gorm:"column:weight;type:smallint;default:3"`

	IncludeInRequests   bool `gorm:"default:true"`
	IncludeInAutomation bool `gorm:"default:false"`
	InterruptOtherSongs bool `gorm:"default:false"`
	LoopPlaylistOnce    bool `gorm:"default:false"`
	PlaySingleTrack     bool `gorm:"default:false"`

	// Weight-ordered; the snapshot loader preloads this sorted ascending.
	MediaItems []PlaylistMedia `gorm:"foreignKey:PlaylistID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PlaylistMedia links a media file into a playlist with an ordering weight.
type PlaylistMedia struct {
	ID         string     `gorm:"type:uuid;primaryKey"`
	PlaylistID string     `gorm:"type:uuid;index;not null"`
	MediaID    string     `gorm:"type:uuid;index;not null"`
	Media      *MediaFile `gorm:"foreignKey:MediaID"`
	Weight     int        `gorm:"default:0"`
}

// TableName returns the table name for GORM.
func (PlaylistMedia) TableName() string {
	return "playlist_media"
}

// ShortName returns the playlist's normalized identifier.
func (p Playlist) ShortName() string {
	return StationShortName(p.Name)
}

// SetName assigns the playlist name, truncated to the column length.
func (p *Playlist) SetName(name string) {
	if len(name) > maxNameLength {
		name = name[:maxNameLength]
	}
	p.Name = name
}

// Weight returns the scheduling weight, never below 1. Stored values under 1
// fall back to the default weight.
func (p Playlist) Weight() int {
	if p.StoredWeight < 1 {
		return DefaultWeight
	}
	return p.StoredWeight
}

// SetPlayPerHourMinute assigns the minute-of-hour trigger. Values outside
// [0,59] normalize to 0 rather than erroring.
func (p *Playlist) SetPlayPerHourMinute(minute int) {
	if minute < 0 || minute > 59 {
		minute = 0
	}
	p.PlayPerHourMinute = minute
}

// IsPlayable reports whether the AutoDJ can schedule this playlist at all.
// Song-sourced playlists need content; remote streams only need to be enabled.
func (p Playlist) IsPlayable() bool {
	if !p.IsEnabled {
		return false
	}
	if p.Source == SourceSongs {
		return len(p.MediaItems) > 0
	}
	return true
}

// IsRequestable reports whether the playlist is a valid source of
// listener-requestable media.
func (p Playlist) IsRequestable() bool {
	return p.IsEnabled && p.IncludeInRequests
}

// ScheduleDuration returns the length of the scheduled play window in
// seconds. Only scheduled playlists have a window; windows where the end
// precedes the start span midnight.
func (p Playlist) ScheduleDuration() int {
	if p.Type != TypeScheduled {
		return 0
	}

	dur, err := timecode.Duration(p.ScheduleStartTime, p.ScheduleEndTime)
	if err != nil {
		return 0
	}
	return int(dur / time.Second)
}

// ScheduleDaySet returns the scheduled weekday set. An empty column means
// every day.
func (p Playlist) ScheduleDaySet() map[time.Weekday]bool {
	return parseDaySet(p.ScheduleDays)
}

// SetScheduleDays packs a weekday list into the storage column.
func (p *Playlist) SetScheduleDays(days []time.Weekday) {
	p.ScheduleDays = packDaySet(days)
}

// PlayOnceDaySet returns the weekday set for once-per-day playlists.
func (p Playlist) PlayOnceDaySet() map[time.Weekday]bool {
	return parseDaySet(p.PlayOnceDays)
}

// SetPlayOnceDays packs a weekday list into the storage column.
func (p *Playlist) SetPlayOnceDays(days []time.Weekday) {
	p.PlayOnceDays = packDaySet(days)
}

func parseDaySet(packed string) map[time.Weekday]bool {
	packed = strings.TrimSpace(packed)
	if packed == "" {
		return nil
	}

	days := make(map[time.Weekday]bool)
	for _, part := range strings.Split(packed, ",") {
		day, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || day < 0 || day > 6 {
			continue
		}
		days[time.Weekday(day)] = true
	}
	return days
}

func packDaySet(days []time.Weekday) string {
	parts := make([]string, 0, len(days))
	for _, day := range days {
		parts = append(parts, strconv.Itoa(int(day)))
	}
	return strings.Join(parts, ",")
}

// ExportFormat enumerates playlist file export formats.
type ExportFormat string

const (
	ExportPLS ExportFormat = "pls"
	ExportM3U ExportFormat = "m3u"
)

// Export renders the playlist into a reusable playlist file format. When
// absolutePaths is set, entries are prefixed with the station media root.
func (p Playlist) Export(format ExportFormat, absolutePaths bool) string {
	mediaPath := ""
	if absolutePaths && p.Station != nil && p.Station.MediaRoot != "" {
		mediaPath = strings.TrimSuffix(p.Station.MediaRoot, "/") + "/"
	}

	switch format {
	case ExportM3U:
		lines := make([]string, 0, len(p.MediaItems))
		for _, item := range p.MediaItems {
			if item.Media == nil {
				continue
			}
			lines = append(lines, mediaPath+item.Media.Path)
		}
		return strings.Join(lines, "\n")

	default:
		lines := []string{"[playlist]"}

		i := 0
		for _, item := range p.MediaItems {
			if item.Media == nil {
				continue
			}
			i++
			lines = append(lines,
				fmt.Sprintf("File%d=%s", i, mediaPath+item.Media.Path),
				fmt.Sprintf("Title%d=%s - %s", i, item.Media.Artist, item.Media.Title),
				fmt.Sprintf("Length%d=%d", i, item.Media.Length),
				"",
			)
		}

		lines = append(lines, fmt.Sprintf("NumberOfEntries=%d", i), "Version=2")
		return strings.Join(lines, "\n")
	}
}
