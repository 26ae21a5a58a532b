/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package models

import (
	"regexp"
	"strings"
	"time"
)

// Station aggregates mounts and playlists for one broadcast channel.
type Station struct {
	ID          string `gorm:"type:uuid;primaryKey"`
	Name        string `gorm:"uniqueIndex"`
	Description string `gorm:"type:text"`
	Timezone    string `gorm:"type:varchar(32)"`
	MediaRoot   string

	Playlists []Playlist `gorm:"foreignKey:StationID"`
	Mounts    []Mount    `gorm:"foreignKey:StationID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

var shortNameStrip = regexp.MustCompile(`[^a-z0-9_]`)

// StationShortName normalizes a station or playlist name into a
// filesystem-safe identifier.
func StationShortName(name string) string {
	name = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", "_"))
	return shortNameStrip.ReplaceAllString(name, "")
}

// ShortName returns the station's normalized identifier.
func (s Station) ShortName() string {
	return StationShortName(s.Name)
}

// Mount describes a station output mount point.
type Mount struct {
	ID                  string `gorm:"type:uuid;primaryKey"`
	StationID           string `gorm:"type:uuid;index"`
	Name                string `gorm:"index"`
	DisplayName         string
	IsVisibleOnPublic   bool
	IsDefault           bool
	FallbackMount       string
	RelayURL            string
	EnableAutodj        bool
	AutodjFormat        string `gorm:"type:varchar(16)"`
	AutodjBitrate       int
	ListenersAuthorized bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// MediaFile is an audio asset referenced by playlist rows.
type MediaFile struct {
	ID        string `gorm:"type:uuid;primaryKey"`
	StationID string `gorm:"type:uuid;index"`
	Path      string
	Artist    string `gorm:"index"`
	Title     string `gorm:"index"`
	Album     string `gorm:"index"`
	Length    int // seconds

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PlayHistory stores executed AutoDJ decisions.
type PlayHistory struct {
	ID               string `gorm:"type:uuid;primaryKey"`
	StationID        string `gorm:"type:uuid;index"`
	PlaylistID       string `gorm:"type:uuid;index"`
	MediaID          string `gorm:"type:uuid"`
	Artist           string
	Title            string
	SuppressMetadata bool
	StartedAt        time.Time `gorm:"index"`
}
