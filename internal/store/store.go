/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/friendsincode/bragi_autodj/internal/models"
)

// ErrNotFound indicates the requested record does not exist in this
// station's scope.
var ErrNotFound = errors.New("record not found")

// Store is the gorm-backed repository the AutoDJ reads snapshots from and
// writes play history to.
type Store struct {
	db *gorm.DB
}

// New creates a store instance.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Stations lists all stations.
func (s *Store) Stations(ctx context.Context) ([]models.Station, error) {
	var stations []models.Station
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&stations).Error; err != nil {
		return nil, fmt.Errorf("query stations: %w", err)
	}
	return stations, nil
}

// Station fetches a single station without its collections.
func (s *Store) Station(ctx context.Context, stationID string) (models.Station, error) {
	var station models.Station
	err := s.db.WithContext(ctx).First(&station, "id = ?", stationID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Station{}, ErrNotFound
	}
	if err != nil {
		return models.Station{}, fmt.Errorf("query station: %w", err)
	}
	return station, nil
}

// SaveStation inserts or updates a station.
func (s *Store) SaveStation(ctx context.Context, station *models.Station) error {
	if station.ID == "" {
		station.ID = uuid.NewString()
	}
	return s.db.WithContext(ctx).Save(station).Error
}

// StationSnapshot materializes a station with its playlists, weight-ordered
// media, and mounts. The evaluator works only on this fully loaded snapshot;
// nothing is lazily fetched afterwards.
func (s *Store) StationSnapshot(ctx context.Context, stationID string) (models.Station, error) {
	var station models.Station
	err := s.db.WithContext(ctx).
		Preload("Mounts").
		Preload("Playlists").
		Preload("Playlists.MediaItems", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("playlist_media.weight ASC")
		}).
		Preload("Playlists.MediaItems.Media").
		First(&station, "id = ?", stationID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Station{}, ErrNotFound
	}
	if err != nil {
		return models.Station{}, fmt.Errorf("load station snapshot: %w", err)
	}

	for i := range station.Playlists {
		station.Playlists[i].Station = &station
	}
	return station, nil
}

// Playlist fetches a station-scoped playlist with its media.
func (s *Store) Playlist(ctx context.Context, stationID, playlistID string) (models.Playlist, error) {
	var playlist models.Playlist
	err := s.db.WithContext(ctx).
		Preload("MediaItems", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("playlist_media.weight ASC")
		}).
		Preload("MediaItems.Media").
		Where("id = ?", playlistID).
		Where("station_id = ?", stationID).
		First(&playlist).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Playlist{}, ErrNotFound
	}
	if err != nil {
		return models.Playlist{}, fmt.Errorf("query playlist: %w", err)
	}
	return playlist, nil
}

// SavePlaylist inserts or updates a playlist within its station.
func (s *Store) SavePlaylist(ctx context.Context, playlist *models.Playlist) error {
	if playlist.StationID == "" {
		return fmt.Errorf("playlist requires an owning station")
	}
	if playlist.ID == "" {
		playlist.ID = uuid.NewString()
	}
	return s.db.WithContext(ctx).Omit("Station", "MediaItems").Save(playlist).Error
}

// DeletePlaylist removes a station-scoped playlist and its media links.
func (s *Store) DeletePlaylist(ctx context.Context, stationID, playlistID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ?", playlistID).Where("station_id = ?", stationID).Delete(&models.Playlist{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Where("playlist_id = ?", playlistID).Delete(&models.PlaylistMedia{}).Error
	})
}

// Mounts lists a station's mount points.
func (s *Store) Mounts(ctx context.Context, stationID string) ([]models.Mount, error) {
	var mounts []models.Mount
	err := s.db.WithContext(ctx).
		Where("station_id = ?", stationID).
		Order("name ASC").
		Find(&mounts).Error
	if err != nil {
		return nil, fmt.Errorf("query mounts: %w", err)
	}
	return mounts, nil
}

// Mount fetches a station-scoped mount.
func (s *Store) Mount(ctx context.Context, stationID, mountID string) (models.Mount, error) {
	var mount models.Mount
	err := s.db.WithContext(ctx).
		Where("id = ?", mountID).
		Where("station_id = ?", stationID).
		First(&mount).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Mount{}, ErrNotFound
	}
	if err != nil {
		return models.Mount{}, fmt.Errorf("query mount: %w", err)
	}
	return mount, nil
}

// SaveMount inserts or updates a mount within its station.
func (s *Store) SaveMount(ctx context.Context, mount *models.Mount) error {
	if mount.StationID == "" {
		return fmt.Errorf("mount requires an owning station")
	}
	if mount.ID == "" {
		mount.ID = uuid.NewString()
	}
	return s.db.WithContext(ctx).Save(mount).Error
}

// DeleteMount removes a station-scoped mount.
func (s *Store) DeleteMount(ctx context.Context, stationID, mountID string) error {
	result := s.db.WithContext(ctx).
		Where("id = ?", mountID).
		Where("station_id = ?", stationID).
		Delete(&models.Mount{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SaveMedia inserts or updates a media file record.
func (s *Store) SaveMedia(ctx context.Context, media *models.MediaFile) error {
	if media.ID == "" {
		media.ID = uuid.NewString()
	}
	return s.db.WithContext(ctx).Save(media).Error
}

// AttachMedia links a media file into a playlist at the given ordering weight.
func (s *Store) AttachMedia(ctx context.Context, playlistID, mediaID string, weight int) error {
	link := models.PlaylistMedia{
		ID:         uuid.NewString(),
		PlaylistID: playlistID,
		MediaID:    mediaID,
		Weight:     weight,
	}
	return s.db.WithContext(ctx).Create(&link).Error
}

// DetachMedia removes a media file from a playlist.
func (s *Store) DetachMedia(ctx context.Context, playlistID, mediaID string) error {
	result := s.db.WithContext(ctx).
		Where("playlist_id = ?", playlistID).
		Where("media_id = ?", mediaID).
		Delete(&models.PlaylistMedia{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// RecordPlay appends a play-history row for an executed decision.
func (s *Store) RecordPlay(ctx context.Context, play *models.PlayHistory) error {
	if play.ID == "" {
		play.ID = uuid.NewString()
	}
	return s.db.WithContext(ctx).Create(play).Error
}

// RecentPlays returns the latest play-history rows for a station.
func (s *Store) RecentPlays(ctx context.Context, stationID string, limit int) ([]models.PlayHistory, error) {
	if limit <= 0 {
		limit = 20
	}
	var plays []models.PlayHistory
	err := s.db.WithContext(ctx).
		Where("station_id = ?", stationID).
		Order("started_at DESC").
		Limit(limit).
		Find(&plays).Error
	if err != nil {
		return nil, fmt.Errorf("query play history: %w", err)
	}
	return plays, nil
}
