/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/friendsincode/bragi_autodj/internal/automation"
	"github.com/friendsincode/bragi_autodj/internal/models"
	"github.com/friendsincode/bragi_autodj/internal/store"
)

// API exposes HTTP handlers for station, playlist, and mount management plus
// AutoDJ inspection.
type API struct {
	store    *store.Store
	director *automation.Director
	logger   zerolog.Logger
}

// New creates the API router wrapper.
func New(st *store.Store, director *automation.Director, logger zerolog.Logger) *API {
	return &API{store: st, director: director, logger: logger}
}

type stationRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Timezone    string `json:"timezone"`
	MediaRoot   string `json:"media_root"`
}

type playlistRequest struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	Source string `json:"source"`
	Order  string `json:"playback_order"`

	RemoteURL    string `json:"remote_url"`
	RemoteType   string `json:"remote_type"`
	RemoteBuffer int    `json:"remote_buffer"`

	IsEnabled bool `json:"is_enabled"`
	IsJingle  bool `json:"is_jingle"`

	PlayPerSongs      int `json:"play_per_songs"`
	PlayPerMinutes    int `json:"play_per_minutes"`
	PlayPerHourMinute int `json:"play_per_hour_minute"`

	ScheduleStartTime int   `json:"schedule_start_time"`
	ScheduleEndTime   int   `json:"schedule_end_time"`
	ScheduleDays      []int `json:"schedule_days"`
	PlayOnceTime      int   `json:"play_once_time"`
	PlayOnceDays      []int `json:"play_once_days"`

	Weight int `json:"weight"`

	IncludeInRequests   bool `json:"include_in_requests"`
	IncludeInAutomation bool `json:"include_in_automation"`
	InterruptOtherSongs bool `json:"interrupt_other_songs"`
	LoopPlaylistOnce    bool `json:"loop_playlist_once"`
	PlaySingleTrack     bool `json:"play_single_track"`
}

type mountRequest struct {
	Name                string `json:"name"`
	DisplayName         string `json:"display_name"`
	IsVisibleOnPublic   bool   `json:"is_visible_on_public"`
	IsDefault           bool   `json:"is_default"`
	FallbackMount       string `json:"fallback_mount"`
	RelayURL            string `json:"relay_url"`
	EnableAutodj        bool   `json:"enable_autodj"`
	AutodjFormat        string `json:"autodj_format"`
	AutodjBitrate       int    `json:"autodj_bitrate"`
	ListenersAuthorized bool   `json:"listeners_authorized"`
}

// Routes mounts API routes on the provided router.
func (a *API) Routes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", a.handleHealth)

		r.Route("/stations", func(r chi.Router) {
			r.Get("/", a.handleStationsList)
			r.Post("/", a.handleStationsCreate)

			r.Route("/{stationID}", func(r chi.Router) {
				r.Get("/", a.handleStationsGet)
				r.Post("/evaluate", a.handleEvaluate)
				r.Get("/eligibility", a.handleEligibility)
				r.Get("/history", a.handleHistory)

				r.Route("/playlists", func(r chi.Router) {
					r.Get("/", a.handlePlaylistsList)
					r.Post("/", a.handlePlaylistsCreate)

					r.Route("/{playlistID}", func(r chi.Router) {
						r.Get("/", a.handlePlaylistsGet)
						r.Put("/", a.handlePlaylistsUpdate)
						r.Delete("/", a.handlePlaylistsDelete)
						r.Get("/export/{format}", a.handlePlaylistExport)
						r.Post("/trigger", a.handlePlaylistTrigger)
						r.Post("/rearm", a.handlePlaylistReArm)
						r.Post("/media", a.handlePlaylistAttachMedia)
						r.Delete("/media/{mediaID}", a.handlePlaylistDetachMedia)
					})
				})

				r.Post("/media", a.handleMediaCreate)

				r.Route("/mounts", func(r chi.Router) {
					r.Get("/", a.handleMountsList)
					r.Post("/", a.handleMountsCreate)

					r.Route("/{mountID}", func(r chi.Router) {
						r.Get("/", a.handleMountsGet)
						r.Put("/", a.handleMountsUpdate)
						r.Delete("/", a.handleMountsDelete)
					})
				})
			})
		})
	})
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *API) handleStationsList(w http.ResponseWriter, r *http.Request) {
	stations, err := a.store.Stations(r.Context())
	if err != nil {
		a.logger.Error().Err(err).Msg("list stations failed")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusOK, stations)
}

func (a *API) handleStationsCreate(w http.ResponseWriter, r *http.Request) {
	var req stationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name_required")
		return
	}
	if req.Timezone == "" {
		req.Timezone = "UTC"
	}

	station := models.Station{
		Name:        req.Name,
		Description: req.Description,
		Timezone:    req.Timezone,
		MediaRoot:   req.MediaRoot,
	}
	if err := a.store.SaveStation(r.Context(), &station); err != nil {
		a.logger.Error().Err(err).Msg("create station failed")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusCreated, station)
}

func (a *API) handleStationsGet(w http.ResponseWriter, r *http.Request) {
	station, err := a.store.StationSnapshot(r.Context(), chi.URLParam(r, "stationID"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	if err != nil {
		a.logger.Error().Err(err).Msg("get station failed")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}

	// The snapshot back-links playlists to the station; drop those before
	// encoding to keep the payload acyclic.
	for i := range station.Playlists {
		station.Playlists[i].Station = nil
	}
	writeJSON(w, http.StatusOK, station)
}

// handleEvaluate runs one on-demand scheduling tick and returns the decision
// without waiting for the automation loop.
func (a *API) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	stationID := chi.URLParam(r, "stationID")

	decision, err := a.director.EvaluateStation(r.Context(), stationID, time.Now().UTC())
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	if err != nil {
		a.logger.Error().Err(err).Str("station_id", stationID).Msg("evaluation failed")
		writeError(w, http.StatusInternalServerError, "evaluation_failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"none":              decision.None,
		"playlist_id":       decision.PlaylistID,
		"track_id":          decision.TrackID,
		"suppress_metadata": decision.SuppressMetadata,
		"skipped_playlists": decision.SkippedPlaylists,
	})
}

// handleEligibility reports per-playlist due-ness without advancing state.
func (a *API) handleEligibility(w http.ResponseWriter, r *http.Request) {
	stationID := chi.URLParam(r, "stationID")

	statuses, err := a.director.InspectStation(r.Context(), stationID, time.Now().UTC())
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	if err != nil {
		a.logger.Error().Err(err).Str("station_id", stationID).Msg("eligibility inspection failed")
		writeError(w, http.StatusInternalServerError, "inspection_failed")
		return
	}
	writeJSON(w, http.StatusOK, statuses)
}

func (a *API) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	plays, err := a.store.RecentPlays(r.Context(), chi.URLParam(r, "stationID"), limit)
	if err != nil {
		a.logger.Error().Err(err).Msg("list play history failed")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusOK, plays)
}

func (a *API) handlePlaylistsList(w http.ResponseWriter, r *http.Request) {
	station, err := a.store.StationSnapshot(r.Context(), chi.URLParam(r, "stationID"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	if err != nil {
		a.logger.Error().Err(err).Msg("list playlists failed")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}

	for i := range station.Playlists {
		station.Playlists[i].Station = nil
	}
	writeJSON(w, http.StatusOK, station.Playlists)
}

func (a *API) handlePlaylistsCreate(w http.ResponseWriter, r *http.Request) {
	stationID := chi.URLParam(r, "stationID")
	if _, err := a.store.Station(r.Context(), stationID); errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	} else if err != nil {
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}

	var req playlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name_required")
		return
	}

	playlist := models.Playlist{StationID: stationID}
	applyPlaylistRequest(&playlist, req)

	if err := a.store.SavePlaylist(r.Context(), &playlist); err != nil {
		a.logger.Error().Err(err).Msg("create playlist failed")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusCreated, playlist)
}

func (a *API) handlePlaylistsGet(w http.ResponseWriter, r *http.Request) {
	playlist, err := a.store.Playlist(r.Context(), chi.URLParam(r, "stationID"), chi.URLParam(r, "playlistID"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	if err != nil {
		a.logger.Error().Err(err).Msg("get playlist failed")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusOK, playlist)
}

func (a *API) handlePlaylistsUpdate(w http.ResponseWriter, r *http.Request) {
	playlist, err := a.store.Playlist(r.Context(), chi.URLParam(r, "stationID"), chi.URLParam(r, "playlistID"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}

	var req playlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name_required")
		return
	}

	applyPlaylistRequest(&playlist, req)

	if err := a.store.SavePlaylist(r.Context(), &playlist); err != nil {
		a.logger.Error().Err(err).Msg("update playlist failed")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusOK, playlist)
}

func (a *API) handlePlaylistsDelete(w http.ResponseWriter, r *http.Request) {
	err := a.store.DeletePlaylist(r.Context(), chi.URLParam(r, "stationID"), chi.URLParam(r, "playlistID"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	if err != nil {
		a.logger.Error().Err(err).Msg("delete playlist failed")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handlePlaylistExport renders the playlist as a downloadable pls or m3u file.
func (a *API) handlePlaylistExport(w http.ResponseWriter, r *http.Request) {
	stationID := chi.URLParam(r, "stationID")

	playlist, err := a.store.Playlist(r.Context(), stationID, chi.URLParam(r, "playlistID"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	if err != nil {
		a.logger.Error().Err(err).Msg("export playlist failed")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}

	absolute := r.URL.Query().Get("absolute") == "true"
	if absolute {
		station, err := a.store.Station(r.Context(), stationID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "db_error")
			return
		}
		playlist.Station = &station
	}

	var format models.ExportFormat
	var contentType string
	switch chi.URLParam(r, "format") {
	case "m3u":
		format = models.ExportM3U
		contentType = "audio/x-mpegurl"
	case "pls":
		format = models.ExportPLS
		contentType = "audio/x-scpls"
	default:
		writeError(w, http.StatusBadRequest, "unsupported_format")
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", playlist.ShortName()+"."+string(format)))
	_, _ = w.Write([]byte(playlist.Export(format, absolute)))
}

// handlePlaylistTrigger arms a custom playlist to play on the next tick.
func (a *API) handlePlaylistTrigger(w http.ResponseWriter, r *http.Request) {
	stationID := chi.URLParam(r, "stationID")

	playlist, err := a.store.Playlist(r.Context(), stationID, chi.URLParam(r, "playlistID"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}

	a.director.ForceDue(stationID, playlist.ID)
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "armed"})
}

// handlePlaylistReArm clears a loop-once playlist's consumed state.
func (a *API) handlePlaylistReArm(w http.ResponseWriter, r *http.Request) {
	stationID := chi.URLParam(r, "stationID")

	playlist, err := a.store.Playlist(r.Context(), stationID, chi.URLParam(r, "playlistID"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}

	a.director.ReArmLoop(stationID, playlist.ID)
	writeJSON(w, http.StatusOK, map[string]string{"status": "rearmed"})
}

// handleMediaCreate registers a media file record against the station.
func (a *API) handleMediaCreate(w http.ResponseWriter, r *http.Request) {
	stationID := chi.URLParam(r, "stationID")
	if _, err := a.store.Station(r.Context(), stationID); errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	} else if err != nil {
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}

	var req struct {
		Path   string `json:"path"`
		Artist string `json:"artist"`
		Title  string `json:"title"`
		Album  string `json:"album"`
		Length int    `json:"length"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if req.Path == "" {
		writeError(w, http.StatusBadRequest, "path_required")
		return
	}

	media := models.MediaFile{
		StationID: stationID,
		Path:      req.Path,
		Artist:    req.Artist,
		Title:     req.Title,
		Album:     req.Album,
		Length:    req.Length,
	}
	if err := a.store.SaveMedia(r.Context(), &media); err != nil {
		a.logger.Error().Err(err).Msg("create media failed")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusCreated, media)
}

// handlePlaylistAttachMedia links an existing media file into the playlist.
func (a *API) handlePlaylistAttachMedia(w http.ResponseWriter, r *http.Request) {
	playlist, err := a.store.Playlist(r.Context(), chi.URLParam(r, "stationID"), chi.URLParam(r, "playlistID"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}

	var req struct {
		MediaID string `json:"media_id"`
		Weight  int    `json:"weight"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if req.MediaID == "" {
		writeError(w, http.StatusBadRequest, "media_id_required")
		return
	}

	if err := a.store.AttachMedia(r.Context(), playlist.ID, req.MediaID, req.Weight); err != nil {
		a.logger.Error().Err(err).Msg("attach media failed")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "attached"})
}

// handlePlaylistDetachMedia unlinks a media file from the playlist.
func (a *API) handlePlaylistDetachMedia(w http.ResponseWriter, r *http.Request) {
	playlist, err := a.store.Playlist(r.Context(), chi.URLParam(r, "stationID"), chi.URLParam(r, "playlistID"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}

	err = a.store.DetachMedia(r.Context(), playlist.ID, chi.URLParam(r, "mediaID"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	if err != nil {
		a.logger.Error().Err(err).Msg("detach media failed")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleMountsList(w http.ResponseWriter, r *http.Request) {
	mounts, err := a.store.Mounts(r.Context(), chi.URLParam(r, "stationID"))
	if err != nil {
		a.logger.Error().Err(err).Msg("list mounts failed")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusOK, mounts)
}

func (a *API) handleMountsCreate(w http.ResponseWriter, r *http.Request) {
	stationID := chi.URLParam(r, "stationID")
	if _, err := a.store.Station(r.Context(), stationID); errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	} else if err != nil {
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}

	var req mountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name_required")
		return
	}

	mount := models.Mount{StationID: stationID}
	applyMountRequest(&mount, req)

	if err := a.store.SaveMount(r.Context(), &mount); err != nil {
		a.logger.Error().Err(err).Msg("create mount failed")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusCreated, mount)
}

func (a *API) handleMountsGet(w http.ResponseWriter, r *http.Request) {
	mount, err := a.store.Mount(r.Context(), chi.URLParam(r, "stationID"), chi.URLParam(r, "mountID"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	if err != nil {
		a.logger.Error().Err(err).Msg("get mount failed")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusOK, mount)
}

func (a *API) handleMountsUpdate(w http.ResponseWriter, r *http.Request) {
	mount, err := a.store.Mount(r.Context(), chi.URLParam(r, "stationID"), chi.URLParam(r, "mountID"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}

	var req mountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name_required")
		return
	}

	applyMountRequest(&mount, req)

	if err := a.store.SaveMount(r.Context(), &mount); err != nil {
		a.logger.Error().Err(err).Msg("update mount failed")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusOK, mount)
}

func (a *API) handleMountsDelete(w http.ResponseWriter, r *http.Request) {
	err := a.store.DeleteMount(r.Context(), chi.URLParam(r, "stationID"), chi.URLParam(r, "mountID"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	if err != nil {
		a.logger.Error().Err(err).Msg("delete mount failed")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func applyPlaylistRequest(playlist *models.Playlist, req playlistRequest) {
	playlist.SetName(req.Name)

	playlist.Type = models.TypeDefault
	if req.Type != "" {
		playlist.Type = models.PlaylistType(req.Type)
	}
	playlist.Source = models.SourceSongs
	if req.Source != "" {
		playlist.Source = models.PlaylistSource(req.Source)
	}
	playlist.Order = models.OrderShuffle
	if req.Order != "" {
		playlist.Order = models.PlaybackOrder(req.Order)
	}

	playlist.RemoteURL = req.RemoteURL
	playlist.RemoteType = models.RemoteTypeStream
	if req.RemoteType != "" {
		playlist.RemoteType = models.RemoteType(req.RemoteType)
	}
	playlist.RemoteBuffer = req.RemoteBuffer

	playlist.IsEnabled = req.IsEnabled
	playlist.IsJingle = req.IsJingle

	playlist.PlayPerSongs = req.PlayPerSongs
	playlist.PlayPerMinutes = req.PlayPerMinutes
	playlist.SetPlayPerHourMinute(req.PlayPerHourMinute)

	playlist.ScheduleStartTime = req.ScheduleStartTime
	playlist.ScheduleEndTime = req.ScheduleEndTime
	playlist.SetScheduleDays(weekdays(req.ScheduleDays))
	playlist.PlayOnceTime = req.PlayOnceTime
	playlist.SetPlayOnceDays(weekdays(req.PlayOnceDays))

	playlist.StoredWeight = req.Weight

	playlist.IncludeInRequests = req.IncludeInRequests
	playlist.IncludeInAutomation = req.IncludeInAutomation
	playlist.InterruptOtherSongs = req.InterruptOtherSongs
	playlist.LoopPlaylistOnce = req.LoopPlaylistOnce
	playlist.PlaySingleTrack = req.PlaySingleTrack
}

func applyMountRequest(mount *models.Mount, req mountRequest) {
	mount.Name = req.Name
	mount.DisplayName = req.DisplayName
	mount.IsVisibleOnPublic = req.IsVisibleOnPublic
	mount.IsDefault = req.IsDefault
	mount.FallbackMount = req.FallbackMount
	mount.RelayURL = req.RelayURL
	mount.EnableAutodj = req.EnableAutodj
	mount.AutodjFormat = req.AutodjFormat
	mount.AutodjBitrate = req.AutodjBitrate
	mount.ListenersAuthorized = req.ListenersAuthorized
}

func weekdays(days []int) []time.Weekday {
	out := make([]time.Weekday, 0, len(days))
	for _, day := range days {
		out = append(out, time.Weekday(day))
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
