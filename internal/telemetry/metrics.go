/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Evaluations counts scheduling ticks per station.
	Evaluations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bragi_autodj_evaluations_total",
		Help: "Scheduling tick evaluations performed.",
	}, []string{"station"})

	// Decisions counts tick outcomes per station.
	Decisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bragi_autodj_decisions_total",
		Help: "Scheduling decisions by outcome.",
	}, []string{"station", "outcome"})

	// SkippedPlaylists counts playlists excluded for invalid configuration.
	SkippedPlaylists = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bragi_autodj_skipped_playlists_total",
		Help: "Playlists excluded from a tick due to invalid configuration.",
	}, []string{"station"})
)

// Outcome labels for the Decisions counter.
const (
	OutcomePlay       = "play"
	OutcomeRemote     = "remote"
	OutcomeNothingDue = "nothing_due"
)

// Handler exposes the prometheus metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
