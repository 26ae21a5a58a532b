package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/friendsincode/bragi_autodj/internal/autodj"
	"github.com/friendsincode/bragi_autodj/internal/automation"
	"github.com/friendsincode/bragi_autodj/internal/db"
	"github.com/friendsincode/bragi_autodj/internal/events"
	"github.com/friendsincode/bragi_autodj/internal/selector"
	"github.com/friendsincode/bragi_autodj/internal/store"
)

var evaluateStationID string

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Run one scheduling tick for a station",
	Long:  "Evaluate playlist eligibility for a station right now and print the decision as JSON",
	RunE:  runEvaluate,
}

func init() {
	evaluateCmd.Flags().StringVar(&evaluateStationID, "station", "", "station ID to evaluate (required)")
	_ = evaluateCmd.MarkFlagRequired("station")
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}

	conn, err := db.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() { _ = db.Close(conn) }()

	seed := cfg.SelectorSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	sel := selector.NewSeeded(seed)
	director := automation.NewDirector(
		store.New(conn), events.NewBus(), autodj.New(sel, logger), cfg.TickInterval, logger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	decision, err := director.EvaluateStation(ctx, evaluateStationID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("evaluate station: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{
		"none":              decision.None,
		"playlist_id":       decision.PlaylistID,
		"track_id":          decision.TrackID,
		"suppress_metadata": decision.SuppressMetadata,
		"skipped_playlists": decision.SkippedPlaylists,
	})
}
