package main

import (
	"context"
	"fmt"

	"github.com/ttufts/youtube-smart-playlists/internal/formatter"
	"github.com/ttufts/youtube-smart-playlists/internal/models"
	"github.com/ttufts/youtube-smart-playlists/internal/repositories"
	"github.com/ttufts/youtube-smart-playlists/internal/shared"
	"github.com/ttufts/youtube-smart-playlists/internal/ui"
	"github.com/urfave/cli/v3"
)

// History prints recorded additions, newest first, or exports them with --format.
func (r *Runner) History(ctx context.Context, cmd *cli.Command) error {
	db, err := shared.OpenDatabase(r.config.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repositories.NewAdditionRepository(db)

	var additions []models.Addition
	if sweepID := cmd.String("sweep"); sweepID != "" {
		additions, err = repo.ListBySweep(sweepID)
	} else {
		additions, err = repo.List(cmd.Int("limit"))
	}
	if err != nil {
		return err
	}

	loc, err := r.config.Schedule.Location()
	if err != nil {
		return err
	}

	format := cmd.String("format")
	if cmd.Bool("json") {
		format = "json"
	}
	output := cmd.String("output")

	switch {
	case output != "":
		if format == "" {
			format = "csv"
		}
		if err := formatter.WriteExport(additions, format, output, loc); err != nil {
			return err
		}
		return r.writePlain("✓ Exported %s to %s\n", pluralize(len(additions), "addition"), output)
	case format != "":
		data, err := formatter.Export(additions, format, loc)
		if err != nil {
			return err
		}
		return r.writePlain("%s\n", data)
	default:
		if err := r.writePlain("%s", ui.HistoryTable(additions, loc)); err != nil {
			return fmt.Errorf("failed to write history: %w", err)
		}
		return nil
	}
}
