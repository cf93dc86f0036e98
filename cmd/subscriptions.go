package main

import (
	"context"

	"github.com/ttufts/youtube-smart-playlists/internal/models"
	"github.com/ttufts/youtube-smart-playlists/internal/services"
	"github.com/ttufts/youtube-smart-playlists/internal/ui"
	"github.com/urfave/cli/v3"
)

// Subscriptions lists the channel IDs of every subscription.
func (r *Runner) Subscriptions(ctx context.Context, cmd *cli.Command) error {
	manager, _, err := r.buildManager(ctx, cmd)
	if err != nil {
		return err
	}

	ids, err := services.Collect(manager.Subscriptions(ctx))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		if ids == nil {
			ids = []string{}
		}
		return r.writeJSON(ids, true)
	}

	for _, id := range ids {
		r.writePlain("%s\n", id)
	}
	return r.writePlain("%s\n", ui.Help(pluralize(len(ids), "subscription")))
}

// Today lists videos published today by --channel, or by every subscription when it is omitted.
func (r *Runner) Today(ctx context.Context, cmd *cli.Command) error {
	manager, _, err := r.buildManager(ctx, cmd)
	if err != nil {
		return err
	}

	var videos []models.Video
	if channelID := cmd.String("channel"); channelID != "" {
		videos, err = services.Collect(manager.TodaysVideos(ctx, channelID))
	} else {
		videos, err = services.Collect(manager.TodaysSubscribedVideos(ctx))
	}
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		if videos == nil {
			videos = []models.Video{}
		}
		return r.writeJSON(videos, true)
	}
	return r.writePlain("%s", ui.VideosTable(videos, manager.Location))
}
