package main

import (
	"context"
	"fmt"

	"github.com/ttufts/youtube-smart-playlists/internal/repositories"
	"github.com/ttufts/youtube-smart-playlists/internal/ui"
	"github.com/urfave/cli/v3"
)

// CacheList prints the uploads playlist cache.
func (r *Runner) CacheList(ctx context.Context, cmd *cli.Command) error {
	cache, err := repositories.LoadUploadsCache(r.uploadsCachePath(cmd))
	if err != nil {
		return err
	}

	ids := cache.ChannelIDs()
	if cmd.Bool("json") {
		entries := make(map[string]string, len(ids))
		for _, id := range ids {
			entries[id], _ = cache.Get(id)
		}
		return r.writeJSON(entries, true)
	}

	r.writePlain("%s", ui.CacheTable(ids, cache.Get))
	return r.writePlain("%s\n", ui.Help(fmt.Sprintf("%s in %s", pluralize(len(ids), "channel"), cache.Path())))
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
