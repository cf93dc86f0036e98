package tasks

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/ttufts/youtube-smart-playlists/internal/services"
	"github.com/ttufts/youtube-smart-playlists/internal/shared"
)

// UploadsStore is the memo behind [Resolver]. Implemented by repositories.UploadsCache.
type UploadsStore interface {
	Get(channelID string) (string, bool)
	Put(channelID, playlistID string)
	Forget(channelID string)
	Flush() error
}

// Resolver maps a channel ID to its uploads playlist ID.
//
// Each channel costs at most one remote lookup for the lifetime of the store. New entries are flushed before Resolve returns; an entry whose flush fails is dropped again.
type Resolver struct {
	client services.Client
	cache  UploadsStore
	logger *log.Logger
}

// NewResolver creates a Resolver backed by cache.
func NewResolver(client services.Client, cache UploadsStore, logger *log.Logger) *Resolver {
	return &Resolver{client: client, cache: cache, logger: logger}
}

// Resolve returns the uploads playlist ID for channelID.
func (r *Resolver) Resolve(ctx context.Context, channelID string) (string, error) {
	if channelID == "" {
		return "", fmt.Errorf("%w: empty channel id", shared.ErrChannelNotFound)
	}

	if id, ok := r.cache.Get(channelID); ok {
		r.logger.Debug("uploads cache hit", "channel", channelID, "playlist", id)
		return id, nil
	}

	page, err := r.client.ListChannels(ctx, []string{channelID}, "")
	if err != nil {
		return "", fmt.Errorf("failed to look up channel %s: %w", channelID, err)
	}
	if len(page.Items) == 0 || page.Items[0].UploadsPlaylistID == "" {
		return "", fmt.Errorf("%w: %s", shared.ErrChannelNotFound, channelID)
	}

	id := page.Items[0].UploadsPlaylistID
	r.cache.Put(channelID, id)
	if err := r.cache.Flush(); err != nil {
		// Only entries that reached disk may be served from memory.
		r.cache.Forget(channelID)
		return "", err
	}

	r.logger.Debug("resolved uploads playlist", "channel", channelID, "playlist", id)
	return id, nil
}
