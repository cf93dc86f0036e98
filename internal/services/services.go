// package services defines the [Client] port for the YouTube Data API and its implementation
package services

import (
	"context"

	"github.com/ttufts/youtube-smart-playlists/internal/models"
)

// Client is the subset of the YouTube Data API the smart playlist manager consumes.
//
// Every list method returns one page; pass the previous page's NextPageToken to continue.
type Client interface {
	// ListChannels looks up channels by ID (part=contentDetails,snippet).
	ListChannels(ctx context.Context, ids []string, pageToken string) (Page[models.Channel], error)

	// ListSubscriptions lists the authenticated account's subscriptions (mine=true).
	ListSubscriptions(ctx context.Context, pageToken string) (Page[models.Subscription], error)

	// ListPlaylistItems lists a playlist's items, optionally filtered to a single video ID.
	ListPlaylistItems(ctx context.Context, playlistID, videoID, pageToken string) (Page[models.PlaylistItem], error)

	// InsertPlaylistItem adds a video to a playlist at position.
	InsertPlaylistItem(ctx context.Context, playlistID, videoID string, position int64) (*models.PlaylistItem, error)
}

// Page is one page of a paginated list response.
type Page[T any] struct {
	Items         []T
	NextPageToken string
}
