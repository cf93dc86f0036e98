// YouTube Data API v3 implementation of [Client]
package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/ttufts/youtube-smart-playlists/internal/models"
	"github.com/ttufts/youtube-smart-playlists/internal/shared"
	"golang.org/x/time/rate"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

const (
	defaultRequestsPerSecond = 5.0
	videoKind                = "youtube#video"
)

// YouTubeOpts configures a [YouTubeService].
type YouTubeOpts struct {
	// HTTPClient carries authentication, usually from [NewOAuthHTTPClient].
	HTTPClient *http.Client
	// Endpoint overrides the API base URL (tests only).
	Endpoint string
	// RequestsPerSecond caps outgoing calls. Defaults to 5.
	RequestsPerSecond float64
}

// YouTubeService implements [Client] on top of the generated youtube/v3 bindings.
//
// All calls share one [rate.Limiter] so a sweep over many channels stays inside quota bursts.
type YouTubeService struct {
	svc     *youtube.Service
	limiter *rate.Limiter
}

// NewYouTubeService creates a YouTube Data API client.
func NewYouTubeService(ctx context.Context, opts YouTubeOpts) (*YouTubeService, error) {
	if opts.HTTPClient == nil {
		return nil, fmt.Errorf("%w: an authenticated HTTP client is required", shared.ErrMissingCredentials)
	}
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = defaultRequestsPerSecond
	}

	clientOpts := []option.ClientOption{option.WithHTTPClient(opts.HTTPClient)}
	if opts.Endpoint != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(opts.Endpoint))
	}

	svc, err := youtube.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	return &YouTubeService{
		svc:     svc,
		limiter: rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1),
	}, nil
}

// Name returns the service name.
func (y *YouTubeService) Name() string {
	return "YouTube"
}

// ListChannels calls channels.list with part=contentDetails,snippet.
func (y *YouTubeService) ListChannels(ctx context.Context, ids []string, pageToken string) (Page[models.Channel], error) {
	if err := y.limiter.Wait(ctx); err != nil {
		return Page[models.Channel]{}, err
	}

	call := y.svc.Channels.List([]string{"contentDetails", "snippet"}).Id(ids...)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	resp, err := call.Context(ctx).Do()
	if err != nil {
		return Page[models.Channel]{}, wrapAPIError("channels.list", err)
	}

	page := Page[models.Channel]{NextPageToken: resp.NextPageToken}
	for _, ch := range resp.Items {
		if ch == nil {
			continue
		}
		channel := models.Channel{ID: ch.Id}
		if ch.Snippet != nil {
			channel.Title = ch.Snippet.Title
		}
		if ch.ContentDetails != nil && ch.ContentDetails.RelatedPlaylists != nil {
			channel.UploadsPlaylistID = ch.ContentDetails.RelatedPlaylists.Uploads
		}
		page.Items = append(page.Items, channel)
	}
	return page, nil
}

// ListSubscriptions calls subscriptions.list with mine=true.
func (y *YouTubeService) ListSubscriptions(ctx context.Context, pageToken string) (Page[models.Subscription], error) {
	if err := y.limiter.Wait(ctx); err != nil {
		return Page[models.Subscription]{}, err
	}

	call := y.svc.Subscriptions.List([]string{"snippet"}).Mine(true)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	resp, err := call.Context(ctx).Do()
	if err != nil {
		return Page[models.Subscription]{}, wrapAPIError("subscriptions.list", err)
	}

	page := Page[models.Subscription]{NextPageToken: resp.NextPageToken}
	for _, sub := range resp.Items {
		if sub == nil || sub.Snippet == nil || sub.Snippet.ResourceId == nil {
			continue
		}
		page.Items = append(page.Items, models.Subscription{
			ChannelID: sub.Snippet.ResourceId.ChannelId,
			Title:     sub.Snippet.Title,
		})
	}
	return page, nil
}

// ListPlaylistItems calls playlistItems.list with part=snippet. An empty videoID lists every item.
func (y *YouTubeService) ListPlaylistItems(ctx context.Context, playlistID, videoID, pageToken string) (Page[models.PlaylistItem], error) {
	if err := y.limiter.Wait(ctx); err != nil {
		return Page[models.PlaylistItem]{}, err
	}

	call := y.svc.PlaylistItems.List([]string{"snippet"}).PlaylistId(playlistID)
	if videoID != "" {
		call = call.VideoId(videoID)
	}
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	resp, err := call.Context(ctx).Do()
	if err != nil {
		return Page[models.PlaylistItem]{}, wrapAPIError("playlistItems.list", err)
	}

	page := Page[models.PlaylistItem]{NextPageToken: resp.NextPageToken}
	for _, item := range resp.Items {
		if pi, ok := toPlaylistItem(item); ok {
			page.Items = append(page.Items, pi)
		}
	}
	return page, nil
}

// InsertPlaylistItem calls playlistItems.insert with a youtube#video resource.
func (y *YouTubeService) InsertPlaylistItem(ctx context.Context, playlistID, videoID string, position int64) (*models.PlaylistItem, error) {
	if err := y.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	body := &youtube.PlaylistItem{
		Snippet: &youtube.PlaylistItemSnippet{
			PlaylistId: playlistID,
			Position:   position,
			ResourceId: &youtube.ResourceId{Kind: videoKind, VideoId: videoID},
		},
	}
	if position == 0 {
		body.Snippet.ForceSendFields = []string{"Position"}
	}

	resp, err := y.svc.PlaylistItems.Insert([]string{"snippet"}, body).Context(ctx).Do()
	if err != nil {
		return nil, wrapAPIError("playlistItems.insert", err)
	}

	pi, ok := toPlaylistItem(resp)
	if !ok {
		pi = models.PlaylistItem{PlaylistID: playlistID, VideoID: videoID}
	}
	return &pi, nil
}

func toPlaylistItem(item *youtube.PlaylistItem) (models.PlaylistItem, bool) {
	if item == nil || item.Snippet == nil {
		return models.PlaylistItem{}, false
	}
	s := item.Snippet

	pi := models.PlaylistItem{
		ID:           item.Id,
		PlaylistID:   s.PlaylistId,
		Title:        s.Title,
		ChannelTitle: s.VideoOwnerChannelTitle,
		PublishedAt:  s.PublishedAt,
	}
	if pi.ChannelTitle == "" {
		pi.ChannelTitle = s.ChannelTitle
	}
	if s.ResourceId != nil {
		pi.VideoID = s.ResourceId.VideoId
	}
	return pi, true
}

// wrapAPIError maps googleapi status codes onto the shared sentinel errors.
func wrapAPIError(op string, err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case http.StatusUnauthorized:
			return fmt.Errorf("%w: %s: %v", shared.ErrTokenExpired, op, err)
		case http.StatusForbidden:
			return fmt.Errorf("%w: %s: %v", shared.ErrAuthFailed, op, err)
		case http.StatusNotFound:
			return fmt.Errorf("%w: %s: %v", shared.ErrPlaylistNotFound, op, err)
		}
	}
	return fmt.Errorf("%w: %s: %v", shared.ErrAPIRequest, op, err)
}
