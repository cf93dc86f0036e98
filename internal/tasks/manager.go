package tasks

import (
	"context"
	"iter"
	"time"

	"github.com/charmbracelet/log"
	"github.com/ttufts/youtube-smart-playlists/internal/models"
	"github.com/ttufts/youtube-smart-playlists/internal/services"
)

// InsertPosition is where new videos land in a smart playlist.
const InsertPosition int64 = 1

// Manager wraps a [services.Client] with the smart playlist queries.
type Manager struct {
	client   services.Client
	resolver *Resolver
	logger   *log.Logger

	// Now supplies the clock used to decide what "today" is.
	Now func() time.Time
	// Location is the timezone both sides of the date comparison are converted into. Nil means time.Local.
	Location *time.Location
	// OnInsertError is called when an insert fails. The failure itself is reported to callers as "not added".
	OnInsertError func(videoID, playlistID string, err error)
}

// NewManager creates a Manager using the wall clock in the local timezone.
func NewManager(client services.Client, resolver *Resolver, logger *log.Logger) *Manager {
	return &Manager{
		client:   client,
		resolver: resolver,
		logger:   logger,
		Now:      time.Now,
		Location: time.Local,
	}
}

func (m *Manager) now() time.Time {
	if m.Now == nil {
		return time.Now()
	}
	return m.Now()
}

// Subscriptions yields the channel ID of every subscription of the authenticated account.
func (m *Manager) Subscriptions(ctx context.Context) iter.Seq2[string, error] {
	fetch := func(ctx context.Context, token string) (services.Page[models.Subscription], error) {
		return m.client.ListSubscriptions(ctx, token)
	}

	return func(yield func(string, error) bool) {
		for sub, err := range services.Pages(ctx, fetch, 0) {
			if err != nil {
				yield("", err)
				return
			}
			if !yield(sub.ChannelID, nil) {
				return
			}
		}
	}
}

// PlaylistVideos yields every item of playlistID across up to maxPages pages (maxPages <= 0 is unlimited).
func (m *Manager) PlaylistVideos(ctx context.Context, playlistID string, maxPages int) iter.Seq2[models.PlaylistItem, error] {
	fetch := func(ctx context.Context, token string) (services.Page[models.PlaylistItem], error) {
		return m.client.ListPlaylistItems(ctx, playlistID, "", token)
	}
	return services.Pages(ctx, fetch, maxPages)
}

// TodaysVideos yields the uploads of channelID published today.
//
// Only the first page of the uploads playlist is read. Uploads playlists are newest first, so a channel posting more than a page of videos in one day loses the overflow.
func (m *Manager) TodaysVideos(ctx context.Context, channelID string) iter.Seq2[models.Video, error] {
	return func(yield func(models.Video, error) bool) {
		uploads, err := m.resolver.Resolve(ctx, channelID)
		if err != nil {
			yield(models.Video{}, err)
			return
		}

		now := m.now()
		for item, err := range m.PlaylistVideos(ctx, uploads, 1) {
			if err != nil {
				yield(models.Video{}, err)
				return
			}

			video, err := item.Video(m.Location)
			if err != nil {
				m.logger.Debug("skipping upload with unreadable publish date", "video", item.VideoID, "err", err)
				continue
			}
			if !models.SameDay(video.PublishedAt, now, m.Location) {
				continue
			}
			if !yield(video, nil) {
				return
			}
		}
	}
}

// TodaysSubscribedVideos yields today's uploads across every subscribed channel.
func (m *Manager) TodaysSubscribedVideos(ctx context.Context) iter.Seq2[models.Video, error] {
	return func(yield func(models.Video, error) bool) {
		for channelID, err := range m.Subscriptions(ctx) {
			if err != nil {
				yield(models.Video{}, err)
				return
			}
			for video, err := range m.TodaysVideos(ctx, channelID) {
				if !yield(video, err) || err != nil {
					return
				}
			}
		}
	}
}

// AddIfAbsent inserts videoID into playlistID unless it is already a member.
//
// It returns true only when this call inserted the video. A failed insert returns false with a nil error and is reported to [Manager.OnInsertError].
// A failed membership query is returned as an error.
func (m *Manager) AddIfAbsent(ctx context.Context, videoID, playlistID string) (bool, error) {
	page, err := m.client.ListPlaylistItems(ctx, playlistID, videoID, "")
	if err != nil {
		return false, err
	}
	if len(page.Items) > 0 {
		return false, nil
	}

	if _, err := m.client.InsertPlaylistItem(ctx, playlistID, videoID, InsertPosition); err != nil {
		m.logger.Warn("failed to add video", "video", videoID, "playlist", playlistID, "err", err)
		if m.OnInsertError != nil {
			m.OnInsertError(videoID, playlistID, err)
		}
		return false, nil
	}
	return true, nil
}
