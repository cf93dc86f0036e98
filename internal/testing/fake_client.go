package testing

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"sync"

	"github.com/ttufts/youtube-smart-playlists/internal/models"
	"github.com/ttufts/youtube-smart-playlists/internal/services"
)

// FakeClient is an in-memory [services.Client].
//
// Playlists holds both uploads playlists and smart playlists; inserts mutate it so later membership checks see them.
type FakeClient struct {
	mu sync.Mutex

	Channels      map[string]models.Channel
	Subscriptions []models.Subscription
	Playlists     map[string][]models.PlaylistItem

	// PageSize splits list responses into pages. Zero returns everything in one page.
	PageSize int

	ChannelsErr      error
	SubscriptionsErr error
	ListErr          error
	InsertErr        error

	Inserted []models.PlaylistItem
	calls    map[string]int
}

// NewFakeClient returns an empty fake.
func NewFakeClient() *FakeClient {
	return &FakeClient{
		Channels:  map[string]models.Channel{},
		Playlists: map[string][]models.PlaylistItem{},
		calls:     map[string]int{},
	}
}

// AddChannel registers a channel with its uploads playlist and optional uploads.
func (f *FakeClient) AddChannel(id, title, uploadsID string, uploads ...models.PlaylistItem) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Channels[id] = models.Channel{ID: id, Title: title, UploadsPlaylistID: uploadsID}
	for i := range uploads {
		uploads[i].PlaylistID = uploadsID
	}
	f.Playlists[uploadsID] = append(f.Playlists[uploadsID], uploads...)
}

// Calls returns how many times method was invoked.
func (f *FakeClient) Calls(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

// Items returns a copy of the items in playlistID.
func (f *FakeClient) Items(playlistID string) []models.PlaylistItem {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.Playlists[playlistID])
}

func (f *FakeClient) record(method string) {
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[method]++
}

func (f *FakeClient) ListChannels(_ context.Context, ids []string, pageToken string) (services.Page[models.Channel], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("ListChannels")

	if f.ChannelsErr != nil {
		return services.Page[models.Channel]{}, f.ChannelsErr
	}

	var found []models.Channel
	for _, id := range ids {
		if ch, ok := f.Channels[id]; ok {
			found = append(found, ch)
		}
	}
	return paginate(found, pageToken, f.PageSize)
}

func (f *FakeClient) ListSubscriptions(_ context.Context, pageToken string) (services.Page[models.Subscription], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("ListSubscriptions")

	if f.SubscriptionsErr != nil {
		return services.Page[models.Subscription]{}, f.SubscriptionsErr
	}
	return paginate(f.Subscriptions, pageToken, f.PageSize)
}

func (f *FakeClient) ListPlaylistItems(_ context.Context, playlistID, videoID, pageToken string) (services.Page[models.PlaylistItem], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("ListPlaylistItems")

	if f.ListErr != nil {
		return services.Page[models.PlaylistItem]{}, f.ListErr
	}

	items := f.Playlists[playlistID]
	if videoID != "" {
		items = slices.DeleteFunc(slices.Clone(items), func(it models.PlaylistItem) bool {
			return it.VideoID != videoID
		})
	}
	return paginate(items, pageToken, f.PageSize)
}

func (f *FakeClient) InsertPlaylistItem(_ context.Context, playlistID, videoID string, position int64) (*models.PlaylistItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("InsertPlaylistItem")

	if f.InsertErr != nil {
		return nil, f.InsertErr
	}

	item := models.PlaylistItem{
		ID:         fmt.Sprintf("%s-%s", playlistID, videoID),
		PlaylistID: playlistID,
		VideoID:    videoID,
	}
	existing := f.Playlists[playlistID]
	pos := min(max(int(position), 0), len(existing))
	f.Playlists[playlistID] = slices.Insert(slices.Clone(existing), pos, item)
	f.Inserted = append(f.Inserted, item)
	return &item, nil
}

// paginate slices items by pageSize using the start offset as the page token.
func paginate[T any](items []T, pageToken string, pageSize int) (services.Page[T], error) {
	start := 0
	if pageToken != "" {
		n, err := strconv.Atoi(pageToken)
		if err != nil || n < 0 || n > len(items) {
			return services.Page[T]{}, fmt.Errorf("invalid page token %q", pageToken)
		}
		start = n
	}

	if pageSize <= 0 || start+pageSize >= len(items) {
		return services.Page[T]{Items: slices.Clone(items[start:])}, nil
	}

	end := start + pageSize
	return services.Page[T]{Items: slices.Clone(items[start:end]), NextPageToken: strconv.Itoa(end)}, nil
}

var _ services.Client = (*FakeClient)(nil)
