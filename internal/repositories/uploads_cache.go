package repositories

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"slices"
	"sync"

	"github.com/ttufts/youtube-smart-playlists/internal/shared"
)

// UploadsCache memoizes channel ID to uploads playlist ID lookups in a flat JSON file.
//
// Entries are append-only and never invalidated. Safe for concurrent use.
type UploadsCache struct {
	path string

	mu      sync.RWMutex
	entries map[string]string
}

// NewUploadsCache returns an empty cache that flushes to path.
func NewUploadsCache(path string) *UploadsCache {
	return &UploadsCache{path: path, entries: map[string]string{}}
}

// LoadUploadsCache reads the cache file at path.
//
// A missing file yields an empty cache. A file that is not a JSON object of strings returns [shared.ErrCorruptCache].
func LoadUploadsCache(path string) (*UploadsCache, error) {
	cache := NewUploadsCache(path)

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cache, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read uploads cache: %w", err)
	}

	if err := json.Unmarshal(data, &cache.entries); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", shared.ErrCorruptCache, path, err)
	}
	if cache.entries == nil {
		cache.entries = map[string]string{}
	}
	return cache, nil
}

// Path returns the file the cache flushes to.
func (c *UploadsCache) Path() string { return c.path }

// Get returns the uploads playlist ID cached for channelID.
func (c *UploadsCache) Get(channelID string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	id, ok := c.entries[channelID]
	return id, ok
}

// Put records the uploads playlist for channelID. Existing entries are kept.
func (c *UploadsCache) Put(channelID, playlistID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[channelID]; ok {
		return
	}
	c.entries[channelID] = playlistID
}

// Forget drops the entry for channelID, if any.
func (c *UploadsCache) Forget(channelID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, channelID)
}

// Flush writes the whole cache to disk, replacing the previous file atomically.
func (c *UploadsCache) Flush() error {
	c.mu.RLock()
	snapshot := maps.Clone(c.entries)
	c.mu.RUnlock()

	if err := shared.WriteJSONFile(c.path, snapshot, 0644); err != nil {
		return fmt.Errorf("failed to flush uploads cache: %w", err)
	}
	return nil
}

// Len returns the number of cached channels.
func (c *UploadsCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// ChannelIDs returns the cached channel IDs sorted.
func (c *UploadsCache) ChannelIDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Sorted(maps.Keys(c.entries))
}
