package models

import (
	"fmt"
	"time"
)

// Channel is a YouTube channel. Every channel has exactly one uploads playlist.
type Channel struct {
	ID                string `json:"id"`
	Title             string `json:"title,omitempty"`
	UploadsPlaylistID string `json:"uploads_playlist_id"`
}

// Subscription is a channel followed by the authenticated account.
type Subscription struct {
	ChannelID string `json:"channel_id"`
	Title     string `json:"title,omitempty"`
}

// PlaylistItem is a membership record linking a video to a playlist.
//
// PublishedAt is the raw upstream timestamp; use [PlaylistItem.Video] to parse it.
type PlaylistItem struct {
	ID           string `json:"id"`
	PlaylistID   string `json:"playlist_id"`
	VideoID      string `json:"video_id"`
	Title        string `json:"title"`
	ChannelTitle string `json:"channel_title"`
	PublishedAt  string `json:"published_at"`
}

// Video is an upload as seen by the sweep. Never mutated locally.
type Video struct {
	VideoID      string    `json:"video_id"`
	Title        string    `json:"title"`
	ChannelTitle string    `json:"channel_title"`
	PublishedAt  time.Time `json:"published_at"`
}

func (v Video) String() string {
	return fmt.Sprintf("%s (%s)", v.Title, v.ChannelTitle)
}

// Addition records a video the sweep filed into a smart playlist.
type Addition struct {
	ID           string    `json:"id"`
	SweepID      string    `json:"sweep_id"`
	Rule         string    `json:"rule"`
	PlaylistID   string    `json:"playlist_id"`
	VideoID      string    `json:"video_id"`
	Title        string    `json:"title"`
	ChannelTitle string    `json:"channel_title"`
	AddedAt      time.Time `json:"added_at"`
}

// Validate checks the fields required to persist an addition.
func (a *Addition) Validate() error {
	switch {
	case a.SweepID == "":
		return fmt.Errorf("addition: sweep_id is required")
	case a.Rule == "":
		return fmt.Errorf("addition: rule is required")
	case a.PlaylistID == "":
		return fmt.Errorf("addition: playlist_id is required")
	case a.VideoID == "":
		return fmt.Errorf("addition: video_id is required")
	case a.AddedAt.IsZero():
		return fmt.Errorf("addition: added_at is required")
	}
	return nil
}
