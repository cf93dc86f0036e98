package models

import (
	"fmt"
	"time"

	"github.com/araddon/dateparse"
)

// ParsePublishedAt parses an upstream publish timestamp.
//
// The Data API sends RFC 3339, but cached fixtures and older exports use looser forms, so any layout dateparse recognises is accepted.
// Timestamps without a zone are read in loc.
func ParsePublishedAt(raw string, loc *time.Location) (time.Time, error) {
	if raw == "" {
		return time.Time{}, fmt.Errorf("empty publish timestamp")
	}
	if loc == nil {
		loc = time.Local
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	t, err := dateparse.ParseIn(raw, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognised publish timestamp %q: %w", raw, err)
	}
	return t, nil
}

// Video converts the item into a [Video], parsing its publish timestamp.
func (p PlaylistItem) Video(loc *time.Location) (Video, error) {
	published, err := ParsePublishedAt(p.PublishedAt, loc)
	if err != nil {
		return Video{}, err
	}
	return Video{
		VideoID:      p.VideoID,
		Title:        p.Title,
		ChannelTitle: p.ChannelTitle,
		PublishedAt:  published,
	}, nil
}

// SameDay reports whether a and b fall on the same calendar date in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	if loc == nil {
		loc = time.Local
	}
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}
