package domain

import "time"

type Stream struct {
	ID           int64      `db:"id"`
	UserID       int64      `db:"user_id"`
	Title        string     `db:"title"`
	Description  *string    `db:"description"`
	ThumbnailURL *string    `db:"thumbnail_url"`
	Category     *string    `db:"category"`
	Tags         []string   `db:"tags"`
	IsLive       bool       `db:"is_live"`
	ViewerCount  int64      `db:"viewer_count"`
	StartedAt    *time.Time `db:"started_at"`
}

// StreamView is a stream enriched with its streamer's identity for clients.
type StreamView struct {
	ID           int64    `json:"id"`
	UserID       int64    `json:"userId"`
	Title        string   `json:"title"`
	Description  *string  `json:"description,omitempty"`
	ThumbnailURL *string  `json:"thumbnailUrl,omitempty"`
	Category     *string  `json:"category,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	IsLive       bool     `json:"isLive"`
	ViewerCount  int64    `json:"viewerCount"`
	StartedAt    *string  `json:"startedAt,omitempty"`
	Streamer     UserView `json:"streamer"`
}

func (s *Stream) View(streamer *User) StreamView {
	v := StreamView{
		ID:           s.ID,
		UserID:       s.UserID,
		Title:        s.Title,
		Description:  s.Description,
		ThumbnailURL: s.ThumbnailURL,
		Category:     s.Category,
		Tags:         s.Tags,
		IsLive:       s.IsLive,
		ViewerCount:  s.ViewerCount,
		Streamer:     streamer.View(),
	}
	if s.StartedAt != nil {
		ts := FormatTimestamp(*s.StartedAt)
		v.StartedAt = &ts
	}
	return v
}
