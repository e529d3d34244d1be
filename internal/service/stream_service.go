package service

import (
	"context"
	"log/slog"

	"github.com/streamhub/stream-service/internal/domain"
)

const (
	recommendedPool = 10
	recommendedMax  = 3
)

type StreamService struct {
	streams StreamStore
	users   UserStore
}

func NewStreamService(streams StreamStore, users UserStore) *StreamService {
	return &StreamService{streams: streams, users: users}
}

func (s *StreamService) Get(ctx context.Context, id int64) (*domain.StreamView, error) {
	stream, err := s.streams.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	streamer, err := s.users.Get(ctx, stream.UserID)
	if err != nil {
		return nil, err
	}
	view := stream.View(streamer)
	return &view, nil
}

// List returns live streams with their streamer identity attached. Streams
// whose owner cannot be resolved are dropped rather than failing the list.
func (s *StreamService) List(ctx context.Context, category string) ([]domain.StreamView, error) {
	streams, err := s.streams.List(ctx, category)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, streams), nil
}

// Recommended returns up to recommendedMax random live streams, never
// including excludeID.
func (s *StreamService) Recommended(ctx context.Context, excludeID int64) ([]domain.StreamView, error) {
	streams, err := s.streams.Recommended(ctx, recommendedPool)
	if err != nil {
		return nil, err
	}

	filtered := streams[:0]
	for _, st := range streams {
		if st.ID != excludeID {
			filtered = append(filtered, st)
		}
	}
	views := s.enrich(ctx, filtered)
	if len(views) > recommendedMax {
		views = views[:recommendedMax]
	}
	return views, nil
}

func (s *StreamService) Categories(ctx context.Context) ([]string, error) {
	return s.streams.Categories(ctx)
}

func (s *StreamService) enrich(ctx context.Context, streams []domain.Stream) []domain.StreamView {
	views := make([]domain.StreamView, 0, len(streams))
	for i := range streams {
		streamer, err := s.users.Get(ctx, streams[i].UserID)
		if err != nil {
			slog.Debug("skip stream without resolvable streamer",
				"stream", streams[i].ID, "user", streams[i].UserID, "err", err)
			continue
		}
		views = append(views, streams[i].View(streamer))
	}
	return views
}
