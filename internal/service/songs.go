package service

import (
	"context"
	"errors"

	dom "github.com/gdps-go/gdps/internal/ports"
)

type SongService struct{ d *Deps }

// Get returns a song, fetching and storing it from the official servers on a
// miss. Blocked songs are returned only with allowBlocked.
func (s *SongService) Get(ctx context.Context, id int, allowBlocked bool) (*dom.Song, error) {
	song, err := s.d.Songs.FromID(ctx, id)
	if errors.Is(err, dom.ErrNotFound) {
		song, err = s.fetch(ctx, id)
	}
	if err != nil {
		return nil, err
	}
	if song.Blocked && !allowBlocked {
		return nil, fail(SongsBlocked)
	}
	return song, nil
}

func (s *SongService) fetch(ctx context.Context, id int) (*dom.Song, error) {
	if s.d.Upstream == nil {
		return nil, fail(SongsNotFound)
	}
	song, err := s.d.Upstream.SongInfo(ctx, id)
	if err != nil {
		return nil, orKind(err, SongsNotFound)
	}
	song.ID = id
	if err := s.d.Songs.Create(ctx, song); err != nil {
		return nil, err
	}
	return song, nil
}

// Add stores a song directly, used for custom uploads.
func (s *SongService) Add(ctx context.Context, song *dom.Song) error {
	return s.d.Songs.Create(ctx, song)
}
