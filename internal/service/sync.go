package service

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	dom "github.com/gdps-go/gdps/internal/ports"
)

const syncBatch = 100

// SyncService re-emits stored records to the search index.
type SyncService struct{ d *Deps }

// Users pushes every user to the index.
func (s *SyncService) Users(ctx context.Context) (int, error) {
	var batch []*dom.User
	n := 0
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		err := s.d.UserIndex.UpsertUsers(ctx, batch...)
		n += len(batch)
		batch = batch[:0]
		return err
	}
	err := s.d.Users.Each(ctx, func(u *dom.User) error {
		batch = append(batch, u)
		if len(batch) >= syncBatch {
			return flush()
		}
		return nil
	})
	if err == nil {
		err = flush()
	}
	logx.WithContext(ctx).Infof("synced %d users to the search index", n)
	return n, err
}

// Levels pushes every live level to the index and removes deleted ones.
func (s *SyncService) Levels(ctx context.Context) (int, error) {
	var batch []*dom.Level
	n := 0
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		err := s.d.LevelIndex.UpsertLevels(ctx, batch...)
		n += len(batch)
		batch = batch[:0]
		return err
	}
	err := s.d.Levels.Each(ctx, func(l *dom.Level) error {
		if l.Deleted {
			return s.d.LevelIndex.DeleteLevel(ctx, l.ID)
		}
		batch = append(batch, l)
		if len(batch) >= syncBatch {
			return flush()
		}
		return nil
	})
	if err == nil {
		err = flush()
	}
	logx.WithContext(ctx).Infof("synced %d levels to the search index", n)
	return n, err
}
