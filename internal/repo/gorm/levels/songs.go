package levelsgorm

import (
	"context"

	"gorm.io/gorm"

	"github.com/gdps-go/gdps/internal/db"
	dom "github.com/gdps-go/gdps/internal/ports"
)

// SongRepo caches song metadata fetched from upstream.
type SongRepo struct{ db *gorm.DB }

var _ dom.SongRepository = (*SongRepo)(nil)

func NewSongRepo(gdb *gorm.DB) *SongRepo { return &SongRepo{db: gdb} }

func (r *SongRepo) FromID(ctx context.Context, id int) (*dom.Song, error) {
	var s dom.Song
	if err := db.Conn(ctx, r.db).First(&s, id).Error; err != nil {
		return nil, db.Translate(err)
	}
	return &s, nil
}

func (r *SongRepo) FromIDs(ctx context.Context, ids []int) ([]*dom.Song, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var arr []*dom.Song
	err := db.Conn(ctx, r.db).Where("id IN ?", ids).Order("id").Find(&arr).Error
	return arr, err
}

func (r *SongRepo) Create(ctx context.Context, s *dom.Song) error {
	return db.Conn(ctx, r.db).Create(s).Error
}
